// Package render turns a diff.Result into a two-column terminal report.
//
// The baseline package occupies the left column and the modified package the
// right one. Lines are colored by kind: green for additions, red for
// removals, yellow for changes. Color and column width are caller concerns;
// the diff engine itself never deals in presentation.
package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/arloliu/hipdiff/diff"
)

// DefaultWidth is the column width used when the caller passes none.
const DefaultWidth = 50

// Options controls the report layout.
type Options struct {
	// Width is the character width of each column. Non-positive values are
	// clamped to DefaultWidth.
	Width int

	// Color enables ANSI colors. Leave it off when writing to a file or a
	// non-terminal pipe.
	Color bool
}

// Renderer writes diff reports to a fixed output stream.
type Renderer struct {
	w     io.Writer
	width int
	err   error

	green  func(a ...any) string
	red    func(a ...any) string
	yellow func(a ...any) string
}

// New creates a Renderer writing to w.
func New(w io.Writer, opts Options) *Renderer {
	width := opts.Width
	if width <= 0 {
		width = DefaultWidth
	}

	r := &Renderer{w: w, width: width}
	if opts.Color {
		r.green = color.New(color.FgGreen).SprintFunc()
		r.red = color.New(color.FgRed).SprintFunc()
		r.yellow = color.New(color.FgYellow).SprintFunc()
	} else {
		r.green = fmt.Sprint
		r.red = fmt.Sprint
		r.yellow = fmt.Sprint
	}

	return r
}

// Render writes the full report for res. The two names label the columns,
// baseline on the left. It returns the first write error encountered.
func (r *Renderer) Render(baselineName, modifiedName string, res *diff.Result) error {
	r.printf("%-*s %s\n", r.width, baselineName, modifiedName)
	r.printf("%s\n", strings.Repeat("=", r.width*2+1))

	if res.Empty() {
		r.printf("No differences found.\n")

		return r.err
	}

	for _, sec := range res.Sections {
		r.printf("%s\n", sec.Name)
		for _, f := range sec.Entries {
			r.field(1, f)
		}
	}

	r.entities("assets", res.Assets)
	r.entities("layers", res.Layers)

	r.printf("%d addition(s), %d deletion(s), %d modification(s)\n",
		res.Additions, res.Deletions, res.Modifications)

	return r.err
}

func (r *Renderer) entities(noun string, list diff.EntityList) {
	if len(list.Added) > 0 {
		r.printf("%s\n", r.green(fmt.Sprintf("Added %s (%d)", noun, len(list.Added))))
		for _, e := range list.Added {
			r.row(diff.Added, 1, "", e.After)
			r.fields(e.Fields)
		}
	}
	if len(list.Removed) > 0 {
		r.printf("%s\n", r.red(fmt.Sprintf("Removed %s (%d)", noun, len(list.Removed))))
		for _, e := range list.Removed {
			r.row(diff.Removed, 1, e.Before, "")
			r.fields(e.Fields)
		}
	}
	if len(list.Changed) > 0 {
		r.printf("%s\n", r.yellow(fmt.Sprintf("Changed %s (%d)", noun, len(list.Changed))))
		for _, e := range list.Changed {
			r.row(diff.Changed, 1, e.Before, e.After)
			r.fields(e.Fields)
		}
	}
}

func (r *Renderer) fields(fields []diff.FieldDiff) {
	for _, f := range fields {
		r.field(2, f)
	}
}

func (r *Renderer) field(indent int, f diff.FieldDiff) {
	label := func(val string) string {
		if val == "" {
			return ""
		}
		if f.Name == "" {
			return val
		}

		return f.Name + ": " + val
	}
	r.row(f.Kind, indent, label(f.Before), label(f.After))
}

// row writes one two-column line. Padding happens before coloring so ANSI
// escape bytes never skew the column math.
func (r *Renderer) row(kind diff.Kind, indent int, left, right string) {
	pad := strings.Repeat("  ", indent)
	if left != "" {
		left = pad + left
	}
	if right != "" {
		right = pad + right
	}

	line := fmt.Sprintf("%-*s %s", r.width, left, right)
	line = strings.TrimRight(line, " ")

	switch kind {
	case diff.Added:
		line = r.green(line)
	case diff.Removed:
		line = r.red(line)
	case diff.Changed:
		line = r.yellow(line)
	}

	r.printf("%s\n", line)
}

func (r *Renderer) printf(format string, args ...any) {
	if r.err != nil {
		return
	}
	_, r.err = fmt.Fprintf(r.w, format, args...)
}
