// Package diff reconciles two decoded HIP packages into a categorized
// structural diff.
//
// Three passes run in a fixed order: metadata sections, then assets, then
// layers. Assets are matched by their stable numeric ID, so reordering the
// asset table never shows up as a change. Layers carry no persistent
// identity in the format, so they are matched positionally within per-type
// groups; same-type reordering or mid-group insertion is therefore reported
// as a chain of per-field changes rather than a move. That blind spot is a
// deliberate property of the format, not something this package tries to
// out-guess.
//
// The asset pass runs before the layer pass because layer membership lines
// are suppressed for assets that were themselves added or removed; those
// are already reported once, in the asset diff.
package diff

import (
	"fmt"

	"github.com/arloliu/hipdiff/hip"
)

// Options selects what the diff compares and how much detail it emits.
type Options struct {
	// AssetsOnly skips the metadata sections and the layer diff entirely.
	AssetsOnly bool

	// Detailed emits field-level sub-diffs for assets; without it asset
	// entries carry display labels only.
	Detailed bool

	// TrustChecksums compares stored debug checksums instead of payload
	// bytes; payloads are never read in this mode.
	TrustChecksums bool

	// IncludeOffsets treats payload offset differences as changes. Offsets
	// shift whenever earlier assets resize, so this is off by default.
	IncludeOffsets bool

	// IncludePluses treats differences of the opaque plus field as changes.
	IncludePluses bool
}

// Diff compares a baseline and a modified package.
//
// It is a pure function: both packages are read-only inputs and the returned
// Result owns all of its slices. It never fails on decoded packages; any
// matched pair with inconsistent identity would be a decoder or matcher bug
// and panics rather than surfacing as a diff entry.
func Diff(baseline, modified *hip.Package, opts Options) *Result {
	res := &Result{}

	if !opts.AssetsOnly {
		res.Sections = diffMetadata(baseline, modified)
		for _, sec := range res.Sections {
			for _, e := range sec.Entries {
				res.count(e.Kind, 1)
			}
		}
	}

	addedIDs, removedIDs := diffAssets(res, baseline, modified, opts)

	if !opts.AssetsOnly {
		diffLayers(res, baseline, modified, addedIDs, removedIDs)
	}

	return res
}

func (r *Result) count(kind Kind, n int) {
	switch kind {
	case Added:
		r.Additions += n
	case Removed:
		r.Deletions += n
	case Changed:
		r.Modifications += n
	}
}

// Display formatting shared by the passes. The hex widths follow the
// conventions of the tools that write these archives.

func hexVal(v uint32) string {
	return fmt.Sprintf("0x%X", v)
}

func hex8Val(v uint32) string {
	return fmt.Sprintf("0x%08X", v)
}

func decVal(v uint32) string {
	return fmt.Sprintf("%d", v)
}

func quoted(s string) string {
	return fmt.Sprintf("%q", s)
}

func fieldChanged(name, before, after string) FieldDiff {
	return FieldDiff{Kind: Changed, Name: name, Before: before, After: after}
}

func fieldAdded(name, after string) FieldDiff {
	return FieldDiff{Kind: Added, Name: name, After: after}
}

func fieldRemoved(name, before string) FieldDiff {
	return FieldDiff{Kind: Removed, Name: name, Before: before}
}
