// Command hipdiff compares two HIP archives and prints a two-column report
// of every structural difference: header metadata, asset directory entries,
// payload data and layer composition.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/arloliu/hipdiff"
	"github.com/arloliu/hipdiff/diff"
	"github.com/arloliu/hipdiff/hip"
	"github.com/arloliu/hipdiff/render"
)

const version = "1.0.0"

type flags struct {
	assetsOnly     bool
	detailed       bool
	trustChecksums bool
	offsets        bool
	pluses         bool
	width          int
	noColor        bool
	trace          bool
}

func newRootCmd() *cobra.Command {
	f := &flags{}

	cmd := &cobra.Command{
		Use:   "hipdiff <baseline> <modified>",
		Short: "Structurally compare two HIP archives",
		Long: `hipdiff decodes two HIP archives and reports their differences:
header metadata scalar by scalar, assets matched by ID, and layers matched
positionally within per-type groups. Compressed archive files (zstd, S2,
LZ4) are unwrapped transparently.`,
		Version: version,
		Args:    cobra.ExactArgs(2),
		// Runtime failures are not usage errors; keep the usage text out of
		// their output.
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, args[0], args[1], f)
		},
	}

	cmd.Flags().BoolVarP(&f.assetsOnly, "assets-only", "a", false, "compare asset entries only, skip metadata and layers")
	cmd.Flags().BoolVarP(&f.detailed, "detailed", "d", false, "list field-level differences for changed assets")
	cmd.Flags().BoolVarP(&f.trustChecksums, "trust-checksums", "c", false, "compare stored checksums instead of payload bytes")
	cmd.Flags().BoolVarP(&f.offsets, "offsets", "o", false, "report payload offset differences")
	cmd.Flags().BoolVarP(&f.pluses, "pluses", "p", false, "report plus field differences")
	cmd.Flags().IntVarP(&f.width, "width", "w", render.DefaultWidth, "column width of the report")
	cmd.Flags().BoolVar(&f.noColor, "no-color", false, "disable ANSI colors")
	cmd.Flags().BoolVar(&f.trace, "trace", false, "log every decoded chunk to stderr")

	return cmd
}

func run(cmd *cobra.Command, baselinePath, modifiedPath string, f *flags) error {
	var decodeOpts []hip.DecoderOption
	if f.trace {
		logger, err := zap.NewDevelopment()
		if err != nil {
			return fmt.Errorf("create trace logger: %w", err)
		}
		defer logger.Sync() //nolint:errcheck
		decodeOpts = append(decodeOpts, hip.WithTraceLogger(logger))
	}

	baseline, err := hipdiff.Load(baselinePath, decodeOpts...)
	if err != nil {
		return err
	}
	modified, err := hipdiff.Load(modifiedPath, decodeOpts...)
	if err != nil {
		return err
	}

	result := hipdiff.Compare(baseline, modified, diff.Options{
		AssetsOnly:     f.assetsOnly,
		Detailed:       f.detailed,
		TrustChecksums: f.trustChecksums,
		IncludeOffsets: f.offsets,
		IncludePluses:  f.pluses,
	})

	r := render.New(cmd.OutOrStdout(), render.Options{
		Width: f.width,
		Color: !f.noColor,
	})

	return r.Render(baselinePath, modifiedPath, result)
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
