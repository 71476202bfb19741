package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/walteh/reword/cmd/reword/opts"
	"github.com/walteh/reword/pkg/codec"
	"github.com/walteh/reword/pkg/ingest"
	"github.com/walteh/reword/pkg/status"
)

// NewDetectCmd creates a command that prints the encoding of each input file
func NewDetectCmd(root *opts.RootOpts) *cobra.Command {
	return &cobra.Command{
		Use:   "detect [paths...]",
		Short: "Print the detected encoding of CSV and TSV files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			queue := ingest.NewQueue()
			for _, p := range args {
				files, err := ingest.Collect(ctx, p, ingest.Options{})
				if err != nil {
					return err
				}
				queue.Merge(files...)
			}

			for _, f := range queue.Files() {
				dec := codec.Read(f.Data)
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\n", f.SourcePath, dec.Label(), status.FormatBytes(len(f.Data)))
			}
			return nil
		},
	}
}
