package main

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/walteh/reword/cmd/reword/commands"
	"github.com/walteh/reword/cmd/reword/opts"
	"github.com/walteh/reword/cmd/reword/ui"
)

// newRootCmd wires every subcommand to one set of shared options
func newRootCmd(root *opts.RootOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reword",
		Short: "Batch find-and-replace for CSV and TSV files",
		Long: `reword applies an ordered list of word-aware substitution rules to CSV and TSV
files, preserving each file's encoding and writing changed files as new
numbered versions.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			ctx := setupLogging(root.Debug).WithContext(cmd.Context())
			cmd.SetContext(ctx)
			root.UserLogger = ui.NewUserLoggerTo(ctx, cmd.OutOrStdout())
			return nil
		},
	}

	addRootFlags(cmd, root)

	cmd.AddCommand(
		commands.NewProcessCmd(root),
		commands.NewDetectCmd(root),
		newVersionCmd(),
	)

	return cmd
}

// addRootFlags adds shared flags to the root command
func addRootFlags(cmd *cobra.Command, root *opts.RootOpts) {
	cmd.PersistentFlags().BoolVarP(&root.Debug, "debug", "d", false, "enable debug logging")
}

// setupLogging configures zerolog based on flags
func setupLogging(debug bool) zerolog.Logger {
	level := zerolog.WarnLevel
	if debug {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(level).With().Timestamp().Logger()
}
