package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/gogpu/handfollow"
)

func newRootCmd() *cobra.Command {
	var verbose bool
	root := &cobra.Command{
		Use:   "handfollow",
		Short: "Measure paths and place a hand-held tool along them",
		Long: `handfollow measures SVG path data by arc length, finds the sharp
corners a pen would lift over, and computes the transforms that put a
tool's tip on a point of the path with a hand gripping it.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			level := slog.LevelWarn
			if verbose {
				level = slog.LevelDebug
			}
			h := slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})
			handfollow.SetLogger(slog.New(h))
		},
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log debug diagnostics to stderr")

	root.AddCommand(
		newMeasureCmd(),
		newSampleCmd(),
		newCornersCmd(),
		newComposeCmd(),
	)
	return root
}
