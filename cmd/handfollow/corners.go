package main

import (
	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/gogpu/handfollow"
	"github.com/gogpu/handfollow/lift"
)

func newCornersCmd() *cobra.Command {
	var (
		f  sampleFlags
		lf liftFlags
	)
	cmd := &cobra.Command{
		Use:   "corners <path-data>",
		Short: "List the sharp corners of a path",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := lf.config(cmd)
			if err != nil {
				return err
			}
			samples, err := f.measure(args[0])
			if err != nil {
				return err
			}
			corners := lift.DetectCorners(samples, cfg)
			p := message.NewPrinter(language.English)
			w := cmd.OutOrStdout()
			for _, c := range corners {
				s := samples[c.SampleIndex]
				p.Fprintf(w, "sample %d at (%.1f, %.1f): %.1f°, sharpness %.2f",
					c.SampleIndex, s.X, s.Y, handfollow.Degrees(c.AngleChange), c.Sharpness)
				if c.NeedsLift {
					p.Fprintf(w, ", lift")
				}
				p.Fprintln(w)
			}
			p.Fprintf(w, "%d corners\n", len(corners))
			return nil
		},
	}
	addSampleFlags(cmd, &f)
	addLiftFlags(cmd, &lf)
	return cmd
}
