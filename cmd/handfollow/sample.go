package main

import (
	"github.com/spf13/cobra"

	"github.com/gogpu/handfollow/pathgeom"
)

type sampleFlags struct {
	distance float64
	mode     string
	max      int
	matrix   string
	at       float64
}

func (f sampleFlags) measure(d string) ([]pathgeom.PathSample, error) {
	mode, err := pathgeom.ParseMode(f.mode)
	if err != nil {
		return nil, err
	}
	m, err := parseMatrix(f.matrix)
	if err != nil {
		return nil, err
	}
	return pathgeom.NewEngine().Measure(d, f.distance,
		pathgeom.WithMatrix(toMatrix(m)),
		pathgeom.WithMode(mode),
		pathgeom.WithMaxSamples(f.max))
}

func addSampleFlags(cmd *cobra.Command, f *sampleFlags) {
	fl := cmd.Flags()
	fl.Float64VarP(&f.distance, "distance", "d", pathgeom.DefaultSampleDistance, "sample spacing in pixels (uniform mode)")
	fl.StringVar(&f.mode, "mode", "uniform", "sampling mode: uniform, preview or export")
	fl.IntVar(&f.max, "max", pathgeom.DefaultMaxSamples, "maximum number of samples")
	fl.StringVar(&f.matrix, "matrix", "", `transform "a,b,c,d,e,f"`)
}

func newSampleCmd() *cobra.Command {
	var f sampleFlags
	cmd := &cobra.Command{
		Use:   "sample <path-data>",
		Short: "Print the arc-length sample table of a path",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			samples, err := f.measure(args[0])
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("at") {
				return writeJSON(cmd.OutOrStdout(), pathgeom.PointAtProgress(samples, f.at))
			}
			return writeJSON(cmd.OutOrStdout(), samples)
		},
	}
	addSampleFlags(cmd, &f)
	cmd.Flags().Float64Var(&f.at, "at", 0, "print only the point at this progress in [0, 1]")
	return cmd
}
