package main

import (
	"github.com/spf13/cobra"

	"github.com/gogpu/handfollow/assetlib"
	"github.com/gogpu/handfollow/lift"
)

type liftFlags struct {
	file          string
	threshold     float64
	liftThreshold float64
}

func addLiftFlags(cmd *cobra.Command, f *liftFlags) {
	def := lift.DefaultConfig()
	fl := cmd.Flags()
	fl.StringVar(&f.file, "lift-config", "", "lift tuning file (.yaml, .toml or .json)")
	fl.Float64Var(&f.threshold, "threshold", def.AngleThreshold, "corner angle in degrees")
	fl.Float64Var(&f.liftThreshold, "lift-threshold", def.LiftThreshold, "angle in degrees that needs a lift")
}

// config loads --lift-config, if any, and applies the threshold flags
// given on the command line on top of it.
func (f liftFlags) config(cmd *cobra.Command) (lift.Config, error) {
	cfg := lift.DefaultConfig()
	if f.file != "" {
		var err error
		if cfg, err = assetlib.LoadLiftConfig(f.file); err != nil {
			return lift.Config{}, err
		}
	}
	fl := cmd.Flags()
	if fl.Changed("threshold") {
		cfg.AngleThreshold = f.threshold
	}
	if fl.Changed("lift-threshold") {
		cfg.LiftThreshold = f.liftThreshold
	}
	return cfg, nil
}
