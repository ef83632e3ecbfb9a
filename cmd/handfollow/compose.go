package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gogpu/handfollow"
	"github.com/gogpu/handfollow/assetlib"
	"github.com/gogpu/handfollow/compose"
	"github.com/gogpu/handfollow/follow"
)

type composeFlags struct {
	library string
	hand    string
	tool    string
	mirror  bool
	x, y    float64
	angle   float64
	scale   float64

	path     string
	progress float64
	matrix   string
	lift     liftFlags
}

type composeReport struct {
	Tip         handfollow.Point `json:"tip"`
	Target      handfollow.Point `json:"target"`
	Angle       float64          `json:"angleDeg"`
	Lift        float64          `json:"lift,omitempty"`
	Composition struct {
		ToolPosition handfollow.Point `json:"toolPosition"`
		ToolRotation float64          `json:"toolRotationDeg"`
		HandPosition handfollow.Point `json:"handPosition"`
		HandRotation float64          `json:"handRotationDeg"`
		Scale        float64          `json:"scale"`
	} `json:"composition"`
	Layers compose.Layers `json:"layers"`
}

func newComposeCmd() *cobra.Command {
	var f composeFlags
	cmd := &cobra.Command{
		Use:   "compose",
		Short: "Place a hand and tool so the tool tip hits a point",
		Long: `Compose a hand and tool from an asset library. The target is either
--x, --y and --angle, or the point at --progress along --path.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runCompose(cmd, f)
		},
	}
	fl := cmd.Flags()
	fl.StringVarP(&f.library, "library", "l", "", "asset library (.yaml, .toml or .json)")
	fl.StringVar(&f.hand, "hand", "", "hand asset name")
	fl.StringVar(&f.tool, "tool", "", "tool asset name")
	fl.BoolVar(&f.mirror, "mirror", false, "mirror the hand")
	fl.Float64Var(&f.x, "x", 0, "target x")
	fl.Float64Var(&f.y, "y", 0, "target y")
	fl.Float64Var(&f.angle, "angle", 0, "target direction in degrees")
	fl.Float64Var(&f.scale, "scale", 1, "sprite scale")
	fl.StringVar(&f.path, "path", "", "path data to follow")
	fl.Float64Var(&f.progress, "progress", 0, "progress along --path in [0, 1]")
	fl.StringVar(&f.matrix, "matrix", "", `transform "a,b,c,d,e,f" for --path`)
	addLiftFlags(cmd, &f.lift)
	_ = cmd.MarkFlagRequired("library")
	_ = cmd.MarkFlagRequired("hand")
	_ = cmd.MarkFlagRequired("tool")
	return cmd
}

func runCompose(cmd *cobra.Command, f composeFlags) error {
	lib, err := assetlib.Load(f.library)
	if err != nil {
		return err
	}
	hand, err := lib.Hand(f.hand, f.mirror)
	if err != nil {
		return err
	}
	tool, err := lib.Tool(f.tool)
	if err != nil {
		return err
	}

	var (
		rep    composeReport
		c      compose.Composition
		target handfollow.Point
		angle  float64
	)
	if f.path != "" {
		m, err := parseMatrix(f.matrix)
		if err != nil {
			return err
		}
		cfg, err := f.lift.config(cmd)
		if err != nil {
			return err
		}
		fw, err := follow.NewFollower(nil, hand, tool,
			follow.WithScale(f.scale), follow.WithLiftConfig(cfg),
			follow.WithClock(handfollow.NewFrameClock(0)))
		if err != nil {
			return err
		}
		if err := fw.SetPath(f.path, toMatrix(m)); err != nil {
			return err
		}
		fr, err := fw.Frame(f.progress)
		if err != nil {
			return err
		}
		c, target, angle, rep.Lift = fr.Composition, fr.Target, fr.Sample.TangentAngle, fr.Height
	} else {
		target, angle = handfollow.Pt(f.x, f.y), handfollow.Radians(f.angle)
		c, err = compose.Compose(hand, tool, target, angle, f.scale)
		if err != nil {
			return fmt.Errorf("compose %s with %s: %w", hand.Name, tool.Name, err)
		}
	}

	rep.Tip = c.FinalTipPosition
	rep.Target = target
	rep.Angle = handfollow.Degrees(angle)
	rep.Composition.ToolPosition = c.ToolPosition
	rep.Composition.ToolRotation = handfollow.Degrees(c.ToolRotation)
	rep.Composition.HandPosition = c.HandPosition
	rep.Composition.HandRotation = handfollow.Degrees(c.HandRotation)
	rep.Composition.Scale = c.ToolScale
	rep.Layers = c.Layers()
	return writeJSON(cmd.OutOrStdout(), rep)
}
