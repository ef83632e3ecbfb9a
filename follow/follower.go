package follow

import (
	"errors"
	"log/slog"
	"math"
	"time"

	"github.com/gogpu/handfollow"
	"github.com/gogpu/handfollow/compose"
	"github.com/gogpu/handfollow/lift"
	"github.com/gogpu/handfollow/pathgeom"
)

// ErrNoPath is returned by Frame before a path is set.
var ErrNoPath = errors.New("follow: no path set")

// Frame is one rendered instant of a follower.
type Frame struct {
	Progress float64
	Sample   pathgeom.PathSample

	// Lift is the progress-driven envelope at this sample.
	Lift lift.State
	// Timed is the running timed lift, nil when none is active.
	Timed *lift.Frame
	// Height is the lift applied: the larger of the envelope and the
	// timed lift.
	Height float64

	// Target and Scale are the sample position and sprite scale after the
	// lift was applied.
	Target handfollow.Point
	Scale  float64

	Composition compose.Composition
	Layers      compose.Layers
}

// Follower animates a hand and tool along one path.
//
// A Follower is not safe for concurrent use.
type Follower struct {
	engine *pathgeom.Engine
	cache  *pathgeom.SampleCache
	clock  handfollow.Clock

	cfg      lift.Config
	scale    float64
	mode     pathgeom.Mode
	distance float64

	hand    compose.HandAsset
	tool    compose.ToolAsset
	session *compose.Session

	samples []pathgeom.PathSample
	corners []lift.CornerInfo

	active *lift.Animation
	// fired is the sample index of the corner whose timed lift last
	// started, -1 if none.
	fired int
}

// NewFollower creates a follower for a hand holding a tool. A nil engine
// uses pathgeom.NewEngine.
func NewFollower(engine *pathgeom.Engine, hand compose.HandAsset, tool compose.ToolAsset, opts ...Option) (*Follower, error) {
	if err := hand.Validate(); err != nil {
		return nil, err
	}
	if err := tool.Validate(); err != nil {
		return nil, err
	}
	if engine == nil {
		engine = pathgeom.NewEngine()
	}
	f := &Follower{
		engine:   engine,
		clock:    handfollow.NewWallClock(),
		cfg:      lift.DefaultConfig(),
		scale:    1,
		distance: DefaultSampleDistance,
		hand:     hand,
		tool:     tool,
		session:  compose.NewSession(),
		fired:    -1,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f, nil
}

// SetPath measures path data under m and makes it the followed path. On
// error the previous path is kept.
func (f *Follower) SetPath(d string, m handfollow.Matrix) error {
	opts := []pathgeom.MeasureOption{pathgeom.WithMatrix(m), pathgeom.WithMode(f.mode)}
	var (
		samples []pathgeom.PathSample
		err     error
	)
	if f.cache != nil {
		samples, err = f.cache.Samples(f.engine, d, f.distance, opts...)
	} else {
		samples, err = f.engine.Measure(d, f.distance, opts...)
	}
	if err != nil {
		return err
	}
	f.SetSamples(samples)
	return nil
}

// SetSamples follows an already measured table.
func (f *Follower) SetSamples(samples []pathgeom.PathSample) {
	f.samples = samples
	f.corners = lift.DetectCorners(samples, f.cfg)
	f.active = nil
	f.fired = -1
	f.session.Reset()
	handfollow.Logger().Debug("follow: path set",
		slog.Int("samples", len(samples)),
		slog.Int("corners", len(f.corners)),
		slog.Float64("length", pathgeom.TotalLength(samples)))
}

// Samples returns the current sample table.
func (f *Follower) Samples() []pathgeom.PathSample { return f.samples }

// Corners returns the corners of the current path.
func (f *Follower) Corners() []lift.CornerInfo { return f.corners }

// Lifting reports whether a timed lift is running.
func (f *Follower) Lifting() bool {
	return f.active != nil && !f.active.Done(f.clock.Now())
}

// Frame computes the frame at progress t in [0, 1].
func (f *Follower) Frame(t float64) (Frame, error) {
	if len(f.samples) == 0 {
		return Frame{}, ErrNoPath
	}
	s := pathgeom.PointAtProgress(f.samples, t)
	st := lift.StateAt(t, f.samples, f.corners, f.cfg)
	now := f.clock.Now()

	f.trigger(pathgeom.IndexAtProgress(f.samples, t), s, now)

	fr := Frame{Progress: t, Sample: s, Lift: st, Height: st.Height}
	if f.active != nil {
		af := f.active.At(now)
		fr.Timed = &af
		fr.Height = math.Max(fr.Height, af.Height)
	}
	fr.Target, fr.Scale = f.cfg.Perturb(s.Point(), f.scale, fr.Height)

	c, err := f.session.Compose(f.hand, f.tool, fr.Target, s.TangentAngle, fr.Scale)
	if err != nil {
		return Frame{}, err
	}
	fr.Composition = c
	fr.Layers = c.Layers()
	return fr, nil
}

// trigger retires a finished timed lift and starts one when idx enters the
// lift window of a corner that needs it. Each corner fires once until
// playback moves back before its window.
func (f *Follower) trigger(idx float64, s pathgeom.PathSample, now time.Duration) {
	if f.active != nil && f.active.Done(now) {
		f.active = nil
	}
	w := f.cfg.Window()
	if f.fired >= 0 && idx < float64(f.fired-w) {
		f.fired = -1
	}
	if f.active != nil {
		return
	}
	for _, c := range f.corners {
		if !c.NeedsLift || c.SampleIndex == f.fired {
			continue
		}
		start := float64(c.SampleIndex - w)
		if idx < start || idx > float64(c.SampleIndex) {
			continue
		}
		end := min(c.SampleIndex+f.cfg.Settle, len(f.samples)-1)
		f.active = lift.NewAnimation(f.clock, s.Point(), f.samples[end].Point(),
			f.cfg.LiftHeight*c.Sharpness, time.Duration(f.cfg.Duration))
		f.fired = c.SampleIndex
		handfollow.Logger().Debug("follow: lift started",
			slog.Int("corner", c.SampleIndex),
			slog.Float64("angleDeg", handfollow.Degrees(c.AngleChange)),
			slog.Duration("at", now))
		return
	}
}
