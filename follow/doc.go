// Package follow drives a hand and tool along a measured path.
//
// A Follower owns everything one animated path needs between frames: the
// sample table, its corners, the running timed lift and the clock that
// times it. Each call to Frame turns a progress value into a sample, a
// lift and a three-layer composition ready for a renderer.
//
//	f, _ := follow.NewFollower(nil, hand, tool, follow.WithClock(clock))
//	_ = f.SetPath("M10,10 C40,0 60,80 90,40", handfollow.Identity())
//	for frame := 0; frame <= 120; frame++ {
//		fr, _ := f.Frame(float64(frame) / 120)
//		draw(fr.Layers)
//		clock.Advance(1)
//	}
package follow
