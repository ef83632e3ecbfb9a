// Package handfollow provides the geometry primitives of the hand-follower
// engine used by whiteboard animations.
//
// # Overview
//
// A whiteboard animation reveals a drawing stroke by stroke while a hand
// holding a pen (or marker, brush...) follows the stroke being drawn. The
// engine turns vector path data into an arc-length parameterized sample
// table, places the tool sprite so that its tip sits exactly on the current
// point of the path, places the hand sprite so that it grips the tool, and
// lifts the pen over sharp corners.
//
// This package holds the shared primitives: [Point], [Matrix], Bézier
// curves with adaptive length measurement, angle helpers and the logical
// [Clock]. The work is done by the sub-packages:
//
//   - pathgeom: path mini-language parsing, length and sampling
//   - measure: batched measurement on a worker goroutine with cancellation
//   - compose: rigid tool/hand placement
//   - lift: corner detection and timed pen lifts
//   - follow: a per-path session tying the above together
//   - assetlib: loading tool and hand descriptors from YAML, TOML or JSON
//
// # Coordinate System
//
// Uses screen coordinates:
//   - Origin (0,0) at top-left
//   - X increases right
//   - Y increases down
//   - Angles in radians, 0 points along +X, positive angles turn toward +Y
//
// Sprite anchors are given in the asset's own pixel space with the origin
// at the image's top-left corner.
package handfollow
