// Package compose places a two-part hand-and-tool sprite so that the
// tool's tip lands on a target point.
//
// The tool is solved tip-first: its origin is derived backwards from the
// target, so the tip stays on target for every angle and scale. The hand
// is then rotated so its grip axis lines up with the tool's socket axis
// and translated so its grip base sits on the tool's socket base in world
// space.
//
// All coordinates are screen pixels with y pointing down; positive
// rotation is clockwise on screen.
package compose
