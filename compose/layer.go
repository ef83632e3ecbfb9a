package compose

import (
	"golang.org/x/image/math/f64"

	"github.com/gogpu/handfollow"
)

// LayerTransform positions one source image: scale first, then rotate,
// then translate to (X, Y). A negative ScaleX flips the image.
type LayerTransform struct {
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Rotation float64 `json:"rotation"` // radians
	ScaleX   float64 `json:"scaleX"`
	ScaleY   float64 `json:"scaleY"`
}

// Matrix returns the transform as an affine matrix.
func (l LayerTransform) Matrix() handfollow.Matrix {
	return handfollow.Translate(l.X, l.Y).
		Multiply(handfollow.Rotate(l.Rotation)).
		Multiply(handfollow.Scale(l.ScaleX, l.ScaleY))
}

// Aff3 returns the transform in the layout used by golang.org/x/image.
func (l LayerTransform) Aff3() f64.Aff3 {
	return l.Matrix().Aff3()
}

// RotationDegrees returns Rotation in degrees.
func (l LayerTransform) RotationDegrees() float64 {
	return handfollow.Degrees(l.Rotation)
}

// Layers holds the transforms of the three stacked images of a frame.
type Layers struct {
	HandBackground LayerTransform `json:"handBackground"`
	Tool           LayerTransform `json:"tool"`
	HandForeground LayerTransform `json:"handForeground"`
}

// Ordered returns the layers bottom to top.
func (l Layers) Ordered() [3]LayerTransform {
	return [3]LayerTransform{l.HandBackground, l.Tool, l.HandForeground}
}

// layer builds the transform of an unflipped source image drawn so that
// its pixels land where the composition's asset pixels do. A mirrored
// asset's anchors refer to the flipped image, so the source is drawn
// with a negative x scale from its right edge.
func layer(pos handfollow.Point, rot, scale float64, flip bool, width float64) LayerTransform {
	l := LayerTransform{X: pos.X, Y: pos.Y, Rotation: rot, ScaleX: scale, ScaleY: scale}
	if flip {
		edge := pos.Add(handfollow.Pt(scale*width, 0).Rotate(rot))
		l.X, l.Y, l.ScaleX = edge.X, edge.Y, -scale
	}
	return l
}

// Layers returns the image transforms of the composition. Both hand
// layers share the hand placement; the tool layer sits between them.
func (c Composition) Layers() Layers {
	hand := layer(c.HandPosition, c.HandRotation, c.HandScale, c.handFlip, c.handWidth)
	return Layers{
		HandBackground: hand,
		Tool:           layer(c.ToolPosition, c.ToolRotation, c.ToolScale, c.toolFlip, c.toolWidth),
		HandForeground: hand,
	}
}
