package compose

import (
	"fmt"

	"github.com/gogpu/handfollow"
)

// ToolAsset describes a tool sprite, such as a pen, in its own pixel space.
type ToolAsset struct {
	Name   string  `json:"name" yaml:"name" toml:"name"`
	Width  float64 `json:"width" yaml:"width" toml:"width"`
	Height float64 `json:"height" yaml:"height" toml:"height"`

	// SocketBase and SocketForward define the axis the hand holds.
	SocketBase    handfollow.Point `json:"socketBase" yaml:"socketBase" toml:"socketBase"`
	SocketForward handfollow.Point `json:"socketForward" yaml:"socketForward" toml:"socketForward"`
	// TipAnchor is the working point placed on the target.
	TipAnchor handfollow.Point `json:"tipAnchor" yaml:"tipAnchor" toml:"tipAnchor"`

	// RotationBias corrects artwork drawn off-axis, in degrees.
	RotationBias float64 `json:"rotationBias,omitempty" yaml:"rotationBias,omitempty" toml:"rotationBias,omitempty"`

	Mirrorable bool `json:"mirrorable,omitempty" yaml:"mirrorable,omitempty" toml:"mirrorable,omitempty"`
	// Mirrored is set on assets produced by MirrorTool; the renderer
	// flips the source image horizontally.
	Mirrored bool `json:"mirrored,omitempty" yaml:"mirrored,omitempty" toml:"mirrored,omitempty"`
}

// HandAsset describes a hand sprite in its own pixel space.
type HandAsset struct {
	Name   string  `json:"name" yaml:"name" toml:"name"`
	Width  float64 `json:"width" yaml:"width" toml:"width"`
	Height float64 `json:"height" yaml:"height" toml:"height"`

	// GripBase and GripForward define the axis along which the hand
	// holds a tool.
	GripBase    handfollow.Point `json:"gripBase" yaml:"gripBase" toml:"gripBase"`
	GripForward handfollow.Point `json:"gripForward" yaml:"gripForward" toml:"gripForward"`

	// TiltBias is a natural tilt added to the hand, in degrees.
	TiltBias float64 `json:"tiltBias,omitempty" yaml:"tiltBias,omitempty" toml:"tiltBias,omitempty"`

	Mirrorable bool `json:"mirrorable,omitempty" yaml:"mirrorable,omitempty" toml:"mirrorable,omitempty"`
	Mirrored   bool `json:"mirrored,omitempty" yaml:"mirrored,omitempty" toml:"mirrored,omitempty"`
}

// SocketAngle returns the direction of the socket axis in tool space.
func (t ToolAsset) SocketAngle() float64 {
	return t.SocketForward.Sub(t.SocketBase).Angle()
}

// Validate checks that the socket axis is defined.
func (t ToolAsset) Validate() error {
	if t.SocketBase == t.SocketForward {
		return fmt.Errorf("tool %q: %w", t.Name, ErrDegenerateAxis)
	}
	return nil
}

// GripAngle returns the direction of the grip axis in hand space.
func (h HandAsset) GripAngle() float64 {
	return h.GripForward.Sub(h.GripBase).Angle()
}

// Validate checks that the grip axis is defined.
func (h HandAsset) Validate() error {
	if h.GripBase == h.GripForward {
		return fmt.Errorf("hand %q: %w", h.Name, ErrDegenerateAxis)
	}
	return nil
}
