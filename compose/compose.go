package compose

import (
	"math"

	"github.com/gogpu/handfollow"
)

// PositionStep is the grid positions are snapped to, in pixels. It keeps
// floating-point noise from accumulating into visible jitter over many
// frames.
const PositionStep = 1e-4

// Composition is the placement of the tool and the hand for one frame.
// Rotations are in radians.
type Composition struct {
	ToolPosition handfollow.Point
	ToolRotation float64
	ToolScale    float64

	HandPosition handfollow.Point
	HandRotation float64
	HandScale    float64

	// FinalTipPosition is where the tool's tip lands, recomputed from the
	// tool placement. It equals the target up to PositionStep.
	FinalTipPosition handfollow.Point

	toolFlip, handFlip   bool
	toolWidth, handWidth float64
}

// Compose places tool and hand so that the tool's tip is at target and
// the tool points along angle (radians, plus the tool's rotation bias).
func Compose(hand HandAsset, tool ToolAsset, target handfollow.Point, angle, scale float64) (Composition, error) {
	if !(scale > 0) || math.IsInf(scale, 0) {
		return Composition{}, ErrInvalidScale
	}
	if err := tool.Validate(); err != nil {
		return Composition{}, err
	}
	if err := hand.Validate(); err != nil {
		return Composition{}, err
	}

	// Tool: solve backwards from the tip.
	toolRot := angle + handfollow.Radians(tool.RotationBias)
	tipOffset := tool.TipAnchor.Mul(scale).Rotate(toolRot)
	toolPos := target.Sub(tipOffset).Round(PositionStep)

	// Hand: align the grip axis with the socket axis, then pin the grip
	// base to the socket base in world space.
	handRot := toolRot - (hand.GripAngle() - tool.SocketAngle()) + handfollow.Radians(hand.TiltBias)
	socket := toolPos.Add(tool.SocketBase.Mul(scale).Rotate(toolRot)).Round(PositionStep)
	handPos := socket.Sub(hand.GripBase.Mul(scale).Rotate(handRot)).Round(PositionStep)

	return Composition{
		ToolPosition:     toolPos,
		ToolRotation:     toolRot,
		ToolScale:        scale,
		HandPosition:     handPos,
		HandRotation:     handRot,
		HandScale:        scale,
		FinalTipPosition: toolPos.Add(tipOffset),
		toolFlip:         tool.Mirrored,
		handFlip:         hand.Mirrored,
		toolWidth:        tool.Width,
		handWidth:        hand.Width,
	}, nil
}

// ToolMatrix maps tool pixel space to world space.
func (c Composition) ToolMatrix() handfollow.Matrix {
	return placement(c.ToolPosition, c.ToolRotation, c.ToolScale)
}

// HandMatrix maps hand pixel space to world space.
func (c Composition) HandMatrix() handfollow.Matrix {
	return placement(c.HandPosition, c.HandRotation, c.HandScale)
}

func placement(pos handfollow.Point, rot, scale float64) handfollow.Matrix {
	return handfollow.Translate(pos.X, pos.Y).
		Multiply(handfollow.Rotate(rot)).
		Multiply(handfollow.Scale(scale, scale))
}

// HandLocal maps a world point into hand pixel space.
func (c Composition) HandLocal(p handfollow.Point) handfollow.Point {
	return p.Sub(c.HandPosition).Rotate(-c.HandRotation).Mul(1 / c.HandScale)
}

// ToolLocal maps a world point into tool pixel space.
func (c Composition) ToolLocal(p handfollow.Point) handfollow.Point {
	return p.Sub(c.ToolPosition).Rotate(-c.ToolRotation).Mul(1 / c.ToolScale)
}
