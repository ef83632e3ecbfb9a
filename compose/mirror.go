package compose

import (
	"fmt"

	"github.com/gogpu/handfollow"
)

func mirrorX(p handfollow.Point, width float64) handfollow.Point {
	return handfollow.Pt(width-p.X, p.Y)
}

// MirrorHand reflects the hand's anchors about its pixel width and negates
// its tilt bias. Mirroring twice restores the original.
func MirrorHand(h HandAsset) (HandAsset, error) {
	if !h.Mirrorable {
		return HandAsset{}, fmt.Errorf("hand %q: %w", h.Name, ErrNotMirrorable)
	}
	h.GripBase = mirrorX(h.GripBase, h.Width)
	h.GripForward = mirrorX(h.GripForward, h.Width)
	h.TiltBias = -h.TiltBias
	h.Mirrored = !h.Mirrored
	return h, nil
}

// MirrorTool reflects the tool's anchors about its pixel width and negates
// its rotation bias.
func MirrorTool(t ToolAsset) (ToolAsset, error) {
	if !t.Mirrorable {
		return ToolAsset{}, fmt.Errorf("tool %q: %w", t.Name, ErrNotMirrorable)
	}
	t.SocketBase = mirrorX(t.SocketBase, t.Width)
	t.SocketForward = mirrorX(t.SocketForward, t.Width)
	t.TipAnchor = mirrorX(t.TipAnchor, t.Width)
	t.RotationBias = -t.RotationBias
	t.Mirrored = !t.Mirrored
	return t, nil
}

// MustMirrorHand is like MirrorHand but panics if the hand is not
// mirrorable.
func MustMirrorHand(h HandAsset) HandAsset {
	m, err := MirrorHand(h)
	if err != nil {
		panic(err)
	}
	return m
}

// MustMirrorTool is like MirrorTool but panics if the tool is not
// mirrorable.
func MustMirrorTool(t ToolAsset) ToolAsset {
	m, err := MirrorTool(t)
	if err != nil {
		panic(err)
	}
	return m
}
