package compose

import (
	"log/slog"
	"math"

	"github.com/gogpu/handfollow"
)

// DefaultJumpThreshold is the angle change between consecutive frames
// above which a Session logs a large jump.
const DefaultJumpThreshold = math.Pi / 2

// Session composes the frames of one animated path. It remembers the
// previous target angle only to log large jumps; the returned
// compositions do not depend on it.
//
// A Session is not safe for concurrent use.
type Session struct {
	// JumpThreshold in radians; zero means DefaultJumpThreshold.
	JumpThreshold float64

	prev    float64
	hasPrev bool
}

// NewSession creates a session with the default jump threshold.
func NewSession() *Session {
	return &Session{JumpThreshold: DefaultJumpThreshold}
}

// Compose is like the package-level Compose and records angle.
func (s *Session) Compose(hand HandAsset, tool ToolAsset, target handfollow.Point, angle, scale float64) (Composition, error) {
	c, err := Compose(hand, tool, target, angle, scale)
	if err != nil {
		return c, err
	}
	threshold := s.JumpThreshold
	if threshold <= 0 {
		threshold = DefaultJumpThreshold
	}
	if s.hasPrev {
		if d := handfollow.AngleDiff(s.prev, angle); math.Abs(d) > threshold {
			handfollow.Logger().Debug("compose: large angle jump",
				slog.Float64("fromDeg", degrees(s.prev)),
				slog.Float64("toDeg", degrees(angle)),
				slog.Float64("deltaDeg", handfollow.Degrees(d)))
		}
	}
	s.prev, s.hasPrev = angle, true
	return c, nil
}

// Reset forgets the previous angle.
func (s *Session) Reset() {
	s.prev, s.hasPrev = 0, false
}

// degrees normalizes a to [0, 360) rounded to hundredths, for logs.
func degrees(a float64) float64 {
	return math.Round(handfollow.Degrees(handfollow.NormalizeAngle(a))*100) / 100
}
