package compose

import (
	"testing"

	"github.com/gogpu/handfollow"
)

func BenchmarkCompose(b *testing.B) {
	target := handfollow.Pt(320, 240)
	for i := 0; i < b.N; i++ {
		c, _ := Compose(rightHand, brush, target, float64(i%360)*0.0174533, 1.25)
		_ = c.Layers()
	}
}
