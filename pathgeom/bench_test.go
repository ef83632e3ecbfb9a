package pathgeom

import (
	"testing"

	"github.com/gogpu/handfollow"
)

const benchPath = "M10,80 C40,10 65,10 95,80 S150,150 180,80 Q220,20 260,80 T340,80 " +
	"A45,30 -20 0 1 420,120 L460,40 H520 V140 Z"

func BenchmarkMeasureUniform(b *testing.B) {
	e := NewEngine()
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := e.Measure(benchPath, 2); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkMeasurePreview(b *testing.B) {
	e := NewEngine()
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := e.Measure(benchPath, 0, WithMode(ModePreview)); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkPathLength(b *testing.B) {
	e := NewEngine()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := e.PathLength(benchPath, handfollow.Identity()); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkSampleCacheHit(b *testing.B) {
	e := NewEngine()
	sc := NewSampleCache(0)
	if _, err := sc.Samples(e, benchPath, 2); err != nil {
		b.Fatal(err)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		sc.Samples(e, benchPath, 2)
	}
}

func BenchmarkPointAtProgress(b *testing.B) {
	samples, err := NewEngine().Measure(benchPath, 2)
	if err != nil {
		b.Fatal(err)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		PointAtProgress(samples, float64(i%1000)/1000)
	}
}
