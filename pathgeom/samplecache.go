package pathgeom

import (
	"encoding/binary"
	"hash/fnv"
	"log/slog"
	"math"

	"github.com/gogpu/handfollow"
	"github.com/gogpu/handfollow/cache"
)

// SampleKey identifies one sample table.
type SampleKey struct {
	PathData       string
	Matrix         handfollow.Matrix
	SampleDistance float64
	MaxSamples     int
	Mode           Mode
}

func hashSampleKey(k SampleKey) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(k.PathData))
	var buf [8]byte
	for _, v := range [...]float64{k.Matrix.A, k.Matrix.B, k.Matrix.C, k.Matrix.D, k.Matrix.E, k.Matrix.F, k.SampleDistance} {
		binary.LittleEndian.PutUint64(buf[:], math.Float64bits(v))
		_, _ = h.Write(buf[:])
	}
	binary.LittleEndian.PutUint64(buf[:], uint64(k.MaxSamples)<<8|uint64(k.Mode))
	_, _ = h.Write(buf[:])
	return h.Sum64()
}

// DefaultSampleCacheCapacity is the per-shard capacity used by
// NewSampleCache when capacity <= 0.
const DefaultSampleCacheCapacity = 64

// SampleCache memoizes sample tables. It is bounded: each shard keeps its
// least recently used tables and evicts the rest. Cached tables are shared
// between callers and must not be modified.
//
// SampleCache is safe for concurrent use.
type SampleCache struct {
	c *cache.ShardedCache[SampleKey, []PathSample]
}

// NewSampleCache creates a cache holding up to capacity tables per shard.
func NewSampleCache(capacity int) *SampleCache {
	if capacity <= 0 {
		capacity = DefaultSampleCacheCapacity
	}
	return &SampleCache{c: cache.NewSharded[SampleKey, []PathSample](capacity, hashSampleKey)}
}

// Get returns the table stored under key.
func (sc *SampleCache) Get(key SampleKey) ([]PathSample, bool) {
	return sc.c.Get(key)
}

// Put stores a table under key.
func (sc *SampleCache) Put(key SampleKey, samples []PathSample) {
	sc.c.Set(key, samples)
}

// Samples returns the cached table for the arguments, measuring with e on a
// miss. Parse errors are returned and not cached.
func (sc *SampleCache) Samples(e *Engine, d string, sampleDistance float64, opts ...MeasureOption) ([]PathSample, error) {
	o := resolveOptions(opts)
	key := SampleKey{
		PathData:       d,
		Matrix:         o.matrix,
		SampleDistance: sampleDistance,
		MaxSamples:     o.maxSamples,
		Mode:           o.mode,
	}
	if s, ok := sc.c.Get(key); ok {
		return s, nil
	}
	s, err := e.Measure(d, sampleDistance, opts...)
	if err != nil {
		return nil, err
	}
	sc.c.Set(key, s)
	handfollow.Logger().Debug("pathgeom: sample table cached",
		slog.Int("samples", len(s)),
		slog.Float64("length", TotalLength(s)),
		slog.String("mode", o.mode.String()))
	return s, nil
}

// Clear drops every table.
func (sc *SampleCache) Clear() {
	sc.c.Clear()
}

// Len returns the number of cached tables.
func (sc *SampleCache) Len() int {
	return sc.c.Len()
}

// Stats returns hit, miss and eviction counters.
func (sc *SampleCache) Stats() cache.Stats {
	return sc.c.Stats()
}
