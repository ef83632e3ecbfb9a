package measure

import (
	"time"

	"github.com/gogpu/handfollow"
	"github.com/gogpu/handfollow/pathgeom"
)

const (
	// DefaultProgressInterval is the minimum time between progress
	// messages of one batch.
	DefaultProgressInterval = 120 * time.Millisecond

	// DefaultTokenCacheSize bounds the worker's tokenization cache.
	DefaultTokenCacheSize = 5000
)

type options struct {
	interval    time.Duration
	tokenCache  int
	concurrency int
	clock       handfollow.Clock
	engine      *pathgeom.Engine
}

func defaultOptions() options {
	return options{
		interval:    DefaultProgressInterval,
		tokenCache:  DefaultTokenCacheSize,
		concurrency: 1,
	}
}

// Option configures a Worker, or every worker a Client starts.
type Option func(*options)

// WithProgressInterval sets the progress throttle. Zero sends progress
// after every item.
func WithProgressInterval(d time.Duration) Option {
	return func(o *options) {
		if d >= 0 {
			o.interval = d
		}
	}
}

// WithTokenCache sets the capacity of the tokenization cache.
func WithTokenCache(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.tokenCache = n
		}
	}
}

// WithConcurrency sets how many batches a worker measures at once.
// The default of 1 measures batches in the order they arrive.
func WithConcurrency(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.concurrency = n
		}
	}
}

// WithClock sets the time source of the progress throttle.
func WithClock(c handfollow.Clock) Option {
	return func(o *options) {
		o.clock = c
	}
}

// WithEngine sets the engine used to measure items.
func WithEngine(e *pathgeom.Engine) Option {
	return func(o *options) {
		o.engine = e
	}
}
