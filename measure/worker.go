package measure

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/gogpu/handfollow"
	"github.com/gogpu/handfollow/cache"
	"github.com/gogpu/handfollow/internal/parallel"
	"github.com/gogpu/handfollow/pathgeom"
)

// hooks are test seams called from the worker's goroutines.
type hooks struct {
	// beforeItem runs before the abort check of every item.
	beforeItem func(id uint64, index int)
	// aborted runs after the abort flag of a live request is set.
	aborted func(id uint64)
}

// job is one measure request owned by the worker.
type job struct {
	id      uint64
	items   []Item
	aborted bool // guarded by Worker.mu
}

// Worker measures batches on its own goroutines. It receives Requests
// through Post and answers on Responses.
//
// A Worker that panics stops for good: Done is closed and Err reports
// ErrWorkerFailed.
type Worker struct {
	opts   options
	engine *pathgeom.Engine
	clock  handfollow.Clock
	tokens *cache.Cache[string, []pathgeom.Token]
	pool   *parallel.WorkerPool
	hooks  hooks

	in   chan Request
	out  chan Response
	done chan struct{}
	once sync.Once

	mu   sync.Mutex
	jobs map[uint64]*job
	err  error
}

// NewWorker starts a worker.
func NewWorker(opts ...Option) *Worker {
	return newWorker(hooks{}, opts...)
}

func newWorker(h hooks, opts ...Option) *Worker {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	w := &Worker{
		opts:   o,
		engine: o.engine,
		clock:  o.clock,
		tokens: cache.New[string, []pathgeom.Token](o.tokenCache),
		hooks:  h,
		in:     make(chan Request),
		out:    make(chan Response),
		done:   make(chan struct{}),
		jobs:   make(map[uint64]*job),
	}
	if w.engine == nil {
		w.engine = pathgeom.NewEngine()
	}
	if w.clock == nil {
		w.clock = handfollow.NewWallClock()
	}
	w.pool = parallel.NewWorkerPool(o.concurrency,
		parallel.WithPanicHandler(w.crash),
		parallel.WithQueueSize(64))

	go w.run()
	handfollow.Logger().Info("measure: worker started",
		slog.Int("concurrency", o.concurrency),
		slog.Int("tokenCache", o.tokenCache))
	return w
}

// Post sends a request to the worker. It fails with Err once the worker
// has stopped.
func (w *Worker) Post(req Request) error {
	select {
	case w.in <- req:
		return nil
	case <-w.done:
		return w.Err()
	}
}

// Responses returns the channel carrying progress, result and abort-ack
// messages. It must be drained for the worker to make progress.
func (w *Worker) Responses() <-chan Response {
	return w.out
}

// Done is closed when the worker stops.
func (w *Worker) Done() <-chan struct{} {
	return w.done
}

// Err returns why the worker stopped, or nil while it runs.
func (w *Worker) Err() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.err
}

// TokenCacheStats returns the statistics of the tokenization cache.
func (w *Worker) TokenCacheStats() cache.Stats {
	return w.tokens.Stats()
}

// Close stops the worker. Requests still in flight get no answer.
func (w *Worker) Close() error {
	if w.stop(ErrClosed) {
		handfollow.Logger().Info("measure: worker closed")
	}
	w.pool.Close()
	return nil
}

func (w *Worker) stop(err error) bool {
	stopped := false
	w.once.Do(func() {
		w.mu.Lock()
		w.err = err
		w.mu.Unlock()
		close(w.done)
		stopped = true
	})
	return stopped
}

// crash tears the worker down after a panic. It may run on a pool
// goroutine, so the pool is closed asynchronously.
func (w *Worker) crash(v any) {
	err := fmt.Errorf("%w: %v", ErrWorkerFailed, v)
	if w.stop(err) {
		handfollow.Logger().Warn("measure: worker crashed", slog.Any("panic", v))
		go w.pool.Close()
	}
}

func (w *Worker) run() {
	defer func() {
		if v := recover(); v != nil {
			w.crash(v)
		}
	}()
	for {
		select {
		case <-w.done:
			return
		case req := <-w.in:
			w.handle(req)
		}
	}
}

func (w *Worker) handle(req Request) {
	switch req.Type {
	case TypeMeasure:
		j := &job{id: req.ID, items: req.Items}
		w.mu.Lock()
		w.jobs[req.ID] = j
		w.mu.Unlock()
		w.pool.Submit(func() { w.measure(j) })

	case TypeAbort:
		w.mu.Lock()
		j, ok := w.jobs[req.ID]
		if ok {
			j.aborted = true
		}
		w.mu.Unlock()
		if !ok {
			// Already answered.
			handfollow.Logger().Debug("measure: abort for finished request", slog.Uint64("id", req.ID))
			return
		}
		if w.hooks.aborted != nil {
			w.hooks.aborted(req.ID)
		}

	default:
		handfollow.Logger().Warn("measure: unexpected message",
			slog.Uint64("id", req.ID), slog.String("type", string(req.Type)))
	}
}

// send delivers a response unless the worker stops first.
func (w *Worker) send(r Response) bool {
	select {
	case w.out <- r:
		return true
	case <-w.done:
		return false
	}
}

func (w *Worker) alive() bool {
	select {
	case <-w.done:
		return false
	default:
		return true
	}
}

// finish removes j from the job table and reports whether it was aborted.
func (w *Worker) finish(j *job) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	delete(w.jobs, j.id)
	return j.aborted
}

func (w *Worker) aborted(j *job) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return j.aborted
}

func (w *Worker) measure(j *job) {
	var (
		n        = len(j.items)
		lens     = make([]float64, n)
		errs     []ItemError
		total    float64
		lastSent time.Duration
		sent     bool
	)
	for i, it := range j.items {
		if w.hooks.beforeItem != nil {
			w.hooks.beforeItem(j.id, i)
		}
		if !w.alive() {
			return
		}
		if w.aborted(j) {
			break
		}

		l, err := w.measureItem(it)
		if err != nil {
			errs = append(errs, ItemError{Index: i, Message: err.Error()})
			handfollow.Logger().Warn("measure: item failed",
				slog.Uint64("id", j.id), slog.Int("index", i), slog.String("err", err.Error()))
		} else {
			lens[i] = l
			total += l
		}

		if now := w.clock.Now(); !sent || now-lastSent >= w.opts.interval {
			if !w.send(Response{ID: j.id, Type: TypeProgress, Done: i + 1, Count: n}) {
				return
			}
			sent, lastSent = true, now
		}
	}

	if w.finish(j) {
		handfollow.Logger().Debug("measure: request aborted", slog.Uint64("id", j.id))
		w.send(Response{ID: j.id, Type: TypeAbortAck})
		return
	}
	w.send(Response{ID: j.id, Type: TypeResult, Lens: lens, Total: total, Errors: errs})
}

func (w *Worker) measureItem(it Item) (float64, error) {
	m, err := it.matrix()
	if err != nil {
		return 0, err
	}
	toks, err := w.tokenize(it.PathData)
	if err != nil {
		return 0, err
	}
	return w.engine.TokensLength(toks, m)
}

// tokenize returns cached tokens for d. Failures are not cached.
func (w *Worker) tokenize(d string) ([]pathgeom.Token, error) {
	if toks, ok := w.tokens.Get(d); ok {
		return toks, nil
	}
	toks, err := pathgeom.Tokenize(d)
	if err != nil {
		return nil, err
	}
	w.tokens.Set(d, toks)
	return toks, nil
}
