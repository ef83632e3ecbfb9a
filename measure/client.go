package measure

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/gogpu/handfollow"
)

// Progress reports how many items of a batch have been measured.
type Progress struct {
	ID    uint64
	Done  int
	Count int
}

// BatchResult is the outcome of a completed batch.
type BatchResult struct {
	// Lens has one length per item, 0 for items that failed.
	Lens   []float64
	Total  float64
	Errors []ItemError
}

type outcome struct {
	resp Response
	err  error
}

type pending struct {
	w          *Worker
	onProgress func(Progress)
	ch         chan outcome // receives exactly one outcome
}

// Client submits batches to a lazily started Worker and correlates the
// answers. A crashed worker is replaced on the next call.
//
// Client is safe for concurrent use.
type Client struct {
	opts  []Option
	hooks hooks
	// observe sees every response the client receives; tests only.
	observe func(Response)

	nextID atomic.Uint64

	mu      sync.Mutex
	worker  *Worker
	pending map[uint64]*pending
	closed  bool
}

// NewClient creates a client. The options configure every worker it
// starts.
func NewClient(opts ...Option) *Client {
	return &Client{
		opts:    opts,
		pending: make(map[uint64]*pending),
	}
}

// MeasureBatch measures items on the worker and returns their lengths.
//
// onProgress, if not nil, is called from the client's dispatch goroutine
// with strictly increasing Done counts and must not block.
//
// When ctx ends first the batch is aborted and the error wraps both
// ErrCanceled and the context's error. If the worker crashes the error
// wraps ErrWorkerFailed and the call may be retried.
func (c *Client) MeasureBatch(ctx context.Context, items []Item, onProgress func(Progress)) (*BatchResult, error) {
	if ctx.Err() != nil {
		return nil, canceled(ctx)
	}
	id, p, err := c.start(onProgress)
	if err != nil {
		return nil, err
	}
	if err := p.w.Post(Request{ID: id, Type: TypeMeasure, Items: items}); err != nil {
		c.forget(id)
		return nil, err
	}

	select {
	case o := <-p.ch:
		return o.result()
	case <-ctx.Done():
	}

	// Wait for the worker's answer so the id is settled before returning.
	_ = p.w.Post(Request{ID: id, Type: TypeAbort})
	<-p.ch
	handfollow.Logger().Debug("measure: batch canceled", slog.Uint64("id", id))
	return nil, canceled(ctx)
}

func canceled(ctx context.Context) error {
	return fmt.Errorf("%w: %w", ErrCanceled, context.Cause(ctx))
}

func (o outcome) result() (*BatchResult, error) {
	if o.err != nil {
		return nil, o.err
	}
	if o.resp.Type != TypeResult {
		return nil, fmt.Errorf("request %d: %w", o.resp.ID, ErrCanceled)
	}
	return &BatchResult{Lens: o.resp.Lens, Total: o.resp.Total, Errors: o.resp.Errors}, nil
}

// start assigns a request id and registers it with the current worker,
// starting one if needed.
func (c *Client) start(onProgress func(Progress)) (uint64, *pending, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return 0, nil, ErrClosed
	}
	if c.worker != nil && !c.worker.alive() {
		// Stopped, but dispatch has not failed it yet. Its pending
		// requests are still rejected there.
		c.worker = nil
	}
	if c.worker == nil {
		c.worker = newWorker(c.hooks, c.opts...)
		go c.dispatch(c.worker)
	}
	id := c.nextID.Add(1)
	p := &pending{w: c.worker, onProgress: onProgress, ch: make(chan outcome, 1)}
	c.pending[id] = p
	return id, p, nil
}

func (c *Client) forget(id uint64) {
	c.mu.Lock()
	delete(c.pending, id)
	c.mu.Unlock()
}

// dispatch routes w's responses to pending requests until w stops.
func (c *Client) dispatch(w *Worker) {
	for {
		select {
		case r := <-w.Responses():
			c.deliver(r)
		case <-w.Done():
			c.fail(w, w.Err())
			return
		}
	}
}

func (c *Client) deliver(r Response) {
	if c.observe != nil {
		c.observe(r)
	}
	c.mu.Lock()
	p, ok := c.pending[r.ID]
	if ok && r.terminal() {
		delete(c.pending, r.ID)
	}
	c.mu.Unlock()

	switch {
	case !ok:
		handfollow.Logger().Debug("measure: dropped late response",
			slog.Uint64("id", r.ID), slog.String("type", string(r.Type)))
	case r.terminal():
		p.ch <- outcome{resp: r}
	case r.Type == TypeProgress && p.onProgress != nil:
		p.onProgress(Progress{ID: r.ID, Done: r.Done, Count: r.Count})
	}
}

// fail rejects every request pending on w and forgets w.
func (c *Client) fail(w *Worker, err error) {
	c.mu.Lock()
	var failed []*pending
	for id, p := range c.pending {
		if p.w == w {
			delete(c.pending, id)
			failed = append(failed, p)
		}
	}
	if c.worker == w {
		c.worker = nil
	}
	c.mu.Unlock()

	if len(failed) > 0 {
		handfollow.Logger().Warn("measure: rejecting pending requests",
			slog.Int("count", len(failed)), slog.String("err", err.Error()))
	}
	for _, p := range failed {
		p.ch <- outcome{err: err}
	}
}

// Close stops the worker. Pending calls fail with ErrClosed, as do later
// ones.
func (c *Client) Close() error {
	c.mu.Lock()
	c.closed = true
	w := c.worker
	c.worker = nil
	c.mu.Unlock()
	if w != nil {
		return w.Close()
	}
	return nil
}
