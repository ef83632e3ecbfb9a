package parallel

import (
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"
)

// PanicHandler receives the value recovered from a panicking job.
type PanicHandler func(v any)

// PoolOption configures a WorkerPool.
type PoolOption func(*WorkerPool)

// WithPanicHandler recovers panics raised by jobs and passes them to h.
// Without a handler a panicking job crashes the process, as a bare
// goroutine would.
func WithPanicHandler(h PanicHandler) PoolOption {
	return func(p *WorkerPool) {
		p.onPanic = h
	}
}

// WithQueueSize sets the buffer size of each worker's queue.
func WithQueueSize(n int) PoolOption {
	return func(p *WorkerPool) {
		if n > 0 {
			p.queueSize = n
		}
	}
}

// WorkerPool is a fixed set of goroutines running submitted jobs.
//
// Each worker owns a queue. An idle worker steals from the other queues
// so that one long job does not hold up the rest. With a single worker,
// jobs run one at a time in submission order.
//
// Thread safety: WorkerPool is safe for concurrent use.
type WorkerPool struct {
	workers    int
	workQueues []chan func()
	queueSize  int

	onPanic PanicHandler

	// done signals workers to stop.
	done chan struct{}
	wg   sync.WaitGroup

	running atomic.Bool
}

// NewWorkerPool creates a pool with the given number of workers.
// If workers is 0 or negative, GOMAXPROCS is used.
// The pool starts immediately.
func NewWorkerPool(workers int, opts ...PoolOption) *WorkerPool {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	p := &WorkerPool{
		workers:   workers,
		queueSize: max(workers*4, 8),
		done:      make(chan struct{}),
	}
	for _, opt := range opts {
		opt(p)
	}

	p.workQueues = make([]chan func(), workers)
	for i := range workers {
		p.workQueues[i] = make(chan func(), p.queueSize)
	}

	p.running.Store(true)
	p.wg.Add(workers)
	for i := range workers {
		go p.worker(i)
	}
	return p
}

func (p *WorkerPool) worker(id int) {
	defer p.wg.Done()

	myQueue := p.workQueues[id]
	for {
		select {
		case <-p.done:
			p.drainQueue(myQueue)
			return
		case work := <-myQueue:
			p.run(work)
		default:
			if stolen := p.steal(id); stolen != nil {
				p.run(stolen)
				continue
			}
			select {
			case <-p.done:
				p.drainQueue(myQueue)
				return
			case work := <-myQueue:
				p.run(work)
			}
		}
	}
}

// run executes one job, recovering its panic when a handler is set.
func (p *WorkerPool) run(work func()) {
	if work == nil {
		return
	}
	if p.onPanic != nil {
		defer func() {
			if v := recover(); v != nil {
				p.onPanic(v)
			}
		}()
	}
	work()
}

// drainQueue executes all remaining work in a queue.
func (p *WorkerPool) drainQueue(queue chan func()) {
	for {
		select {
		case work := <-queue:
			p.run(work)
		default:
			return
		}
	}
}

// steal takes a job from another worker's queue, or returns nil.
func (p *WorkerPool) steal(myID int) func() {
	for i := range p.workers {
		if i == myID {
			continue
		}
		select {
		case work := <-p.workQueues[i]:
			return work
		default:
		}
	}
	return nil
}

// Submit queues a job on the worker with the shortest queue. It blocks
// while that queue is full and reports false if the pool is closed.
func (p *WorkerPool) Submit(fn func()) bool {
	if fn == nil || !p.running.Load() {
		return false
	}

	minIdx, minLen := 0, len(p.workQueues[0])
	for i := 1; i < p.workers; i++ {
		if l := len(p.workQueues[i]); l < minLen {
			minIdx, minLen = i, l
		}
	}

	select {
	case p.workQueues[minIdx] <- fn:
		return true
	case <-p.done:
		return false
	}
}

// Close stops accepting work, runs what is already queued and waits for
// the workers to exit. Close is safe to call multiple times but must not
// be called from a job.
func (p *WorkerPool) Close() {
	if !p.running.CompareAndSwap(true, false) {
		return
	}
	close(p.done)
	p.wg.Wait()
}

// Workers returns the number of workers in the pool.
func (p *WorkerPool) Workers() int {
	return p.workers
}

// IsRunning reports whether the pool accepts work.
func (p *WorkerPool) IsRunning() bool {
	return p.running.Load()
}

// QueuedWork returns the number of jobs waiting in the queues.
// It is an approximation while workers are busy.
func (p *WorkerPool) QueuedWork() int {
	total := 0
	for _, q := range p.workQueues {
		total += len(q)
	}
	return total
}

// String describes the pool for logs.
func (p *WorkerPool) String() string {
	return fmt.Sprintf("WorkerPool(workers=%d, queued=%d)", p.workers, p.QueuedWork())
}
