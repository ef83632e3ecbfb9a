package parallel

import (
	"runtime"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

// =============================================================================
// Creation
// =============================================================================

func TestWorkerPool_Create(t *testing.T) {
	pool := NewWorkerPool(4)
	defer pool.Close()

	if pool.Workers() != 4 {
		t.Errorf("Workers() = %d, want 4", pool.Workers())
	}
	if !pool.IsRunning() {
		t.Error("Pool should be running after creation")
	}
}

func TestWorkerPool_CreateDefaultWorkers(t *testing.T) {
	for _, n := range []int{0, -5} {
		pool := NewWorkerPool(n)
		if got, want := pool.Workers(), runtime.GOMAXPROCS(0); got != want {
			t.Errorf("NewWorkerPool(%d).Workers() = %d, want %d", n, got, want)
		}
		pool.Close()
	}
}

// =============================================================================
// Submit
// =============================================================================

// submitAll submits n jobs and waits until all ran.
func submitAll(t *testing.T, pool *WorkerPool, n int, job func(i int)) {
	t.Helper()
	var wg sync.WaitGroup
	wg.Add(n)
	for i := range n {
		if !pool.Submit(func() {
			defer wg.Done()
			job(i)
		}) {
			t.Fatalf("Submit(%d) = false on a running pool", i)
		}
	}
	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("timeout waiting for submitted work")
	}
}

func TestWorkerPool_Submit(t *testing.T) {
	pool := NewWorkerPool(4)
	defer pool.Close()

	var counter atomic.Int64
	submitAll(t, pool, 100, func(int) { counter.Add(1) })
	if counter.Load() != 100 {
		t.Errorf("counter = %d, want 100", counter.Load())
	}
}

func TestWorkerPool_SubmitNil(t *testing.T) {
	pool := NewWorkerPool(2)
	defer pool.Close()

	if pool.Submit(nil) {
		t.Error("Submit(nil) = true, want false")
	}
}

func TestWorkerPool_SingleWorkerKeepsOrder(t *testing.T) {
	pool := NewWorkerPool(1)
	defer pool.Close()

	var mu sync.Mutex
	var order []int
	submitAll(t, pool, 50, func(i int) {
		mu.Lock()
		order = append(order, i)
		mu.Unlock()
	})
	for i, v := range order {
		if v != i {
			t.Fatalf("order[%d] = %d, want %d", i, v, i)
		}
	}
}

func TestWorkerPool_WorkStealing(t *testing.T) {
	pool := NewWorkerPool(4)
	defer pool.Close()

	var slow, fast atomic.Int64
	submitAll(t, pool, 40, func(i int) {
		if i%10 == 0 {
			time.Sleep(5 * time.Millisecond)
			slow.Add(1)
			return
		}
		fast.Add(1)
	})
	if slow.Load() != 4 || fast.Load() != 36 {
		t.Errorf("slow, fast = %d, %d, want 4, 36", slow.Load(), fast.Load())
	}
}

func TestWorkerPool_Concurrent(t *testing.T) {
	pool := NewWorkerPool(4)
	defer pool.Close()

	var counter atomic.Int64
	var submitters, jobs sync.WaitGroup
	for range 10 {
		submitters.Add(1)
		go func() {
			defer submitters.Done()
			for range 50 {
				jobs.Add(1)
				pool.Submit(func() {
					defer jobs.Done()
					counter.Add(1)
				})
			}
		}()
	}
	submitters.Wait()
	jobs.Wait()

	if counter.Load() != 500 {
		t.Errorf("counter = %d, want 500", counter.Load())
	}
}

// =============================================================================
// Panics
// =============================================================================

func TestWorkerPool_PanicHandler(t *testing.T) {
	got := make(chan any, 1)
	pool := NewWorkerPool(1, WithPanicHandler(func(v any) { got <- v }))
	defer pool.Close()

	pool.Submit(func() { panic("boom") })
	select {
	case v := <-got:
		if v != "boom" {
			t.Errorf("recovered %v, want boom", v)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("panic handler not called")
	}

	// The worker survives the panic.
	var ran atomic.Bool
	submitAll(t, pool, 1, func(int) { ran.Store(true) })
	if !ran.Load() {
		t.Error("job after panic did not run")
	}
}

// =============================================================================
// Close
// =============================================================================

func TestWorkerPool_CloseIdempotent(t *testing.T) {
	pool := NewWorkerPool(4)
	pool.Close()
	pool.Close()

	if pool.IsRunning() {
		t.Error("Pool should not be running after close")
	}
}

func TestWorkerPool_CloseRunsQueuedWork(t *testing.T) {
	pool := NewWorkerPool(1, WithQueueSize(64))

	release := make(chan struct{})
	var counter atomic.Int64
	pool.Submit(func() { <-release })
	for range 20 {
		pool.Submit(func() { counter.Add(1) })
	}
	if got := pool.QueuedWork(); got == 0 {
		t.Error("QueuedWork() = 0 while the worker is blocked")
	}
	close(release)
	pool.Close()

	if counter.Load() != 20 {
		t.Errorf("counter = %d after Close, want 20", counter.Load())
	}
}

func TestWorkerPool_SubmitAfterClose(t *testing.T) {
	pool := NewWorkerPool(4)
	pool.Close()

	var executed atomic.Bool
	if pool.Submit(func() { executed.Store(true) }) {
		t.Error("Submit() after Close = true, want false")
	}
	time.Sleep(20 * time.Millisecond)
	if executed.Load() {
		t.Error("Work was executed on closed pool")
	}
}

func TestWorkerPool_NoGoroutineLeak(t *testing.T) {
	runtime.GC()
	time.Sleep(50 * time.Millisecond)
	baseline := runtime.NumGoroutine()

	for range 5 {
		pool := NewWorkerPool(4)
		submitAll(t, pool, 100, func(int) {})
		pool.Close()
	}

	runtime.GC()
	time.Sleep(100 * time.Millisecond)
	if final := runtime.NumGoroutine(); final > baseline+2 {
		t.Errorf("goroutine count: baseline=%d, final=%d (leak detected)", baseline, final)
	}
}

func BenchmarkWorkerPool_Submit(b *testing.B) {
	pool := NewWorkerPool(0)
	defer pool.Close()

	var wg sync.WaitGroup
	b.ResetTimer()
	for range b.N {
		wg.Add(1)
		pool.Submit(wg.Done)
	}
	wg.Wait()
}
