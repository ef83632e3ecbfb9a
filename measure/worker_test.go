package measure

import (
	"errors"
	"testing"
	"time"

	"github.com/gogpu/handfollow"
)

// collect reads responses for id until its terminal message.
func collect(t *testing.T, w *Worker, id uint64) []Response {
	t.Helper()
	var got []Response
	for {
		select {
		case r := <-w.Responses():
			if r.ID != id {
				t.Fatalf("response for id %d while waiting for %d", r.ID, id)
			}
			got = append(got, r)
			if r.terminal() {
				return got
			}
		case <-time.After(testTimeout):
			t.Fatalf("timeout waiting for request %d", id)
		}
	}
}

func TestWorkerProtocol(t *testing.T) {
	w := NewWorker(WithProgressInterval(0))
	defer w.Close()

	if err := w.Post(Request{ID: 7, Type: TypeMeasure, Items: lines(3)}); err != nil {
		t.Fatalf("Post() error = %v", err)
	}
	got := collect(t, w, 7)
	if len(got) != 4 {
		t.Fatalf("got %d responses, want 3 progress + 1 result", len(got))
	}
	for i, r := range got[:3] {
		if r.Type != TypeProgress || r.Done != i+1 || r.Count != 3 {
			t.Errorf("response %d = %+v, want progress %d/3", i, r, i+1)
		}
	}
	res := got[3]
	if res.Type != TypeResult || res.Total != 300 || len(res.Lens) != 3 {
		t.Errorf("result = %+v, want total 300 over 3 items", res)
	}
}

func TestWorkerIgnoresStaleAbort(t *testing.T) {
	w := NewWorker(WithProgressInterval(time.Hour), WithClock(handfollow.NewFrameClock(0)))
	defer w.Close()

	if err := w.Post(Request{ID: 1, Type: TypeMeasure, Items: lines(1)}); err != nil {
		t.Fatalf("Post() error = %v", err)
	}
	collect(t, w, 1)

	// Abort after the answer: nothing more is sent for id 1.
	if err := w.Post(Request{ID: 1, Type: TypeAbort}); err != nil {
		t.Fatalf("Post(abort) error = %v", err)
	}
	if err := w.Post(Request{ID: 2, Type: TypeMeasure, Items: lines(2)}); err != nil {
		t.Fatalf("Post() error = %v", err)
	}
	got := collect(t, w, 2)
	if last := got[len(got)-1]; last.Type != TypeResult {
		t.Errorf("request 2 ended with %v, want result", last.Type)
	}
}

func TestWorkerTokenCache(t *testing.T) {
	w := NewWorker(WithTokenCache(2))
	defer w.Close()

	items := []Item{
		{PathData: "M0,0 L10,0"},
		{PathData: "M0,0 L10,0"},
		{PathData: "M0,0 L20,0"},
		{PathData: "M0,0 L10,0", Matrix: []float64{3, 0, 0, 3, 0, 0}},
	}
	if err := w.Post(Request{ID: 1, Type: TypeMeasure, Items: items}); err != nil {
		t.Fatalf("Post() error = %v", err)
	}
	got := collect(t, w, 1)
	res := got[len(got)-1]
	if res.Total != 70 {
		t.Errorf("Total = %v, want 70", res.Total)
	}
	st := w.TokenCacheStats()
	if st.Hits != 2 || st.Misses != 2 {
		t.Errorf("TokenCacheStats() hits/misses = %d/%d, want 2/2", st.Hits, st.Misses)
	}
	if st.Len > 2 {
		t.Errorf("TokenCacheStats().Len = %d, want <= 2", st.Len)
	}
}

func TestWorkerClose(t *testing.T) {
	w := NewWorker()
	if err := w.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	select {
	case <-w.Done():
	default:
		t.Error("Done() not closed after Close")
	}
	if err := w.Post(Request{ID: 1, Type: TypeMeasure}); !errors.Is(err, ErrClosed) {
		t.Errorf("Post() after Close error = %v, want %v", err, ErrClosed)
	}
	if err := w.Close(); err != nil {
		t.Errorf("second Close() error = %v", err)
	}
}

func TestWorkerCrash(t *testing.T) {
	w := newWorker(hooks{beforeItem: func(uint64, int) { panic("bad state") }})
	defer w.Close()

	if err := w.Post(Request{ID: 1, Type: TypeMeasure, Items: lines(1)}); err != nil {
		t.Fatalf("Post() error = %v", err)
	}
	select {
	case <-w.Done():
	case <-time.After(testTimeout):
		t.Fatal("worker did not stop after panic")
	}
	if err := w.Err(); !errors.Is(err, ErrWorkerFailed) {
		t.Errorf("Err() = %v, want %v", err, ErrWorkerFailed)
	}
}

func TestItemMatrix(t *testing.T) {
	m, err := Item{Matrix: []float64{1, 2, 3, 4, 5, 6}}.matrix()
	if err != nil {
		t.Fatalf("matrix() error = %v", err)
	}
	// x' = a*x + c*y + e, y' = b*x + d*y + f
	if got, want := m.TransformPoint(handfollow.Pt(1, 1)), handfollow.Pt(9, 12); got != want {
		t.Errorf("TransformPoint(1,1) = %v, want %v", got, want)
	}
	if _, err := (Item{Matrix: []float64{1}}).matrix(); err == nil {
		t.Error("matrix() with 1 number: error = nil")
	}
}
