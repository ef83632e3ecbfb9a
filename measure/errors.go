package measure

import "errors"

var (
	// ErrCanceled is returned by MeasureBatch when its context ends before
	// the batch completes.
	ErrCanceled = errors.New("measure: batch canceled")

	// ErrWorkerFailed is returned for every request pending on a worker
	// that crashed. The request can be retried.
	ErrWorkerFailed = errors.New("measure: worker failed")

	// ErrClosed is returned after Close.
	ErrClosed = errors.New("measure: closed")
)
