// Package measure runs batched path-length measurement on a worker
// goroutine.
//
// A Client and its Worker talk only through Request and Response
// messages correlated by a monotonically increasing request id:
//
//	client -> worker: measure, abort
//	worker -> client: progress, result, abort-ack
//
// Every measure request is answered by exactly one result or abort-ack.
// A failure to measure one item is reported in the result and does not
// stop the batch. A panic inside the worker kills it: every pending
// request fails with ErrWorkerFailed and the next call starts a new
// worker.
package measure
