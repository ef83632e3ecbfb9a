// Package parallel provides the goroutine pool that runs measurement jobs
// off the caller's goroutine.
package parallel
