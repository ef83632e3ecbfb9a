// Package lift detects sharp turns in a sample table and computes the
// "pen lift" used to fake picking the tool up over them.
//
// Two models are provided. StateAt derives a lift height from path
// progress with a triangular envelope around each corner. Animation is a
// finite, clock-driven lift between two points that does not stretch
// with playback speed.
package lift
