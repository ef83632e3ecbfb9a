package measure

import (
	"fmt"

	"github.com/gogpu/handfollow"
)

// MessageType names a protocol message.
type MessageType string

// Message types.
const (
	TypeMeasure  MessageType = "measure"
	TypeAbort    MessageType = "abort"
	TypeProgress MessageType = "progress"
	TypeResult   MessageType = "result"
	TypeAbortAck MessageType = "abort-ack"
)

// Item is one path to measure.
type Item struct {
	PathData string `json:"pathData"`
	// Matrix is an optional affine transform in [a, b, c, d, e, f] order,
	// where x' = a*x + c*y + e and y' = b*x + d*y + f.
	Matrix []float64 `json:"matrix,omitempty"`
}

// matrix decodes the item's transform.
func (it Item) matrix() (handfollow.Matrix, error) {
	switch len(it.Matrix) {
	case 0:
		return handfollow.Identity(), nil
	case 6:
		m := it.Matrix
		return handfollow.MatrixFromSVG(m[0], m[1], m[2], m[3], m[4], m[5]), nil
	}
	return handfollow.Matrix{}, fmt.Errorf("matrix has %d numbers, want 6", len(it.Matrix))
}

// Request is a message from the client to the worker.
type Request struct {
	ID    uint64      `json:"id"`
	Type  MessageType `json:"type"`
	Items []Item      `json:"items,omitempty"`
}

// Response is a message from the worker to the client.
type Response struct {
	ID   uint64      `json:"id"`
	Type MessageType `json:"type"`

	// Done and Count are set on progress messages.
	Done  int `json:"done,omitempty"`
	Count int `json:"count,omitempty"`

	// Lens, Total and Errors are set on result messages. Lens has one
	// entry per item; failed items measure 0.
	Lens   []float64   `json:"lens,omitempty"`
	Total  float64     `json:"total,omitempty"`
	Errors []ItemError `json:"errors,omitempty"`
}

// terminal reports whether r ends its request.
func (r Response) terminal() bool {
	return r.Type == TypeResult || r.Type == TypeAbortAck
}

// ItemError records why one item of a batch could not be measured.
type ItemError struct {
	Index   int    `json:"index"`
	Message string `json:"message"`
}

func (e ItemError) Error() string {
	return fmt.Sprintf("item %d: %s", e.Index, e.Message)
}
