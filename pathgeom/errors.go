package pathgeom

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownCommand is returned for a letter that is not a path command.
	ErrUnknownCommand = errors.New("pathgeom: unknown path command")

	// ErrMissingArgs is returned when a command has fewer numbers than it needs.
	ErrMissingArgs = errors.New("pathgeom: missing command arguments")

	// ErrNoMoveTo is returned when path data does not start with a move command.
	ErrNoMoveTo = errors.New("pathgeom: path must start with a move command")

	// ErrBadNumber is returned for text that cannot be read as a number.
	ErrBadNumber = errors.New("pathgeom: malformed number")

	// ErrBadFlag is returned for an arc flag other than 0 or 1.
	ErrBadFlag = errors.New("pathgeom: arc flag must be 0 or 1")
)

// ParseError reports where path data failed to parse.
type ParseError struct {
	// Offset is the byte offset in the path data.
	Offset int
	// Cmd is the command being parsed, 0 if none.
	Cmd byte
	// Err is one of the sentinel errors of this package.
	Err error
}

func (e *ParseError) Error() string {
	if e.Cmd == 0 {
		return fmt.Sprintf("%v at offset %d", e.Err, e.Offset)
	}
	return fmt.Sprintf("%v (command %q) at offset %d", e.Err, e.Cmd, e.Offset)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
