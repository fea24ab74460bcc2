package bytebuf

import (
	"errors"
	"fmt"
)

var (
	ErrOutOfRange   = errors.New("bytebuf: position out of range")
	ErrBadSource    = errors.New("bytebuf: bad source")
	ErrInvalidValue = errors.New("bytebuf: invalid value")
)

// Op names the access mode that triggered a PositionError.
type Op uint8

const (
	OpGet Op = iota
	OpPut
)

func (o Op) String() string {
	if o == OpPut {
		return "put"
	}
	return "get"
}

// PositionError reports a read or patch addressed outside [0, Size()).
type PositionError struct {
	Op        Op
	Pos       int
	ValueSize int
	Size      int
}

func (e *PositionError) Error() string {
	return fmt.Sprintf(
		"bytebuf: attempted to %s value with size: %d in buffer (pos: %d size: %d)",
		e.Op, e.ValueSize, e.Pos, e.Size,
	)
}

func (e *PositionError) Unwrap() error {
	return ErrOutOfRange
}

// SourceReason says which append precondition failed.
type SourceReason uint8

const (
	SourceNil SourceReason = iota + 1
	SourceEmpty
)

func (r SourceReason) String() string {
	switch r {
	case SourceNil:
		return "nil slice"
	case SourceEmpty:
		return "zero-sized value"
	default:
		return "unknown source"
	}
}

// SourceError reports an append or put given a nil or empty source.
type SourceError struct {
	Reason SourceReason
	Pos    int
	Size   int
	Count  int
}

func (e *SourceError) Error() string {
	return fmt.Sprintf(
		"bytebuf: attempted to put a %s in buffer (pos: %d size: %d count: %d)",
		e.Reason, e.Pos, e.Size, e.Count,
	)
}

func (e *SourceError) Unwrap() error {
	return ErrBadSource
}

// InvalidValueError reports decoded content that failed a validity check.
type InvalidValueError struct {
	Kind  string
	Value string
}

func (e *InvalidValueError) Error() string {
	return fmt.Sprintf("bytebuf: invalid %s value (%q) found in buffer", e.Kind, e.Value)
}

func (e *InvalidValueError) Unwrap() error {
	return ErrInvalidValue
}
