package protocol

import (
	"errors"
	"fmt"
)

var (
	ErrTruncated       = errors.New("payload truncated")
	ErrInvalidEncoding = errors.New("invalid string encoding")
	ErrUnknownKind     = errors.New("unknown message kind")
	ErrInvalidFrame    = errors.New("invalid frame")
	ErrFrameTooLarge   = errors.New("frame too large")
)

// ProtocolError reports a payload that could not be parsed. Err is one of
// ErrTruncated, ErrInvalidEncoding or ErrUnknownKind.
type ProtocolError struct {
	Kind   Kind
	Offset int
	Err    error
}

func (e *ProtocolError) Error() string {
	if errors.Is(e.Err, ErrUnknownKind) {
		return fmt.Sprintf("%s: %v", e.Kind, e.Err)
	}
	return fmt.Sprintf("%s: %v at offset %d", e.Kind, e.Err, e.Offset)
}

func (e *ProtocolError) Unwrap() error {
	return e.Err
}
