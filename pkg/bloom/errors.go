package bloom

import (
	"errors"
	"fmt"
)

// Sentinel errors for filter persistence.
var (
	ErrBadMagic    = errors.New("not a bloom filter file")
	ErrVersion     = errors.New("unsupported filter file version")
	ErrChecksum    = errors.New("filter payload checksum mismatch")
	ErrTruncated   = errors.New("filter file truncated")
	ErrHeaderField = errors.New("invalid filter header field")
)

// FileError wraps a persistence failure with the operation and path that
// produced it.
type FileError struct {
	Op    string // "save" or "load"
	Path  string
	Cause error
}

// Error implements the error interface.
func (e *FileError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("bloom: %s %s: %v", e.Op, e.Path, e.Cause)
	}
	return fmt.Sprintf("bloom: %s: %v", e.Op, e.Cause)
}

// Unwrap returns the underlying cause for error chain support.
func (e *FileError) Unwrap() error { return e.Cause }
