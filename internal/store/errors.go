package store

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidIndex is matched by errors returned for positions outside 1..Len().
	ErrInvalidIndex = errors.New("invalid index")

	// ErrMalformed is matched by errors returned when the store file cannot be parsed.
	ErrMalformed = errors.New("malformed store file")
)

// IndexError reports a 1-based position outside the current list.
type IndexError struct {
	Index int
	Len   int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("task number out of range: %d", e.Index)
}

func (e *IndexError) Is(target error) bool {
	return target == ErrInvalidIndex
}

// ParseError reports a store file that exists but is not a valid task list.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("malformed store file %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

func (e *ParseError) Is(target error) bool {
	return target == ErrMalformed
}
