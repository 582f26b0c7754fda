package store

import (
	"errors"
	"fmt"
)

// ErrInvalidReference reports an object id prefix too short to resolve.
var ErrInvalidReference = errors.New("object reference must be at least 3 characters")

// NotFoundError reports that no stored object matches a prefix.
type NotFoundError struct {
	Prefix string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no object found for %q", e.Prefix)
}

// AmbiguousError reports that a prefix resolves to more than one object.
type AmbiguousError struct {
	Prefix string
	Count  int
}

func (e *AmbiguousError) Error() string {
	return fmt.Sprintf("reference %q is ambiguous: %d objects match", e.Prefix, e.Count)
}

// SizeMismatchError reports a divergence between an object's declared
// size and the bytes actually produced. It covers both a short payload
// reader on write and the bounded-read integrity check on read.
type SizeMismatchError struct {
	Declared int64
	Actual   int64
}

func (e *SizeMismatchError) Error() string {
	return fmt.Sprintf("object size mismatch: declared %d bytes, got %d", e.Declared, e.Actual)
}
