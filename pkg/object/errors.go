package object

import (
	"errors"
	"fmt"
)

// ErrNotFound signals that the requested object is missing from storage. It
// is the normal miss result of a lookup, not a failure of the storage
// itself.
var ErrNotFound = errors.New("object not found")

// UnexpectedTypeError is returned when a stored object or a tree entry
// turns out to be of a different kind than the operation requires.
type UnexpectedTypeError struct {
	ID       ID
	Expected Type
	Actual   Type
}

func (e *UnexpectedTypeError) Error() string {
	return fmt.Sprintf("object %s is a %s, not a %s", e.ID, e.Actual, e.Expected)
}

// CorruptObjectError is returned when object data violates structural
// assumptions during decoding.
type CorruptObjectError struct {
	ID  ID
	Why string
}

func (e *CorruptObjectError) Error() string {
	if e.ID.IsZero() {
		return fmt.Sprintf("corrupt object: %s", e.Why)
	}

	return fmt.Sprintf("corrupt object %s: %s", e.ID, e.Why)
}
