// Package treewalk implements positional iteration over the entries of
// hierarchical tree objects in their canonical sort order.
//
// Iterators of one walk share a single growable path buffer: every
// iterator views the bytes of its ancestors' path segments and appends its
// own. A walk is driven by one goroutine at a time; neither iterators nor
// the shared buffer are safe for concurrent mutation.
package treewalk

import (
	"bytes"

	"github.com/aniknaemmm/GitSharp/pkg/object"
	"github.com/aniknaemmm/GitSharp/pkg/storage/objectdb"
)

// Iterator positions over the entries of one tree level.
//
// Implementations embed or hold a *Base carrying the positional state
// (mode, path span, sibling match references) and must keep it fully
// populated for the current entry after every successful Next or Back.
type Iterator interface {
	// Base exposes the shared positional state of the iterator.
	Base() *Base

	// IDBuffer returns the backing buffer holding the raw id of the
	// current entry.
	IDBuffer() []byte

	// IDOffset returns the offset of the current entry's id within
	// IDBuffer.
	IDOffset() int

	// First checks if the iterator is positioned on the first entry, i.e.
	// Back(1) would be invalid.
	First() bool

	// EOF checks if the iterator is positioned past the last entry.
	EOF() bool

	// Next advances the iterator by delta entries, delta >= 1. The
	// positional state is fully repopulated for the new entry, or the
	// iterator is left at EOF.
	Next(delta int) error

	// Back moves the iterator back by delta entries, delta >= 1.
	Back(delta int) error

	// NewSubtreeIterator creates an iterator over the subtree named by the
	// current entry, sharing and extending this iterator's path buffer.
	// Fails with object.UnexpectedTypeError when the current entry is not
	// tree-typed, or with a storage error when the subtree cannot be read.
	NewSubtreeIterator(db *objectdb.Database, cur *objectdb.Cursor) (Iterator, error)
}

// Skipper is implemented by iterators that can advance past an entry
// rejected by a filter cheaper than a full Next(1).
type Skipper interface {
	Skip() error
}

// Stopper is implemented by iterators holding external resources that
// should be released when a walk aborts early.
type Stopper interface {
	StopWalk()
}

// Skip advances it past the current entry, taking the iterator's cheaper
// path when it offers one.
func Skip(it Iterator) error {
	if s, ok := it.(Skipper); ok {
		return s.Skip()
	}

	return it.Next(1)
}

// StopWalk notifies it that no further entries will be read.
func StopWalk(it Iterator) {
	if s, ok := it.(Stopper); ok {
		s.StopWalk()
	}
}

// IDEqual checks if both iterators' current entries name the same object,
// comparing raw id bytes in place without materializing them.
func IDEqual(a, b Iterator) bool {
	ao, bo := a.IDOffset(), b.IDOffset()

	return bytes.Equal(a.IDBuffer()[ao:ao+object.IDSize], b.IDBuffer()[bo:bo+object.IDSize])
}

// EntryID materializes the object id of the iterator's current entry.
func EntryID(it Iterator) object.ID {
	return object.IDFromRaw(it.IDBuffer(), it.IDOffset())
}
