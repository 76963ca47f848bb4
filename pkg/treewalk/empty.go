package treewalk

import (
	"github.com/aniknaemmm/GitSharp/pkg/object"
	"github.com/aniknaemmm/GitSharp/pkg/storage/objectdb"
)

var zeroIDBuffer [object.IDSize]byte

// EmptyIterator is an iterator over zero entries. Walkers use it to stand
// in for a subtree one side of a multi-tree walk does not have.
type EmptyIterator struct {
	base *Base
}

// NewEmptyIterator creates an empty iterator positioned as a child of
// parent's current entry.
func NewEmptyIterator(parent Iterator) *EmptyIterator {
	b := NewChildBase(parent.Base())
	b.SetEmptyPath()

	return &EmptyIterator{base: b}
}

// NewRootEmptyIterator creates an empty iterator with no parent.
func NewRootEmptyIterator() *EmptyIterator {
	return &EmptyIterator{base: NewBase()}
}

// Base implements Iterator.
func (it *EmptyIterator) Base() *Base { return it.base }

// IDBuffer implements Iterator; an empty tree has the zero id.
func (it *EmptyIterator) IDBuffer() []byte { return zeroIDBuffer[:] }

// IDOffset implements Iterator.
func (it *EmptyIterator) IDOffset() int { return 0 }

// First implements Iterator; an empty iterator is always at the first
// position.
func (it *EmptyIterator) First() bool { return true }

// EOF implements Iterator; an empty iterator is always at the end.
func (it *EmptyIterator) EOF() bool { return true }

// Next implements Iterator; there is never an entry to advance onto.
func (it *EmptyIterator) Next(int) error { return nil }

// Back implements Iterator; there is never an entry to move back onto.
func (it *EmptyIterator) Back(int) error { return nil }

// NewSubtreeIterator implements Iterator; subtrees of an empty tree are
// empty as well.
func (it *EmptyIterator) NewSubtreeIterator(*objectdb.Database, *objectdb.Cursor) (Iterator, error) {
	return NewEmptyIterator(it), nil
}
