package treewalk

import (
	"fmt"

	"github.com/aniknaemmm/GitSharp/pkg/object"
	"github.com/aniknaemmm/GitSharp/pkg/storage/objectdb"
)

// CanonicalIterator iterates the entries of a canonically encoded tree
// object: a concatenation of "<octal mode> <name>\x00<raw id>" records,
// already sorted in canonical order by the writer.
type CanonicalIterator struct {
	base *Base

	raw []byte

	// treeID is the id of the tree being parsed, when known; used for
	// error reporting only.
	treeID object.ID

	// prevPtr remembers the previous record's offset so a single Back(1)
	// avoids rescanning; -1 when unknown.
	prevPtr int
	currPtr int
	nextPtr int
}

// NewCanonicalIterator creates a root iterator over encoded tree contents.
func NewCanonicalIterator(raw []byte) (*CanonicalIterator, error) {
	it := &CanonicalIterator{base: NewBase()}

	if err := it.reset(raw); err != nil {
		return nil, err
	}

	return it, nil
}

// NewCanonicalIteratorWithPrefix creates a root iterator whose entry paths
// all appear under the given prefix.
func NewCanonicalIteratorWithPrefix(prefix string, raw []byte) (*CanonicalIterator, error) {
	it := &CanonicalIterator{base: NewBaseWithPrefix(prefix)}

	if err := it.reset(raw); err != nil {
		return nil, err
	}

	return it, nil
}

// NewCanonicalIteratorFromStore roots an iterator at the tree object
// stored under id.
func NewCanonicalIteratorFromStore(db *objectdb.Database, cur *objectdb.Cursor, id object.ID) (*CanonicalIterator, error) {
	raw, err := readTree(db, cur, id)
	if err != nil {
		return nil, err
	}

	it := &CanonicalIterator{base: NewBase(), treeID: id}

	if err := it.reset(raw); err != nil {
		return nil, err
	}

	return it, nil
}

func readTree(db *objectdb.Database, cur *objectdb.Cursor, id object.ID) ([]byte, error) {
	ldr, err := db.OpenObject(cur, id)
	if err != nil {
		return nil, fmt.Errorf("could not read tree %s: %w", id, err)
	}

	if ldr.Type() != object.TypeTree {
		return nil, &object.UnexpectedTypeError{
			ID:       id,
			Expected: object.TypeTree,
			Actual:   ldr.Type(),
		}
	}

	return ldr.CachedBytes(), nil
}

func (it *CanonicalIterator) reset(raw []byte) error {
	it.raw = raw
	it.prevPtr = -1
	it.currPtr = 0
	it.nextPtr = 0
	it.base.SetEmptyPath()

	if !it.EOF() {
		return it.parseEntry()
	}

	return nil
}

// Base implements Iterator.
func (it *CanonicalIterator) Base() *Base { return it.base }

// IDBuffer implements Iterator; entry ids are read in place from the
// encoded tree.
func (it *CanonicalIterator) IDBuffer() []byte { return it.raw }

// IDOffset implements Iterator.
func (it *CanonicalIterator) IDOffset() int { return it.nextPtr - object.IDSize }

// First implements Iterator.
func (it *CanonicalIterator) First() bool { return it.currPtr == 0 }

// EOF implements Iterator.
func (it *CanonicalIterator) EOF() bool { return it.currPtr == len(it.raw) }

// Next implements Iterator.
func (it *CanonicalIterator) Next(delta int) error {
	if delta <= 0 {
		return fmt.Errorf("invalid step %d", delta)
	}

	if delta == 1 {
		it.prevPtr = it.currPtr
		it.currPtr = it.nextPtr

		if !it.EOF() {
			return it.parseEntry()
		}

		return nil
	}

	end := len(it.raw)
	ptr := it.nextPtr

	for delta--; delta > 0 && ptr != end; delta-- {
		it.prevPtr = ptr

		next, err := it.skipEntry(ptr)
		if err != nil {
			return err
		}

		ptr = next
	}

	if delta != 0 {
		return fmt.Errorf("step of %d entries past the end of the tree", delta)
	}

	it.currPtr = ptr

	if !it.EOF() {
		return it.parseEntry()
	}

	return nil
}

// Back implements Iterator. One step back onto the remembered previous
// entry is cheap; anything else rescans from the beginning of the tree,
// holding the last positions in a small trace, since the encoding cannot
// be read backwards.
func (it *CanonicalIterator) Back(delta int) error {
	if delta <= 0 {
		return fmt.Errorf("invalid step %d", delta)
	}

	if delta == 1 && it.prevPtr >= 0 {
		it.currPtr = it.prevPtr
		it.prevPtr = -1

		if !it.EOF() {
			return it.parseEntry()
		}

		return nil
	}

	trace := make([]int, delta+1)
	for i := range trace {
		trace[i] = -1
	}

	ptr := 0
	for ptr != it.currPtr {
		if ptr > it.currPtr {
			return it.corrupt("entry records are misaligned")
		}

		copy(trace, trace[1:])
		trace[delta] = ptr

		next, err := it.skipEntry(ptr)
		if err != nil {
			return err
		}

		ptr = next
	}

	if trace[1] == -1 {
		return fmt.Errorf("step of %d entries before the start of the tree", delta)
	}

	it.prevPtr = trace[0]
	it.currPtr = trace[1]

	return it.parseEntry()
}

// NewSubtreeIterator implements Iterator.
func (it *CanonicalIterator) NewSubtreeIterator(db *objectdb.Database, cur *objectdb.Cursor) (Iterator, error) {
	id := EntryID(it)

	if !it.base.Mode.IsTree() {
		return nil, &object.UnexpectedTypeError{
			ID:       id,
			Expected: object.TypeTree,
			Actual:   it.base.Mode.ObjectType(),
		}
	}

	raw, err := readTree(db, cur, id)
	if err != nil {
		return nil, err
	}

	child := &CanonicalIterator{base: NewChildBase(it.base), treeID: id}

	if err := child.reset(raw); err != nil {
		return nil, err
	}

	return child, nil
}

// parseEntry decodes the record at currPtr, populating mode and the path
// segment, and remembers where the following record begins.
func (it *CanonicalIterator) parseEntry() error {
	raw := it.raw
	ptr := it.currPtr

	var mode object.FileMode

	modeStart := ptr
	for {
		if ptr == len(raw) {
			return it.corrupt("truncated entry mode")
		}

		c := raw[ptr]
		ptr++

		if c == ' ' {
			if ptr-1 == modeStart {
				return it.corrupt("empty entry mode")
			}

			break
		}

		if c < '0' || c > '7' {
			return it.corrupt("invalid character in entry mode")
		}

		mode = mode<<3 + object.FileMode(c-'0')
	}

	nameStart := ptr
	for {
		if ptr == len(raw) {
			return it.corrupt("truncated entry name")
		}

		if raw[ptr] == 0 {
			break
		}

		ptr++
	}

	if ptr == nameStart {
		return it.corrupt("empty entry name")
	}

	if ptr+1+object.IDSize > len(raw) {
		return it.corrupt("truncated entry id")
	}

	it.base.Mode = mode
	it.base.AppendName(raw[nameStart:ptr])
	it.nextPtr = ptr + 1 + object.IDSize

	return nil
}

// skipEntry returns the offset just past the record starting at ptr
// without decoding it.
func (it *CanonicalIterator) skipEntry(ptr int) (int, error) {
	raw := it.raw

	for ptr < len(raw) && raw[ptr] != 0 {
		ptr++
	}

	ptr += 1 + object.IDSize
	if ptr > len(raw) {
		return 0, it.corrupt("truncated entry record")
	}

	return ptr, nil
}

func (it *CanonicalIterator) corrupt(why string) error {
	return &object.CorruptObjectError{ID: it.treeID, Why: why}
}
