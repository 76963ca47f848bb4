package treewalk

import (
	"strconv"

	"github.com/aniknaemmm/GitSharp/pkg/object"
)

// Formatter builds the canonical encoding of a tree object. Entries must
// be appended in canonical order (see Base.PathCompare); the formatter
// does not sort.
type Formatter struct {
	buf []byte
}

// Append adds one entry record to the tree being built.
func (f *Formatter) Append(mode object.FileMode, name []byte, id object.ID) {
	f.buf = strconv.AppendUint(f.buf, uint64(mode), 8)
	f.buf = append(f.buf, ' ')
	f.buf = append(f.buf, name...)
	f.buf = append(f.buf, 0)
	f.buf = append(f.buf, id[:]...)
}

// Bytes returns the encoded tree contents.
func (f *Formatter) Bytes() []byte {
	return f.buf
}

// ID computes the content address the encoded tree would be stored under.
func (f *Formatter) ID() object.ID {
	return object.CalculateID(object.TypeTree, f.buf)
}
