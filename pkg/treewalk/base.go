package treewalk

import (
	"github.com/aniknaemmm/GitSharp/pkg/object"
)

// defaultPathSize is the initial capacity of a walk's shared path buffer.
const defaultPathSize = 128

// Base carries the positional state common to all iterator
// implementations: the current entry's mode, its span within the path
// buffer shared across the parent chain, and the sibling match references
// maintained by multi-tree walkers.
type Base struct {
	// Mode holds the raw mode bits of the current entry.
	Mode object.FileMode

	// Matches is a non-owning reference to the state of a sibling iterator
	// from another tree whose current entry has an equal path. Maintained
	// by multi-tree walkers for alignment; nil outside a walk.
	Matches *Base

	// MatchShift counts forced alignment advances applied to resolve
	// directory/file name collisions.
	MatchShift int

	parent *Base

	// path is the buffer shared with every ancestor. Bytes before
	// pathOffset belong to ancestors and are never written through this
	// Base; [pathOffset, pathLen) is this iterator's own segment; bytes
	// past pathLen are undefined.
	path       []byte
	pathOffset int
	pathLen    int
}

// NewBase creates root iterator state with no path prefix.
func NewBase() *Base {
	return &Base{path: make([]byte, defaultPathSize)}
}

// NewBaseWithPrefix creates root iterator state whose entries all appear
// under the given prefix. A trailing separator is appended when absent.
func NewBaseWithPrefix(prefix string) *Base {
	if prefix == "" {
		return NewBase()
	}

	p := []byte(prefix)
	n := len(p)

	size := defaultPathSize
	if n+1 > size {
		size = n + 1
	}

	b := &Base{path: make([]byte, size)}
	copy(b.path, p)

	if b.path[n-1] != '/' {
		b.path[n] = '/'
		n++
	}

	b.pathOffset = n

	return b
}

// NewChildBase creates iterator state for a subtree of p's current entry.
// The child shares p's path buffer and starts one separator past p's
// current path length.
func NewChildBase(p *Base) *Base {
	c := &Base{
		parent:     p,
		path:       p.path,
		pathOffset: p.pathLen + 1,
	}

	if c.pathOffset > len(c.path) {
		c.GrowPath(p.pathLen)
	}

	c.path[c.pathOffset-1] = '/'

	return c
}

// NewChildBaseAt creates child iterator state over a caller-supplied path
// buffer and offset, for descents computed outside the iterator.
func NewChildBaseAt(p *Base, childPath []byte, childPathOffset int) *Base {
	return &Base{
		parent:     p,
		path:       childPath,
		pathOffset: childPathOffset,
	}
}

// Parent returns the state of the iterator this one descended from, or
// nil for a root.
func (b *Base) Parent() *Base {
	return b.parent
}

// GrowPath doubles the path buffer capacity, preserving the first length
// bytes. Every iterator in the ancestor chain still viewing the old buffer
// is repointed to the new one.
func (b *Base) GrowPath(length int) {
	b.setPathCapacity(len(b.path)*2, length)
}

// EnsurePathCapacity grows the path buffer to at least capacity bytes,
// preserving the first length bytes. No-op when the buffer is already
// large enough.
func (b *Base) EnsurePathCapacity(capacity, length int) {
	if len(b.path) >= capacity {
		return
	}

	newCap := len(b.path)
	for newCap < capacity && newCap > 0 {
		newCap <<= 1
	}

	b.setPathCapacity(newCap, length)
}

// setPathCapacity reallocates the shared buffer and repoints the whole
// ancestor chain in one step, so cooperating iterators never view buffers
// of different identity.
func (b *Base) setPathCapacity(capacity, length int) {
	old := b.path

	grown := make([]byte, capacity)
	copy(grown, old[:length])

	for p := b; p != nil && sameBuffer(p.path, old); p = p.parent {
		p.path = grown
	}
}

func sameBuffer(a, b []byte) bool {
	return len(a) != 0 && len(b) != 0 && &a[0] == &b[0]
}

// AppendName writes the current entry's name into this iterator's path
// segment, growing the shared buffer as needed, and updates the path
// length accordingly.
func (b *Base) AppendName(name []byte) {
	end := b.pathOffset + len(name)
	if end > len(b.path) {
		b.EnsurePathCapacity(end, b.pathOffset)
	}

	copy(b.path[b.pathOffset:], name)
	b.pathLen = end
}

// SetEmptyPath marks the current position as having no entry name, e.g.
// for iterators over empty trees.
func (b *Base) SetEmptyPath() {
	b.pathLen = b.pathOffset
}

// EntryPath returns the full root-to-entry path of the current entry. The
// slice views the shared buffer and is valid until the iterator moves.
func (b *Base) EntryPath() []byte {
	return b.path[:b.pathLen]
}

// EntryPathString returns the full path of the current entry as a string.
func (b *Base) EntryPathString() string {
	return string(b.path[:b.pathLen])
}

// Name returns only the final path segment of the current entry.
func (b *Base) Name() []byte {
	return b.path[b.pathOffset:b.pathLen]
}

// NameString returns the final path segment as a string.
func (b *Base) NameString() string {
	return string(b.Name())
}

// NameLength returns the length of the final path segment.
func (b *Base) NameLength() int {
	return b.pathLen - b.pathOffset
}

// PathCompare compares the full path of this entry against o's current
// entry under the canonical tree order, returning -1, 0 or +1.
func (b *Base) PathCompare(o *Base) int {
	return b.PathCompareMode(o, o.Mode)
}

// PathCompareMode is PathCompare with the other entry's mode supplied by
// the caller, for comparisons against an entry the other iterator is not
// currently positioned on.
func (b *Base) PathCompareMode(o *Base, oMode object.FileMode) int {
	// When both sides descend from parents a walker already aligned,
	// everything before this entry's offset is known equal and is not
	// evaluated again.
	return b.pathCompare(o, oMode, alreadyMatch(b, o))
}

func alreadyMatch(a, b *Base) int {
	for {
		ap, bp := a.parent, b.parent
		if ap == nil || bp == nil {
			return 0
		}

		if ap.Matches == bp.Matches {
			return a.pathOffset
		}

		a, b = ap, bp
	}
}

// pathCompare orders entries by raw byte comparison of their full paths.
// When one path runs out of literal bytes, its next byte is synthesized
// from the entry's mode: a separator for tree entries, the lowest byte
// otherwise. That makes "a" as a tree sort as "a/", keeping subtree
// contents adjacent to their naming entry ("a.c" < "a/c" < "a0c").
func (b *Base) pathCompare(o *Base, oMode object.FileMode, cPos int) int {
	cBuf, cLen := b.path, b.pathLen
	oBuf, oLen := o.path, o.pathLen

	ci, oi := cPos, cPos
	for ci < cLen && oi < oLen {
		if d := int(cBuf[ci]) - int(oBuf[oi]); d != 0 {
			return sign(d)
		}

		ci++
		oi++
	}

	if ci < cLen {
		return sign(int(cBuf[ci]) - lastPathChar(oMode))
	}

	if oi < oLen {
		return sign(lastPathChar(b.Mode) - int(oBuf[oi]))
	}

	return sign(lastPathChar(b.Mode) - lastPathChar(oMode))
}

func lastPathChar(mode object.FileMode) int {
	if mode.IsTree() {
		return '/'
	}

	return 0
}

func sign(v int) int {
	switch {
	case v < 0:
		return -1
	case v > 0:
		return 1
	default:
		return 0
	}
}
