package objectdb

import "github.com/aniknaemmm/GitSharp/pkg/object"

// Loader provides access to the decoded contents of a single stored
// object.
type Loader struct {
	typ  object.Type
	data []byte
}

// NewLoader constructs a Loader over already decoded object contents.
func NewLoader(typ object.Type, data []byte) *Loader {
	return &Loader{
		typ:  typ,
		data: data,
	}
}

// Type returns the kind of the object.
func (l *Loader) Type() object.Type {
	return l.typ
}

// Size returns the decoded size of the object in bytes.
func (l *Loader) Size() int64 {
	return int64(len(l.data))
}

// CachedBytes returns the decoded contents. The slice is shared with the
// loader and must not be modified.
func (l *Loader) CachedBytes() []byte {
	return l.data
}
