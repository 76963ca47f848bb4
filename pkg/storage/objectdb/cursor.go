package objectdb

import (
	"fmt"

	"github.com/hashicorp/golang-lru/v2/simplelru"
)

// defaultWindowCount limits how many decoded windows a cursor keeps alive.
const defaultWindowCount = 32

// Cursor is per-call scratch state for read operations: it keeps a small
// LRU cache of decoded windows into backing storage so that repeated reads
// within one logical operation (e.g. a tree walk) don't hit the storage
// again.
//
// A Cursor is owned by a single call site and must not be shared between
// concurrent calls; the cache is deliberately unsynchronized.
type Cursor struct {
	windows *simplelru.LRU[string, []byte]
}

// NewCursor creates a ready-to-use Cursor.
func NewCursor() *Cursor {
	c, err := simplelru.NewLRU[string, []byte](defaultWindowCount, nil)
	if err != nil {
		// only possible with a non-positive size, which is a programmer error
		panic(fmt.Sprintf("could not create window cache: %v", err))
	}

	return &Cursor{windows: c}
}

// Window returns the cached window for key, invoking load on a cache miss
// and retaining its result.
func (c *Cursor) Window(key string, load func() ([]byte, error)) ([]byte, error) {
	if b, ok := c.windows.Get(key); ok {
		return b, nil
	}

	b, err := load()
	if err != nil {
		return nil, err
	}

	c.windows.Add(key, b)

	return b, nil
}

// Release drops all cached windows. The cursor remains usable.
func (c *Cursor) Release() {
	c.windows.Purge()
}
