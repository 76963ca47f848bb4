package object

import (
	"bytes"
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"strconv"
)

// IDSize is the number of bytes in a binary object id.
const IDSize = sha1.Size

// ID is a content address of an object: a fixed-length binary hash of the
// object's framed payload. The zero value addresses no object.
type ID [IDSize]byte

var zeroID ID

// NewID constructs an ID from a raw binary representation.
func NewID(b []byte) (ID, error) {
	var id ID

	if len(b) != IDSize {
		return id, fmt.Errorf("invalid object id length %d, expected %d", len(b), IDSize)
	}

	copy(id[:], b)

	return id, nil
}

// IDFromRaw extracts an ID from a backing buffer at the given offset. The
// caller guarantees that at least IDSize bytes are available.
func IDFromRaw(buf []byte, off int) ID {
	var id ID

	copy(id[:], buf[off:off+IDSize])

	return id
}

// DecodeString parses the hex form of an object id.
func DecodeString(s string) (ID, error) {
	var id ID

	if len(s) != hex.EncodedLen(IDSize) {
		return id, fmt.Errorf("invalid object id string length %d", len(s))
	}

	if _, err := hex.Decode(id[:], []byte(s)); err != nil {
		return id, fmt.Errorf("invalid object id string: %w", err)
	}

	return id, nil
}

// IsZero checks if the id addresses no object.
func (id ID) IsZero() bool {
	return id == zeroID
}

// Compare performs a byte-wise comparison, returning -1, 0 or 1.
func (id ID) Compare(other ID) int {
	return bytes.Compare(id[:], other[:])
}

// String implements fmt.Stringer, returning the hex form of the id.
func (id ID) String() string {
	return hex.EncodeToString(id[:])
}

// Header returns the canonical framing prepended to an object's data before
// hashing and storage: "<type> <size>\x00".
func Header(typ Type, size int) []byte {
	h := make([]byte, 0, len(typ.String())+12)
	h = append(h, typ.String()...)
	h = append(h, ' ')
	h = strconv.AppendInt(h, int64(size), 10)
	h = append(h, 0)

	return h
}

// CalculateID computes the content address of an object as the SHA-1 of its
// framed payload.
func CalculateID(typ Type, data []byte) ID {
	h := sha1.New()
	h.Write(Header(typ, len(data)))
	h.Write(data)

	var id ID
	h.Sum(id[:0])

	return id
}
