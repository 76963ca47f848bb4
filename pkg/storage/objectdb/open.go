package objectdb

import (
	"errors"

	"github.com/aniknaemmm/GitSharp/pkg/object"
)

// OpenObject returns a loader for the object's contents, searching this
// database and its alternates in the same fast-then-slow order as
// HasObject. Unlike HasObject, the fast path is not retried.
//
// Returns an error wrapping object.ErrNotFound if the object is missing
// everywhere; that is the normal miss result, distinct from storage
// failures.
func (db *Database) OpenObject(cur *Cursor, id object.ID) (*Loader, error) {
	if db.metrics != nil {
		defer elapsed(db.metrics.AddOpenDuration)()
	}

	ldr, err := db.openObjectFast(cur, id)
	if err == nil {
		return ldr, nil
	}
	if !errors.Is(err, object.ErrNotFound) {
		return nil, err
	}

	return db.openObjectSlow(cur, id.String())
}

func (db *Database) openObjectFast(cur *Cursor, id object.ID) (*Loader, error) {
	ldr, err := db.be.OpenFast(cur, id)
	if err == nil || !errors.Is(err, object.ErrNotFound) {
		return ldr, err
	}

	for _, alt := range db.Alternates() {
		ldr, err = alt.openObjectFast(cur, id)
		if err == nil || !errors.Is(err, object.ErrNotFound) {
			return ldr, err
		}
	}

	return nil, object.ErrNotFound
}

func (db *Database) openObjectSlow(cur *Cursor, name string) (*Loader, error) {
	if sb, ok := db.be.(SlowBackend); ok {
		ldr, err := sb.OpenSlow(cur, name)
		if err == nil || !errors.Is(err, object.ErrNotFound) {
			return ldr, err
		}
	}

	for _, alt := range db.Alternates() {
		ldr, err := alt.openObjectSlow(cur, name)
		if err == nil || !errors.Is(err, object.ErrNotFound) {
			return ldr, err
		}
	}

	return nil, object.ErrNotFound
}

// OpenObjectInAllPacks collects a loader from every pack of this database
// and of all its alternates that can produce the object, not just the
// first match. Callers use it to disambiguate multiple physical copies.
func (db *Database) OpenObjectInAllPacks(cur *Cursor, id object.ID) ([]*Loader, error) {
	var out []*Loader

	if err := db.openObjectInAllPacks(&out, cur, id); err != nil {
		return nil, err
	}

	return out, nil
}

func (db *Database) openObjectInAllPacks(out *[]*Loader, cur *Cursor, id object.ID) error {
	if pb, ok := db.be.(PackBackend); ok {
		ldrs, err := pb.OpenInPacks(cur, id)
		if err != nil {
			return err
		}

		*out = append(*out, ldrs...)
	}

	for _, alt := range db.Alternates() {
		if err := alt.openObjectInAllPacks(out, cur, id); err != nil {
			return err
		}
	}

	return nil
}
