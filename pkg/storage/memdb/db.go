// Package memdb provides a map-backed object database backend, mainly for
// tests and tooling that needs a store without touching the filesystem.
package memdb

import (
	"fmt"
	"sync"

	"github.com/aniknaemmm/GitSharp/pkg/object"
	"github.com/aniknaemmm/GitSharp/pkg/storage/objectdb"
)

type storedObject struct {
	typ  object.Type
	data []byte
}

// DB is an in-memory object store. It implements objectdb.Backend; its
// whole object set is treated as a single pack for the purposes of
// objectdb.PackBackend.
//
// DB is safe for concurrent use.
type DB struct {
	mtx sync.RWMutex

	objects map[object.ID]storedObject

	alternates []*objectdb.Database
}

// Option represents DB constructor option.
type Option func(*DB)

// New creates and returns a ready-to-use DB.
func New(opts ...Option) *DB {
	db := &DB{
		objects: make(map[object.ID]storedObject),
	}

	for i := range opts {
		opts[i](db)
	}

	return db
}

// WithAlternates returns option to statically chain alternate databases.
func WithAlternates(alts ...*objectdb.Database) Option {
	return func(db *DB) {
		db.alternates = alts
	}
}

// Put stores an object and returns its content address.
func (db *DB) Put(typ object.Type, data []byte) object.ID {
	id := object.CalculateID(typ, data)

	cp := make([]byte, len(data))
	copy(cp, data)

	db.mtx.Lock()
	db.objects[id] = storedObject{typ: typ, data: cp}
	db.mtx.Unlock()

	return id
}

// Delete removes an object if present.
func (db *DB) Delete(id object.ID) {
	db.mtx.Lock()
	delete(db.objects, id)
	db.mtx.Unlock()
}

// Exists implements objectdb.Backend. Memory is always initialized.
func (db *DB) Exists() bool {
	return true
}

// Create implements objectdb.Backend.
func (db *DB) Create() error {
	return nil
}

// HasFast implements objectdb.Backend.
func (db *DB) HasFast(id object.ID) (bool, error) {
	db.mtx.RLock()
	_, ok := db.objects[id]
	db.mtx.RUnlock()

	return ok, nil
}

// OpenFast implements objectdb.Backend.
func (db *DB) OpenFast(_ *objectdb.Cursor, id object.ID) (*objectdb.Loader, error) {
	db.mtx.RLock()
	obj, ok := db.objects[id]
	db.mtx.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %s", object.ErrNotFound, id)
	}

	return objectdb.NewLoader(obj.typ, obj.data), nil
}

// OpenInPacks implements objectdb.PackBackend, treating the whole object
// set as a single pack.
func (db *DB) OpenInPacks(_ *objectdb.Cursor, id object.ID) ([]*objectdb.Loader, error) {
	db.mtx.RLock()
	obj, ok := db.objects[id]
	db.mtx.RUnlock()

	if !ok {
		return nil, nil
	}

	return []*objectdb.Loader{objectdb.NewLoader(obj.typ, obj.data)}, nil
}

// LoadAlternates implements objectdb.AlternateBackend, returning the
// statically configured chain.
func (db *DB) LoadAlternates() ([]*objectdb.Database, error) {
	return db.alternates, nil
}
