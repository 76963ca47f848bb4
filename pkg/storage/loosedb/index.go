package loosedb

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/aniknaemmm/GitSharp/pkg/object"
	"go.etcd.io/bbolt"
)

var objectsBucket = []byte("objects")

// indexPut records the object in the fast-path index. The value keeps the
// object type so existence checks never touch the object file.
func (db *DB) indexPut(id object.ID, typ object.Type) error {
	return db.boltDB.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(objectsBucket)
		if b == nil {
			return fmt.Errorf("index is not initialized")
		}

		return b.Put(id[:], []byte{byte(typ)})
	})
}

// indexHas checks the fast-path index for the object.
func (db *DB) indexHas(id object.ID) (bool, error) {
	var ok bool

	err := db.boltDB.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket(objectsBucket)
		if b == nil {
			return nil
		}

		ok = b.Get(id[:]) != nil

		return nil
	})

	return ok, err
}

// indexDelete drops the object from the fast-path index, leaving the
// object file untouched.
func (db *DB) indexDelete(id object.ID) error {
	return db.boltDB.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(objectsBucket)
		if b == nil {
			return nil
		}

		return b.Delete(id[:])
	})
}

// Reindex rebuilds the fast-path index from the fanout directories. Used
// when the index file was lost or went stale relative to the object files.
func (db *DB) Reindex() error {
	entries, err := os.ReadDir(db.path)
	if err != nil {
		return fmt.Errorf("could not list store root: %w", err)
	}

	return db.boltDB.Update(func(tx *bbolt.Tx) error {
		if err := tx.DeleteBucket(objectsBucket); err != nil && err != bbolt.ErrBucketNotFound {
			return err
		}

		b, err := tx.CreateBucket(objectsBucket)
		if err != nil {
			return err
		}

		for _, dir := range entries {
			if !dir.IsDir() || len(dir.Name()) != fanoutLen {
				continue
			}

			files, err := os.ReadDir(filepath.Join(db.path, dir.Name()))
			if err != nil {
				return fmt.Errorf("could not list fanout directory %s: %w", dir.Name(), err)
			}

			for _, f := range files {
				name := dir.Name() + f.Name()

				id, err := object.DecodeString(name)
				if err != nil {
					continue // not an object file
				}

				typ, _, err := db.readObject(nil, name)
				if err != nil {
					return fmt.Errorf("could not read object %s: %w", name, err)
				}

				if err := b.Put(id[:], []byte{byte(typ)}); err != nil {
					return err
				}
			}
		}

		return nil
	})
}
