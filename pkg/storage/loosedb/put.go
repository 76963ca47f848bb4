package loosedb

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/aniknaemmm/GitSharp/pkg/object"
	"github.com/google/uuid"
)

// Put stores the object, computes and returns its content address. Writing
// an object that is already stored only refreshes the index entry.
//
// The object file is written to a temporary name first and moved into
// place, so readers never observe a partially written object.
func (db *DB) Put(typ object.Type, data []byte) (object.ID, error) {
	id := object.CalculateID(typ, data)
	name := id.String()
	p := db.objectPath(name)

	if _, err := os.Stat(p); err == nil {
		return id, db.indexPut(id, typ)
	}

	frame := append(object.Header(typ, len(data)), data...)
	payload := db.compress.Compress(frame)

	dir := filepath.Dir(p)
	if err := os.MkdirAll(dir, db.perm|0o110); err != nil {
		return id, fmt.Errorf("could not create fanout directory: %w", err)
	}

	tmp := filepath.Join(dir, "tmp_"+uuid.New().String())
	if err := os.WriteFile(tmp, payload, db.perm); err != nil {
		return id, fmt.Errorf("could not write object file: %w", err)
	}

	if err := os.Rename(tmp, p); err != nil {
		_ = os.Remove(tmp)

		return id, fmt.Errorf("could not move object file into place: %w", err)
	}

	if err := db.indexPut(id, typ); err != nil {
		return id, fmt.Errorf("could not index object: %w", err)
	}

	return id, nil
}
