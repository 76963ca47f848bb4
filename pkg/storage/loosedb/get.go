package loosedb

import (
	"bytes"
	"fmt"
	"os"
	"strconv"

	"github.com/aniknaemmm/GitSharp/pkg/object"
	"github.com/aniknaemmm/GitSharp/pkg/storage/objectdb"
	"go.uber.org/zap"
)

// HasFast implements objectdb.Backend via the bbolt index.
func (db *DB) HasFast(id object.ID) (bool, error) {
	return db.indexHas(id)
}

// OpenFast implements objectdb.Backend: an index hit is resolved by
// reading the object file. A hit whose file has gone missing is reported
// as a miss so the lookup can continue through slow paths and alternates.
func (db *DB) OpenFast(cur *objectdb.Cursor, id object.ID) (*objectdb.Loader, error) {
	ok, err := db.indexHas(id)
	if err != nil {
		return nil, err
	}

	if !ok {
		return nil, fmt.Errorf("%w: %s", object.ErrNotFound, id)
	}

	name := id.String()

	typ, data, err := db.readObject(cur, name)
	if err != nil {
		if os.IsNotExist(err) {
			db.log.Warn("object is indexed but its file is missing",
				zap.String("name", name))

			return nil, fmt.Errorf("%w: %s", object.ErrNotFound, id)
		}

		return nil, err
	}

	return objectdb.NewLoader(typ, data), nil
}

// HasSlow implements objectdb.SlowBackend by probing the object file
// derived from the hex name, bypassing the index.
func (db *DB) HasSlow(name string) (bool, error) {
	_, err := os.Stat(db.objectPath(name))
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}

		return false, fmt.Errorf("could not stat object file %s: %w", name, err)
	}

	return true, nil
}

// OpenSlow implements objectdb.SlowBackend.
func (db *DB) OpenSlow(cur *objectdb.Cursor, name string) (*objectdb.Loader, error) {
	typ, data, err := db.readObject(cur, name)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", object.ErrNotFound, name)
		}

		return nil, err
	}

	return objectdb.NewLoader(typ, data), nil
}

// readObject reads, decompresses and deframes the object file named by the
// hex name. The decoded frame is cached on the cursor when one is given.
func (db *DB) readObject(cur *objectdb.Cursor, name string) (object.Type, []byte, error) {
	p := db.objectPath(name)

	load := func() ([]byte, error) {
		raw, err := os.ReadFile(p)
		if err != nil {
			return nil, err
		}

		return db.compress.Decompress(raw)
	}

	var (
		frame []byte
		err   error
	)

	if cur != nil {
		frame, err = cur.Window(p, load)
	} else {
		frame, err = load()
	}
	if err != nil {
		return 0, nil, err
	}

	return deframe(name, frame)
}

// deframe splits "<type> <size>\x00<data>" and validates it.
func deframe(name string, frame []byte) (object.Type, []byte, error) {
	sp := bytes.IndexByte(frame, ' ')
	if sp < 0 {
		return 0, nil, corrupt(name, "no type delimiter")
	}

	typ, err := object.TypeFromString(string(frame[:sp]))
	if err != nil {
		return 0, nil, corrupt(name, err.Error())
	}

	nul := bytes.IndexByte(frame[sp+1:], 0)
	if nul < 0 {
		return 0, nil, corrupt(name, "no header terminator")
	}

	size, err := strconv.ParseInt(string(frame[sp+1:sp+1+nul]), 10, 64)
	if err != nil {
		return 0, nil, corrupt(name, "invalid size")
	}

	data := frame[sp+1+nul+1:]
	if int64(len(data)) != size {
		return 0, nil, corrupt(name, fmt.Sprintf("size %d does not match contents length %d", size, len(data)))
	}

	return typ, data, nil
}

func corrupt(name, why string) error {
	id, err := object.DecodeString(name)
	if err != nil {
		return &object.CorruptObjectError{Why: why}
	}

	return &object.CorruptObjectError{ID: id, Why: why}
}
