package loosedb

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/aniknaemmm/GitSharp/pkg/object"
	"github.com/aniknaemmm/GitSharp/pkg/storage/objectdb"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func newTestDB(t *testing.T, opts ...Option) *DB {
	db := New(append([]Option{
		WithPath(filepath.Join(t.TempDir(), "objects")),
		WithLogger(zaptest.NewLogger(t)),
	}, opts...)...)

	require.NoError(t, db.Create())

	t.Cleanup(func() {
		require.NoError(t, db.Close())
	})

	return db
}

func TestExistsCreate(t *testing.T) {
	p := filepath.Join(t.TempDir(), "objects")

	db := New(WithPath(p), WithLogger(zaptest.NewLogger(t)))
	require.False(t, db.Exists())

	require.NoError(t, db.Create())
	require.True(t, db.Exists())

	// repeated creation is a no-op
	require.NoError(t, db.Create())

	require.NoError(t, db.Close())
}

func TestPutAndLookup(t *testing.T) {
	db := newTestDB(t)
	cur := objectdb.NewCursor()

	data := []byte("stored contents")

	id, err := db.Put(object.TypeBlob, data)
	require.NoError(t, err)
	require.Equal(t, object.CalculateID(object.TypeBlob, data), id)

	ok, err := db.HasFast(id)
	require.NoError(t, err)
	require.True(t, ok)

	ldr, err := db.OpenFast(cur, id)
	require.NoError(t, err)
	require.Equal(t, object.TypeBlob, ldr.Type())
	require.Equal(t, data, ldr.CachedBytes())

	ok, err = db.HasSlow(id.String())
	require.NoError(t, err)
	require.True(t, ok)

	ldr, err = db.OpenSlow(cur, id.String())
	require.NoError(t, err)
	require.Equal(t, data, ldr.CachedBytes())

	// storing the same contents again yields the same address
	again, err := db.Put(object.TypeBlob, data)
	require.NoError(t, err)
	require.Equal(t, id, again)
}

func TestLookupMiss(t *testing.T) {
	db := newTestDB(t)

	id := object.CalculateID(object.TypeBlob, []byte("never stored"))

	ok, err := db.HasFast(id)
	require.NoError(t, err)
	require.False(t, ok)

	_, err = db.OpenFast(objectdb.NewCursor(), id)
	require.ErrorIs(t, err, object.ErrNotFound)

	ok, err = db.HasSlow(id.String())
	require.NoError(t, err)
	require.False(t, ok)

	_, err = db.OpenSlow(objectdb.NewCursor(), id.String())
	require.ErrorIs(t, err, object.ErrNotFound)
}

func TestSlowPathAfterIndexLoss(t *testing.T) {
	db := newTestDB(t)

	data := []byte("survives index loss")

	id, err := db.Put(object.TypeBlob, data)
	require.NoError(t, err)

	require.NoError(t, db.indexDelete(id))

	// the fast path no longer sees the object
	ok, err := db.HasFast(id)
	require.NoError(t, err)
	require.False(t, ok)

	// the database still resolves it through the slow path
	odb := objectdb.New(db, objectdb.WithLogger(zaptest.NewLogger(t)))

	ok, err = odb.HasObject(id)
	require.NoError(t, err)
	require.True(t, ok)

	ldr, err := odb.OpenObject(objectdb.NewCursor(), id)
	require.NoError(t, err)
	require.Equal(t, data, ldr.CachedBytes())
}

func TestIndexedButFileMissing(t *testing.T) {
	db := newTestDB(t)

	id, err := db.Put(object.TypeBlob, []byte("about to vanish"))
	require.NoError(t, err)

	require.NoError(t, os.Remove(db.objectPath(id.String())))

	// the stale index entry degrades to a regular miss
	_, err = db.OpenFast(objectdb.NewCursor(), id)
	require.ErrorIs(t, err, object.ErrNotFound)

	odb := objectdb.New(db, objectdb.WithLogger(zaptest.NewLogger(t)))

	_, err = odb.OpenObject(objectdb.NewCursor(), id)
	require.ErrorIs(t, err, object.ErrNotFound)
}

func TestReindex(t *testing.T) {
	db := newTestDB(t)

	id1, err := db.Put(object.TypeBlob, []byte("first"))
	require.NoError(t, err)
	id2, err := db.Put(object.TypeTree, nil)
	require.NoError(t, err)

	require.NoError(t, db.indexDelete(id1))
	require.NoError(t, db.indexDelete(id2))

	require.NoError(t, db.Reindex())

	for _, id := range []object.ID{id1, id2} {
		ok, err := db.HasFast(id)
		require.NoError(t, err)
		require.True(t, ok)
	}

	ldr, err := db.OpenFast(objectdb.NewCursor(), id2)
	require.NoError(t, err)
	require.Equal(t, object.TypeTree, ldr.Type())
	require.Empty(t, ldr.CachedBytes())
}

func TestLoadAlternates(t *testing.T) {
	log := zaptest.NewLogger(t)

	// absolute chain member; closed before the chain is loaded so the
	// index file lock is free for the alternate's own handle
	abs := New(WithPath(filepath.Join(t.TempDir(), "abs")), WithLogger(log))
	require.NoError(t, abs.Create())

	absID, err := abs.Put(object.TypeBlob, []byte("from absolute alternate"))
	require.NoError(t, err)
	require.NoError(t, abs.Close())

	primary := newTestDB(t)

	// relative chain member, resolved against the primary's root
	rel := New(WithPath(filepath.Join(primary.Path(), "nested")), WithLogger(log))
	require.NoError(t, rel.Create())

	relID, err := rel.Put(object.TypeBlob, []byte("from relative alternate"))
	require.NoError(t, err)
	require.NoError(t, rel.Close())

	altFile := filepath.Join(primary.Path(), infoDirName, alternatesFileName)
	contents := "# chained stores\n\n" + abs.Path() + "\nnested\n"
	require.NoError(t, os.WriteFile(altFile, []byte(contents), 0o640))

	odb := objectdb.New(primary, objectdb.WithLogger(log))
	t.Cleanup(odb.CloseAlternates)

	require.Len(t, odb.Alternates(), 2)

	for _, id := range []object.ID{absID, relID} {
		ok, err := odb.HasObject(id)
		require.NoError(t, err)
		require.True(t, ok)
	}

	ldr, err := odb.OpenObject(objectdb.NewCursor(), relID)
	require.NoError(t, err)
	require.Equal(t, []byte("from relative alternate"), ldr.CachedBytes())
}

func TestLoadAlternatesMissingFile(t *testing.T) {
	db := newTestDB(t)

	alts, err := db.LoadAlternates()
	require.NoError(t, err)
	require.Empty(t, alts)
}

func TestCompressionToggle(t *testing.T) {
	data := bytes.Repeat([]byte("compressible "), 64)

	plain := newTestDB(t, WithCompression(false))

	id, err := plain.Put(object.TypeBlob, data)
	require.NoError(t, err)

	raw, err := os.ReadFile(plain.objectPath(id.String()))
	require.NoError(t, err)
	require.True(t, bytes.HasPrefix(raw, []byte("blob ")))

	packed := newTestDB(t)

	id, err = packed.Put(object.TypeBlob, data)
	require.NoError(t, err)

	raw, err = os.ReadFile(packed.objectPath(id.String()))
	require.NoError(t, err)
	require.False(t, bytes.HasPrefix(raw, []byte("blob ")))

	// both stores read their objects back identically
	for _, db := range []*DB{plain, packed} {
		ldr, err := db.OpenSlow(objectdb.NewCursor(), id.String())
		require.NoError(t, err)
		require.Equal(t, data, ldr.CachedBytes())
	}
}

func TestOpenSlowCorruptObject(t *testing.T) {
	db := newTestDB(t)

	id := object.CalculateID(object.TypeBlob, []byte("payload"))
	name := id.String()

	writeRaw := func(frame string) {
		p := db.objectPath(name)
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o750))
		require.NoError(t, os.WriteFile(p, []byte(frame), 0o640))
	}

	var corruptErr *object.CorruptObjectError

	for _, frame := range []string{
		"noheader",           // no type delimiter
		"directory 3\x00abc", // unknown type
		"blob 3abc",          // no header terminator
		"blob many\x00abc",   // invalid size
		"blob 4\x00abc",      // size does not match contents
	} {
		writeRaw(frame)

		_, err := db.OpenSlow(objectdb.NewCursor(), name)
		require.Error(t, err, "frame %q", frame)
		require.True(t, errors.As(err, &corruptErr), "frame %q", frame)
		require.Equal(t, id, corruptErr.ID)
	}
}
