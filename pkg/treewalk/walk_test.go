package treewalk

import (
	"testing"

	"github.com/aniknaemmm/GitSharp/pkg/object"
	"github.com/aniknaemmm/GitSharp/pkg/storage/memdb"
	"github.com/aniknaemmm/GitSharp/pkg/storage/objectdb"
	"github.com/stretchr/testify/require"
)

// TestTwoTreeWalk drives a pair of iterators the way a diff walker would:
// align entries by path, compare ids, and descend matching subtrees over
// the shared path buffer.
func TestTwoTreeWalk(t *testing.T) {
	store := memdb.New()
	db := objectdb.New(store)
	cur := objectdb.NewCursor()

	blob1 := store.Put(object.TypeBlob, []byte("shared contents"))
	blob2 := store.Put(object.TypeBlob, []byte("added later"))

	emptyTree := store.Put(object.TypeTree, nil)
	subTree := store.Put(object.TypeTree, encodeTree(
		testEntry{object.ModeRegular, "x", blob2},
	))

	tree1 := store.Put(object.TypeTree, encodeTree(
		testEntry{object.ModeRegular, "a", blob1},
		testEntry{object.ModeTree, "sub", emptyTree},
	))
	tree2 := store.Put(object.TypeTree, encodeTree(
		testEntry{object.ModeRegular, "a", blob1},
		testEntry{object.ModeTree, "sub", subTree},
	))

	it1, err := NewCanonicalIteratorFromStore(db, cur, tree1)
	require.NoError(t, err)
	it2, err := NewCanonicalIteratorFromStore(db, cur, tree2)
	require.NoError(t, err)

	// both sides start aligned on "a" with identical contents
	require.Equal(t, 0, it1.Base().PathCompare(it2.Base()))
	require.Equal(t, "a", it1.Base().EntryPathString())
	require.True(t, IDEqual(it1, it2))

	require.NoError(t, it1.Next(1))
	require.NoError(t, it2.Next(1))

	// "sub" differs: same path, different tree ids
	require.Equal(t, 0, it1.Base().PathCompare(it2.Base()))
	require.Equal(t, "sub", it2.Base().EntryPathString())
	require.False(t, IDEqual(it1, it2))

	// a walker marks aligned parents before descending
	it1.Base().Matches = it1.Base()
	it2.Base().Matches = it1.Base()

	sub1, err := it1.NewSubtreeIterator(db, cur)
	require.NoError(t, err)
	sub2, err := it2.NewSubtreeIterator(db, cur)
	require.NoError(t, err)

	// the empty side is exhausted at once; the other holds "sub/x"
	require.True(t, sub1.EOF())
	require.False(t, sub2.EOF())
	require.Equal(t, "sub/x", sub2.Base().EntryPathString())
	require.Equal(t, blob2, EntryID(sub2))

	require.NoError(t, sub2.Next(1))
	require.True(t, sub2.EOF())

	// ascending: the parents are still positioned on "sub"
	require.Equal(t, "sub", sub2.Base().Parent().EntryPathString())

	require.NoError(t, it1.Next(1))
	require.NoError(t, it2.Next(1))
	require.True(t, it1.EOF())
	require.True(t, it2.EOF())
}

// TestWalkWithEmptyStandIn pairs a real subtree against an EmptyIterator,
// the stand-in a walker uses when only one side has the directory.
func TestWalkWithEmptyStandIn(t *testing.T) {
	store := memdb.New()
	db := objectdb.New(store)
	cur := objectdb.NewCursor()

	blob := store.Put(object.TypeBlob, []byte("only here"))

	tree := store.Put(object.TypeTree, encodeTree(
		testEntry{object.ModeTree, "dir", store.Put(object.TypeTree, encodeTree(
			testEntry{object.ModeRegular, "f", blob},
		))},
	))

	it, err := NewCanonicalIteratorFromStore(db, cur, tree)
	require.NoError(t, err)
	require.Equal(t, "dir", it.Base().EntryPathString())

	sub, err := it.NewSubtreeIterator(db, cur)
	require.NoError(t, err)

	empty := NewEmptyIterator(it)
	require.True(t, empty.EOF())

	// everything under "dir" reports as present on one side only
	require.False(t, sub.EOF())
	require.Equal(t, "dir/f", sub.Base().EntryPathString())
	require.False(t, IDEqual(sub, empty))

	require.NoError(t, Skip(sub))
	require.True(t, sub.EOF())
}

// TestDeepWalkGrowsSharedBuffer descends a chain of directories whose
// combined path exceeds the initial buffer capacity, checking that every
// level keeps viewing one buffer.
func TestDeepWalkGrowsSharedBuffer(t *testing.T) {
	store := memdb.New()
	db := objectdb.New(store)
	cur := objectdb.NewCursor()

	const depth = 12
	name := "component-name" // 15 bytes per level with the separator

	leaf := store.Put(object.TypeBlob, []byte("leaf"))

	treeID := store.Put(object.TypeTree, encodeTree(
		testEntry{object.ModeRegular, "f", leaf},
	))
	for i := 0; i < depth; i++ {
		treeID = store.Put(object.TypeTree, encodeTree(
			testEntry{object.ModeTree, name, treeID},
		))
	}

	it, err := NewCanonicalIteratorFromStore(db, cur, treeID)
	require.NoError(t, err)

	want := ""
	cursor := Iterator(it)

	for i := 0; i < depth; i++ {
		require.True(t, cursor.Base().Mode.IsTree())
		want += name

		require.Equal(t, want, cursor.Base().EntryPathString())

		cursor, err = cursor.NewSubtreeIterator(db, cur)
		require.NoError(t, err)

		want += "/"
	}

	require.Equal(t, want+"f", cursor.Base().EntryPathString())
	require.Equal(t, leaf, EntryID(cursor))

	// the root still views the same storage the leaf grew
	require.Equal(t, &it.Base().EntryPath()[0], &cursor.Base().EntryPath()[0])
}
