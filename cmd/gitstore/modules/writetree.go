package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/aniknaemmm/GitSharp/pkg/object"
	"github.com/aniknaemmm/GitSharp/pkg/storage/loosedb"
	"github.com/aniknaemmm/GitSharp/pkg/treewalk"
	"github.com/spf13/cobra"
)

var writeTreeCmd = &cobra.Command{
	Use:   "write-tree <directory>",
	Short: "Store a directory as blob and tree objects, printing the root tree id",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		db, release, err := openStore()
		if err != nil {
			return err
		}
		defer release()

		id, err := writeTree(db.Backend().(*loosedb.DB), args[0])
		if err != nil {
			return err
		}

		fmt.Println(id)

		return nil
	},
}

// sortKey orders directory entries canonically: a subtree sorts as if its
// name ended in a separator.
func sortKey(e os.DirEntry) string {
	if e.IsDir() {
		return e.Name() + "/"
	}

	return e.Name()
}

func writeTree(store *loosedb.DB, dir string) (object.ID, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return object.ID{}, err
	}

	sort.Slice(entries, func(i, j int) bool {
		return sortKey(entries[i]) < sortKey(entries[j])
	})

	var f treewalk.Formatter

	for _, e := range entries {
		p := filepath.Join(dir, e.Name())

		if e.IsDir() {
			id, err := writeTree(store, p)
			if err != nil {
				return object.ID{}, err
			}

			f.Append(object.ModeTree, []byte(e.Name()), id)

			continue
		}

		data, err := os.ReadFile(p)
		if err != nil {
			return object.ID{}, err
		}

		id, err := store.Put(object.TypeBlob, data)
		if err != nil {
			return object.ID{}, err
		}

		mode := object.ModeRegular

		if fi, err := e.Info(); err == nil && fi.Mode()&0o111 != 0 {
			mode = object.ModeExecutable
		}

		f.Append(mode, []byte(e.Name()), id)
	}

	return store.Put(object.TypeTree, f.Bytes())
}

func init() {
	rootCmd.AddCommand(writeTreeCmd)
}
