package cmd

import (
	"fmt"

	"github.com/aniknaemmm/GitSharp/pkg/object"
	"github.com/aniknaemmm/GitSharp/pkg/storage/objectdb"
	"github.com/aniknaemmm/GitSharp/pkg/treewalk"
	"github.com/spf13/cobra"
)

var lsTreeRecurse bool

var lsTreeCmd = &cobra.Command{
	Use:   "ls-tree <tree-id>",
	Short: "List the entries of a stored tree in canonical order",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := object.DecodeString(args[0])
		if err != nil {
			return err
		}

		db, release, err := openStore()
		if err != nil {
			return err
		}
		defer release()

		cur := objectdb.NewCursor()
		defer cur.Release()

		it, err := treewalk.NewCanonicalIteratorFromStore(db, cur, id)
		if err != nil {
			return err
		}

		return listEntries(db, cur, it)
	},
}

func listEntries(db *objectdb.Database, cur *objectdb.Cursor, it treewalk.Iterator) error {
	for !it.EOF() {
		mode := it.Base().Mode

		if mode.IsTree() && lsTreeRecurse {
			sub, err := it.NewSubtreeIterator(db, cur)
			if err != nil {
				return err
			}

			if err := listEntries(db, cur, sub); err != nil {
				return err
			}
		} else {
			fmt.Printf("%06o %s %s\t%s\n",
				uint32(mode), mode.ObjectType(), treewalk.EntryID(it), it.Base().EntryPathString())
		}

		if err := it.Next(1); err != nil {
			return err
		}
	}

	return nil
}

func init() {
	rootCmd.AddCommand(lsTreeCmd)

	lsTreeCmd.Flags().BoolVarP(&lsTreeRecurse, "recurse", "r", false, "descend into subtrees, listing only leaf entries")
}
