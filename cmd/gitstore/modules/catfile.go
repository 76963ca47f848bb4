package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/aniknaemmm/GitSharp/pkg/object"
	"github.com/aniknaemmm/GitSharp/pkg/storage/objectdb"
	"github.com/spf13/cobra"
)

var (
	catFileShowType bool
	catFileShowSize bool
)

var catFileCmd = &cobra.Command{
	Use:   "cat-file <object-id>",
	Short: "Print contents, type or size of a stored object",
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

		ldr, err := db.OpenObject(cur, id)
		if err != nil {
			if errors.Is(err, object.ErrNotFound) {
				return fmt.Errorf("object %s does not exist", id)
			}

			return err
		}

		switch {
		case catFileShowType:
			fmt.Println(ldr.Type())
		case catFileShowSize:
			fmt.Println(ldr.Size())
		default:
			_, err = os.Stdout.Write(ldr.CachedBytes())
		}

		return err
	},
}

func init() {
	rootCmd.AddCommand(catFileCmd)

	catFileCmd.Flags().BoolVarP(&catFileShowType, "type", "t", false, "print the object's type instead of its contents")
	catFileCmd.Flags().BoolVarP(&catFileShowSize, "size", "s", false, "print the object's size instead of its contents")
}
