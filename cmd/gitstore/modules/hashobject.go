package cmd

import (
	"fmt"
	"os"

	"github.com/aniknaemmm/GitSharp/pkg/object"
	"github.com/aniknaemmm/GitSharp/pkg/storage/loosedb"
	"github.com/spf13/cobra"
)

var (
	hashObjectType  string
	hashObjectWrite bool
)

var hashObjectCmd = &cobra.Command{
	Use:   "hash-object <file>",
	Short: "Compute an object id from a file, optionally storing the object",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		typ, err := object.TypeFromString(hashObjectType)
		if err != nil {
			return err
		}

		data, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}

		if !hashObjectWrite {
			fmt.Println(object.CalculateID(typ, data))

			return nil
		}

		db, release, err := openStore()
		if err != nil {
			return err
		}
		defer release()

		id, err := db.Backend().(*loosedb.DB).Put(typ, data)
		if err != nil {
			return err
		}

		fmt.Println(id)

		return nil
	},
}

func init() {
	rootCmd.AddCommand(hashObjectCmd)

	hashObjectCmd.Flags().StringVarP(&hashObjectType, "type", "t", "blob", "type of the object to create")
	hashObjectCmd.Flags().BoolVarP(&hashObjectWrite, "write", "w", false, "store the object instead of only hashing it")
}
