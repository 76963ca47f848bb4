package cmd

import (
	"fmt"

	"github.com/aniknaemmm/GitSharp/pkg/object"
	"github.com/aniknaemmm/GitSharp/pkg/storage/objectdb"
	"github.com/aniknaemmm/GitSharp/pkg/util"
	"github.com/spf13/cobra"
)

var hasCmd = &cobra.Command{
	Use:   "has <object-id>...",
	Short: "Check object existence in the store and its alternates",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ids := make([]object.ID, len(args))

		for i := range args {
			id, err := object.DecodeString(args[i])
			if err != nil {
				return err
			}

			ids[i] = id
		}

		pool, err := util.NewWorkerPool(len(ids))
		if err != nil {
			return err
		}
		defer pool.Release()

		db, release, err := openStore(objectdb.WithWorkerPool(pool))
		if err != nil {
			return err
		}
		defer release()

		res, err := db.HasObjects(ids)
		if err != nil {
			return err
		}

		for i := range ids {
			fmt.Printf("%s %t\n", ids[i], res[i])
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(hasCmd)
}
