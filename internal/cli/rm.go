package cli

import (
	"github.com/spf13/cobra"

	"github.com/MeshEnvy/lodb"
)

// NewRmCommand creates the rm command: delete one record by identifier.
func NewRmCommand(opts *RootOptions) *cobra.Command {
	var table string

	cmd := &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a record by identifier",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, cleanup, err := openDB(opts)
			if err != nil {
				return err
			}
			defer cleanup()

			id, err := lodb.ParseID(args[0])
			if err != nil {
				return WrapExitError(ExitCommandError, "malformed id", err)
			}

			if err := db.Delete(table, id); err != nil {
				return WrapExitError(ExitFailure, "delete failed", err)
			}
			return formatterFor(opts, cmd).Success("deleted " + id.Hex())
		},
	}

	cmd.Flags().StringVarP(&table, "table", "t", "", "table name (required)")
	cmd.MarkFlagRequired("table")

	return cmd
}
