package cli

import (
	"encoding/hex"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/MeshEnvy/lodb"
)

// NewGetCommand creates the get command: read one record by identifier.
func NewGetCommand(opts *RootOptions) *cobra.Command {
	var table string

	cmd := &cobra.Command{
		Use:   "get <id>",
		Short: "Read a record by identifier",
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

			info, ok := db.Table(table)
			if !ok {
				return WrapExitError(ExitCommandError, fmt.Sprintf("table %q not in config", table), nil)
			}

			rec := make([]byte, info.RecordSize)
			if err := db.Get(table, id, rec); err != nil {
				return WrapExitError(ExitFailure, "get failed", err)
			}
			return formatterFor(opts, cmd).Success(hex.EncodeToString(rec))
		},
	}

	cmd.Flags().StringVarP(&table, "table", "t", "", "table name (required)")
	cmd.MarkFlagRequired("table")

	return cmd
}
