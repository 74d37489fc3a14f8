package cli

import (
	"encoding/hex"
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/MeshEnvy/lodb"
)

// NewPutCommand creates the put command: insert one record.
func NewPutCommand(opts *RootOptions) *cobra.Command {
	var (
		table string
		idHex string
		seed  string
		salt  uint64
	)

	cmd := &cobra.Command{
		Use:   "put <payload-hex>",
		Short: "Insert a record",
		Long: `Insert a record whose payload is given as a hex string, zero-padded to
the table's record size.

The identifier is taken from --id when given; otherwise it is derived by
hashing --seed (or a fresh UUID string when no seed is given) with --salt.
The chosen identifier is printed on success.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, cleanup, err := openDB(opts)
			if err != nil {
				return err
			}
			defer cleanup()

			rec, err := decodePayload(db, table, args[0])
			if err != nil {
				return err
			}

			var id lodb.ID
			if idHex != "" {
				id, err = lodb.ParseID(idHex)
				if err != nil {
					return WrapExitError(ExitCommandError, "malformed --id", err)
				}
			} else {
				s := seed
				if s == "" {
					s = uuid.NewString()
				}
				id = lodb.Derive([]byte(s), salt)
			}

			if err := db.Insert(table, id, rec); err != nil {
				return WrapExitError(ExitFailure, "insert failed", err)
			}
			return formatterFor(opts, cmd).Success(id.Hex())
		},
	}

	cmd.Flags().StringVarP(&table, "table", "t", "", "table name (required)")
	cmd.Flags().StringVar(&idHex, "id", "", "16-hex-digit record identifier")
	cmd.Flags().StringVar(&seed, "seed", "", "seed string for identifier derivation")
	cmd.Flags().Uint64Var(&salt, "salt", 0, "salt for identifier derivation")
	cmd.MarkFlagRequired("table")

	return cmd
}

// decodePayload parses a hex payload and pads it to the table's record
// size.
func decodePayload(db *lodb.DB, table, payloadHex string) ([]byte, error) {
	info, ok := db.Table(table)
	if !ok {
		return nil, WrapExitError(ExitCommandError, fmt.Sprintf("table %q not in config", table), nil)
	}

	payload, err := hex.DecodeString(payloadHex)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "malformed payload hex", err)
	}
	if len(payload) > info.RecordSize {
		return nil, WrapExitError(ExitCommandError,
			fmt.Sprintf("payload is %d bytes, table %q records are %d", len(payload), table, info.RecordSize), nil)
	}

	rec := make([]byte, info.RecordSize)
	copy(rec, payload)
	return rec, nil
}
