package cli

import (
	"bytes"
	"encoding/hex"

	"github.com/spf13/cobra"

	"github.com/MeshEnvy/lodb"
)

// NewLsCommand creates the ls command: scan a table's records.
func NewLsCommand(opts *RootOptions) *cobra.Command {
	var (
		table     string
		limit     int
		sorted    bool
		prefixHex string
	)

	cmd := &cobra.Command{
		Use:   "ls",
		Short: "List a table's records",
		Long: `Scan a table and print each surviving record's payload as hex, one per
line. --prefix filters on a payload prefix, --sort orders payloads
lexically ascending, --limit truncates the result.

Directory order is filesystem-dependent; pass --sort for stable output.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			db, cleanup, err := openDB(opts)
			if err != nil {
				return err
			}
			defer cleanup()

			var filter lodb.Filter
			if prefixHex != "" {
				prefix, err := hex.DecodeString(prefixHex)
				if err != nil {
					return WrapExitError(ExitCommandError, "malformed --prefix hex", err)
				}
				filter = func(rec []byte) bool { return bytes.HasPrefix(rec, prefix) }
			}

			var cmp lodb.Comparator
			if sorted {
				cmp = bytes.Compare
			}

			records := db.Select(table, filter, cmp, limit)
			lines := make([]string, len(records))
			for i, rec := range records {
				lines[i] = hex.EncodeToString(rec)
			}
			return formatterFor(opts, cmd).Lines(lines)
		},
	}

	cmd.Flags().StringVarP(&table, "table", "t", "", "table name (required)")
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "truncate to at most this many records (0 = no limit)")
	cmd.Flags().BoolVar(&sorted, "sort", false, "sort payloads lexically ascending")
	cmd.Flags().StringVar(&prefixHex, "prefix", "", "keep only payloads with this hex prefix")
	cmd.MarkFlagRequired("table")

	return cmd
}
