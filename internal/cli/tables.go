package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewTablesCommand creates the tables command: list registered tables.
func NewTablesCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "tables",
		Short: "List registered tables",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			db, cleanup, err := openDB(opts)
			if err != nil {
				return err
			}
			defer cleanup()

			infos := db.Tables()
			lines := make([]string, len(infos))
			for i, info := range infos {
				lines[i] = fmt.Sprintf("%s\t%d\t%s", info.Name, info.RecordSize, info.Path)
			}
			return formatterFor(opts, cmd).Lines(lines)
		},
	}
}
