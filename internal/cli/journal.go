package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/MeshEnvy/lodb/internal/journal"
)

// NewJournalCommand creates the journal command: read back the mutation
// journal.
func NewJournalCommand(opts *RootOptions) *cobra.Command {
	var table string

	cmd := &cobra.Command{
		Use:   "journal",
		Short: "Read the mutation journal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			j, err := openJournal(opts)
			if err != nil {
				return err
			}
			defer j.Close()

			ctx := cmd.Context()
			var entries []journal.Entry
			if table != "" {
				entries, err = j.EntriesForTable(ctx, table)
			} else {
				entries, err = j.Entries(ctx)
			}
			if err != nil {
				return WrapExitError(ExitFailure, "reading journal", err)
			}

			lines := make([]string, len(entries))
			for i, e := range entries {
				lines[i] = fmt.Sprintf("%d\t%s\t%s\t%s\t%s",
					e.Seq, e.Op, e.Table, e.ID, e.At.UTC().Format(time.RFC3339))
			}
			return formatterFor(opts, cmd).Lines(lines)
		},
	}

	cmd.Flags().StringVarP(&table, "table", "t", "", "restrict to one table")

	return cmd
}
