package cli

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/MeshEnvy/lodb"
	"github.com/MeshEnvy/lodb/internal/config"
	"github.com/MeshEnvy/lodb/internal/journal"
)

// openDB resolves the config file, opens the database, registers every
// configured table with a RawCodec, and attaches the journal when one is
// configured. The returned cleanup must be called when done.
func openDB(opts *RootOptions) (*lodb.DB, func(), error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, nil, WrapExitError(ExitCommandError, "loading config", err)
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	if opts.Verbose {
		logger = slog.Default()
	}

	cleanup := func() {}
	dbOpts := []lodb.Option{lodb.WithLogger(logger)}

	if cfg.Journal != "" {
		j, err := journal.Open(cfg.Journal, journal.WithLogger(logger))
		if err != nil {
			return nil, nil, WrapExitError(ExitCommandError, "opening journal", err)
		}
		cleanup = func() { j.Close() }
		dbOpts = append(dbOpts, lodb.WithJournal(j))
	}

	db, err := lodb.Open(cfg.Root, cfg.Name, dbOpts...)
	if err != nil {
		cleanup()
		return nil, nil, WrapExitError(ExitCommandError, "opening database", err)
	}

	for _, tbl := range cfg.Tables {
		if err := db.Register(tbl.Name, lodb.RawCodec{Size: tbl.RecordSize}, tbl.RecordSize); err != nil {
			cleanup()
			return nil, nil, WrapExitError(ExitCommandError, fmt.Sprintf("registering table %q", tbl.Name), err)
		}
	}

	return db, cleanup, nil
}

// openJournal opens just the configured journal, for readback commands.
func openJournal(opts *RootOptions) (*journal.Journal, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "loading config", err)
	}
	if cfg.Journal == "" {
		return nil, WrapExitError(ExitCommandError, "no journal configured", nil)
	}
	j, err := journal.Open(cfg.Journal)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "opening journal", err)
	}
	return j, nil
}
