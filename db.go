package lodb

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"sort"
	"sync"

	"golang.org/x/text/unicode/norm"
)

// RecordExt is the file extension of every record file.
const RecordExt = ".pr"

// Journal receives a notification for each committed mutation. Implemented
// by the SQLite journal in internal/journal; the store treats it as
// fire-and-forget audit, never as a durability mechanism.
type Journal interface {
	Record(op, table, idHex string)
}

// Mutation operation names passed to a Journal.
const (
	OpInsert = "insert"
	OpUpdate = "update"
	OpDelete = "delete"
)

// tableMeta is the immutable per-table registration entry.
type tableMeta struct {
	name       string
	path       string
	codec      Codec
	recordSize int
}

// DB is an embedded record store rooted at one database directory. All
// methods are safe for concurrent use once registration is complete;
// Register itself is a startup-time call and is not synchronized against
// concurrent CRUD.
type DB struct {
	name    string
	path    string
	fsys    FS
	log     *slog.Logger
	journal Journal

	// mu serializes every filesystem touch. It is not reentrant; no
	// method may call another lock-acquiring method while holding it.
	mu     sync.Mutex
	tables map[string]*tableMeta
}

// Option configures a DB at Open time.
type Option func(*DB)

// WithFS substitutes the filesystem primitive. Used by tests to inject
// faults.
func WithFS(fsys FS) Option {
	return func(d *DB) { d.fsys = fsys }
}

// WithLogger sets the structured logger. Defaults to slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(d *DB) { d.log = l }
}

// WithJournal attaches a mutation journal. Append failures inside the
// journal must not fail the mutation; the store only notifies.
func WithJournal(j Journal) Option {
	return func(d *DB) { d.journal = j }
}

// Open creates or opens the database directory {root}/{name}. A
// pre-existing directory is not an error.
func Open(root, name string, opts ...Option) (*DB, error) {
	if root == "" || name == "" {
		return nil, fmt.Errorf("open: empty root or database name: %w", ErrInvalid)
	}

	d := &DB{
		name:   name,
		path:   filepath.Join(root, name),
		fsys:   osFS{},
		log:    slog.Default(),
		tables: make(map[string]*tableMeta),
	}
	for _, opt := range opts {
		opt(d)
	}

	d.mu.Lock()
	err := d.fsys.MkdirAll(d.path)
	d.mu.Unlock()
	if err != nil {
		return nil, fmt.Errorf("open %s: %w: %v", d.path, ErrIO, err)
	}

	d.log.Info("opened database", "path", d.path)
	return d, nil
}

// Register records a table's metadata and creates its directory. The name
// is normalized to Unicode NFC before use as a map key and path segment.
//
// Registration is expected to happen once at startup. Re-registering a
// name replaces its metadata entry; the directory side is idempotent.
func (d *DB) Register(table string, codec Codec, recordSize int) error {
	if table == "" || codec == nil || recordSize <= 0 {
		return fmt.Errorf("register %q: %w", table, ErrInvalid)
	}

	name := norm.NFC.String(table)
	meta := &tableMeta{
		name:       name,
		path:       filepath.Join(d.path, name),
		codec:      codec,
		recordSize: recordSize,
	}

	d.mu.Lock()
	err := d.fsys.MkdirAll(meta.path)
	d.mu.Unlock()
	if err != nil {
		return fmt.Errorf("register %q: %w: %v", table, ErrIO, err)
	}

	d.tables[name] = meta
	d.log.Info("registered table", "table", name, "path", meta.path, "record_size", recordSize)
	return nil
}

// TableInfo describes a registered table.
type TableInfo struct {
	Name       string
	Path       string
	RecordSize int
}

// Table returns the registration entry for a table name, if present.
func (d *DB) Table(name string) (TableInfo, bool) {
	meta := d.lookup(name)
	if meta == nil {
		return TableInfo{}, false
	}
	return TableInfo{Name: meta.name, Path: meta.path, RecordSize: meta.recordSize}, true
}

// Tables returns all registered tables sorted by name.
func (d *DB) Tables() []TableInfo {
	infos := make([]TableInfo, 0, len(d.tables))
	for _, meta := range d.tables {
		infos = append(infos, TableInfo{Name: meta.name, Path: meta.path, RecordSize: meta.recordSize})
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].Name < infos[j].Name })
	return infos
}

// lookup resolves table metadata, applying the same NFC normalization as
// Register. Returns nil if the table was never registered.
func (d *DB) lookup(table string) *tableMeta {
	return d.tables[norm.NFC.String(table)]
}

// recordPath computes {table_path}/{16-hex-id}.pr.
func (meta *tableMeta) recordPath(id ID) string {
	return filepath.Join(meta.path, id.Hex()+RecordExt)
}

// notify forwards a committed mutation to the journal, if any. Called
// after the lock is released.
func (d *DB) notify(op string, meta *tableMeta, id ID) {
	if d.journal != nil {
		d.journal.Record(op, meta.name, id.Hex())
	}
}
