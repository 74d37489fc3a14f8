package lodb

import (
	"errors"
	"fmt"
	"io/fs"
)

// Insert creates the record file for id. It fails with ErrExists if a file
// for that identifier is already present.
//
// The record is encoded before the lock is taken; the existence probe and
// the write then share one critical section, so two concurrent inserts for
// the same identifier cannot both pass the probe.
func (d *DB) Insert(table string, id ID, rec []byte) error {
	meta := d.lookup(table)
	if meta == nil {
		return fmt.Errorf("insert %s: table not registered: %w", table, ErrInvalid)
	}
	if rec == nil {
		return fmt.Errorf("insert %s/%s: nil record: %w", table, id, ErrInvalid)
	}

	buf := make([]byte, ScratchSize)
	n, err := meta.codec.Encode(rec, buf)
	if err != nil {
		return fmt.Errorf("insert %s/%s: %w: %v", table, id, ErrEncode, err)
	}

	path := meta.recordPath(id)

	d.mu.Lock()
	if d.existsLocked(path) {
		d.mu.Unlock()
		return fmt.Errorf("insert %s/%s: %w", table, id, ErrExists)
	}
	err = d.writeFileLocked(path, buf[:n])
	d.mu.Unlock()
	if err != nil {
		return fmt.Errorf("insert %s/%s: %w", table, id, err)
	}

	d.log.Info("inserted record", "table", meta.name, "id", id.Hex(), "bytes", n)
	d.notify(OpInsert, meta, id)
	return nil
}

// Update replaces the content of an existing record. A missing record is
// ErrNotFound and no file is created.
//
// The old file is removed and the new content written under a fresh
// handle within one lock hold. A crash between remove and write loses the
// record; this store has no recovery log.
func (d *DB) Update(table string, id ID, rec []byte) error {
	meta := d.lookup(table)
	if meta == nil {
		return fmt.Errorf("update %s: table not registered: %w", table, ErrInvalid)
	}
	if rec == nil {
		return fmt.Errorf("update %s/%s: nil record: %w", table, id, ErrInvalid)
	}

	buf := make([]byte, ScratchSize)
	n, err := meta.codec.Encode(rec, buf)
	if err != nil {
		return fmt.Errorf("update %s/%s: %w: %v", table, id, ErrEncode, err)
	}

	path := meta.recordPath(id)

	d.mu.Lock()
	if !d.existsLocked(path) {
		d.mu.Unlock()
		return fmt.Errorf("update %s/%s: %w", table, id, ErrNotFound)
	}
	d.fsys.Remove(path)
	err = d.writeFileLocked(path, buf[:n])
	d.mu.Unlock()
	if err != nil {
		return fmt.Errorf("update %s/%s: %w", table, id, err)
	}

	d.log.Info("updated record", "table", meta.name, "id", id.Hex(), "bytes", n)
	d.notify(OpUpdate, meta, id)
	return nil
}

// Delete removes the record file for id. ErrNotFound if it did not exist.
// No tombstone, no deferred reclamation.
func (d *DB) Delete(table string, id ID) error {
	meta := d.lookup(table)
	if meta == nil {
		return fmt.Errorf("delete %s: table not registered: %w", table, ErrInvalid)
	}

	path := meta.recordPath(id)

	d.mu.Lock()
	err := d.fsys.Remove(path)
	d.mu.Unlock()
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("delete %s/%s: %w", table, id, ErrNotFound)
		}
		return fmt.Errorf("delete %s/%s: %w: %v", table, id, ErrIO, err)
	}

	d.log.Info("deleted record", "table", meta.name, "id", id.Hex())
	d.notify(OpDelete, meta, id)
	return nil
}

// writeFileLocked writes encoded bytes to a newly created file in one
// pass and syncs it. Caller must hold d.mu. A short write or failed sync
// is an ErrIO.
func (d *DB) writeFileLocked(path string, data []byte) error {
	f, err := d.fsys.Create(path)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrIO, err)
	}

	n, err := f.Write(data)
	if err != nil {
		f.Close()
		return fmt.Errorf("%w: %v", ErrIO, err)
	}
	if n != len(data) {
		f.Close()
		return fmt.Errorf("short write, %d of %d bytes: %w", n, len(data), ErrIO)
	}
	if err := f.Sync(); err != nil {
		f.Close()
		return fmt.Errorf("%w: %v", ErrIO, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("%w: %v", ErrIO, err)
	}
	return nil
}
