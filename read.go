package lodb

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
)

// Get reads the record named by id into out, which must be at least the
// table's record size. The file is read fully into a scratch buffer while
// holding the lock; decoding happens after release.
//
// out is zeroed before decoding so that fields absent from the encoded
// form have deterministic default values. On a decode failure out is left
// in a partially-zeroed, codec-defined state.
func (d *DB) Get(table string, id ID, out []byte) error {
	meta := d.lookup(table)
	if meta == nil {
		return fmt.Errorf("get %s: table not registered: %w", table, ErrInvalid)
	}
	if out == nil {
		return fmt.Errorf("get %s/%s: nil output record: %w", table, id, ErrInvalid)
	}

	buf := make([]byte, ScratchSize)
	path := meta.recordPath(id)

	d.mu.Lock()
	n, err := d.readFileLocked(path, buf)
	d.mu.Unlock()
	if err != nil {
		return fmt.Errorf("get %s/%s: %w", table, id, err)
	}

	clear(out)
	if err := meta.codec.Decode(buf[:n], out); err != nil {
		d.log.Error("decode failed", "table", meta.name, "id", id.Hex(), "err", err)
		return fmt.Errorf("get %s/%s: %w: %v", table, id, ErrDecode, err)
	}

	d.log.Debug("retrieved record", "table", meta.name, "id", id.Hex(), "bytes", n)
	return nil
}

// readFileLocked reads a record file into buf in one pass and returns the
// byte count. Caller must hold d.mu. A missing file maps to ErrNotFound,
// an empty file to ErrIO.
func (d *DB) readFileLocked(path string, buf []byte) (int, error) {
	f, err := d.fsys.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return 0, ErrNotFound
		}
		return 0, fmt.Errorf("%w: %v", ErrIO, err)
	}

	n, err := io.ReadFull(f, buf)
	f.Close()
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return 0, fmt.Errorf("%w: %v", ErrIO, err)
	}
	if n == 0 {
		return 0, fmt.Errorf("empty record file: %w", ErrIO)
	}
	return n, nil
}

// existsLocked probes for a file by opening it for read. Caller must hold
// d.mu.
func (d *DB) existsLocked(path string) bool {
	f, err := d.fsys.Open(path)
	if err != nil {
		return false
	}
	f.Close()
	return true
}
