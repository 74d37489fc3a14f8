package lodb

import (
	"slices"
	"strings"
)

// Filter reports whether a decoded record survives the scan. A nil Filter
// keeps everything.
type Filter func(rec []byte) bool

// Comparator orders two decoded records three-way: negative means a sorts
// earlier than b. Ties are resolved by comparator semantics only; there is
// no secondary key.
type Comparator func(a, b []byte) int

// Select scans a table: filter, then sort, then limit, always in that
// order. It returns freshly allocated record buffers owned by the caller.
//
// The whole directory walk, including the per-record read and decode, runs
// under one continuous lock acquisition rather than delegating to Get, so
// a record listed by the walk cannot vanish to a concurrent Delete before
// it is read. Per-record failures, foreign files, and unparsable names are
// logged and skipped, never escalated to a scan-level error.
//
// An unregistered table or a missing/unreadable table directory yields an
// empty result indistinguishable from "no rows".
func (d *DB) Select(table string, filter Filter, cmp Comparator, limit int) [][]byte {
	meta := d.lookup(table)
	if meta == nil {
		d.log.Warn("select on unregistered table", "table", table)
		return nil
	}

	// Phase 1: filter. One lock hold for the whole walk.
	var results [][]byte
	buf := make([]byte, ScratchSize)

	d.mu.Lock()
	entries, err := d.fsys.ReadDir(meta.path)
	if err != nil {
		d.mu.Unlock()
		d.log.Warn("table directory unreadable", "table", meta.name, "path", meta.path, "err", err)
		return nil
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		stem, ok := strings.CutSuffix(entry.Name(), RecordExt)
		if !ok {
			d.log.Debug("skipped foreign file", "table", meta.name, "file", entry.Name())
			continue
		}
		id, err := ParseID(stem)
		if err != nil {
			d.log.Warn("unparsable record file name", "table", meta.name, "file", entry.Name())
			continue
		}

		n, err := d.readFileLocked(meta.recordPath(id), buf)
		if err != nil {
			d.log.Warn("skipped unreadable record", "table", meta.name, "id", id.Hex(), "err", err)
			continue
		}

		rec := make([]byte, meta.recordSize)
		if err := meta.codec.Decode(buf[:n], rec); err != nil {
			d.log.Warn("skipped undecodable record", "table", meta.name, "id", id.Hex(), "err", err)
			continue
		}

		if filter != nil && !filter(rec) {
			continue
		}
		results = append(results, rec)
	}
	d.mu.Unlock()

	d.log.Debug("select filtered", "table", meta.name, "records", len(results))

	// Phase 2: sort, stable.
	if cmp != nil && len(results) > 0 {
		slices.SortStableFunc(results, cmp)
	}

	// Phase 3: limit, preserving order.
	if limit > 0 && len(results) > limit {
		results = results[:limit:limit]
	}

	d.log.Info("select complete", "table", meta.name, "records", len(results))
	return results
}
