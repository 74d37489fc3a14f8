package lodb

import (
	"io/fs"
	"sync"
)

// faultFS wraps the real filesystem and fails selected operations, for
// exercising the IO error paths.
type faultFS struct {
	FS
	mkdirErr   error
	openErr    error
	createErr  error
	removeErr  error
	readDirErr error
}

func newFaultFS() *faultFS { return &faultFS{FS: osFS{}} }

func (f *faultFS) MkdirAll(path string) error {
	if f.mkdirErr != nil {
		return f.mkdirErr
	}
	return f.FS.MkdirAll(path)
}

func (f *faultFS) Open(name string) (File, error) {
	if f.openErr != nil {
		return nil, f.openErr
	}
	return f.FS.Open(name)
}

func (f *faultFS) Create(name string) (File, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	return f.FS.Create(name)
}

func (f *faultFS) Remove(name string) error {
	if f.removeErr != nil {
		return f.removeErr
	}
	return f.FS.Remove(name)
}

func (f *faultFS) ReadDir(name string) ([]fs.DirEntry, error) {
	if f.readDirErr != nil {
		return nil, f.readDirErr
	}
	return f.FS.ReadDir(name)
}

// recordingJournal captures mutation notifications for assertions.
type recordingJournal struct {
	mu  sync.Mutex
	ops []string
}

func (r *recordingJournal) Record(op, table, idHex string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ops = append(r.ops, op+" "+table+" "+idHex)
}

func (r *recordingJournal) all() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.ops...)
}
