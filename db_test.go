package lodb

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestDB opens a silent database in a temp directory with one table,
// "nodes", holding 8-byte raw records.
func newTestDB(t *testing.T, opts ...Option) *DB {
	t.Helper()
	opts = append([]Option{WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))}, opts...)
	db, err := Open(t.TempDir(), "mesh", opts...)
	require.NoError(t, err)
	require.NoError(t, db.Register("nodes", RawCodec{Size: 8}, 8))
	return db
}

func TestOpen_CreatesDatabaseDirectory(t *testing.T) {
	root := t.TempDir()
	_, err := Open(root, "mesh")
	require.NoError(t, err)

	info, err := os.Stat(filepath.Join(root, "mesh"))
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestOpen_ExistingDirectoryIsNotAnError(t *testing.T) {
	root := t.TempDir()
	_, err := Open(root, "mesh")
	require.NoError(t, err)
	_, err = Open(root, "mesh")
	assert.NoError(t, err)
}

func TestOpen_RejectsEmptyNames(t *testing.T) {
	_, err := Open("", "mesh")
	assert.ErrorIs(t, err, ErrInvalid)
	_, err = Open(t.TempDir(), "")
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestRegister_CreatesTableDirectory(t *testing.T) {
	db := newTestDB(t)

	info, ok := db.Table("nodes")
	require.True(t, ok)
	assert.Equal(t, 8, info.RecordSize)

	st, err := os.Stat(info.Path)
	require.NoError(t, err)
	assert.True(t, st.IsDir())
}

func TestRegister_RejectsInvalidArguments(t *testing.T) {
	db := newTestDB(t)

	assert.ErrorIs(t, db.Register("", RawCodec{Size: 8}, 8), ErrInvalid)
	assert.ErrorIs(t, db.Register("x", nil, 8), ErrInvalid)
	assert.ErrorIs(t, db.Register("x", RawCodec{Size: 8}, 0), ErrInvalid)
	assert.ErrorIs(t, db.Register("x", RawCodec{Size: 8}, -1), ErrInvalid)
}

func TestRegister_ReRegistrationReplacesMetadata(t *testing.T) {
	db := newTestDB(t)

	require.NoError(t, db.Register("nodes", RawCodec{Size: 16}, 16))

	info, ok := db.Table("nodes")
	require.True(t, ok)
	assert.Equal(t, 16, info.RecordSize)
}

func TestRegister_NormalizesTableNames(t *testing.T) {
	db := newTestDB(t)

	// "café" composed vs decomposed resolve to the same table.
	composed := "café"
	decomposed := "café"
	require.NoError(t, db.Register(composed, RawCodec{Size: 8}, 8))

	id := Derive([]byte("x"), 0)
	require.NoError(t, db.Insert(decomposed, id, make([]byte, 8)))

	out := make([]byte, 8)
	assert.NoError(t, db.Get(composed, id, out))
}

func TestTables_SortedByName(t *testing.T) {
	db := newTestDB(t)
	require.NoError(t, db.Register("messages", RawCodec{Size: 4}, 4))
	require.NoError(t, db.Register("acks", RawCodec{Size: 2}, 2))

	infos := db.Tables()
	require.Len(t, infos, 3)
	assert.Equal(t, "acks", infos[0].Name)
	assert.Equal(t, "messages", infos[1].Name)
	assert.Equal(t, "nodes", infos[2].Name)
}

func TestTable_UnknownName(t *testing.T) {
	db := newTestDB(t)
	_, ok := db.Table("ghosts")
	assert.False(t, ok)
}
