package cli

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeConfig writes a CLI config for a fresh temp database with one
// 8-byte "nodes" table and returns the config path.
func writeConfig(t *testing.T, withJournal bool) string {
	t.Helper()
	dir := t.TempDir()

	cfg := fmt.Sprintf("root: %s\nname: mesh\n", filepath.Join(dir, "data"))
	if withJournal {
		cfg += fmt.Sprintf("journal: %s\n", filepath.Join(dir, "journal.db"))
	}
	cfg += "tables:\n  - name: nodes\n    record_size: 8\n"

	path := filepath.Join(dir, "lodb.yaml")
	require.NoError(t, os.WriteFile(path, []byte(cfg), 0o644))
	return path
}

// runCLI executes one command line against a fresh root command and
// returns captured output.
func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestPutGet_RoundTrip(t *testing.T) {
	cfg := writeConfig(t, false)

	out, err := runCLI(t, "-c", cfg, "put", "-t", "nodes", "--id", "0102030405060708", "cafe")
	require.NoError(t, err)
	assert.Equal(t, "0102030405060708\n", out)

	out, err = runCLI(t, "-c", cfg, "get", "-t", "nodes", "0102030405060708")
	require.NoError(t, err)
	assert.Equal(t, "cafe000000000000\n", out, "payload zero-padded to the record size")
}

func TestPut_DerivedIdentifier(t *testing.T) {
	cfg := writeConfig(t, false)

	out, err := runCLI(t, "-c", cfg, "put", "-t", "nodes", "--seed", "node-1", "--salt", "7", "ff")
	require.NoError(t, err)
	id := strings.TrimSpace(out)
	require.Len(t, id, 16)

	// Same seed and salt derive the same identifier, so a second put
	// collides.
	_, err = runCLI(t, "-c", cfg, "put", "-t", "nodes", "--seed", "node-1", "--salt", "7", "ff")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
}

func TestPut_NoSeedUsesFreshUUID(t *testing.T) {
	cfg := writeConfig(t, false)

	first, err := runCLI(t, "-c", cfg, "put", "-t", "nodes", "aa")
	require.NoError(t, err)
	second, err := runCLI(t, "-c", cfg, "put", "-t", "nodes", "aa")
	require.NoError(t, err)
	assert.NotEqual(t, first, second)
}

func TestPut_MalformedInputs(t *testing.T) {
	cfg := writeConfig(t, false)

	_, err := runCLI(t, "-c", cfg, "put", "-t", "nodes", "--id", "xyz", "aa")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))

	_, err = runCLI(t, "-c", cfg, "put", "-t", "nodes", "not-hex")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))

	// Payload longer than the record size.
	_, err = runCLI(t, "-c", cfg, "put", "-t", "nodes", strings.Repeat("ab", 9))
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestRm_ThenGetFails(t *testing.T) {
	cfg := writeConfig(t, false)

	_, err := runCLI(t, "-c", cfg, "put", "-t", "nodes", "--id", "0000000000000001", "01")
	require.NoError(t, err)

	_, err = runCLI(t, "-c", cfg, "rm", "-t", "nodes", "0000000000000001")
	require.NoError(t, err)

	_, err = runCLI(t, "-c", cfg, "get", "-t", "nodes", "0000000000000001")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
}

func TestTables_ListsConfiguredTables(t *testing.T) {
	cfg := writeConfig(t, false)

	out, err := runCLI(t, "-c", cfg, "tables")
	require.NoError(t, err)
	assert.Contains(t, out, "nodes\t8")
}

func TestLs_SortedGolden(t *testing.T) {
	cfg := writeConfig(t, false)

	_, err := runCLI(t, "-c", cfg, "put", "-t", "nodes", "--id", "aaaabbbbccccdddd", "aaaabbbbccccdddd")
	require.NoError(t, err)
	_, err = runCLI(t, "-c", cfg, "put", "-t", "nodes", "--id", "0102030405060708", "0102030405060708")
	require.NoError(t, err)

	out, err := runCLI(t, "-c", cfg, "ls", "-t", "nodes", "--sort")
	require.NoError(t, err)

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, "ls_sorted", []byte(out))
}

func TestLs_PrefixFilterAndLimit(t *testing.T) {
	cfg := writeConfig(t, false)

	_, err := runCLI(t, "-c", cfg, "put", "-t", "nodes", "--id", "0000000000000001", "aa01")
	require.NoError(t, err)
	_, err = runCLI(t, "-c", cfg, "put", "-t", "nodes", "--id", "0000000000000002", "aa02")
	require.NoError(t, err)
	_, err = runCLI(t, "-c", cfg, "put", "-t", "nodes", "--id", "0000000000000003", "bb03")
	require.NoError(t, err)

	out, err := runCLI(t, "-c", cfg, "ls", "-t", "nodes", "--prefix", "aa", "--sort")
	require.NoError(t, err)
	assert.Equal(t, "aa01000000000000\naa02000000000000\n", out)

	out, err = runCLI(t, "-c", cfg, "ls", "-t", "nodes", "--sort", "-n", "1")
	require.NoError(t, err)
	assert.Equal(t, "aa01000000000000\n", out)
}

func TestLs_JSONFormat(t *testing.T) {
	cfg := writeConfig(t, false)

	_, err := runCLI(t, "-c", cfg, "put", "-t", "nodes", "--id", "0000000000000001", "0b")
	require.NoError(t, err)

	out, err := runCLI(t, "-c", cfg, "--format", "json", "ls", "-t", "nodes")
	require.NoError(t, err)
	assert.JSONEq(t, `{"status":"ok","data":["0b00000000000000"]}`, out)
}

func TestJournalCommand_RecordsMutations(t *testing.T) {
	cfg := writeConfig(t, true)

	_, err := runCLI(t, "-c", cfg, "put", "-t", "nodes", "--id", "0102030405060708", "01")
	require.NoError(t, err)
	_, err = runCLI(t, "-c", cfg, "rm", "-t", "nodes", "0102030405060708")
	require.NoError(t, err)

	out, err := runCLI(t, "-c", cfg, "journal")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "insert\tnodes\t0102030405060708")
	assert.Contains(t, lines[1], "delete\tnodes\t0102030405060708")
}

func TestJournalCommand_NoJournalConfigured(t *testing.T) {
	cfg := writeConfig(t, false)

	_, err := runCLI(t, "-c", cfg, "journal")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestRoot_RejectsUnknownFormat(t *testing.T) {
	cfg := writeConfig(t, false)

	_, err := runCLI(t, "-c", cfg, "--format", "xml", "tables")
	assert.Error(t, err)
}
