package cli

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/rcc/internal/testutil"
)

// runWithIDs runs the run command with predictable run IDs.
func runWithIDs(t *testing.T, ids *testutil.FixedRunIDs, format string, args ...string) (string, error) {
	t.Helper()
	out := &bytes.Buffer{}
	cmd := newRunCommand(&RunOptions{RootOptions: &RootOptions{Format: format}, RunIDs: ids})
	cmd.SetOut(out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestRunPassingScenario(t *testing.T) {
	path := writeScenario(t, t.TempDir(), "doubled.yaml", doubledYAML)

	out, err := execute(t, "run", path)
	require.NoError(t, err)
	assert.Contains(t, out, "✓ doubled (6 events)")
	assert.Contains(t, out, "d = [2,4]")
	assert.NotContains(t, out, "run:")
}

func TestRunWithTrace(t *testing.T) {
	path := writeScenario(t, t.TempDir(), "doubled.yaml", doubledYAML)

	out, err := execute(t, "run", path, "--trace")
	require.NoError(t, err)
	assert.Contains(t, out, "[1] step 0 d snapshot [2]")
	assert.Contains(t, out, "[2] step 0 d edit +2@0")
	assert.Contains(t, out, "[4] step 1 d snapshot [2,4]")
	assert.Contains(t, out, "[5] step 1 d edit =2 +4@1")
	assert.Contains(t, out, "[6] step 1 d added [4]")
}

func TestRunFailingScenario(t *testing.T) {
	path := writeScenario(t, t.TempDir(), "wrong.yaml", failingYAML)

	out, err := execute(t, "run", path)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, err.Error(), "scenario wrong_expectation failed")
	assert.Contains(t, out, "✗ wrong_expectation")
	assert.Contains(t, out, "unexpected snapshot")
}

func TestRunJSON(t *testing.T) {
	path := writeScenario(t, t.TempDir(), "doubled.yaml", doubledYAML)

	out, err := execute(t, "--format", "json", "run", path)
	require.NoError(t, err)

	var resp struct {
		Status string    `json:"status"`
		Data   RunOutput `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.True(t, resp.Data.Pass)
	assert.Equal(t, 6, resp.Data.Events)
	assert.Len(t, resp.Data.TraceHash, 64)
	assert.Equal(t, "[2,4]", resp.Data.Final["d"].String())
	assert.Empty(t, resp.Data.Trace)
}

func TestRunJournalsToDatabase(t *testing.T) {
	dir := t.TempDir()
	path := writeScenario(t, dir, "doubled.yaml", doubledYAML)
	db := filepath.Join(dir, "rcc.db")
	ids := testutil.NewFixedRunIDs("run-a", "run-b")

	out, err := runWithIDs(t, ids, "text", path, "--db", db)
	require.NoError(t, err)
	assert.Contains(t, out, "run: run-a")

	out, err = runWithIDs(t, ids, "json", path, "--db", db)
	require.NoError(t, err)
	var resp struct {
		Data RunOutput `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "run-b", resp.Data.RunID)

	listed, err := execute(t, "--format", "json", "trace", "--db", db, "--list")
	require.NoError(t, err)
	assert.Contains(t, listed, `"run-a"`)
	assert.Contains(t, listed, `"run-b"`)
}

func TestRunDuplicateRunID(t *testing.T) {
	dir := t.TempDir()
	path := writeScenario(t, dir, "doubled.yaml", doubledYAML)
	db := filepath.Join(dir, "rcc.db")

	_, err := runWithIDs(t, testutil.NewFixedRunIDs("same"), "text", path, "--db", db)
	require.NoError(t, err)

	out, err := runWithIDs(t, testutil.NewFixedRunIDs("same"), "text", path, "--db", db)
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, out, "Error [E005]")
}

func TestRunMissingFile(t *testing.T) {
	out, err := execute(t, "run", filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, out, "Error [E002]")
}

func TestRunInvalidScenario(t *testing.T) {
	path := writeScenario(t, t.TempDir(), "unknown_fn.yaml", unknownFnYAML)

	out, err := execute(t, "run", path)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "Error [E205]")
}
