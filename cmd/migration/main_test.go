package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestMigrationCommands_SQLite(t *testing.T) {
	for key, value := range map[string]string{
		"DATA_DIR":      t.TempDir(),
		"DB_DRIVER":     "sqlite3",
		"DB_URL":        "",
		"APP_LOG_LEVEL": "error",
	} {
		t.Setenv(key, value)
	}

	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "version: none\ndirty: false\n", out)

	_, err = run(t, "up")
	require.NoError(t, err)
	_, err = run(t, "up")
	require.NoError(t, err, "a second up is a no-op")

	out, err = run(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "version: 2\ndirty: false\n", out)

	_, err = run(t, "down")
	require.NoError(t, err)
	out, err = run(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "version: 1\ndirty: false\n", out)

	_, err = run(t, "goto", "2")
	require.NoError(t, err)
	out, err = run(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "version: 2\ndirty: false\n", out)
}

func TestMigrationCommands_RejectBadArgumentsBeforeConnecting(t *testing.T) {
	t.Setenv("DB_DRIVER", "unknown")

	_, err := run(t, "down", "x")
	require.ErrorContains(t, err, "invalid down steps")
	_, err = run(t, "force", "-1")
	require.Error(t, err)
	_, err = run(t, "goto")
	require.Error(t, err)
}

func TestParseSteps(t *testing.T) {
	t.Parallel()

	if steps, err := parseSteps(nil); err != nil || steps != 1 {
		t.Fatalf("default steps: got=%d err=%v", steps, err)
	}
	if steps, err := parseSteps([]string{" 3 "}); err != nil || steps != 3 {
		t.Fatalf("explicit steps: got=%d err=%v", steps, err)
	}
	for _, raw := range []string{"0", "-2", "x"} {
		if _, err := parseSteps([]string{raw}); err == nil {
			t.Fatalf("expected error for %q", raw)
		}
	}
}

func TestParseVersionAndTarget(t *testing.T) {
	t.Parallel()

	if v, err := parseVersion("2"); err != nil || v != 2 {
		t.Fatalf("parse version: got=%d err=%v", v, err)
	}
	if _, err := parseVersion("-1"); err == nil {
		t.Fatalf("expected negative version to fail")
	}
	if v, err := parseTarget("1"); err != nil || v != 1 {
		t.Fatalf("parse target: got=%d err=%v", v, err)
	}
	if _, err := parseTarget("one"); err == nil {
		t.Fatalf("expected non-numeric target to fail")
	}
}
