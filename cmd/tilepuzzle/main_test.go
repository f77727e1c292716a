package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cfg := filepath.Join(t.TempDir(), "tilepuzzle.toml")
	require.NoError(t, os.WriteFile(cfg, []byte("[logging]\nlevel = \"error\"\n"), 0o644))

	var out bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--config", cfg}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func TestValidateShippedLevels(t *testing.T) {
	out, err := run(t, "validate")
	require.NoError(t, err)
	assert.Contains(t, out, "ok   tutorial 5x5")
	assert.NotContains(t, out, "FAIL")
}

func TestValidateReportsBadLevel(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "levels"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "levels", "broken.yaml"), []byte(`
board: {width: 4, height: 4, colors: 3}
allies: [{x: 0, y: 0}]
enemies:
  - components:
      location: {x: 1, y: 1}
      warp_drive: {}
`), 0o644))

	out, err := run(t, "--levels", dir, "validate", "broken", "tutorial")
	require.Error(t, err)
	assert.Contains(t, out, "FAIL broken")
	assert.Contains(t, out, "ok   tutorial")
}

func TestShowIsDeterministic(t *testing.T) {
	first, err := run(t, "show", "tutorial")
	require.NoError(t, err)
	assert.Contains(t, first, "tutorial 5x5")
	assert.Contains(t, first, "hash ")

	second, err := run(t, "show", "tutorial")
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestShowUnknownLevel(t *testing.T) {
	_, err := run(t, "show", "nowhere")
	assert.Error(t, err)
}
