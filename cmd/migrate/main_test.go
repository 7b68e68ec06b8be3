package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun_DryRunSeed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seed.yaml")
	require.NoError(t, os.WriteFile(path, []byte("categories:\n  - name: News\ntags:\n  - name: Go\n"), 0o600))

	assert.NoError(t, run([]string{"--dry-run", "--seed", path}))
}

func TestRun_RejectsExtraArgs(t *testing.T) {
	assert.ErrorContains(t, run([]string{"--dry-run", "extra"}), "unexpected argument")
}

func TestRun_MissingSeedFile(t *testing.T) {
	err := run([]string{"--dry-run", "--seed", filepath.Join(t.TempDir(), "none.yaml")})
	assert.ErrorContains(t, err, "read seed file")
}
