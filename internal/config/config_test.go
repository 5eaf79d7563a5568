package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/mcp-initiator/mcpinit/internal/scaffold"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupHome(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("MCPINIT_HOME", dir)
	t.Setenv("MCPINIT_OWNER", "")
	viper.Reset()
	t.Cleanup(viper.Reset)
	return dir
}

func TestDirHonorsEnvOverride(t *testing.T) {
	dir := setupHome(t)
	assert.Equal(t, dir, Dir())
	assert.Equal(t, filepath.Join(dir, "config.yaml"), FilePath())
}

func TestOwnerDefault(t *testing.T) {
	setupHome(t)
	Load()
	assert.Equal(t, "jasonshen190", Owner())
}

func TestSetAndGet(t *testing.T) {
	dir := setupHome(t)
	Load()

	require.NoError(t, Set(KeyOwner, "octocat"))
	assert.Equal(t, "octocat", Owner())

	data, err := os.ReadFile(filepath.Join(dir, "config.yaml"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "owner: octocat")

	// A fresh load reads the persisted value back.
	viper.Reset()
	Load()
	assert.Equal(t, "octocat", Get(KeyOwner))
}

func TestSetRejectsUnknownKey(t *testing.T) {
	setupHome(t)
	Load()

	err := Set("colour", "blue")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown config key")
}

func TestOwnerFromEnv(t *testing.T) {
	setupHome(t)
	t.Setenv("MCPINIT_OWNER", "env-owner")
	Load()
	assert.Equal(t, "env-owner", Owner())
}

func TestSetRejectsInvalidOwner(t *testing.T) {
	dir := setupHome(t)
	Load()

	err := Set(KeyOwner, `a"b`)
	require.ErrorIs(t, err, scaffold.ErrInvalidOwner)
	assert.NoFileExists(t, filepath.Join(dir, "config.yaml"))
	assert.Equal(t, "jasonshen190", Owner())
}

func TestSource(t *testing.T) {
	dir := setupHome(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("preset: minimal\n"), 0644))
	t.Setenv("MCPINIT_WORKSPACE", "/tmp/ws")
	Load()

	assert.Equal(t, "file", Source(KeyPreset))
	assert.Equal(t, "env", Source(KeyWorkspace))
	assert.Equal(t, "default", Source(KeyEditor))
}
