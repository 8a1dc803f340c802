package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte("PGUML_TEST_FROM_FILE=yes\nPGUML_TEST_PRESET=file\n"), 0644))

	t.Setenv("PGUML_TEST_PRESET", "env")
	t.Setenv("PGUML_TEST_FROM_FILE", "")
	os.Unsetenv("PGUML_TEST_FROM_FILE")

	loaded, err := LoadEnv(path, filepath.Join(dir, "missing.env"))
	require.NoError(t, err)
	assert.True(t, loaded)
	assert.Equal(t, "yes", os.Getenv("PGUML_TEST_FROM_FILE"))
	assert.Equal(t, "env", os.Getenv("PGUML_TEST_PRESET"))
}

func TestLoadEnvMissingFile(t *testing.T) {
	loaded, err := LoadEnv(filepath.Join(t.TempDir(), ".env"))
	require.NoError(t, err)
	assert.False(t, loaded)
}

func TestGetenv(t *testing.T) {
	t.Setenv("PGUML_TEST_VALUE", "set")
	t.Setenv("PGUML_TEST_EMPTY", "")

	assert.Equal(t, "set", Getenv("PGUML_TEST_VALUE", "fallback"))
	assert.Equal(t, "fallback", Getenv("PGUML_TEST_EMPTY", "fallback"))
}
