package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadAppliesDefaultsForMissingOptions(t *testing.T) {
	path := writeCatalog(t, `
formats:
  - name: PNG
    magicHex: "89504e470d0a1a0a"
    matchSize: 8
`)
	cat, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, Default, cat.Options)
	require.Len(t, cat.Entries, 1)
	require.Equal(t, "PNG", cat.Entries[0].Name)
}

func TestLoadHonorsExplicitOptions(t *testing.T) {
	path := writeCatalog(t, `
options:
  maxRecursionDepth: 8
  maxSteps: 100
  maxRenderBytes: 4096
formats: []
`)
	cat, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, Options{MaxRecursionDepth: 8, MaxSteps: 100, MaxRenderBytes: 4096}, cat.Options)
}

func TestLoadMissingFileErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func writeCatalog(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}
