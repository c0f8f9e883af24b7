package path

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "conf"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "conf", "config.yaml"), []byte("APP: {}"), 0o644))

	assert.Equal(t, filepath.Join(root, "conf", "config.yaml"), Resolve(root, "config.yaml", "conf"))
	assert.Equal(t, filepath.Join(root, ".env"), Resolve(root, ".env", "conf"))
	assert.Equal(t, "/etc/app.yaml", Resolve(root, "/etc/app.yaml", "conf"))
}

func TestExists(t *testing.T) {
	ok, err := Exists(t.TempDir())
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = Exists(filepath.Join(t.TempDir(), "missing"))
	require.NoError(t, err)
	assert.False(t, ok)
}
