package plugin

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLockfile_SortedAndStable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nvinit.lock.yaml")

	entries := []LockEntry{
		{Name: "tokyonight.nvim", Repo: "https://github.com/folke/tokyonight.nvim.git", Pin: "v4.8.0", Commit: "abc"},
		{Name: "plenary.nvim", Repo: "https://github.com/nvim-lua/plenary.nvim.git", Commit: "def"},
	}

	require.NoError(t, WriteLockfile(path, entries))
	first, err := os.ReadFile(path)
	require.NoError(t, err)

	// Same entries in a different order produce the identical file.
	require.NoError(t, WriteLockfile(path, []LockEntry{entries[1], entries[0]}))
	second, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, string(first), string(second))

	lock, err := ReadLockfile(path)
	require.NoError(t, err)
	assert.Equal(t, "1", lock.Version)
	require.Len(t, lock.Plugins, 2)
	assert.Equal(t, "plenary.nvim", lock.Plugins[0].Name)
	assert.Equal(t, "tokyonight.nvim", lock.Plugins[1].Name)
}

func TestReadLockfile_Missing(t *testing.T) {
	_, err := ReadLockfile(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
