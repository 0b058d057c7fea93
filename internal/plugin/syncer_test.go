package plugin

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// --- Mock types ---

type MockRunner struct {
	mock.Mock
}

func (m *MockRunner) Run(ctx context.Context, name string, args []string, stdin io.Reader) ([]byte, []byte, error) {
	called := m.Called(ctx, name, args, stdin)
	return called.Get(0).([]byte), called.Get(1).([]byte), called.Error(2)
}

func (m *MockRunner) CombinedOutput(ctx context.Context, name string, args []string) ([]byte, error) {
	called := m.Called(ctx, name, args)
	return called.Get(0).([]byte), called.Error(1)
}

// --- Tests ---

func expectHeadCommit(m *MockRunner, dir, commit string) {
	m.On("Run", mock.Anything, "git", []string{"-C", dir, "rev-parse", "HEAD"}, nil).
		Return([]byte(commit+"\n"), []byte(nil), nil)
}

func TestSync_FreshInstall(t *testing.T) {
	dataDir := t.TempDir()
	target := filepath.Join(dataDir, "lazy", "tokyonight.nvim")

	mockRunner := new(MockRunner)
	mockRunner.On("CombinedOutput", mock.Anything, "git", []string{
		"clone", "--filter=blob:none", "--branch=v4.8.0",
		"https://github.com/folke/tokyonight.nvim.git", target,
	}).Run(func(mock.Arguments) {
		require.NoError(t, os.MkdirAll(target, 0o755))
	}).Return([]byte("Cloning...\n"), nil).Once()
	expectHeadCommit(mockRunner, target, "abc123")

	syncer := NewSyncer(dataDir, WithRunner(mockRunner))

	entries, err := syncer.Sync(context.Background(), []Spec{{Repo: "folke/tokyonight.nvim", Pin: "v4.8.0"}})
	require.NoError(t, err)

	require.Len(t, entries, 1)
	assert.Equal(t, "tokyonight.nvim", entries[0].Name)
	assert.Equal(t, "abc123", entries[0].Commit)

	marker, err := os.ReadFile(filepath.Join(target, ".nvinit-synced"))
	require.NoError(t, err)
	assert.Equal(t, "repo: https://github.com/folke/tokyonight.nvim.git\npin: v4.8.0\n", string(marker))

	instance, ok := syncer.Registry().Get("tokyonight.nvim")
	require.True(t, ok)
	assert.Equal(t, StatusSynced, instance.Status)

	mockRunner.AssertExpectations(t)
}

func TestSync_MarkerMatchSkips(t *testing.T) {
	dataDir := t.TempDir()
	target := filepath.Join(dataDir, "lazy", "tokyonight.nvim")
	require.NoError(t, os.MkdirAll(target, 0o755))
	marker := "repo: https://github.com/folke/tokyonight.nvim.git\npin: v4.8.0\n"
	require.NoError(t, os.WriteFile(filepath.Join(target, ".nvinit-synced"), []byte(marker), 0o644))

	mockRunner := new(MockRunner)
	expectHeadCommit(mockRunner, target, "abc123")

	syncer := NewSyncer(dataDir, WithRunner(mockRunner))

	entries, err := syncer.Sync(context.Background(), []Spec{{Repo: "folke/tokyonight.nvim", Pin: "v4.8.0"}})
	require.NoError(t, err)
	require.Len(t, entries, 1)

	instance, ok := syncer.Registry().Get("tokyonight.nvim")
	require.True(t, ok)
	assert.Equal(t, StatusSkipped, instance.Status)

	mockRunner.AssertNotCalled(t, "CombinedOutput", mock.Anything, mock.Anything, mock.Anything)
}

func TestSync_PinChangeReinstalls(t *testing.T) {
	dataDir := t.TempDir()
	target := filepath.Join(dataDir, "lazy", "tokyonight.nvim")
	require.NoError(t, os.MkdirAll(target, 0o755))
	stale := filepath.Join(target, "stale-file")
	require.NoError(t, os.WriteFile(stale, []byte("old checkout"), 0o644))
	oldMarker := "repo: https://github.com/folke/tokyonight.nvim.git\npin: v4.7.0\n"
	require.NoError(t, os.WriteFile(filepath.Join(target, ".nvinit-synced"), []byte(oldMarker), 0o644))

	mockRunner := new(MockRunner)
	mockRunner.On("CombinedOutput", mock.Anything, "git", []string{
		"clone", "--filter=blob:none", "--branch=v4.8.0",
		"https://github.com/folke/tokyonight.nvim.git", target,
	}).Run(func(mock.Arguments) {
		// The stale checkout must be gone before the clone runs.
		_, err := os.Stat(target)
		assert.True(t, os.IsNotExist(err))
		require.NoError(t, os.MkdirAll(target, 0o755))
	}).Return([]byte(""), nil).Once()
	expectHeadCommit(mockRunner, target, "def456")

	syncer := NewSyncer(dataDir, WithRunner(mockRunner))

	entries, err := syncer.Sync(context.Background(), []Spec{{Repo: "folke/tokyonight.nvim", Pin: "v4.8.0"}})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "v4.8.0", entries[0].Pin)

	mockRunner.AssertExpectations(t)
}

func TestSync_NoPinOmitsBranchFlag(t *testing.T) {
	dataDir := t.TempDir()
	target := filepath.Join(dataDir, "lazy", "plenary.nvim")

	mockRunner := new(MockRunner)
	mockRunner.On("CombinedOutput", mock.Anything, "git", []string{
		"clone", "--filter=blob:none",
		"https://github.com/nvim-lua/plenary.nvim.git", target,
	}).Run(func(mock.Arguments) {
		require.NoError(t, os.MkdirAll(target, 0o755))
	}).Return([]byte(""), nil).Once()
	expectHeadCommit(mockRunner, target, "fff000")

	syncer := NewSyncer(dataDir, WithRunner(mockRunner))

	_, err := syncer.Sync(context.Background(), []Spec{{Repo: "nvim-lua/plenary.nvim"}})
	require.NoError(t, err)
	mockRunner.AssertExpectations(t)
}

func TestSync_CloneFailureSurfacesOutput(t *testing.T) {
	dataDir := t.TempDir()

	mockRunner := new(MockRunner)
	mockRunner.On("CombinedOutput", mock.Anything, "git", mock.Anything).
		Return([]byte("fatal: repository not found\n"), errors.New("exit status 128")).
		Once()

	syncer := NewSyncer(dataDir, WithRunner(mockRunner))

	_, err := syncer.Sync(context.Background(), []Spec{{Repo: "nobody/missing.nvim"}})
	assert.ErrorContains(t, err, "missing.nvim")
	assert.ErrorContains(t, err, "fatal: repository not found")
}

func TestSync_ReservedManagerName(t *testing.T) {
	syncer := NewSyncer(t.TempDir(), WithRunner(new(MockRunner)))

	_, err := syncer.Sync(context.Background(), []Spec{{Repo: "folke/lazy.nvim"}})
	assert.ErrorIs(t, err, ErrReservedName)
}

func TestSync_UndeclaredDroppedFromRegistry(t *testing.T) {
	dataDir := t.TempDir()
	target := filepath.Join(dataDir, "lazy", "plenary.nvim")

	mockRunner := new(MockRunner)
	mockRunner.On("CombinedOutput", mock.Anything, "git", mock.Anything).
		Run(func(mock.Arguments) {
			require.NoError(t, os.MkdirAll(target, 0o755))
		}).Return([]byte(""), nil).Once()
	expectHeadCommit(mockRunner, target, "aaa111")

	syncer := NewSyncer(dataDir, WithRunner(mockRunner))

	_, err := syncer.Sync(context.Background(), []Spec{{Repo: "nvim-lua/plenary.nvim"}})
	require.NoError(t, err)

	_, ok := syncer.Registry().Get("plenary.nvim")
	require.True(t, ok)

	// Next sync without the declaration drops it from the registry.
	_, err = syncer.Sync(context.Background(), nil)
	require.NoError(t, err)

	_, ok = syncer.Registry().Get("plenary.nvim")
	assert.False(t, ok)
}
