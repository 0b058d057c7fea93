package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validYAML = `version: "1"
storage:
  data_dir: ~/.local/share/nvim
editor:
  leader: " "
  options:
    number: true
    shiftwidth: 2
    clipboard: unnamedplus
  keymaps:
    - mode: n
      lhs: "<leader>ff"
      rhs: ":Telescope find_files<CR>"
      desc: "Find files"
plugins:
  specs_dir: ~/.config/nvim/lua/plugins
  declarations:
    - repo: folke/tokyonight.nvim
      pin: v4.8.0
    - repo: nvim-lualine/lualine.nvim
shell:
  profile: ~/.profile
  exports:
    EDITOR: nvim
  path:
    - ~/bin
    - /usr/local/bin
  hooks:
    - fzf
    - nvm
  extra:
    - "# managed by nvinit"
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadAndValidate(t *testing.T) {
	path := writeConfig(t, validYAML)

	cfg, err := LoadAndValidate(path, "")
	require.NoError(t, err)

	assert.Equal(t, "1", cfg.Version)
	assert.Equal(t, "~/.local/share/nvim", cfg.Storage.DataDir)
	assert.Equal(t, " ", cfg.Editor.Leader)
	assert.Equal(t, true, cfg.Editor.Options["number"])
	assert.Len(t, cfg.Editor.Keymaps, 1)
	assert.Equal(t, "<leader>ff", cfg.Editor.Keymaps[0].Lhs)
	require.Len(t, cfg.Plugins.Declarations, 2)
	assert.Equal(t, "folke/tokyonight.nvim", cfg.Plugins.Declarations[0].Repo)
	assert.Equal(t, "v4.8.0", cfg.Plugins.Declarations[0].Pin)
	assert.Equal(t, []string{"fzf", "nvm"}, cfg.Shell.Hooks)
}

func TestLoadAndValidate_MissingVersion(t *testing.T) {
	path := writeConfig(t, "storage:\n  data_dir: /tmp\n")

	_, err := LoadAndValidate(path, "")
	assert.ErrorContains(t, err, "validation failed")
}

func TestLoadAndValidate_UnknownKeyRejected(t *testing.T) {
	path := writeConfig(t, "version: \"1\"\ntypo_section: {}\n")

	_, err := LoadAndValidate(path, "")
	assert.ErrorContains(t, err, "validation failed")
}

func TestLoadAndValidate_UnknownHookRejected(t *testing.T) {
	path := writeConfig(t, "version: \"1\"\nshell:\n  hooks: [rbenv]\n")

	_, err := LoadAndValidate(path, "")
	assert.ErrorContains(t, err, "validation failed")
}

func TestLoadAndValidate_DeclarationNeedsRepo(t *testing.T) {
	path := writeConfig(t, "version: \"1\"\nplugins:\n  declarations:\n    - pin: v1.0.0\n")

	_, err := LoadAndValidate(path, "")
	assert.ErrorContains(t, err, "validation failed")
}

func TestLoadAndValidate_MissingFile(t *testing.T) {
	_, err := LoadAndValidate(filepath.Join(t.TempDir(), "nope.yaml"), "")
	assert.ErrorContains(t, err, "failed to read config")
}
