package bootstrap

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/nvinit-dev/nvinit/internal/envvar"
	"github.com/nvinit-dev/nvinit/internal/xfs"
)

// InstallSuffix is the fixed location of the plugin manager below the
// Neovim data directory.
var InstallSuffix = filepath.Join("lazy", "lazy.nvim")

// DefaultDataDir returns the Neovim data directory, matching what
// stdpath("data") resolves to on each platform.
func DefaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "nvim-data")
	}

	switch runtime.GOOS {
	case "windows":
		return filepath.Join(home, "AppData", "Local", "nvim-data")
	default: // Linux, macOS, BSD, etc.
		if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
			return filepath.Join(xdg, "nvim")
		}
		return filepath.Join(home, ".local", "share", "nvim")
	}
}

// ResolveDataDir returns the Neovim data directory.
// Precedence:
// 1. NVINIT_DATA_PATH environment variable.
// 2. The configured data directory, when non-empty.
// 3. The platform default.
func ResolveDataDir(configured string) string {
	if p := os.Getenv(envvar.NvinitDataPath); p != "" {
		return xfs.ExpandTilde(p)
	}
	if configured != "" {
		return xfs.ExpandTilde(configured)
	}
	return DefaultDataDir()
}

// InstallPath returns the plugin manager's install path below dataDir.
// The result is deterministic for a fixed dataDir.
func InstallPath(dataDir string) string {
	return filepath.Join(dataDir, InstallSuffix)
}
