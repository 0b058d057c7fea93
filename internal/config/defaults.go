package config

import (
	"os"
	"path/filepath"
	"runtime"
)

// DefaultConfigPath returns the default path for the nvinit config directory.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "nvinit", "config")
	}

	switch runtime.GOOS {
	case "windows":
		return filepath.Join(home, "AppData", "Roaming", "nvinit")
	case "darwin":
		return filepath.Join(home, "Library", "Application Support", "nvinit")
	default: // Linux, BSD, etc.
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, "nvinit")
		}
		return filepath.Join(home, ".config", "nvinit")
	}
}

// DefaultStatePath returns the default path for nvinit state such as the
// plugin lockfile and logs.
func DefaultStatePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "nvinit", "state")
	}

	switch runtime.GOOS {
	case "windows":
		return filepath.Join(home, "AppData", "Local", "nvinit")
	case "darwin":
		return filepath.Join(home, "Library", "Application Support", "nvinit", "state")
	default: // Linux, BSD, etc.
		if xdg := os.Getenv("XDG_STATE_HOME"); xdg != "" {
			return filepath.Join(xdg, "nvinit")
		}
		return filepath.Join(home, ".local", "state", "nvinit")
	}
}
