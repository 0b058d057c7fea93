package config

import (
	"os"
	"path/filepath"

	"github.com/nvinit-dev/nvinit/internal/envvar"
	"github.com/nvinit-dev/nvinit/internal/xfs"
)

// ResolveConfigPath returns the config file path.
// Precedence:
// 1. The explicit flag value, when non-empty.
// 2. NVINIT_CONFIG environment variable.
// 3. config.yaml under the default config directory.
func ResolveConfigPath(flagValue string) string {
	if flagValue != "" {
		return xfs.ExpandTilde(flagValue)
	}
	if p := os.Getenv(envvar.NvinitConfigPath); p != "" {
		return xfs.ExpandTilde(p)
	}
	return filepath.Join(DefaultConfigPath(), "config.yaml")
}
