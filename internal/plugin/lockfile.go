package plugin

import (
	"fmt"
	"os"
	"sort"

	"go.yaml.in/yaml/v3"

	"github.com/nvinit-dev/nvinit/internal/xfs"
)

// LockEntry records what one plugin resolved to at sync time.
type LockEntry struct {
	Name   string `yaml:"name"`
	Repo   string `yaml:"repo"`
	Pin    string `yaml:"pin,omitempty"`
	Commit string `yaml:"commit,omitempty"`
}

// Lockfile is the on-disk record of the last successful sync.
type Lockfile struct {
	Version string      `yaml:"version"`
	Plugins []LockEntry `yaml:"plugins"`
}

// WriteLockfile writes entries to path, sorted by name so repeated syncs of
// the same declarations produce identical files.
func WriteLockfile(path string, entries []LockEntry) error {
	sorted := make([]LockEntry, len(entries))
	copy(sorted, entries)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Name < sorted[j].Name })

	data, err := yaml.Marshal(&Lockfile{Version: "1", Plugins: sorted})
	if err != nil {
		return fmt.Errorf("failed to marshal lockfile: %w", err)
	}

	if err := xfs.WriteFileAtomic(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write lockfile %s: %w", path, err)
	}

	return nil
}

// ReadLockfile reads the lockfile at path.
func ReadLockfile(path string) (*Lockfile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read lockfile %s: %w", path, err)
	}

	var lock Lockfile
	if err := yaml.Unmarshal(data, &lock); err != nil {
		return nil, fmt.Errorf("failed to parse lockfile %s: %w", path, err)
	}

	return &lock, nil
}
