package plugin

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/nvinit-dev/nvinit/internal/runner"
)

const (
	markerFilename = ".nvinit-synced"

	// managerDirName is where the plugin manager itself lives below
	// <data-dir>/lazy; the bootstrap installer owns that entry and the
	// syncer must never touch it.
	managerDirName = "lazy.nvim"
)

// Syncer makes the set of installed plugins match the declared specs.
// Each plugin lives at <data-dir>/lazy/<name> next to the plugin manager,
// with a marker file recording what was fetched so an unchanged declaration
// is a no-op on the next run.
type Syncer struct {
	dataDir  string
	runner   runner.CommandRunner
	registry *Registry
}

// SyncerOption configures a Syncer.
type SyncerOption func(*Syncer)

// WithRunner replaces the command runner.
func WithRunner(r runner.CommandRunner) SyncerOption {
	return func(s *Syncer) {
		s.runner = r
	}
}

// NewSyncer creates a Syncer installing below dataDir.
func NewSyncer(dataDir string, opts ...SyncerOption) *Syncer {
	s := &Syncer{
		dataDir:  dataDir,
		runner:   runner.ExecCommandRunner{},
		registry: NewRegistry(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Registry returns the registry of synced plugins.
func (s *Syncer) Registry() *Registry {
	return s.registry
}

// Sync installs every declared plugin and returns lock entries for the
// synced set. Plugins already present with a matching marker are skipped.
// A declaration whose pin changed is removed and fetched fresh.
func (s *Syncer) Sync(ctx context.Context, specs []Spec) ([]LockEntry, error) {
	root := filepath.Join(s.dataDir, "lazy")
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("failed to prepare plugin directory %s: %w", root, err)
	}

	var entries []LockEntry
	for _, spec := range specs {
		if err := spec.Validate(); err != nil {
			return nil, fmt.Errorf("invalid plugin spec %q: %w", spec.Repo, err)
		}
		if spec.DirName() == managerDirName {
			return nil, fmt.Errorf("%w: %s", ErrReservedName, spec.Repo)
		}

		instance, err := s.syncOne(ctx, spec, root)
		if err != nil {
			return nil, err
		}

		s.registry.Set(instance)
		entries = append(entries, LockEntry{
			Name:   instance.DirName(),
			Repo:   instance.URL(),
			Pin:    instance.Pin,
			Commit: instance.Commit,
		})
	}

	// Drop registry entries for plugins no longer declared.
	declared := make(map[string]bool, len(specs))
	for _, spec := range specs {
		declared[spec.DirName()] = true
	}
	for _, instance := range s.registry.List() {
		if !declared[instance.DirName()] {
			s.registry.Delete(instance.DirName())
			slog.Info("Plugin no longer declared, dropped from registry", "name", instance.DirName())
		}
	}

	return entries, nil
}

func (s *Syncer) syncOne(ctx context.Context, spec Spec, root string) (*Instance, error) {
	target := filepath.Join(root, spec.DirName())
	markerPath := filepath.Join(target, markerFilename)
	markerContent := markerContentFor(spec)

	if content, err := os.ReadFile(markerPath); err == nil && string(content) == markerContent {
		slog.Debug("Plugin up to date, skipping", "name", spec.DirName(), "path", target)
		commit, _ := s.headCommit(ctx, target)
		return &Instance{Spec: spec, Path: target, Commit: commit, Status: StatusSkipped}, nil
	}

	// Stale or unmanaged directory: replace it wholesale so the clone
	// below starts clean.
	if _, err := os.Stat(target); err == nil {
		slog.Info("Plugin declaration changed, reinstalling", "name", spec.DirName(), "path", target)
		if err := os.RemoveAll(target); err != nil {
			return nil, fmt.Errorf("failed to remove stale plugin %s: %w", target, err)
		}
	}

	args := []string{"clone", "--filter=blob:none"}
	if spec.Pin != "" {
		args = append(args, "--branch="+spec.Pin)
	}
	args = append(args, spec.URL(), target)

	slog.Info("Installing plugin", "name", spec.DirName(), "url", spec.URL(), "pin", spec.Pin)

	output, err := s.runner.CombinedOutput(ctx, "git", args)
	if err != nil {
		return nil, fmt.Errorf("failed to install plugin %s: %w: %s", spec.DirName(), err, strings.TrimSpace(string(output)))
	}

	if err := os.WriteFile(markerPath, []byte(markerContent), 0o644); err != nil {
		slog.Warn("Failed to write sync marker", "path", markerPath, "error", err)
	}

	commit, err := s.headCommit(ctx, target)
	if err != nil {
		slog.Warn("Failed to resolve plugin commit", "name", spec.DirName(), "error", err)
	}

	slog.Info("Plugin installed", "name", spec.DirName(), "commit", commit)
	return &Instance{Spec: spec, Path: target, Commit: commit, Status: StatusSynced}, nil
}

// headCommit resolves the commit a plugin checkout is at.
func (s *Syncer) headCommit(ctx context.Context, dir string) (string, error) {
	stdout, stderr, err := s.runner.Run(ctx, "git", []string{"-C", dir, "rev-parse", "HEAD"}, nil)
	if err != nil {
		return "", fmt.Errorf("git rev-parse failed: %w: %s", err, strings.TrimSpace(string(stderr)))
	}
	return strings.TrimSpace(string(stdout)), nil
}

// markerContentFor is the marker content that identifies what was fetched.
// A mismatch on the next run forces a reinstall.
func markerContentFor(spec Spec) string {
	return fmt.Sprintf("repo: %s\npin: %s\n", spec.URL(), spec.Pin)
}
