package bootstrap

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/nvinit-dev/nvinit/internal/runner"
)

const (
	// RepoURL is the upstream plugin manager repository.
	RepoURL = "https://github.com/folke/lazy.nvim.git"

	// RepoBranch pins the clone to the stable release line rather than a
	// moving default branch.
	RepoBranch = "stable"

	cloneFailedLabel = "Failed to clone lazy.nvim:"
	exitPrompt       = "Press any key to exit..."
)

// Installer guarantees the plugin manager is present at its install path
// before anything that depends on it runs. It performs at most one network
// fetch per process and halts the process on an unrecoverable failure.
type Installer struct {
	path   string
	runner runner.CommandRunner
	in     io.Reader
	out    io.Writer
	exit   func(code int)
}

// Option configures an Installer.
type Option func(*Installer)

// WithRunner replaces the command runner.
func WithRunner(r runner.CommandRunner) Option {
	return func(i *Installer) {
		i.runner = r
	}
}

// WithInput replaces the interactive input stream read on the failure path.
func WithInput(in io.Reader) Option {
	return func(i *Installer) {
		i.in = in
	}
}

// WithOutput replaces the user-facing output stream.
func WithOutput(out io.Writer) Option {
	return func(i *Installer) {
		i.out = out
	}
}

// WithExit replaces the process-exit function.
func WithExit(exit func(code int)) Option {
	return func(i *Installer) {
		i.exit = exit
	}
}

// NewInstaller creates an Installer for the plugin manager below dataDir.
func NewInstaller(dataDir string, opts ...Option) *Installer {
	i := &Installer{
		path:   InstallPath(dataDir),
		runner: runner.ExecCommandRunner{},
		in:     os.Stdin,
		out:    os.Stderr,
		exit:   os.Exit,
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// Path returns the install path the Installer manages.
func (i *Installer) Path() string {
	return i.path
}

// EnsurePresent makes sure the plugin manager exists at the install path.
//
// An existing entry of any kind satisfies the check; no content or version
// validation is performed. When the path is absent, a single blocking git
// clone is attempted: blob-filtered to minimize transfer and pinned to the
// stable branch. On a non-zero exit the raw clone output is shown to the
// user, a single keypress is awaited, and the process terminates with exit
// status 1 so no dependent stage can run.
func (i *Installer) EnsurePresent(ctx context.Context) error {
	if _, err := os.Stat(i.path); err == nil {
		slog.Debug("Plugin manager already present, skipping fetch", "path", i.path)
		return nil
	}

	slog.Info("Plugin manager missing, cloning", "url", RepoURL, "branch", RepoBranch, "path", i.path)

	args := []string{
		"clone",
		"--filter=blob:none",
		"--branch=" + RepoBranch,
		RepoURL,
		i.path,
	}

	output, err := i.runner.CombinedOutput(ctx, "git", args)
	if err == nil {
		slog.Info("Plugin manager cloned successfully", "path", i.path)
		return nil
	}

	slog.Error("Failed to clone plugin manager", "error", err, "output", string(output))

	fmt.Fprintf(i.out, "%s\n%s\n%s", cloneFailedLabel, output, exitPrompt)

	// Block until the user acknowledges, then halt the whole process so
	// nothing downstream runs against a missing dependency.
	buf := make([]byte, 1)
	_, _ = i.in.Read(buf)

	i.exit(1)

	// Reached only when the exit function is stubbed out in tests.
	return fmt.Errorf("%w: %v", ErrDependencyUnavailable, err)
}
