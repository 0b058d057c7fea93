// Package doctor verifies the pieces of the environment nvinit depends on
// but does not own: the git and nvim binaries, the plugin manager checkout,
// and whether a headless Neovim can actually load it.
package doctor

import (
	"context"
	"fmt"
	"os"

	"github.com/nvinit-dev/nvinit/internal/bootstrap"
	"github.com/nvinit-dev/nvinit/internal/runner"
)

// Check is one verification result.
type Check struct {
	Name   string
	OK     bool
	Detail string
}

// Prober asks a live Neovim whether the plugin manager is loadable.
type Prober interface {
	ProbeManager(ctx context.Context, installPath string) error
}

// Doctor runs environment checks.
type Doctor struct {
	dataDir  string
	lookPath func(string) (string, error)
	prober   Prober
}

// Option configures a Doctor.
type Option func(*Doctor)

// WithLookPath replaces PATH lookup.
func WithLookPath(fn func(string) (string, error)) Option {
	return func(d *Doctor) {
		d.lookPath = fn
	}
}

// WithProber replaces the Neovim prober.
func WithProber(p Prober) Option {
	return func(d *Doctor) {
		d.prober = p
	}
}

// New creates a Doctor for the given Neovim data directory.
func New(dataDir string, opts ...Option) *Doctor {
	d := &Doctor{
		dataDir:  dataDir,
		lookPath: runner.LookPath,
		prober:   NvimProber{},
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Run executes all checks and returns their results. Later checks that
// depend on earlier ones degrade to failures with an explanatory detail
// instead of being skipped silently.
func (d *Doctor) Run(ctx context.Context) []Check {
	var checks []Check

	gitPath, gitErr := d.lookPath("git")
	checks = append(checks, binaryCheck("git on PATH", gitPath, gitErr))

	nvimPath, nvimErr := d.lookPath("nvim")
	checks = append(checks, binaryCheck("nvim on PATH", nvimPath, nvimErr))

	installPath := bootstrap.InstallPath(d.dataDir)
	_, statErr := os.Stat(installPath)
	managerPresent := statErr == nil
	checks = append(checks, Check{
		Name:   "plugin manager installed",
		OK:     managerPresent,
		Detail: installPath,
	})

	probe := Check{Name: "plugin manager loadable"}
	switch {
	case nvimErr != nil:
		probe.Detail = "nvim not available"
	case !managerPresent:
		probe.Detail = "plugin manager not installed"
	default:
		if err := d.prober.ProbeManager(ctx, installPath); err != nil {
			probe.Detail = err.Error()
		} else {
			probe.OK = true
			probe.Detail = "require(\"lazy\") succeeded"
		}
	}
	checks = append(checks, probe)

	return checks
}

// Healthy reports whether every check passed.
func Healthy(checks []Check) bool {
	for _, c := range checks {
		if !c.OK {
			return false
		}
	}
	return true
}

func binaryCheck(name, path string, err error) Check {
	if err != nil {
		return Check{Name: name, Detail: fmt.Sprintf("not found: %v", err)}
	}
	return Check{Name: name, OK: true, Detail: path}
}
