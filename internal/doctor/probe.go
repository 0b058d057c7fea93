package doctor

import (
	"context"
	"errors"
	"fmt"

	"github.com/neovim/go-client/nvim"
)

// probeScript runs inside the embedded Neovim: put the install path on the
// runtimepath and see whether the plugin manager module resolves.
const probeScript = `local path = ...
vim.opt.rtp:prepend(path)
return (pcall(require, "lazy"))`

// NvimProber attaches to an embedded headless Neovim over msgpack-RPC.
type NvimProber struct{}

// ProbeManager starts `nvim --embed --headless --clean` as a child process
// and asks it to require the plugin manager from installPath.
func (NvimProber) ProbeManager(ctx context.Context, installPath string) error {
	v, err := nvim.NewChildProcess(
		nvim.ChildProcessCommand("nvim"),
		nvim.ChildProcessArgs("--embed", "--headless", "--clean"),
		nvim.ChildProcessContext(ctx),
	)
	if err != nil {
		return fmt.Errorf("failed to start embedded nvim: %w", err)
	}
	defer v.Close()

	var loadable bool
	if err := v.ExecLua(probeScript, &loadable, installPath); err != nil {
		return fmt.Errorf("probe failed: %w", err)
	}
	if !loadable {
		return errors.New("plugin manager is present but not loadable")
	}

	return nil
}
