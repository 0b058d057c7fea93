package runner

import (
	"bytes"
	"context"
	"io"
	"os/exec"
)

// CommandRunner is the interface for running external commands.
type CommandRunner interface {
	// Run runs a command and returns stdout and stderr separately.
	Run(ctx context.Context, name string, args []string, stdin io.Reader) (stdout, stderr []byte, err error)

	// CombinedOutput runs a command and returns interleaved stdout and
	// stderr, the way a user would see them in a terminal.
	CombinedOutput(ctx context.Context, name string, args []string) ([]byte, error)
}

// ExecCommandRunner uses os/exec.
type ExecCommandRunner struct{}

// Run runs a command.
func (ExecCommandRunner) Run(ctx context.Context, name string, args []string, stdin io.Reader) (stdout, stderr []byte, err error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdin = stdin

	var outBuf, errBuf bytes.Buffer
	cmd.Stdout = &outBuf
	cmd.Stderr = &errBuf

	err = cmd.Run()
	return outBuf.Bytes(), errBuf.Bytes(), err
}

// CombinedOutput runs a command capturing stdout and stderr together.
func (ExecCommandRunner) CombinedOutput(ctx context.Context, name string, args []string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	return cmd.CombinedOutput()
}

// LookPath reports whether a binary is resolvable on PATH.
func LookPath(name string) (string, error) {
	return exec.LookPath(name)
}
