package compiler

import (
	"context"
	"io"
	"os/exec"

	"github.com/pkg/errors"
)

// Executor starts a child process and waits for it.
type Executor interface {
	Execute(ctx context.Context, dir string, stdout, stderr io.Writer, name string, args []string) error
}

type osExecutor struct{}

func (osExecutor) Execute(ctx context.Context, dir string, stdout, stderr io.Writer, name string, args []string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	cmd.Stdout = stdout
	cmd.Stderr = stderr
	if err := cmd.Run(); err != nil {
		return errors.Wrapf(err, "%s failed", name)
	}
	return nil
}
