package compiler

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/pkg/errors"
	"github.com/samber/lo"
)

// Options configures how the external compiler is invoked.
type Options struct {
	// Binary is the compiler executable, looked up in PATH when not absolute.
	Binary string
	// Entry is the entry-point source file, relative to Dir.
	Entry string
	// Dir is the working directory of the child process. Empty means the
	// directory holding the running executable.
	Dir string
	// Yes appends the auto-confirm flag.
	Yes bool
	// Timeout bounds a single run. Zero means no timeout.
	Timeout time.Duration
}

// Result describes one finished compiler run.
type Result struct {
	Binary   string
	Args     []string
	Dir      string
	Stdout   []byte
	Stderr   []byte
	Duration time.Duration
}

type Compiler struct {
	opts Options
	exec Executor
}

// New creates a Compiler that spawns real child processes.
func New(opts Options) (*Compiler, error) {
	return NewWithExecutor(opts, &osExecutor{})
}

// NewWithExecutor creates a Compiler that runs through the given Executor.
func NewWithExecutor(opts Options, e Executor) (*Compiler, error) {
	if opts.Dir == "" {
		dir, err := executableDir()
		if err != nil {
			return nil, err
		}
		opts.Dir = dir
	}
	return &Compiler{opts: opts, exec: e}, nil
}

// Args returns the argument list for building into outputFile.
func (c *Compiler) Args(outputFile string, debug bool) []string {
	return lo.Compact([]string{
		"make",
		c.opts.Entry,
		"--output=" + outputFile,
		lo.Ternary(c.opts.Yes, "--yes", ""),
		lo.Ternary(debug, "--debug", ""),
	})
}

// Run builds the entry point into outputFile and waits for the child to exit.
// The returned Result is non-nil even when the build fails.
func (c *Compiler) Run(ctx context.Context, outputFile string, debug bool) (*Result, error) {
	if c.opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.opts.Timeout)
		defer cancel()
	}

	var stdout, stderr bytes.Buffer
	res := &Result{
		Binary: c.opts.Binary,
		Args:   c.Args(outputFile, debug),
		Dir:    c.opts.Dir,
	}

	start := time.Now()
	err := c.exec.Execute(ctx, res.Dir, &stdout, &stderr, res.Binary, res.Args)
	res.Duration = time.Since(start)
	res.Stdout = stdout.Bytes()
	res.Stderr = stderr.Bytes()

	if err != nil {
		return res, &BuildError{msg: "build " + c.opts.Entry, w: err, Stderr: res.Stderr}
	}
	return res, nil
}

func executableDir() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", errors.Wrap(err, "locate executable")
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return filepath.Dir(exe), nil
}
