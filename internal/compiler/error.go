package compiler

import (
	"bytes"
	"fmt"
)

// BuildError is returned when the compiler exits unsuccessfully or cannot be started.
type BuildError struct {
	// msg names the step that failed.
	msg string
	// w is the underlying error.
	w error
	// Stderr is what the compiler wrote to standard error.
	Stderr []byte
}

func (e *BuildError) Error() string {
	stderr := bytes.TrimSpace(e.Stderr)
	if len(stderr) == 0 {
		return fmt.Sprintf("compiler: %s: %s", e.msg, e.w)
	}
	return fmt.Sprintf("compiler: %s: %s\n%s", e.msg, e.w, stderr)
}

func (e *BuildError) Unwrap() error {
	return e.w
}
