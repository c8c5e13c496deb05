package git

import (
	"errors"
	"fmt"
)

// ErrBareRepository is returned when an operation needs a working tree but
// the repository has none.
var ErrBareRepository = errors.New("cannot use bare git repository")

// ErrNoHead is returned when HEAD cannot be resolved, either because the
// repository has no commits yet or no branch is checked out.
var ErrNoHead = errors.New("cannot resolve HEAD")

// FileNotFoundError reports an attempt to stage a path that does not exist
// in the working tree.
type FileNotFoundError struct {
	Path string
}

func (e *FileNotFoundError) Error() string {
	return fmt.Sprintf("cannot stage missing file %q", e.Path)
}

// ExecError is a git subprocess that ran to completion and exited with a
// nonzero status.
type ExecError struct {
	Op   string // git subcommand, e.g. "commit"
	Msg  string // trimmed stderr
	Code int    // exit status
}

func (e *ExecError) Error() string {
	if e.Msg == "" {
		return fmt.Sprintf("git %s exited with status %d", e.Op, e.Code)
	}
	return fmt.Sprintf("git %s: %s (exit status %d)", e.Op, e.Msg, e.Code)
}

// SignalError is a git subprocess that was killed by a signal before it
// could exit. Kept distinct from ExecError because there is no exit status
// to inspect.
type SignalError struct {
	Op    string
	State string // e.g. "signal: killed"
}

func (e *SignalError) Error() string {
	return fmt.Sprintf("git %s terminated by signal: %s", e.Op, e.State)
}
