// Package git drives the git(1) command line. The transaction protocol in
// internal/issue depends on porcelain-exact stash/reset/merge behavior, so
// we shell out instead of reimplementing the plumbing.
package git

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
)

// Repository is a handle on one git repository. The zero value is not
// usable; construct one with Discover, Open or Init.
type Repository struct {
	gitDir   string
	workTree string
	bare     bool
}

// Discover locates the repository containing dir, the same way running git
// inside dir would.
func Discover(dir string) (*Repository, error) {
	gitDir, err := revParse(dir, "--absolute-git-dir")
	if err != nil {
		return nil, fmt.Errorf("not a git repository: %w", err)
	}
	bare, err := revParse(dir, "--is-bare-repository")
	if err != nil {
		return nil, fmt.Errorf("not a git repository: %w", err)
	}
	repo := &Repository{gitDir: gitDir, bare: bare == "true"}
	if !repo.bare {
		top, err := revParse(dir, "--show-toplevel")
		if err != nil {
			return nil, fmt.Errorf("resolving work tree: %w", err)
		}
		repo.workTree = top
	}
	return repo, nil
}

// Open builds a repository from explicit --git-dir/--work-tree style
// overrides. Either argument may be empty, in which case it is derived from
// the other.
func Open(gitDir, workTree string) (*Repository, error) {
	switch {
	case gitDir == "" && workTree == "":
		cwd, err := os.Getwd()
		if err != nil {
			return nil, err
		}
		return Discover(cwd)
	case gitDir == "":
		return Discover(workTree)
	case workTree == "":
		return &Repository{gitDir: gitDir, bare: true}, nil
	default:
		return &Repository{gitDir: gitDir, workTree: workTree}, nil
	}
}

// Init creates a new non-bare repository rooted at dir.
func Init(dir string) (*Repository, error) {
	cmd := exec.Command("git", "init", "--quiet", dir)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return nil, wrapRunError("init", &stderr, err)
	}
	return Discover(dir)
}

// IsBare reports whether the repository has no working tree.
func (r *Repository) IsBare() bool { return r.bare }

// WorkTree returns the working tree root, or "" for a bare repository.
func (r *Repository) WorkTree() string { return r.workTree }

// Head returns the commit hash HEAD points at. ErrNoHead is returned when
// there is nothing to resolve (empty repository, unborn branch).
func (r *Repository) Head() (string, error) {
	out, err := r.run("rev-parse", "rev-parse", "--verify", "HEAD")
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrNoHead, err)
	}
	return strings.TrimSpace(out), nil
}

// IsClean reports whether the working tree has no uncommitted changes,
// counting untracked files as changes.
func (r *Repository) IsClean() (bool, error) {
	if r.bare {
		return false, ErrBareRepository
	}
	out, err := r.run("status", "status", "--porcelain")
	if err != nil {
		return false, err
	}
	return strings.TrimSpace(out) == "", nil
}

// Stage adds one path to the index. Every property write must be followed
// by a Stage call or the subsequent commit will not pick it up.
func (r *Repository) Stage(path string) error {
	if r.bare {
		return ErrBareRepository
	}
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return &FileNotFoundError{Path: path}
	}
	_, err := r.run("add", "add", "--", path)
	return err
}

// StageRemoval records the deletion of path in the index.
func (r *Repository) StageRemoval(path string) error {
	if r.bare {
		return ErrBareRepository
	}
	_, err := r.run("add", "add", "--all", "--", path)
	return err
}

// Commit records the current index with the given message. noVerify
// bypasses pre-commit and commit-msg hooks; issue-tracker commits are not
// source-code commits and must not be held to code-review gates.
func (r *Repository) Commit(message string, allowEmpty, noVerify bool) error {
	if r.bare {
		return ErrBareRepository
	}
	args := []string{"commit", "--quiet", "-m", message}
	if allowEmpty {
		args = append(args, "--allow-empty")
	}
	if noVerify {
		args = append(args, "--no-verify")
	}
	_, err := r.run("commit", args...)
	return err
}

// StashPush sets aside all uncommitted changes, untracked files included,
// under the given message.
func (r *Repository) StashPush(message string) error {
	_, err := r.run("stash", "stash", "push", "--include-untracked", "--quiet", "-m", message)
	return err
}

// StashPop restores the most recently stashed changes.
func (r *Repository) StashPop() error {
	_, err := r.run("stash", "stash", "pop", "--quiet")
	return err
}

// ResetHard moves the current branch (and the working tree) to sha,
// discarding everything after it.
func (r *Repository) ResetHard(sha string) error {
	_, err := r.run("reset", "reset", "--hard", "--quiet", sha)
	return err
}

// MergeNoFF merges sha into the current branch with a forced merge commit
// carrying message. The resulting commit's tree equals sha's tree when the
// branch is an ancestor of sha.
func (r *Repository) MergeNoFF(sha, message string) error {
	_, err := r.run("merge", "merge", "--no-ff", "--quiet", "-m", message, sha)
	return err
}

// AuthorDate returns the author timestamp of the given commit.
func (r *Repository) AuthorDate(sha string) (time.Time, error) {
	out, err := r.run("show", "show", "--no-patch", "--format=%aI", sha)
	if err != nil {
		return time.Time{}, err
	}
	return time.Parse(time.RFC3339, strings.TrimSpace(out))
}

// PathAddedBy returns the author name and author date of the commit that
// introduced path.
func (r *Repository) PathAddedBy(path string) (string, time.Time, error) {
	rel := path
	if r.workTree != "" {
		if p, err := filepath.Rel(r.workTree, path); err == nil {
			rel = p
		}
	}
	// %x00 keeps the NUL out of the argument itself; exec rejects argv
	// strings containing NUL, so git has to expand the separator.
	out, err := r.run("log", "log", "--diff-filter=A", "--format=%aN%x00%aI", "-1", "--", rel)
	if err != nil {
		return "", time.Time{}, err
	}
	author, dateText, ok := strings.Cut(strings.TrimSpace(out), "\x00")
	if !ok {
		return "", time.Time{}, fmt.Errorf("no commit introduces %q", rel)
	}
	date, err := time.Parse(time.RFC3339, dateText)
	if err != nil {
		return "", time.Time{}, err
	}
	return author, date, nil
}

// Log runs git log with the given extra arguments and returns its output.
// Used for the human-readable edit history of an issue.
func (r *Repository) Log(args ...string) (string, error) {
	return r.run("log", append([]string{"log"}, args...)...)
}

func (r *Repository) run(op string, args ...string) (string, error) {
	full := make([]string, 0, len(args)+4)
	full = append(full, "--git-dir", r.gitDir)
	if r.workTree != "" {
		full = append(full, "--work-tree", r.workTree)
	}
	full = append(full, args...)

	cmd := exec.Command("git", full...)
	if r.workTree != "" {
		cmd.Dir = r.workTree
	}
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return "", wrapRunError(op, &stderr, err)
	}
	return stdout.String(), nil
}

func wrapRunError(op string, stderr *bytes.Buffer, err error) error {
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		if code := exitErr.ExitCode(); code >= 0 {
			return &ExecError{Op: op, Msg: strings.TrimSpace(stderr.String()), Code: code}
		}
		return &SignalError{Op: op, State: exitErr.ProcessState.String()}
	}
	return fmt.Errorf("running git %s: %w", op, err)
}

func revParse(dir, flag string) (string, error) {
	cmd := exec.Command("git", "-C", dir, "rev-parse", flag)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return "", wrapRunError("rev-parse", &stderr, err)
	}
	return strings.TrimSpace(stdout.String()), nil
}
