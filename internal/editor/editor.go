// Package editor runs the user's text editor on a temporary file and
// returns the edited text with comment lines removed.
package editor

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// ErrAborted is returned when the editor exits with status 1, the
// conventional "user gave up" signal.
var ErrAborted = errors.New("editor aborted")

// ErrKilled is returned when the editor is terminated by a signal. Kept
// distinct from a nonzero exit so callers can map it to EINTR.
var ErrKilled = errors.New("editor terminated by signal")

// ErrNoEditor is returned when neither VISUAL nor EDITOR is set.
var ErrNoEditor = errors.New("neither VISUAL nor EDITOR is set")

// Edit writes template to <issuesDir>/TMP, opens it in $VISUAL (falling
// back to $EDITOR) and returns the result with lines starting with '#'
// stripped. The temporary file is removed best-effort.
func Edit(issuesDir, template string) (string, error) {
	name := os.Getenv("VISUAL")
	if name == "" {
		name = os.Getenv("EDITOR")
	}
	if name == "" {
		return "", ErrNoEditor
	}

	tmpfile := filepath.Join(issuesDir, "TMP")
	if err := os.WriteFile(tmpfile, []byte(template), 0o644); err != nil {
		return "", err
	}
	defer os.Remove(tmpfile)

	cmd := exec.Command(name, tmpfile)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	err := cmd.Run()
	var exitErr *exec.ExitError
	switch {
	case err == nil:
	case errors.As(err, &exitErr):
		if exitErr.ExitCode() < 0 {
			return "", ErrKilled
		}
		if exitErr.ExitCode() == 1 {
			return "", ErrAborted
		}
		return "", fmt.Errorf("editor exited with status %d", exitErr.ExitCode())
	default:
		return "", fmt.Errorf("running editor %q: %w", name, err)
	}

	edited, err := os.ReadFile(tmpfile)
	if err != nil {
		return "", err
	}
	return StripComments(string(edited)), nil
}

// StripComments drops every line starting with '#'.
func StripComments(text string) string {
	var kept []string
	for _, line := range strings.Split(text, "\n") {
		if !strings.HasPrefix(line, "#") {
			kept = append(kept, line)
		}
	}
	return strings.Join(kept, "\n")
}
