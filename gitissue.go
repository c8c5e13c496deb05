// Package gitissue implements a distributed issue tracker backed by a git
// repository. Issues are plain-text property files under .issues/; every
// mutation is a git commit and multi-step operations are collapsed into a
// single branch commit by the transaction coordinator in internal/issue.
//
// This file holds the repository lifecycle: creating a new .issues
// repository and reading its templates.
package gitissue

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/kalkin/go-git-issue/internal/git"
)

// Exit codes, matching git-issue(1).
const (
	// ExitEditorKilled: $EDITOR was terminated by a signal (EINTR).
	ExitEditorKilled = 4
	// ExitNotFound: no issue matched, or a generic resolution failure.
	ExitNotFound = 2
	// ExitIssuesDirExists: init refused because .issues already exists
	// (EEXIST).
	ExitIssuesDirExists = 17
	// ExitRepoNotFound: no git repository found.
	ExitRepoNotFound = 135
	// ExitIssuesDirNotFound: no .issues directory found.
	ExitIssuesDirNotFound = 151
	// ExitStashError: stashing operation failed.
	ExitStashError = 165
	// ExitBareRepository: a working tree is required.
	ExitBareRepository = 169
	// ExitTransactionBracket: a finish/rollback bracket failed and the
	// operator must repair by hand (ENOTEXEC).
	ExitTransactionBracket = 8
)

// ErrIssuesDirExists is returned by Create when .issues already exists.
var ErrIssuesDirExists = errors.New("an .issues directory is already present")

// DescriptionTemplate seeds the editor when a new issue is created.
const DescriptionTemplate = `

# Start with a one-line summary of the issue.  Leave a blank line and
# continue with the issue's detailed description.
#
# Remember:
# - Be precise
# - Be clear: explain how to reproduce the problem, step by step,
#   so others can reproduce the issue
# - Include only one problem per issue report
#
# Lines starting with '#' will be ignored, and an empty message aborts
# the issue addition.
`

// CommentTemplate seeds the editor when a comment is written.
const CommentTemplate = `

# Please write here a comment regarding the issue.
# Keep the conversation constructive and polite.
# Lines starting with '#' will be ignored, and an empty message aborts
# the issue addition.
`

const readme = "This is an distributed issue tracking repository based on Git.\n" +
	"Visit [git-issue](https://github.com/dspinellis/git-issue) for more information.\n"

// Create initializes a new issues repository under path: the .issues
// directory with its empty config marker, editor templates and README,
// committed as "gi init". With existing true the enclosing git repository
// is reused; otherwise a fresh repository is created inside .issues.
func Create(path string, existing bool) error {
	issuesDir := filepath.Join(path, ".issues")
	if _, err := os.Stat(issuesDir); err == nil {
		return ErrIssuesDirExists
	}
	if err := os.MkdirAll(issuesDir, 0o755); err != nil {
		return err
	}

	var repo *git.Repository
	var err error
	if existing {
		repo, err = git.Discover(path)
	} else {
		repo, err = git.Init(issuesDir)
	}
	if err != nil {
		return err
	}

	files := []struct {
		path    string
		content string
	}{
		{filepath.Join(issuesDir, "config"), ""},
		{filepath.Join(issuesDir, "templates", "description"), DescriptionTemplate},
		{filepath.Join(issuesDir, "templates", "comment"), CommentTemplate},
		{filepath.Join(issuesDir, "README.md"), readme},
	}
	for _, f := range files {
		if err := os.MkdirAll(filepath.Dir(f.path), 0o755); err != nil {
			return err
		}
		if err := os.WriteFile(f.path, []byte(f.content), 0o644); err != nil {
			return err
		}
		if err := repo.Stage(f.path); err != nil {
			return fmt.Errorf("staging %s: %w", f.path, err)
		}
	}

	// The init commit is an ordinary commit; hooks are allowed to run here.
	return repo.Commit("gi: Initialize issues repository\n\ngi init", false, false)
}

// ReadTemplate returns the contents of .issues/templates/<name>, or false
// when the template does not exist.
func ReadTemplate(issuesDir, name string) (string, bool) {
	data, err := os.ReadFile(filepath.Join(issuesDir, "templates", name))
	if err != nil {
		return "", false
	}
	return string(data), true
}
