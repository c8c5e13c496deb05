package main

import (
	"errors"

	gitissue "github.com/kalkin/go-git-issue"
	"github.com/kalkin/go-git-issue/internal/editor"
	"github.com/kalkin/go-git-issue/internal/git"
	"github.com/kalkin/go-git-issue/internal/issue"
)

// exitCode maps an error to the process exit status expected by scripts
// written against git-issue(1).
func exitCode(err error) int {
	var recovery *issue.RecoveryError
	var execErr *git.ExecError
	var notFound *issue.NotFoundError
	var multiple *issue.MultipleFoundError

	switch {
	case errors.Is(err, editor.ErrKilled):
		return gitissue.ExitEditorKilled
	case errors.Is(err, gitissue.ErrIssuesDirExists):
		return gitissue.ExitIssuesDirExists
	case errors.Is(err, issue.ErrGitRepoNotFound):
		return gitissue.ExitRepoNotFound
	case errors.Is(err, issue.ErrIssuesRepoNotFound):
		return gitissue.ExitIssuesDirNotFound
	case errors.Is(err, issue.ErrBareRepository),
		errors.Is(err, git.ErrBareRepository):
		return gitissue.ExitBareRepository
	case errors.As(err, &recovery):
		if recovery.Step == issue.StepUnstash {
			return gitissue.ExitStashError
		}
		return gitissue.ExitTransactionBracket
	case errors.As(err, &notFound), errors.As(err, &multiple):
		return gitissue.ExitNotFound
	case errors.As(err, &execErr):
		return execErr.Code
	default:
		return 1
	}
}
