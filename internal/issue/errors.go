package issue

import (
	"errors"
	"fmt"
	"strings"
)

// ErrGitRepoNotFound is returned when no git repository encloses the
// .issues directory.
var ErrGitRepoNotFound = errors.New("git repository not found")

// ErrIssuesRepoNotFound is returned when no .issues directory exists in the
// working directory or any of its parents.
var ErrIssuesRepoNotFound = errors.New("not an issues repository (or any of the parent directories)")

// ErrBareRepository is returned when a transaction is started against a
// repository without a usable working tree or HEAD.
var ErrBareRepository = errors.New("cannot use bare git repository")

// ErrTransactionNotStarted signals coordinator misuse: finish or rollback
// without a matching start. A programming defect, not a user error.
var ErrTransactionNotStarted = errors.New("bug: transaction not started")

// ErrTransactionActive signals coordinator misuse: starting a transaction
// while another one is open on the same DataSource.
var ErrTransactionActive = errors.New("bug: transaction already started")

// NotFoundError is returned when a needle matches no issue.
type NotFoundError struct {
	Needle string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("found no issue matching prefix %q", e.Needle)
}

// MultipleFoundError is returned when a needle matches more than one issue.
// Candidates carries the full list for caller display.
type MultipleFoundError struct {
	Needle     string
	Candidates []ID
}

func (e *MultipleFoundError) Error() string {
	short := make([]string, len(e.Candidates))
	for i, id := range e.Candidates {
		short[i] = id.Short()
	}
	return fmt.Sprintf("issue prefix %q matched multiple issues: %s", e.Needle, strings.Join(short, ", "))
}

// RecoveryStep identifies which transaction-bracket operation failed.
type RecoveryStep int

const (
	// StepReset means the hard reset back to the start commit failed.
	StepReset RecoveryStep = iota
	// StepMerge means the non-fast-forward merge of the write chain failed.
	StepMerge
	// StepUnstash means popping the pre-transaction stash failed.
	StepUnstash
	// StepHead means the branch head could not be resolved before the
	// reset; the branch was never touched.
	StepHead
)

// RecoveryError reports a failed finish or rollback bracket. The repository
// is left in a state the operator must repair by hand; Error spells out the
// exact commands. Bracket failures are never retried automatically because
// retrying a half-applied VCS operation risks silent data loss.
type RecoveryError struct {
	Step     RecoveryStep
	StartSHA string
	Stashed  bool // a stash is still pending and must be popped manually
	Cause    error
}

func (e *RecoveryError) Error() string {
	recipe := fmt.Sprintf("git reset --hard %s", e.StartSHA)
	if e.Stashed {
		recipe += " && git stash pop"
	}
	switch e.Step {
	case StepUnstash:
		return fmt.Sprintf("%v\nFailed to unstash changes.\nUse git stash pop to do it manually.", e.Cause)
	case StepMerge:
		return fmt.Sprintf("%v\nFailed to merge issue changes with commit %s.\nTo restore your repository use:\n %s", e.Cause, e.StartSHA, recipe)
	case StepHead:
		msg := fmt.Sprintf("%v\nFailed to resolve the branch head; the branch was not touched.", e.Cause)
		if e.Stashed {
			msg += "\nUse git stash pop to restore your stashed changes."
		}
		return msg
	default:
		return fmt.Sprintf("%v\nFailed to reset back to commit %s.\nTo restore your repository use:\n %s", e.Cause, e.StartSHA, recipe)
	}
}

func (e *RecoveryError) Unwrap() error { return e.Cause }
