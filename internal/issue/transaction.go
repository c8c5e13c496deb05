package issue

import (
	"fmt"
	"log/slog"
)

// Transaction records where a bracketed sequence of writes started and
// whether the caller's uncommitted working-tree changes were stashed to
// obtain a clean starting point.
//
// Every property write is its own commit. The coordinator makes N such
// commits look like one logical change on the branch: finish resets the
// branch to StartSHA and merges the write chain back with --no-ff, so the
// branch advances by exactly one summary commit while the intermediate
// commits stay reachable through the merge's second parent.
type Transaction struct {
	StartSHA string
	Stashed  bool
}

// stashMessage tags the stash created at transaction start so a stranded
// one is recognizable in git stash list.
const stashMessage = "git-issue: Start Transaction"

// StartTransaction brings the working tree to a clean, known point and
// records it. Exactly one transaction may be open per DataSource; a second
// start fails fast with ErrTransactionActive. There is no implicit rollback:
// callers that fail mid-transaction must roll back explicitly or leave the
// repository stashed/advanced.
func (ds *DataSource) StartTransaction() error {
	if ds.tx != nil {
		return ErrTransactionActive
	}
	startSHA, err := ds.Repo.Head()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBareRepository, err)
	}
	clean, err := ds.Repo.IsClean()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBareRepository, err)
	}
	tx := &Transaction{StartSHA: startSHA, Stashed: !clean}
	if tx.Stashed {
		slog.Debug("stashing repository changes")
		if err := ds.Repo.StashPush(stashMessage); err != nil {
			return fmt.Errorf("stashing changes: %w", err)
		}
	}
	ds.tx = tx
	return nil
}

// FinishTransaction collapses the commits made since the transaction
// started into one merge commit carrying message, then restores any stashed
// changes. On failure the returned RecoveryError names the exact commands
// that repair the repository; nothing is retried automatically.
func (ds *DataSource) FinishTransaction(message string) error {
	tx := ds.tx
	if tx == nil {
		return ErrTransactionNotStarted
	}
	slog.Info("merging issue changes as not fast forward branch")
	endSHA, err := ds.Repo.Head()
	if err != nil {
		return &RecoveryError{Step: StepHead, StartSHA: tx.StartSHA, Stashed: tx.Stashed, Cause: err}
	}
	if err := ds.Repo.ResetHard(tx.StartSHA); err != nil {
		return &RecoveryError{Step: StepReset, StartSHA: tx.StartSHA, Stashed: tx.Stashed, Cause: err}
	}
	if err := ds.Repo.MergeNoFF(endSHA, message); err != nil {
		return &RecoveryError{Step: StepMerge, StartSHA: tx.StartSHA, Stashed: tx.Stashed, Cause: err}
	}
	if err := ds.unstash(tx); err != nil {
		return err
	}
	ds.tx = nil
	return nil
}

// FinishTransactionWithoutMerge ends the transaction without touching the
// branch. Used by operations whose single write commit IS the final commit
// (milestone and due-date set/remove), where a merge would add a pointless
// extra commit.
func (ds *DataSource) FinishTransactionWithoutMerge() error {
	tx := ds.tx
	if tx == nil {
		return ErrTransactionNotStarted
	}
	if err := ds.unstash(tx); err != nil {
		return err
	}
	ds.tx = nil
	return nil
}

// RollbackTransaction discards every commit made since the transaction
// started (they become unreachable, unlike the finish path) and restores
// any stashed changes.
func (ds *DataSource) RollbackTransaction() error {
	tx := ds.tx
	if tx == nil {
		return ErrTransactionNotStarted
	}
	if err := ds.Repo.ResetHard(tx.StartSHA); err != nil {
		return &RecoveryError{Step: StepReset, StartSHA: tx.StartSHA, Stashed: tx.Stashed, Cause: err}
	}
	if err := ds.unstash(tx); err != nil {
		return err
	}
	ds.tx = nil
	return nil
}

func (ds *DataSource) unstash(tx *Transaction) error {
	if !tx.Stashed {
		return nil
	}
	slog.Debug("unstashing repository changes")
	if err := ds.Repo.StashPop(); err != nil {
		return &RecoveryError{Step: StepUnstash, StartSHA: tx.StartSHA, Stashed: true, Cause: err}
	}
	return nil
}
