package issue

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func head(t *testing.T, ds *DataSource) string {
	t.Helper()
	sha, err := ds.Repo.Head()
	require.NoError(t, err)
	return sha
}

func TestFinishTransactionCollapsesToOneCommit(t *testing.T) {
	ds := newTestSource(t)
	start := head(t, ds)

	require.NoError(t, ds.StartTransaction())
	id, err := ds.CreateIssue("Test issue", []string{"foo"}, "")
	require.NoError(t, err)
	require.NoError(t, ds.FinishTransaction("gi("+id.Short()+"): Test issue"))

	// The branch advanced by exactly one first-parent commit, and its
	// first parent is where the transaction started.
	assert.Equal(t, start, mustGit(t, ds, "rev-parse", "HEAD^1"))
	assert.Equal(t, "gi("+id.Short()+"): Test issue",
		mustGit(t, ds, "log", "-1", "--format=%s"))

	// The merge commit carries the tree of the last intermediate write.
	assert.Equal(t, mustGit(t, ds, "rev-parse", "HEAD^{tree}"),
		mustGit(t, ds, "rev-parse", "HEAD^2^{tree}"))

	// The intermediate write commits stay reachable via the second parent.
	subjects := mustGit(t, ds, "log", "--format=%s", "HEAD^2")
	assert.Contains(t, subjects, "gi("+id.Short()+"): Add tag foo")
	assert.Contains(t, subjects, "gi: Add issue")

	// And the issue data survived the reset+merge round trip.
	tags := ds.Tags(id)
	assert.Equal(t, []string{"foo", "open"}, tags)
}

func TestRollbackTransactionRestoresStart(t *testing.T) {
	ds := newTestSource(t)
	start := head(t, ds)

	require.NoError(t, ds.StartTransaction())
	id, err := ds.CreateIssue("Doomed issue", nil, "")
	require.NoError(t, err)
	require.NoError(t, ds.RollbackTransaction())

	assert.Equal(t, start, head(t, ds))
	_, err = os.Stat(id.Path(ds.IssuesDir))
	assert.True(t, os.IsNotExist(err))
}

func TestTransactionStashesDirtyTree(t *testing.T) {
	ds := newTestSource(t)
	dirty := filepath.Join(ds.Repo.WorkTree(), "wip")
	require.NoError(t, os.WriteFile(dirty, []byte("uncommitted\n"), 0o644))

	require.NoError(t, ds.StartTransaction())
	// The tree is clean for the duration of the transaction.
	_, err := os.Stat(dirty)
	require.True(t, os.IsNotExist(err))

	_, err = ds.CreateIssue("Test issue", nil, "")
	require.NoError(t, err)
	require.NoError(t, ds.FinishTransaction("gi: Test issue"))

	// The stashed work comes back untouched.
	data, err := os.ReadFile(dirty)
	require.NoError(t, err)
	assert.Equal(t, "uncommitted\n", string(data))
}

func TestRollbackRestoresStash(t *testing.T) {
	ds := newTestSource(t)
	dirty := filepath.Join(ds.Repo.WorkTree(), "wip")
	require.NoError(t, os.WriteFile(dirty, []byte("uncommitted\n"), 0o644))

	require.NoError(t, ds.StartTransaction())
	require.NoError(t, ds.RollbackTransaction())

	data, err := os.ReadFile(dirty)
	require.NoError(t, err)
	assert.Equal(t, "uncommitted\n", string(data))
}

func TestFinishTransactionWithoutMerge(t *testing.T) {
	ds := newTestSource(t)
	id, err := ds.CreateIssue("Test issue", nil, "")
	require.NoError(t, err)

	require.NoError(t, ds.StartTransaction())
	result, err := ds.AddMilestone(id, "v1.0")
	require.NoError(t, err)
	require.Equal(t, Applied, result)
	before := head(t, ds)
	require.NoError(t, ds.FinishTransactionWithoutMerge())

	// No merge commit: the single write commit is the branch tip.
	assert.Equal(t, before, head(t, ds))
	assert.Equal(t, "gi("+id.Short()+"): Add milestone v1.0",
		mustGit(t, ds, "log", "-1", "--format=%s"))
}

func TestStartTransactionTwiceFails(t *testing.T) {
	ds := newTestSource(t)
	require.NoError(t, ds.StartTransaction())
	assert.ErrorIs(t, ds.StartTransaction(), ErrTransactionActive)
	require.NoError(t, ds.RollbackTransaction())
}

func TestFinishWithoutStartFails(t *testing.T) {
	ds := newTestSource(t)
	assert.ErrorIs(t, ds.FinishTransaction("msg"), ErrTransactionNotStarted)
	assert.ErrorIs(t, ds.RollbackTransaction(), ErrTransactionNotStarted)
	assert.ErrorIs(t, ds.FinishTransactionWithoutMerge(), ErrTransactionNotStarted)
}

func TestTransactionReusableAfterFinish(t *testing.T) {
	ds := newTestSource(t)

	require.NoError(t, ds.StartTransaction())
	_, err := ds.CreateIssue("First", nil, "")
	require.NoError(t, err)
	require.NoError(t, ds.FinishTransaction("gi: First"))

	require.NoError(t, ds.StartTransaction())
	_, err = ds.CreateIssue("Second", nil, "")
	require.NoError(t, err)
	require.NoError(t, ds.FinishTransaction("gi: Second"))

	ids, err := ds.ListIDs()
	require.NoError(t, err)
	assert.Len(t, ids, 2)
}

func TestRecoveryErrorSpellsOutRepair(t *testing.T) {
	err := &RecoveryError{
		Step:     StepMerge,
		StartSHA: "abc123",
		Stashed:  true,
		Cause:    assert.AnError,
	}
	assert.Contains(t, err.Error(), "git reset --hard abc123 && git stash pop")

	err.Stashed = false
	assert.Contains(t, err.Error(), "git reset --hard abc123")
	assert.NotContains(t, err.Error(), "stash pop")
}

func TestRecoveryErrorHeadResolution(t *testing.T) {
	// Head resolution fails before any reset runs; the recipe must not
	// tell the operator a reset failed.
	err := &RecoveryError{
		Step:     StepHead,
		StartSHA: "abc123",
		Stashed:  true,
		Cause:    assert.AnError,
	}
	assert.Contains(t, err.Error(), "the branch was not touched")
	assert.Contains(t, err.Error(), "git stash pop")
	assert.NotContains(t, err.Error(), "reset back to commit")

	err.Stashed = false
	assert.NotContains(t, err.Error(), "stash pop")
}
