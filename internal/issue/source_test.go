package issue

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kalkin/go-git-issue/internal/git"
)

// newTestSource builds a DataSource over a fresh git repository with one
// initial commit, mirroring what gi init leaves behind.
func newTestSource(t *testing.T) *DataSource {
	t.Helper()
	t.Setenv("GIT_AUTHOR_NAME", "Test Author")
	t.Setenv("GIT_AUTHOR_EMAIL", "author@example.com")
	t.Setenv("GIT_COMMITTER_NAME", "Test Author")
	t.Setenv("GIT_COMMITTER_EMAIL", "author@example.com")
	t.Setenv("GIT_CONFIG_GLOBAL", os.DevNull)
	t.Setenv("GIT_CONFIG_SYSTEM", os.DevNull)

	dir := t.TempDir()
	repo, err := git.Init(dir)
	require.NoError(t, err)
	require.NoError(t, repo.Commit("initial", true, false))

	issuesDir := filepath.Join(dir, ".issues")
	require.NoError(t, os.MkdirAll(issuesDir, 0o755))
	return NewDataSource(issuesDir, repo)
}

func mustGit(t *testing.T, ds *DataSource, args ...string) string {
	t.Helper()
	cmd := exec.Command("git", args...)
	cmd.Dir = ds.Repo.WorkTree()
	out, err := cmd.CombinedOutput()
	if err != nil {
		t.Fatalf("git %v: %v\n%s", args, err, out)
	}
	return strings.TrimSpace(string(out))
}

func propertyBytes(t *testing.T, ds *DataSource, id ID, prop Property) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(id.Path(ds.IssuesDir), string(prop)))
	require.NoError(t, err)
	return string(data)
}

func TestCreateIssue(t *testing.T) {
	ds := newTestSource(t)
	id, err := ds.CreateIssue("Test issue\n\nA longer explanation.", nil, "")
	require.NoError(t, err)
	assert.Len(t, string(id), 40)

	// The id is the hash of the marker commit, which is empty.
	assert.Equal(t, "gi: Add issue", mustGit(t, ds, "log", "-1", "--format=%s", string(id)))

	assert.Equal(t, "Test issue\n\nA longer explanation.\n",
		propertyBytes(t, ds, id, PropDescription))
	assert.Equal(t, "open\n", propertyBytes(t, ds, id, PropTags))

	title, err := ds.Title(id)
	require.NoError(t, err)
	assert.Equal(t, "Test issue", title)
}

func TestCreateIssueWithTagsAndMilestone(t *testing.T) {
	ds := newTestSource(t)
	id, err := ds.CreateIssue("Test issue", []string{"foo", "bar"}, "v1.0")
	require.NoError(t, err)

	// Tags are stored sorted, one per line, trailing newline.
	assert.Equal(t, "bar\nfoo\nopen\n", propertyBytes(t, ds, id, PropTags))
	assert.Equal(t, "v1.0\n", propertyBytes(t, ds, id, PropMilestone))
}

func TestAddTagIsIdempotent(t *testing.T) {
	ds := newTestSource(t)
	id, err := ds.CreateIssue("Test issue", nil, "")
	require.NoError(t, err)

	result, err := ds.AddTag(id, "foo")
	require.NoError(t, err)
	assert.Equal(t, Applied, result)
	commits := mustGit(t, ds, "rev-list", "--count", "HEAD")

	result, err = ds.AddTag(id, "foo")
	require.NoError(t, err)
	assert.Equal(t, NoChanges, result)

	// The redundant add must not have produced a commit.
	assert.Equal(t, commits, mustGit(t, ds, "rev-list", "--count", "HEAD"))
}

func TestRemoveTag(t *testing.T) {
	ds := newTestSource(t)
	id, err := ds.CreateIssue("Test issue", []string{"foo"}, "")
	require.NoError(t, err)

	result, err := ds.RemoveTag(id, "foo")
	require.NoError(t, err)
	assert.Equal(t, Applied, result)
	assert.Equal(t, "open\n", propertyBytes(t, ds, id, PropTags))

	result, err = ds.RemoveTag(id, "foo")
	require.NoError(t, err)
	assert.Equal(t, NoChanges, result)
}

func TestCloseIssue(t *testing.T) {
	ds := newTestSource(t)
	id, err := ds.CreateIssue("Test issue", nil, "")
	require.NoError(t, err)

	result, err := ds.CloseIssue(id)
	require.NoError(t, err)
	assert.Equal(t, Applied, result)
	assert.Equal(t, "closed\n", propertyBytes(t, ds, id, PropTags))

	result, err = ds.CloseIssue(id)
	require.NoError(t, err)
	assert.Equal(t, NoChanges, result)
}

func TestMilestoneLifecycle(t *testing.T) {
	ds := newTestSource(t)
	id, err := ds.CreateIssue("Test issue", nil, "")
	require.NoError(t, err)

	if _, ok := ds.Milestone(id); ok {
		t.Fatal("new issue must not have a milestone")
	}

	result, err := ds.AddMilestone(id, "v1.0")
	require.NoError(t, err)
	assert.Equal(t, Applied, result)
	milestone, ok := ds.Milestone(id)
	assert.True(t, ok)
	assert.Equal(t, "v1.0", milestone)

	result, err = ds.AddMilestone(id, "v1.0")
	require.NoError(t, err)
	assert.Equal(t, NoChanges, result)

	result, err = ds.RemoveMilestone(id)
	require.NoError(t, err)
	assert.Equal(t, Applied, result)
	_, err = os.Stat(filepath.Join(id.Path(ds.IssuesDir), string(PropMilestone)))
	assert.True(t, os.IsNotExist(err))

	result, err = ds.RemoveMilestone(id)
	require.NoError(t, err)
	assert.Equal(t, NoChanges, result)
}

func TestDueDateLifecycle(t *testing.T) {
	ds := newTestSource(t)
	id, err := ds.CreateIssue("Test issue", nil, "")
	require.NoError(t, err)

	due := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	result, err := ds.SetDueDate(id, due)
	require.NoError(t, err)
	assert.Equal(t, Applied, result)
	assert.Equal(t, "2026-09-01T12:00:00Z\n", propertyBytes(t, ds, id, PropDueDate))

	got, ok, err := ds.DueDate(id)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.True(t, got.Equal(due))

	result, err = ds.SetDueDate(id, due)
	require.NoError(t, err)
	assert.Equal(t, NoChanges, result)

	result, err = ds.RemoveDueDate(id)
	require.NoError(t, err)
	assert.Equal(t, Applied, result)

	_, ok, err = ds.DueDate(id)
	require.NoError(t, err)
	assert.False(t, ok)

	result, err = ds.RemoveDueDate(id)
	require.NoError(t, err)
	assert.Equal(t, NoChanges, result)
}

func TestSetDueDateIgnoresSubsecondDifference(t *testing.T) {
	ds := newTestSource(t)
	id, err := ds.CreateIssue("Test issue", nil, "")
	require.NoError(t, err)

	due := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	result, err := ds.SetDueDate(id, due)
	require.NoError(t, err)
	require.Equal(t, Applied, result)

	// The file stores second precision; an instant in the same second
	// serializes identically and must be NoChanges, not a failed commit.
	result, err = ds.SetDueDate(id, due.Add(500*time.Millisecond))
	require.NoError(t, err)
	assert.Equal(t, NoChanges, result)
	assert.Equal(t, "2026-09-01T12:00:00Z\n", propertyBytes(t, ds, id, PropDueDate))
}

func TestEditDescription(t *testing.T) {
	ds := newTestSource(t)
	id, err := ds.CreateIssue("Old title", nil, "")
	require.NoError(t, err)

	require.NoError(t, ds.EditDescription(id, "New title\n\nNew body"))
	assert.Equal(t, "New title\n\nNew body\n", propertyBytes(t, ds, id, PropDescription))
	assert.Equal(t, "gi: Edit issue description",
		mustGit(t, ds, "log", "-1", "--format=%s"))
}

func TestCreationDate(t *testing.T) {
	ds := newTestSource(t)
	before := time.Now().Add(-time.Minute)
	id, err := ds.CreateIssue("Test issue", nil, "")
	require.NoError(t, err)

	created, err := ds.CreationDate(id)
	require.NoError(t, err)
	assert.True(t, created.After(before))
}

func TestListIDs(t *testing.T) {
	ds := newTestSource(t)
	ids, err := ds.ListIDs()
	require.NoError(t, err)
	assert.Empty(t, ids)

	first, err := ds.CreateIssue("First", nil, "")
	require.NoError(t, err)
	second, err := ds.CreateIssue("Second", nil, "")
	require.NoError(t, err)

	ids, err = ds.ListIDs()
	require.NoError(t, err)
	require.Len(t, ids, 2)
	assert.Contains(t, ids, first)
	assert.Contains(t, ids, second)
	assert.True(t, ids[0] < ids[1], "listing must be sorted")
}

func TestFindIssueOnDisk(t *testing.T) {
	ds := newTestSource(t)
	id, err := ds.CreateIssue("Test issue", nil, "")
	require.NoError(t, err)

	found, err := ds.FindIssue(string(id))
	require.NoError(t, err)
	assert.Equal(t, id, found)

	found, err = ds.FindIssue(id.Short())
	require.NoError(t, err)
	assert.Equal(t, id, found)

	_, err = ds.FindIssue(strings.Repeat("z", 8))
	var notFound *NotFoundError
	require.ErrorAs(t, err, &notFound)
}

func TestFindIssuesDir(t *testing.T) {
	ds := newTestSource(t)
	nested := filepath.Join(ds.Repo.WorkTree(), "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	found, ok := FindIssuesDir(nested)
	assert.True(t, ok)
	assert.Equal(t, ds.IssuesDir, found)

	_, ok = FindIssuesDir(t.TempDir())
	assert.False(t, ok)
}
