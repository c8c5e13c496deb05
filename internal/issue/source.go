// Package issue implements the storage core of the tracker: issues as
// plain-text property files inside a git repository, one commit per
// mutation, bracketed by the transaction coordinator in transaction.go so
// that a logical operation lands as a single commit on the branch.
package issue

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/kalkin/go-git-issue/internal/git"
)

// DataSource is the handle for reading and mutating the issues of one
// repository. Reads need no transaction; all mutation is expected to happen
// between StartTransaction and FinishTransaction/RollbackTransaction.
//
// A DataSource is not safe for concurrent use: the model is single
// operator, single process, one working tree.
type DataSource struct {
	Repo      *git.Repository
	IssuesDir string

	tx *Transaction
}

// NewDataSource wraps an already-located .issues directory and repository.
func NewDataSource(issuesDir string, repo *git.Repository) *DataSource {
	return &DataSource{Repo: repo, IssuesDir: issuesDir}
}

// Discover walks upward from dir looking for a .issues directory, then
// locates the git repository containing it.
func Discover(dir string) (*DataSource, error) {
	return DiscoverWith(dir, "", "")
}

// DiscoverWith is Discover with explicit --git-dir/--work-tree overrides;
// empty strings mean "derive from the .issues location".
func DiscoverWith(dir, gitDir, workTree string) (*DataSource, error) {
	issuesDir, ok := FindIssuesDir(dir)
	if !ok {
		return nil, ErrIssuesRepoNotFound
	}
	var repo *git.Repository
	var err error
	if gitDir == "" && workTree == "" {
		repo, err = git.Discover(issuesDir)
	} else {
		repo, err = git.Open(gitDir, workTree)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGitRepoNotFound, err)
	}
	return NewDataSource(issuesDir, repo), nil
}

// FindIssuesDir walks from start to the filesystem root looking for a
// directory named .issues.
func FindIssuesDir(start string) (string, bool) {
	dir := start
	for {
		needle := filepath.Join(dir, ".issues")
		if info, err := os.Stat(needle); err == nil && info.IsDir() {
			return needle, true
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}

func (ds *DataSource) issuesPath() string {
	return filepath.Join(ds.IssuesDir, "issues")
}

// All returns every issue as a lazily-loading entity.
func (ds *DataSource) All() ([]*Issue, error) {
	ids, err := ds.ListIDs()
	if err != nil {
		return nil, err
	}
	issues := make([]*Issue, len(ids))
	for i, id := range ids {
		issues[i] = NewIssue(ds, id)
	}
	return issues, nil
}

// CreateIssue creates a new issue: an empty marker commit whose hash
// becomes the id, then the description (which carries the implicit "open"
// tag), the given tags and the milestone, each as its own commit. Callers
// bracket this in a transaction so the commits collapse to one.
func (ds *DataSource) CreateIssue(description string, tags []string, milestone string) (ID, error) {
	if err := ds.Repo.Commit(markerMessage, true, true); err != nil {
		return "", err
	}
	head, err := ds.Repo.Head()
	if err != nil {
		return "", err
	}
	id := ID(head)
	slog.Debug("gi new mark", "id", id)

	if err := ds.NewDescription(id, description); err != nil {
		return "", err
	}
	slog.Debug("gi new description", "id", id)
	for _, tag := range tags {
		if _, err := ds.AddTag(id, tag); err != nil {
			return "", err
		}
		slog.Debug("gi tag add", "tag", tag)
	}
	if milestone != "" {
		if _, err := ds.AddMilestone(id, milestone); err != nil {
			return "", err
		}
		slog.Debug("gi milestone add", "milestone", milestone)
	}
	return id, nil
}

// CloseIssue removes the "open" tag and adds "closed". Applied if either
// write changed anything.
func (ds *DataSource) CloseIssue(id ID) (WriteResult, error) {
	removed, err := ds.RemoveTag(id, "open")
	if err != nil {
		return NoChanges, err
	}
	added, err := ds.AddTag(id, "closed")
	if err != nil {
		return NoChanges, err
	}
	return Combine(removed, added), nil
}

// read returns the property file contents with the trailing newline
// stripped. A missing file surfaces as os.ErrNotExist; callers treat that
// as "unset" for optional properties.
func (ds *DataSource) read(id ID, prop Property) (string, error) {
	data, err := os.ReadFile(filepath.Join(id.Path(ds.IssuesDir), string(prop)))
	if err != nil {
		return "", err
	}
	return strings.TrimRight(string(data), " \t\n"), nil
}

// Description returns the full description text of an issue.
func (ds *DataSource) Description(id ID) (string, error) {
	return ds.read(id, PropDescription)
}

// Title returns the first line of the description.
func (ds *DataSource) Title(id ID) (string, error) {
	description, err := ds.read(id, PropDescription)
	if err != nil {
		return "", err
	}
	title, _, _ := strings.Cut(description, "\n")
	return title, nil
}

// Tags returns the tags of an issue; no tags file means no tags.
func (ds *DataSource) Tags(id ID) []string {
	text, err := ds.read(id, PropTags)
	if err != nil || text == "" {
		return nil
	}
	return strings.Split(text, "\n")
}

// Milestone returns the milestone of an issue, if set.
func (ds *DataSource) Milestone(id ID) (string, bool) {
	text, err := ds.read(id, PropMilestone)
	if err != nil {
		return "", false
	}
	return text, true
}

// DueDate returns the due date of an issue, if set.
func (ds *DataSource) DueDate(id ID) (time.Time, bool, error) {
	text, err := ds.read(id, PropDueDate)
	if os.IsNotExist(err) {
		return time.Time{}, false, nil
	}
	if err != nil {
		return time.Time{}, false, err
	}
	t, err := time.Parse(time.RFC3339, text)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("malformed duedate for %s: %w", id.Short(), err)
	}
	return t, true, nil
}

// CreationDate returns when the issue was created, looked up from the
// author date of the marker commit the id names.
func (ds *DataSource) CreationDate(id ID) (time.Time, error) {
	return ds.Repo.AuthorDate(string(id))
}

// NewDescription writes the initial description and the implicit "open"
// tag. Only used on creation; see EditDescription for later changes.
func (ds *DataSource) NewDescription(id ID, text string) error {
	if err := ds.write(id, propertyChange{kind: changeNewDescription, value: text}); err != nil {
		return err
	}
	return ds.write(id, propertyChange{kind: changeAddTag, value: "open"})
}

// EditDescription overwrites the description of an existing issue.
func (ds *DataSource) EditDescription(id ID, text string) error {
	return ds.write(id, propertyChange{kind: changeEditDescription, value: text})
}

// AddTag adds a tag; NoChanges if the issue already carries it.
func (ds *DataSource) AddTag(id ID, tag string) (WriteResult, error) {
	if slices.Contains(ds.Tags(id), tag) {
		return NoChanges, nil
	}
	if err := ds.write(id, propertyChange{kind: changeAddTag, value: tag}); err != nil {
		return NoChanges, err
	}
	return Applied, nil
}

// RemoveTag removes a tag; NoChanges if the issue does not carry it.
func (ds *DataSource) RemoveTag(id ID, tag string) (WriteResult, error) {
	if !slices.Contains(ds.Tags(id), tag) {
		return NoChanges, nil
	}
	if err := ds.write(id, propertyChange{kind: changeRemoveTag, value: tag}); err != nil {
		return NoChanges, err
	}
	return Applied, nil
}

// AddMilestone sets the milestone; NoChanges if it is already that value.
func (ds *DataSource) AddMilestone(id ID, milestone string) (WriteResult, error) {
	if current, ok := ds.Milestone(id); ok && current == milestone {
		return NoChanges, nil
	}
	if err := ds.write(id, propertyChange{kind: changeAddMilestone, value: milestone}); err != nil {
		return NoChanges, err
	}
	return Applied, nil
}

// RemoveMilestone unsets the milestone; NoChanges if none is set.
func (ds *DataSource) RemoveMilestone(id ID) (WriteResult, error) {
	current, ok := ds.Milestone(id)
	if !ok {
		return NoChanges, nil
	}
	if err := ds.write(id, propertyChange{kind: changeRemoveMilestone, value: current}); err != nil {
		return NoChanges, err
	}
	return Applied, nil
}

// SetDueDate sets the due date; NoChanges if the stored value would not
// change. The comparison is on the serialized form: the file keeps second
// precision, so two instants in the same second are the same due date.
func (ds *DataSource) SetDueDate(id ID, due time.Time) (WriteResult, error) {
	text := due.Format(time.RFC3339)
	current, err := ds.read(id, PropDueDate)
	if err != nil && !os.IsNotExist(err) {
		return NoChanges, err
	}
	if err == nil && current == text {
		return NoChanges, nil
	}
	if err := ds.write(id, propertyChange{kind: changeAddDueDate, value: text}); err != nil {
		return NoChanges, err
	}
	return Applied, nil
}

// RemoveDueDate unsets the due date; NoChanges if none is set.
func (ds *DataSource) RemoveDueDate(id ID) (WriteResult, error) {
	current, ok, err := ds.DueDate(id)
	if err != nil {
		return NoChanges, err
	}
	if !ok {
		return NoChanges, nil
	}
	change := propertyChange{kind: changeRemoveDueDate, value: current.Format(time.RFC3339)}
	if err := ds.write(id, change); err != nil {
		return NoChanges, err
	}
	return Applied, nil
}
