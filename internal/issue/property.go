package issue

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Property names one independently stored attribute of an issue. Each
// property is a single file in the issue directory.
type Property string

const (
	PropDescription Property = "description"
	PropTags        Property = "tags"
	PropMilestone   Property = "milestone"
	PropDueDate     Property = "duedate"
)

// WriteResult reports whether a requested data change was applied or was
// redundant. Redundant changes must not be committed: every applied write
// becomes a permanent commit, and spurious commits pollute the history.
type WriteResult int

const (
	// NoChanges means the requested change was already in effect.
	NoChanges WriteResult = iota
	// Applied means the change was written and committed.
	Applied
)

// Combine collapses a batch of results: Applied if any element applied.
func Combine(results ...WriteResult) WriteResult {
	for _, r := range results {
		if r == Applied {
			return Applied
		}
	}
	return NoChanges
}

// changeKind enumerates every property mutation the writer knows how to
// commit. The set is closed; message.go maps each kind to its commit
// message template.
type changeKind int

const (
	changeNewDescription changeKind = iota
	changeEditDescription
	changeAddTag
	changeRemoveTag
	changeAddMilestone
	changeRemoveMilestone
	changeAddDueDate
	changeRemoveDueDate
)

// propertyChange is one pending mutation: what kind, and the new value
// (description text, tag, milestone name or due date).
type propertyChange struct {
	kind  changeKind
	value string
}

func (c propertyChange) property() Property {
	switch c.kind {
	case changeNewDescription, changeEditDescription:
		return PropDescription
	case changeAddTag, changeRemoveTag:
		return PropTags
	case changeAddMilestone, changeRemoveMilestone:
		return PropMilestone
	default:
		return PropDueDate
	}
}

// removes reports whether the change deletes the property file instead of
// rewriting it.
func (c propertyChange) removes() bool {
	return c.kind == changeRemoveMilestone || c.kind == changeRemoveDueDate
}

// writeToFile applies one property change to disk and stages the result.
// This is the only code path that creates an issue directory. Staging is
// unconditional after a successful write because the commit step only
// captures staged changes.
func (ds *DataSource) writeToFile(id ID, c propertyChange) error {
	dir := id.Path(ds.IssuesDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	path := filepath.Join(dir, string(c.property()))

	switch c.property() {
	case PropDescription:
		text := strings.TrimRight(c.value, " \t\n") + "\n"
		if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
			return err
		}
	case PropTags:
		tags, err := readLines(path)
		if err != nil {
			return err
		}
		switch c.kind {
		case changeAddTag:
			tags = append(tags, c.value)
		case changeRemoveTag:
			tags = retainNotEqual(tags, c.value)
		}
		// Normalized on every write: sorted ascending, duplicates dropped.
		sort.Strings(tags)
		tags = dedup(tags)
		if err := os.WriteFile(path, []byte(strings.Join(tags, "\n")+"\n"), 0o644); err != nil {
			return err
		}
	default: // milestone, duedate
		if c.removes() {
			if err := os.Remove(path); err != nil {
				return err
			}
			return ds.Repo.StageRemoval(path)
		}
		if err := os.WriteFile(path, []byte(c.value+"\n"), 0o644); err != nil {
			return err
		}
	}
	return ds.Repo.Stage(path)
}

// write applies one property change and pairs it with a commit whose
// message is derived from the change, so the history is self-describing.
// Hooks are bypassed; see Repository.Commit.
func (ds *DataSource) write(id ID, c propertyChange) error {
	if err := ds.writeToFile(id, c); err != nil {
		return err
	}
	return ds.Repo.Commit(commitMessage(id, c), false, true)
}

// readLines returns the lines of path, or an empty list when the file does
// not exist yet.
func readLines(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	text := strings.TrimRight(string(data), "\n")
	if text == "" {
		return nil, nil
	}
	return strings.Split(text, "\n"), nil
}

func retainNotEqual(list []string, drop string) []string {
	out := list[:0]
	for _, v := range list {
		if v != drop {
			out = append(out, v)
		}
	}
	return out
}

// dedup removes adjacent duplicates from a sorted slice.
func dedup(list []string) []string {
	out := list[:0]
	for i, v := range list {
		if i == 0 || list[i-1] != v {
			out = append(out, v)
		}
	}
	return out
}
