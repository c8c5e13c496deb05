package issue

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// Comment is one comment on an issue. Comments are individual files in the
// issue's comments/ subdirectory; the author and creation date come from
// the commit that introduced the file.
type Comment struct {
	ID      string
	Author  string
	Created time.Time
	Body    string
}

// Comments reads all comments of an issue, ordered by creation timestamp
// ascending. An issue without a comments directory has no comments.
func (ds *DataSource) Comments(id ID) ([]Comment, error) {
	dir := filepath.Join(id.Path(ds.IssuesDir), "comments")
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var comments []Comment
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		author, created, err := ds.Repo.PathAddedBy(path)
		if err != nil {
			return nil, err
		}
		comments = append(comments, Comment{
			ID:      entry.Name(),
			Author:  author,
			Created: created,
			Body:    strings.TrimRight(string(data), "\n"),
		})
	}
	sort.Slice(comments, func(i, j int) bool {
		return comments[i].Created.Before(comments[j].Created)
	})
	return comments, nil
}
