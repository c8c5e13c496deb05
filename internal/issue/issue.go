package issue

import (
	"os"
	"strings"
	"time"
)

// Issue is a read-side view of one issue. Every field is fetched on first
// access and memoized, so a listing only pays for the fields its output
// format actually uses; calling an accessor twice never re-reads the file.
type Issue struct {
	id ID
	ds *DataSource

	cdate    *time.Time
	desc     *string
	tags     []string
	comments []Comment

	milestone    string
	hasMilestone bool

	ddate  time.Time
	hasDue bool

	tagsLoaded      bool
	milestoneLoaded bool
	ddateLoaded     bool
	commentsLoaded  bool
}

// NewIssue wraps an id without touching the filesystem.
func NewIssue(ds *DataSource, id ID) *Issue {
	return &Issue{id: id, ds: ds}
}

// ID returns the issue id.
func (i *Issue) ID() ID { return i.id }

// CreationDate returns the author date of the issue's marker commit.
func (i *Issue) CreationDate() (time.Time, error) {
	if i.cdate == nil {
		t, err := i.ds.CreationDate(i.id)
		if err != nil {
			return time.Time{}, err
		}
		i.cdate = &t
	}
	return *i.cdate, nil
}

// Description returns the full description text.
func (i *Issue) Description() (string, error) {
	if i.desc == nil {
		text, err := i.ds.Description(i.id)
		if err != nil {
			return "", err
		}
		i.desc = &text
	}
	return *i.desc, nil
}

// Title returns the first line of the description.
func (i *Issue) Title() (string, error) {
	description, err := i.Description()
	if err != nil {
		return "", err
	}
	title, _, _ := strings.Cut(description, "\n")
	return title, nil
}

// Tags returns the issue's tags.
func (i *Issue) Tags() ([]string, error) {
	if !i.tagsLoaded {
		i.tags = i.ds.Tags(i.id)
		i.tagsLoaded = true
	}
	return i.tags, nil
}

// Milestone returns the milestone and whether one is set.
func (i *Issue) Milestone() (string, bool) {
	if !i.milestoneLoaded {
		i.milestone, i.hasMilestone = i.ds.Milestone(i.id)
		i.milestoneLoaded = true
	}
	return i.milestone, i.hasMilestone
}

// DueDate returns the due date and whether one is set.
func (i *Issue) DueDate() (time.Time, bool, error) {
	if !i.ddateLoaded {
		due, ok, err := i.ds.DueDate(i.id)
		if err != nil {
			return time.Time{}, false, err
		}
		i.ddate, i.hasDue = due, ok
		i.ddateLoaded = true
	}
	return i.ddate, i.hasDue, nil
}

// Comments returns the issue's comments, ordered by creation date.
func (i *Issue) Comments() ([]Comment, error) {
	if !i.commentsLoaded {
		comments, err := i.ds.Comments(i.id)
		if err != nil && !os.IsNotExist(err) {
			return nil, err
		}
		i.comments = comments
		i.commentsLoaded = true
	}
	return i.comments, nil
}
