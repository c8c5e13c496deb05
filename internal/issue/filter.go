package issue

import (
	"slices"
	"sort"
	"time"
)

// MilestoneMatch selects how a filter treats the milestone property.
type MilestoneMatch int

const (
	// MilestoneAny matches every issue regardless of milestone.
	MilestoneAny MilestoneMatch = iota
	// MilestoneNone matches only issues without a milestone.
	MilestoneNone
	// MilestoneValue matches only issues whose milestone equals Value.
	MilestoneValue
)

// Filter is a conjunction of listing predicates: the issue must carry every
// WithTags entry, none of the WithoutTags entries, and satisfy the
// milestone match.
type Filter struct {
	WithTags    []string
	WithoutTags []string
	Milestone   MilestoneMatch
	Value       string // milestone value for MilestoneValue
}

// Match reports whether the issue passes the filter.
func (f *Filter) Match(issue *Issue) (bool, error) {
	switch f.Milestone {
	case MilestoneNone:
		if _, ok := issue.Milestone(); ok {
			return false, nil
		}
	case MilestoneValue:
		milestone, ok := issue.Milestone()
		if !ok || milestone != f.Value {
			return false, nil
		}
	}

	if len(f.WithTags) > 0 || len(f.WithoutTags) > 0 {
		tags, err := issue.Tags()
		if err != nil {
			return false, err
		}
		for _, tag := range f.WithoutTags {
			if slices.Contains(tags, tag) {
				return false, nil
			}
		}
		for _, tag := range f.WithTags {
			if !slices.Contains(tags, tag) {
				return false, nil
			}
		}
	}
	return true, nil
}

// Apply filters issues, keeping input order.
func (f *Filter) Apply(issues []*Issue) ([]*Issue, error) {
	var out []*Issue
	for _, issue := range issues {
		ok, err := f.Match(issue)
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, issue)
		}
	}
	return out, nil
}

// SortKey orders a listing.
type SortKey int

const (
	SortNone SortKey = iota
	SortCreationDate
	SortDueDate
	SortDescription
	SortMilestone
)

// Sort orders issues by key, ascending and stable. Unset due dates and
// milestones sort first, matching "absent < any value".
func Sort(issues []*Issue, key SortKey) error {
	if key == SortNone {
		return nil
	}
	// Pre-load the sort field so the comparison function stays error-free.
	for _, issue := range issues {
		var err error
		switch key {
		case SortCreationDate:
			_, err = issue.CreationDate()
		case SortDueDate:
			_, _, err = issue.DueDate()
		case SortDescription:
			_, err = issue.Description()
		case SortMilestone:
			issue.Milestone()
		}
		if err != nil {
			return err
		}
	}
	sort.SliceStable(issues, func(a, b int) bool {
		switch key {
		case SortCreationDate:
			ta, _ := issues[a].CreationDate()
			tb, _ := issues[b].CreationDate()
			return ta.Before(tb)
		case SortDueDate:
			ta, oka, _ := issues[a].DueDate()
			tb, okb, _ := issues[b].DueDate()
			return lessOptionalTime(ta, oka, tb, okb)
		case SortDescription:
			da, _ := issues[a].Description()
			db, _ := issues[b].Description()
			return da < db
		default: // SortMilestone
			ma, _ := issues[a].Milestone()
			mb, _ := issues[b].Milestone()
			return ma < mb
		}
	})
	return nil
}

func lessOptionalTime(a time.Time, okA bool, b time.Time, okB bool) bool {
	switch {
	case !okA && !okB:
		return false
	case !okA:
		return true
	case !okB:
		return false
	default:
		return a.Before(b)
	}
}
