package main

import (
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"github.com/kalkin/go-git-issue/internal/issue"
)

var (
	listAll         bool
	listTags        []string
	listNoTags      []string
	listMilestone   string
	listNoMilestone bool
	listFormat      string
	listOrder       string
	listReverse     bool
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List issues",
	Long: `List issues.

Only open issues are shown unless --all is given. The output format is a
preset name (simple, oneline, short) or a format string with %i short id,
%I full id, %D title, %M milestone, %c creation date, %d due date, %T tags
and %n newline.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := issue.ParseFormat(listFormat)
		if err != nil {
			return err
		}
		sortKey, err := sortKeyFor(listOrder)
		if err != nil {
			return err
		}

		ds, err := openDataSource()
		if err != nil {
			return err
		}
		issues, err := ds.All()
		if err != nil {
			return err
		}

		filter := issue.Filter{WithTags: listTags, WithoutTags: listNoTags}
		if !listAll {
			filter.WithTags = append([]string{"open"}, filter.WithTags...)
		}
		switch {
		case listNoMilestone:
			filter.Milestone = issue.MilestoneNone
		case listMilestone != "":
			filter.Milestone = issue.MilestoneValue
			filter.Value = listMilestone
		}

		issues, err = filter.Apply(issues)
		if err != nil {
			return err
		}
		if err := issue.Sort(issues, sortKey); err != nil {
			return err
		}
		if listReverse {
			slices.Reverse(issues)
		}
		for _, iss := range issues {
			line, err := format.Format(iss)
			if err != nil {
				return err
			}
			fmt.Println(line)
		}
		return nil
	},
}

func sortKeyFor(order string) (issue.SortKey, error) {
	switch order {
	case "":
		return issue.SortNone, nil
	case "cdate":
		return issue.SortCreationDate, nil
	case "ddate":
		return issue.SortDueDate, nil
	case "description":
		return issue.SortDescription, nil
	case "milestone":
		return issue.SortMilestone, nil
	default:
		return issue.SortNone, fmt.Errorf("unknown sort order %q (want cdate, ddate, description or milestone)", order)
	}
}

func init() {
	listCmd.Flags().BoolVarP(&listAll, "all", "a", false, "list closed issues too")
	listCmd.Flags().StringArrayVarP(&listTags, "tag", "t", nil, "only issues carrying this tag (repeatable)")
	listCmd.Flags().StringArrayVarP(&listNoTags, "no-tag", "T", nil, "only issues not carrying this tag (repeatable)")
	listCmd.Flags().StringVarP(&listMilestone, "milestone", "m", "", "only issues with this milestone")
	listCmd.Flags().BoolVarP(&listNoMilestone, "no-milestone", "M", false, "only issues without a milestone")
	listCmd.Flags().StringVarP(&listFormat, "format", "l", "simple", "output format or preset name")
	listCmd.Flags().StringVarP(&listOrder, "order", "o", "", "sort by cdate, ddate, description or milestone")
	listCmd.Flags().BoolVarP(&listReverse, "reverse", "r", false, "reverse the sort order")
	rootCmd.AddCommand(listCmd)
}
