package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/kalkin/go-git-issue/internal/issue"
)

var milestoneCmd = &cobra.Command{
	Use:   "milestone",
	Short: "Manage issue milestones",
}

var milestoneListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all milestones in use",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ds, err := openDataSource()
		if err != nil {
			return err
		}
		ids, err := ds.ListIDs()
		if err != nil {
			return err
		}
		seen := make(map[string]struct{})
		var milestones []string
		for _, id := range ids {
			milestone, ok := ds.Milestone(id)
			if !ok {
				continue
			}
			if _, dup := seen[milestone]; !dup {
				seen[milestone] = struct{}{}
				milestones = append(milestones, milestone)
			}
		}
		sort.Strings(milestones)
		for _, milestone := range milestones {
			fmt.Println(milestone)
		}
		return nil
	},
}

var milestoneSetCmd = &cobra.Command{
	Use:   "set <id> <milestone>",
	Short: "Set the milestone of an issue",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return singleWrite(args[0], func(ds *issue.DataSource, id issue.ID) (issue.WriteResult, error) {
			return ds.AddMilestone(id, args[1])
		})
	},
}

var milestoneRemoveCmd = &cobra.Command{
	Use:   "remove <id>",
	Short: "Remove the milestone of an issue",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return singleWrite(args[0], func(ds *issue.DataSource, id issue.ID) (issue.WriteResult, error) {
			return ds.RemoveMilestone(id)
		})
	},
}

// singleWrite brackets a one-commit property change: the write commit is
// the final commit, so the transaction finishes without a merge. A write
// that changes nothing rolls back and reports it.
func singleWrite(needle string, write func(*issue.DataSource, issue.ID) (issue.WriteResult, error)) error {
	ds, err := openDataSource()
	if err != nil {
		return err
	}
	id, err := ds.FindIssue(needle)
	if err != nil {
		return err
	}
	if err := ds.StartTransaction(); err != nil {
		return err
	}
	result, err := write(ds, id)
	if err != nil {
		return rollback(ds, err)
	}
	if result == issue.NoChanges {
		if err := ds.RollbackTransaction(); err != nil {
			return err
		}
		fmt.Println("No changes")
		return nil
	}
	return ds.FinishTransactionWithoutMerge()
}

func init() {
	milestoneCmd.AddCommand(milestoneListCmd)
	milestoneCmd.AddCommand(milestoneSetCmd)
	milestoneCmd.AddCommand(milestoneRemoveCmd)
	rootCmd.AddCommand(milestoneCmd)
}
