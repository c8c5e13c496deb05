package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/kalkin/go-git-issue/internal/issue"
	"github.com/kalkin/go-git-issue/internal/timeparsing"
)

var duedateCmd = &cobra.Command{
	Use:   "duedate",
	Short: "Manage issue due dates",
}

var duedateSetCmd = &cobra.Command{
	Use:   "set <id> <when>",
	Short: "Set the due date of an issue",
	Long: `Set the due date of an issue. The date may be an RFC 3339
timestamp, a plain date (2026-09-01), a compact duration relative to now
(+6h, +2w, -1d) or natural language ("next friday").`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		due, err := timeparsing.Parse(args[1], time.Now())
		if err != nil {
			return err
		}
		return singleWrite(args[0], func(ds *issue.DataSource, id issue.ID) (issue.WriteResult, error) {
			return ds.SetDueDate(id, due)
		})
	},
}

var duedateRemoveCmd = &cobra.Command{
	Use:   "remove <id>",
	Short: "Remove the due date of an issue",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return singleWrite(args[0], func(ds *issue.DataSource, id issue.ID) (issue.WriteResult, error) {
			return ds.RemoveDueDate(id)
		})
	},
}

func init() {
	duedateCmd.AddCommand(duedateSetCmd)
	duedateCmd.AddCommand(duedateRemoveCmd)
	rootCmd.AddCommand(duedateCmd)
}
