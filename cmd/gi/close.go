package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kalkin/go-git-issue/internal/issue"
)

var closeCmd = &cobra.Command{
	Use:   "close <id>...",
	Short: "Close one or more issues",
	Long: `Close one or more issues by swapping the "open" tag for "closed".
Issues that are already closed cause no change; if every given issue is
already closed the repository is left untouched.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ds, err := openDataSource()
		if err != nil {
			return err
		}
		// Resolve everything up front so an ambiguous id aborts before any
		// repository state changes.
		ids := make([]issue.ID, len(args))
		for i, needle := range args {
			ids[i], err = ds.FindIssue(needle)
			if err != nil {
				return err
			}
		}

		if err := ds.StartTransaction(); err != nil {
			return err
		}
		result := issue.NoChanges
		for _, id := range ids {
			applied, err := ds.CloseIssue(id)
			if err != nil {
				return rollback(ds, err)
			}
			result = issue.Combine(result, applied)
		}
		if result == issue.NoChanges {
			if err := ds.RollbackTransaction(); err != nil {
				return err
			}
			fmt.Println("No changes")
			return nil
		}
		message, err := closeMessage(ds, ids)
		if err != nil {
			return rollback(ds, err)
		}
		return ds.FinishTransaction(message)
	},
}

// closeMessage summarizes the close: a single issue gets its title, several
// get the list of short ids.
func closeMessage(ds *issue.DataSource, ids []issue.ID) (string, error) {
	if len(ids) == 1 {
		title, err := ds.Title(ids[0])
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("DONE(%s): %s", ids[0].Short(), title), nil
	}
	shorts := make([]string, len(ids))
	for i, id := range ids {
		shorts[i] = id.Short()
	}
	return fmt.Sprintf("gi: Closed %s", strings.Join(shorts, ", ")), nil
}

func init() {
	rootCmd.AddCommand(closeCmd)
}
