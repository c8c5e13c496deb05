package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kalkin/go-git-issue/internal/issue"
)

var tagRemove bool

var tagCmd = &cobra.Command{
	Use:   "tag <id> <tag>...",
	Short: "Add or remove issue tags",
	Long: `Add tags to an issue, or remove them with --remove. Tags the issue
already carries (or, when removing, does not carry) are skipped; if nothing
changes the repository is left untouched.`,
	Args: cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ds, err := openDataSource()
		if err != nil {
			return err
		}
		id, err := ds.FindIssue(args[0])
		if err != nil {
			return err
		}
		tags := args[1:]

		if err := ds.StartTransaction(); err != nil {
			return err
		}
		var applied []string
		for _, tag := range tags {
			var result issue.WriteResult
			if tagRemove {
				result, err = ds.RemoveTag(id, tag)
			} else {
				result, err = ds.AddTag(id, tag)
			}
			if err != nil {
				return rollback(ds, err)
			}
			if result == issue.Applied {
				applied = append(applied, tag)
			}
		}
		if len(applied) == 0 {
			if err := ds.RollbackTransaction(); err != nil {
				return err
			}
			fmt.Println("No changes")
			return nil
		}
		return ds.FinishTransaction(tagMessage(id, tagRemove, applied))
	},
}

// tagMessage summarizes the transaction from the tags that actually
// changed; skipped tags stay out of the history.
func tagMessage(id issue.ID, remove bool, applied []string) string {
	verb := "Add"
	if remove {
		verb = "Remove"
	}
	word := "tag"
	if len(applied) > 1 {
		word = "tags"
	}
	return fmt.Sprintf("gi(%s): %s %s: %s", id.Short(), verb, word, strings.Join(applied, ", "))
}

func init() {
	tagCmd.Flags().BoolVarP(&tagRemove, "remove", "r", false, "remove the tags instead of adding them")
	rootCmd.AddCommand(tagCmd)
}
