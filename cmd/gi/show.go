package main

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/kalkin/go-git-issue/internal/issue"
	"github.com/kalkin/go-git-issue/internal/ui"
)

var showComments bool

var showCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one issue in full",
	Long: `Show one issue in full: its properties, description, the edit
history of the description and, with --comments, the comment thread. The
id may be abbreviated to any unambiguous prefix.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ds, err := openDataSource()
		if err != nil {
			return err
		}
		id, err := ds.FindIssue(args[0])
		if err != nil {
			return err
		}
		iss := issue.NewIssue(ds, id)

		cdate, err := iss.CreationDate()
		if err != nil {
			return err
		}
		tags, err := iss.Tags()
		if err != nil {
			return err
		}
		description, err := iss.Description()
		if err != nil {
			return err
		}

		fmt.Printf("%s %s\n", ui.RenderHeader("ID:"), id)
		fmt.Printf("%s %s\n", ui.RenderHeader("Creation Date:"), cdate.Format(time.RFC3339))
		if due, ok, err := iss.DueDate(); err != nil {
			return err
		} else if ok {
			fmt.Printf("%s %s\n", ui.RenderHeader("Due Date:"), due.Format(time.RFC3339))
		}
		if milestone, ok := iss.Milestone(); ok {
			fmt.Printf("%s %s\n", ui.RenderHeader("Milestone:"), milestone)
		}
		fmt.Printf("%s %s\n", ui.RenderHeader("Tags:"), strings.Join(tags, " "))
		fmt.Println()
		fmt.Println(description)

		history, err := descriptionHistory(ds, id)
		if err != nil {
			return err
		}
		if history != "" {
			fmt.Println()
			fmt.Println(ui.RenderHeader("Edit History:"))
			fmt.Println(ui.RenderMuted(history))
		}

		if showComments {
			comments, err := iss.Comments()
			if err != nil {
				return err
			}
			for _, comment := range comments {
				fmt.Println()
				fmt.Printf("%s %s (%s)\n", ui.RenderHeader("Comment by"),
					comment.Author, comment.Created.Format(time.RFC3339))
				fmt.Println(comment.Body)
			}
		}
		return nil
	},
}

// descriptionHistory lists who touched the description and when, oldest
// first.
func descriptionHistory(ds *issue.DataSource, id issue.ID) (string, error) {
	path := filepath.Join(id.Path(ds.IssuesDir), "description")
	out, err := ds.Repo.Log("--reverse", "--format=%aI %aN", "--", path)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

func init() {
	showCmd.Flags().BoolVarP(&showComments, "comments", "c", false, "include the comment thread")
	rootCmd.AddCommand(showCmd)
}
