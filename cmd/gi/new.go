package main

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	gitissue "github.com/kalkin/go-git-issue"
	"github.com/kalkin/go-git-issue/internal/editor"
	"github.com/kalkin/go-git-issue/internal/timeparsing"
)

var (
	newMessage   string
	newTags      []string
	newMilestone string
	newDue       string
	newEdit      bool
)

var newCmd = &cobra.Command{
	Use:   "new",
	Short: "Create a new issue",
	Long: `Create a new issue.

Without --message an editor is opened on the description template. The
first line of the description becomes the issue title. An empty
description aborts the creation.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ds, err := openDataSource()
		if err != nil {
			return err
		}

		description := newMessage
		if description == "" || newEdit {
			template, ok := gitissue.ReadTemplate(ds.IssuesDir, "description")
			if !ok {
				template = gitissue.DescriptionTemplate
			}
			description, err = editor.Edit(ds.IssuesDir, newMessage+template)
			if err != nil {
				return err
			}
		}
		description = strings.TrimSpace(description)
		if description == "" {
			return errors.New("aborting issue creation due to empty description")
		}

		var due time.Time
		if newDue != "" {
			due, err = timeparsing.Parse(newDue, time.Now())
			if err != nil {
				return err
			}
		}

		if err := ds.StartTransaction(); err != nil {
			return err
		}
		id, err := ds.CreateIssue(description, newTags, newMilestone)
		if err != nil {
			return rollback(ds, err)
		}
		if newDue != "" {
			if _, err := ds.SetDueDate(id, due); err != nil {
				return rollback(ds, err)
			}
		}
		title, _, _ := strings.Cut(description, "\n")
		if err := ds.FinishTransaction(fmt.Sprintf("NEW(%s): %s", id.Short(), title)); err != nil {
			return err
		}
		fmt.Printf("Added issue %s\n", id.Short())
		return nil
	},
}

func init() {
	newCmd.Flags().StringVarP(&newMessage, "message", "m", "", "issue description (first line becomes the title)")
	newCmd.Flags().StringArrayVarP(&newTags, "tag", "t", nil, "tag to add (repeatable)")
	newCmd.Flags().StringVarP(&newMilestone, "milestone", "M", "", "milestone to assign")
	newCmd.Flags().StringVar(&newDue, "due", "", "due date (RFC 3339, +2w, or natural language)")
	newCmd.Flags().BoolVarP(&newEdit, "edit", "e", false, "open the editor even when --message is given")
	rootCmd.AddCommand(newCmd)
}
