package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	gitissue "github.com/kalkin/go-git-issue"
)

var initExisting bool

var initCmd = &cobra.Command{
	Use:   "init [dir]",
	Short: "Create a new issues repository",
	Long: `Create a new issues repository in dir, or the current directory.

By default a fresh git repository is created inside .issues, keeping the
issue history separate from the project's own history. With --existing the
.issues directory is added to the enclosing git repository instead.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, err := os.Getwd()
		if err != nil {
			return err
		}
		if len(args) == 1 {
			dir = args[0]
		}
		if err := gitissue.Create(dir, initExisting); err != nil {
			return err
		}
		fmt.Printf("Initialized issues repository in %s\n", filepath.Join(dir, ".issues"))
		return nil
	},
}

func init() {
	initCmd.Flags().BoolVarP(&initExisting, "existing", "e", false, "use the enclosing git repository instead of creating one")
	rootCmd.AddCommand(initCmd)
}
