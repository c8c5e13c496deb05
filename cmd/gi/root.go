package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/kalkin/go-git-issue/internal/issue"
)

var (
	gitDirFlag   string
	workTreeFlag string
	verbosity    int
)

var rootCmd = &cobra.Command{
	Use:   "gi",
	Short: "Distributed issue tracker backed by git",
	Long: `gi is a distributed issue tracker. Issues live as plain text files
inside an .issues directory tracked by git, so the full history of every
issue travels with the repository and merges like any other content.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelWarn
		switch {
		case verbosity == 1:
			level = slog.LevelInfo
		case verbosity >= 2:
			level = slog.LevelDebug
		}
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&gitDirFlag, "git-dir", "", "path to the git repository holding the issues")
	rootCmd.PersistentFlags().StringVar(&workTreeFlag, "work-tree", "", "path to the working tree holding the issues")
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "increase log verbosity (-v info, -vv debug)")
}

// openDataSource locates the .issues directory from the current working
// directory and wires it to its git repository, honoring the --git-dir and
// --work-tree overrides.
func openDataSource() (*issue.DataSource, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, err
	}
	return issue.DiscoverWith(cwd, gitDirFlag, workTreeFlag)
}
