package main

import (
	"fmt"
	"os"

	"github.com/kalkin/go-git-issue/internal/ui"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, ui.RenderFail("error: "+err.Error()))
		os.Exit(exitCode(err))
	}
}
