package main

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	gitissue "github.com/kalkin/go-git-issue"
	"github.com/kalkin/go-git-issue/internal/editor"
	"github.com/kalkin/go-git-issue/internal/git"
	"github.com/kalkin/go-git-issue/internal/issue"
)

func TestExitCodes(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"issues dir exists", gitissue.ErrIssuesDirExists, 17},
		{"git repo not found", issue.ErrGitRepoNotFound, 135},
		{"issues repo not found", issue.ErrIssuesRepoNotFound, 151},
		{"bare repository", issue.ErrBareRepository, 169},
		{"editor killed", editor.ErrKilled, 4},
		{"not found", &issue.NotFoundError{Needle: "ab"}, 2},
		{"ambiguous", &issue.MultipleFoundError{Needle: "ab"}, 2},
		{"wrapped sentinel", fmt.Errorf("init: %w", gitissue.ErrIssuesDirExists), 17},
		{"git exit status", &git.ExecError{Op: "commit", Code: 128}, 128},
		{"unstash failure", &issue.RecoveryError{Step: issue.StepUnstash}, 165},
		{"reset failure", &issue.RecoveryError{Step: issue.StepReset}, 8},
		{"anything else", errors.New("boom"), 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, exitCode(tt.err))
		})
	}
}
