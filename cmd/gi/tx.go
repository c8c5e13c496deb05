package main

import (
	"fmt"

	"github.com/kalkin/go-git-issue/internal/issue"
)

// rollback discards the open transaction and returns the original error.
// A failed rollback is appended so the operator sees both problems.
func rollback(ds *issue.DataSource, cause error) error {
	if err := ds.RollbackTransaction(); err != nil {
		return fmt.Errorf("%w (rollback also failed: %v)", cause, err)
	}
	return cause
}
