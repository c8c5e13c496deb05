package main

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kalkin/go-git-issue/internal/issue"
)

const tagTestID = issue.ID("0123456789abcdef0123456789abcdef01234567")

func TestTagMessageSingular(t *testing.T) {
	assert.Equal(t, "gi(01234567): Add tag: foo",
		tagMessage(tagTestID, false, []string{"foo"}))
	assert.Equal(t, "gi(01234567): Remove tag: foo",
		tagMessage(tagTestID, true, []string{"foo"}))
}

func TestTagMessagePlural(t *testing.T) {
	assert.Equal(t, "gi(01234567): Add tags: foo, bar",
		tagMessage(tagTestID, false, []string{"foo", "bar"}))
}

// The summary is built from the applied tags only; a request that also
// named already-present tags must not leak them into the history.
func TestTagMessageOnlyAppliedTags(t *testing.T) {
	applied := []string{"new-tag"}
	assert.Equal(t, "gi(01234567): Add tag: new-tag",
		tagMessage(tagTestID, false, applied))
}
