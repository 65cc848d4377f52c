package contract

import (
	"strings"
	"testing"
	"time"

	"github.com/liushen/calheat/schema"
	"github.com/stretchr/testify/assert"
)

func TestBuildLogArgsDefaults(t *testing.T) {
	since := time.Date(2026, 1, 1, 0, 0, 0, 0, time.Local)
	before := time.Date(2026, 4, 1, 0, 0, 0, 0, time.Local)

	args := BuildLogArgs(LogQuery{Since: since, Before: before, DateSource: schema.CommitterDate})

	assert.Equal(t, "log", args[0])
	assert.Contains(t, args[1], "%cI")
	assert.Contains(t, args, "--no-merges")
	assert.Contains(t, args, "--since="+since.Format(time.RFC3339))
	assert.Contains(t, args, "--before="+before.Format(time.RFC3339))
	assert.NotContains(t, args, "--numstat")
	for _, a := range args {
		assert.False(t, strings.HasPrefix(a, "--author="), "no author filter expected")
	}
}

func TestBuildLogArgsAuthorDateAndNumstat(t *testing.T) {
	args := BuildLogArgs(LogQuery{
		DateSource:    schema.AuthorDate,
		IncludeMerges: true,
		Author:        "dev@example.com",
		NumStat:       true,
	})

	assert.Contains(t, args[1], "%aI")
	assert.NotContains(t, args, "--no-merges")
	assert.Contains(t, args, "--author=dev@example.com")
	assert.Contains(t, args, "--numstat")
}

func TestBuildLogArgsFormatUsesDelimiter(t *testing.T) {
	args := BuildLogArgs(LogQuery{DateSource: schema.CommitterDate})

	// Five fields joined by the unit separator.
	format := strings.TrimPrefix(args[1], "--pretty=format:")
	assert.Equal(t, 5, len(strings.Split(format, FieldDelimiter)))
}

func TestBuildLogArgsZeroTimesOmitted(t *testing.T) {
	args := BuildLogArgs(LogQuery{DateSource: schema.CommitterDate})
	for _, a := range args {
		assert.False(t, strings.HasPrefix(a, "--since="))
		assert.False(t, strings.HasPrefix(a, "--before="))
	}
}
