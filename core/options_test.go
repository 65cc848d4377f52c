package core

import (
	"testing"
	"time"

	"github.com/liushen/calheat/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTranslateFilterRelativeRanges(t *testing.T) {
	now := time.Date(2026, 8, 14, 15, 30, 0, 0, time.Local)

	tests := []struct {
		timeRange schema.TimeRange
		days      int
	}{
		{schema.MonthRange, 30},
		{schema.QuarterRange, 90},
		{schema.HalfYearRange, 180},
		{schema.YearRange, 365},
	}
	today := time.Date(2026, 8, 14, 0, 0, 0, 0, time.Local)
	for _, tt := range tests {
		t.Run(string(tt.timeRange), func(t *testing.T) {
			sel := schema.DefaultFilterSelection()
			sel.TimeRange = tt.timeRange

			opts, err := TranslateFilter(sel, now)
			require.NoError(t, err)
			assert.Equal(t, today, opts.RangeEnd, "relative bounds snap to the local day start")
			assert.Equal(t, today.AddDate(0, 0, -tt.days), opts.RangeStart)
		})
	}
}

func TestTranslateFilterSameDayIdentical(t *testing.T) {
	morning := time.Date(2026, 8, 14, 9, 0, 1, 0, time.Local)
	evening := time.Date(2026, 8, 14, 23, 59, 59, 0, time.Local)
	sel := schema.DefaultFilterSelection()

	a, err := TranslateFilter(sel, morning)
	require.NoError(t, err)
	b, err := TranslateFilter(sel, evening)
	require.NoError(t, err)
	assert.Equal(t, a, b, "wall-clock drift within a day must not change the options")
	assert.Equal(t, CacheKey(a), CacheKey(b))
}

func TestTranslateFilterDeterministic(t *testing.T) {
	now := time.Date(2026, 8, 14, 15, 30, 0, 0, time.Local)
	sel := schema.DefaultFilterSelection()

	a, err := TranslateFilter(sel, now)
	require.NoError(t, err)
	b, err := TranslateFilter(sel, now)
	require.NoError(t, err)
	assert.Equal(t, a, b, "same selection and now must translate identically")
}

func TestTranslateFilterCustomRangeVerbatim(t *testing.T) {
	sel := schema.DefaultFilterSelection()
	sel.TimeRange = schema.CustomRange
	sel.CustomStartDate = "2026-01-01"
	sel.CustomEndDate = "2026-03-31"

	// The injected clock must not influence a custom range.
	opts, err := TranslateFilter(sel, time.Date(2030, 1, 1, 0, 0, 0, 0, time.Local))
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 1, 1, 0, 0, 0, 0, time.Local), opts.RangeStart)
	assert.Equal(t, time.Date(2026, 3, 31, 0, 0, 0, 0, time.Local), opts.RangeEnd)
}

func TestTranslateFilterCustomRangeErrors(t *testing.T) {
	now := time.Now()

	sel := schema.DefaultFilterSelection()
	sel.TimeRange = schema.CustomRange
	sel.CustomStartDate = "not-a-date"
	sel.CustomEndDate = "2026-03-31"
	_, err := TranslateFilter(sel, now)
	assert.Error(t, err)

	sel.CustomStartDate = "2026-04-01"
	_, err = TranslateFilter(sel, now)
	assert.Error(t, err, "start after end must be rejected")
}

func TestTranslateFilterInvalidRange(t *testing.T) {
	sel := schema.DefaultFilterSelection()
	sel.TimeRange = "fortnight"
	_, err := TranslateFilter(sel, time.Now())
	assert.Error(t, err)
}

func TestTranslateFilterRejectsBadEnums(t *testing.T) {
	now := time.Now()

	sel := schema.DefaultFilterSelection()
	sel.Metric = "velocity"
	_, err := TranslateFilter(sel, now)
	assert.Error(t, err)

	sel = schema.DefaultFilterSelection()
	sel.DateSource = "push"
	_, err = TranslateFilter(sel, now)
	assert.Error(t, err)

	sel = schema.DefaultFilterSelection()
	sel.UserScope = "team"
	_, err = TranslateFilter(sel, now)
	assert.Error(t, err)
}

func TestTranslateFilterUserScopes(t *testing.T) {
	now := time.Now()

	sel := schema.DefaultFilterSelection()
	sel.UserScope = schema.AllUsersScope
	opts, err := TranslateFilter(sel, now)
	require.NoError(t, err)
	assert.False(t, opts.FilterByAuthor)

	sel.UserScope = schema.CurrentUserScope
	opts, err = TranslateFilter(sel, now)
	require.NoError(t, err)
	assert.True(t, opts.FilterByAuthor)
	assert.Empty(t, opts.AuthorEmail, "current scope resolves identity later")

	sel.UserScope = schema.CustomUserScope
	sel.CustomUser = "dev@example.com"
	opts, err = TranslateFilter(sel, now)
	require.NoError(t, err)
	assert.True(t, opts.FilterByAuthor)
	assert.Equal(t, "dev@example.com", opts.AuthorEmail)
}

func TestTranslateFilterDefaultsEmptyFields(t *testing.T) {
	sel := schema.FilterSelection{TimeRange: schema.MonthRange, UserScope: schema.AllUsersScope}

	opts, err := TranslateFilter(sel, time.Now())
	require.NoError(t, err)
	assert.Equal(t, schema.CommitCountMetric, opts.Metric)
	assert.Equal(t, schema.GithubScheme, opts.ColorScheme)
	assert.Equal(t, schema.CommitterDate, opts.DateSource)

	opts, err = TranslateFilter(schema.FilterSelection{TimeRange: schema.MonthRange}, time.Now())
	require.NoError(t, err)
	assert.False(t, opts.FilterByAuthor, "empty scope defaults to all users")
}
