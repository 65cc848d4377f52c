package core

import (
	"fmt"
	"time"

	"github.com/liushen/calheat/schema"
)

// TranslateFilter converts a user-facing filter selection into concrete query
// options. Relative ranges resolve against the injected now, so the function
// is deterministic and testable; callers must not read a live clock here.
func TranslateFilter(sel schema.FilterSelection, now time.Time) (schema.QueryOptions, error) {
	opts := schema.QueryOptions{
		Metric:        sel.Metric,
		ColorScheme:   sel.ColorScheme,
		IncludeMerges: sel.IncludeMerges,
		DateSource:    sel.DateSource,
	}
	if opts.Metric == "" {
		opts.Metric = schema.CommitCountMetric
	}
	if opts.ColorScheme == "" {
		opts.ColorScheme = schema.GithubScheme
	}
	if opts.DateSource == "" {
		opts.DateSource = schema.CommitterDate
	}
	if sel.UserScope == "" {
		sel.UserScope = schema.AllUsersScope
	}

	if _, ok := schema.ValidMetrics[opts.Metric]; !ok {
		return schema.QueryOptions{}, fmt.Errorf("invalid metric '%s'", opts.Metric)
	}
	if _, ok := schema.ValidDateSources[opts.DateSource]; !ok {
		return schema.QueryOptions{}, fmt.Errorf("invalid date source '%s'", opts.DateSource)
	}
	if _, ok := schema.ValidUserScopes[sel.UserScope]; !ok {
		return schema.QueryOptions{}, fmt.Errorf("invalid user scope '%s'", sel.UserScope)
	}

	if sel.TimeRange == schema.CustomRange {
		start, err := time.ParseInLocation(schema.DayKeyFormat, sel.CustomStartDate, time.Local)
		if err != nil {
			return schema.QueryOptions{}, fmt.Errorf("invalid custom start date '%s': expected YYYY-MM-DD", sel.CustomStartDate)
		}
		end, err := time.ParseInLocation(schema.DayKeyFormat, sel.CustomEndDate, time.Local)
		if err != nil {
			return schema.QueryOptions{}, fmt.Errorf("invalid custom end date '%s': expected YYYY-MM-DD", sel.CustomEndDate)
		}
		opts.RangeStart = start
		opts.RangeEnd = end
	} else {
		days, ok := schema.RangeDays[sel.TimeRange]
		if !ok {
			return schema.QueryOptions{}, fmt.Errorf("invalid time range '%s'", sel.TimeRange)
		}
		// Fixed day counts, not calendar-month arithmetic. Bounds snap to
		// the local day start: the dataset is day-granular, and identical
		// selections made moments apart must share a cache key.
		today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		opts.RangeEnd = today
		opts.RangeStart = today.AddDate(0, 0, -days)
	}

	if opts.RangeStart.After(opts.RangeEnd) {
		return schema.QueryOptions{}, fmt.Errorf("range start (%s) cannot be after range end (%s)",
			opts.RangeStart.Format(schema.DayKeyFormat), opts.RangeEnd.Format(schema.DayKeyFormat))
	}

	opts.FilterByAuthor = sel.UserScope != schema.AllUsersScope
	if sel.UserScope == schema.CustomUserScope {
		opts.AuthorEmail = sel.CustomUser
	}
	return opts, nil
}
