package schema

import "time"

// DayKeyFormat is the calendar-day key layout used throughout the dataset.
const DayKeyFormat = "2006-01-02"

// FilterSelection is the user-facing filter state. It is what gets persisted
// across sessions and what presentation layers hand to the engine.
type FilterSelection struct {
	TimeRange       TimeRange   `json:"timeRange"`
	CustomStartDate string      `json:"customStartDate,omitempty"` // YYYY-MM-DD, custom range only
	CustomEndDate   string      `json:"customEndDate,omitempty"`   // YYYY-MM-DD, custom range only
	UserScope       UserScope   `json:"userFilter"`
	CustomUser      string      `json:"customUser,omitempty"`
	IncludeMerges   bool        `json:"includeMerges"`
	DateSource      DateSource  `json:"dateSource"`
	ColorScheme     ColorScheme `json:"colorScheme"`
	Metric          Metric      `json:"metric"`
}

// DefaultFilterSelection returns the selection used when nothing is saved.
func DefaultFilterSelection() FilterSelection {
	return FilterSelection{
		TimeRange:   YearRange,
		UserScope:   AllUsersScope,
		DateSource:  CommitterDate,
		ColorScheme: GithubScheme,
		Metric:      CommitCountMetric,
	}
}

// QueryOptions is the concrete, translated query parameter set consumed by the
// aggregator. It is immutable once produced and is the sole input to cache key
// derivation.
type QueryOptions struct {
	RangeStart     time.Time   `json:"rangeStart"`
	RangeEnd       time.Time   `json:"rangeEnd"`
	Metric         Metric      `json:"metric"`
	ColorScheme    ColorScheme `json:"colorScheme"`
	IncludeMerges  bool        `json:"includeMerges"`
	DateSource     DateSource  `json:"dateSource"`
	FilterByAuthor bool        `json:"filterByAuthor"`
	AuthorEmail    string      `json:"authorEmail,omitempty"`
	AuthorName     string      `json:"authorName,omitempty"`
}

// DayCount returns the inclusive number of calendar days covered by the range,
// evaluated in local time.
func (o QueryOptions) DayCount() int {
	return InclusiveDayCount(o.RangeStart, o.RangeEnd)
}

// InclusiveDayCount counts calendar days between start and end inclusive,
// in local time. Returns 0 when end precedes start.
func InclusiveDayCount(start, end time.Time) int {
	s := truncateToDay(start)
	e := truncateToDay(end)
	if e.Before(s) {
		return 0
	}
	n := 0
	for d := s; !d.After(e); d = d.AddDate(0, 0, 1) {
		n++
	}
	return n
}

// truncateToDay drops the time-of-day component in local time.
func truncateToDay(t time.Time) time.Time {
	local := t.Local()
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, time.Local)
}

// DayKey formats a timestamp as its local calendar-day key.
func DayKey(t time.Time) string {
	return t.Local().Format(DayKeyFormat)
}
