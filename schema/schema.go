// Package schema defines the shared data model for calheat: filter enums,
// query options, commit records and the heatmap dataset wire contract.
package schema

// Metric selects the value aggregated into each day bucket.
type Metric string

// Supported metrics.
const (
	CommitCountMetric  Metric = "commits"
	LinesChangedMetric Metric = "lines"
	LinesAddedMetric   Metric = "added"
	LinesDeletedMetric Metric = "deleted"
)

// ValidMetrics is the set of accepted metric values.
var ValidMetrics = map[Metric]struct{}{
	CommitCountMetric:  {},
	LinesChangedMetric: {},
	LinesAddedMetric:   {},
	LinesDeletedMetric: {},
}

// NeedsNumstat reports whether the metric requires per-commit line counts.
func (m Metric) NeedsNumstat() bool {
	return m != CommitCountMetric
}

// DateSource selects which commit timestamp drives filtering and bucketing.
type DateSource string

// Supported date sources.
const (
	CommitterDate DateSource = "committer"
	AuthorDate    DateSource = "author"
)

// ValidDateSources is the set of accepted date source values.
var ValidDateSources = map[DateSource]struct{}{
	CommitterDate: {},
	AuthorDate:    {},
}

// TimeRange is a user-facing relative (or custom) range selection.
type TimeRange string

// Supported time ranges.
const (
	MonthRange    TimeRange = "month"
	QuarterRange  TimeRange = "quarter"
	HalfYearRange TimeRange = "halfyear"
	YearRange     TimeRange = "year"
	CustomRange   TimeRange = "custom"
)

// RangeDays maps relative ranges to fixed day counts. These are deliberate
// fixed counts, not calendar-month arithmetic.
var RangeDays = map[TimeRange]int{
	MonthRange:    30,
	QuarterRange:  90,
	HalfYearRange: 180,
	YearRange:     365,
}

// ValidTimeRanges is the set of accepted time range values.
var ValidTimeRanges = map[TimeRange]struct{}{
	MonthRange:    {},
	QuarterRange:  {},
	HalfYearRange: {},
	YearRange:     {},
	CustomRange:   {},
}

// UserScope selects whose commits are counted.
type UserScope string

// Supported user scopes.
const (
	CurrentUserScope UserScope = "current"
	AllUsersScope    UserScope = "all"
	CustomUserScope  UserScope = "custom"
)

// ValidUserScopes is the set of accepted user scope values.
var ValidUserScopes = map[UserScope]struct{}{
	CurrentUserScope: {},
	AllUsersScope:    {},
	CustomUserScope:  {},
}

// ColorScheme names a rendering palette. It does not affect aggregated data.
type ColorScheme string

// Supported color schemes.
const (
	GithubScheme ColorScheme = "github"
	FireScheme   ColorScheme = "fire"
	OceanScheme  ColorScheme = "ocean"
	MonoScheme   ColorScheme = "mono"
)

// ValidColorSchemes is the set of accepted color scheme values.
var ValidColorSchemes = map[ColorScheme]struct{}{
	GithubScheme: {},
	FireScheme:   {},
	OceanScheme:  {},
	MonoScheme:   {},
}

// OutputMode selects the output format for CLI commands.
type OutputMode string

// Supported output modes.
const (
	TextOut    OutputMode = "text"
	CSVOut     OutputMode = "csv"
	JSONOut    OutputMode = "json"
	ParquetOut OutputMode = "parquet"
)

// ValidOutputModes is the set of accepted output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	TextOut: {},
	CSVOut:  {},
	JSONOut: {},
}

// ValidExportModes is the set of accepted export formats.
var ValidExportModes = map[OutputMode]struct{}{
	CSVOut:     {},
	JSONOut:    {},
	ParquetOut: {},
}

// CacheBackend identifies the durable cache storage backend.
type CacheBackend string

// Supported cache backends.
const (
	SQLiteBackend     CacheBackend = "sqlite"
	MySQLBackend      CacheBackend = "mysql"
	PostgreSQLBackend CacheBackend = "postgresql"
	NoneBackend       CacheBackend = "none"
)

// ValidCacheBackends is the set of accepted cache backends.
var ValidCacheBackends = map[CacheBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	NoneBackend:       {},
}
