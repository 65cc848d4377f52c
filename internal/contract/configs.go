package contract

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/liushen/calheat/schema"
)

// Default values for configuration.
const (
	// DefaultWorkers caps concurrently running git subprocesses. The bound is
	// deliberately small; repository queries are I/O heavy.
	DefaultWorkers = 3

	// DefaultCacheTTL is the freshness window for cached datasets.
	DefaultCacheTTL = 5 * time.Minute

	// DefaultRecentCommits bounds the recent-commit list shown by the CLI.
	DefaultRecentCommits = 15
)

// Config holds the validated runtime configuration.
type Config struct {
	Roots      []string // workspace roots to scan
	ExtraPaths []string // explicit extra repository paths
	Excludes   []string // glob patterns pruned during discovery

	TimeRange   schema.TimeRange
	CustomStart string // YYYY-MM-DD, custom range only
	CustomEnd   string // YYYY-MM-DD, custom range only
	UserScope   schema.UserScope
	CustomUser  string
	Metric      schema.Metric
	ColorScheme schema.ColorScheme

	IncludeMerges bool
	DateSource    schema.DateSource
	ForceRefresh  bool

	Workers    int
	CacheTTL   time.Duration
	GitTimeout time.Duration

	CacheBackend   schema.CacheBackend
	CacheDBConnect string // Please use env var as this is plaintext

	Output     schema.OutputMode
	OutputFile string
	Width      int // Terminal width override (0 = auto-detect)
	UseColors  bool
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config
// file). Viper unmarshals into this struct.
type ConfigRawInput struct {
	// Positional roots are set manually from args, so no tag.
	RootArgs []string

	Paths         string `mapstructure:"paths"`
	Exclude       string `mapstructure:"exclude"`
	Range         string `mapstructure:"range"`
	Start         string `mapstructure:"start"`
	End           string `mapstructure:"end"`
	User          string `mapstructure:"user"`
	CustomUser    string `mapstructure:"custom-user"`
	Metric        string `mapstructure:"metric"`
	Scheme        string `mapstructure:"scheme"`
	Merges        bool   `mapstructure:"merges"`
	DateSource    string `mapstructure:"date-source"`
	Refresh       bool   `mapstructure:"refresh"`
	Workers       int    `mapstructure:"workers"`
	CacheTTL      string `mapstructure:"cache-ttl"`
	GitTimeout    string `mapstructure:"git-timeout"`
	CacheBackend  string `mapstructure:"cache-backend"`
	CacheDB       string `mapstructure:"cache-db-connect"`
	Output        string `mapstructure:"output"`
	OutputFile    string `mapstructure:"output-file"`
	Width         int    `mapstructure:"width"`
	Color         string `mapstructure:"color"`
}

// FilterSelection derives the user-facing filter state from the config.
func (c *Config) FilterSelection() schema.FilterSelection {
	return schema.FilterSelection{
		TimeRange:       c.TimeRange,
		CustomStartDate: c.CustomStart,
		CustomEndDate:   c.CustomEnd,
		UserScope:       c.UserScope,
		CustomUser:      c.CustomUser,
		IncludeMerges:   c.IncludeMerges,
		DateSource:      c.DateSource,
		ColorScheme:     c.ColorScheme,
		Metric:          c.Metric,
	}
}

// ApplySelection copies a saved filter selection back onto the config. Fields
// outside the selection (roots, cache, output) are untouched.
func (c *Config) ApplySelection(sel schema.FilterSelection) {
	c.TimeRange = sel.TimeRange
	c.CustomStart = sel.CustomStartDate
	c.CustomEnd = sel.CustomEndDate
	c.UserScope = sel.UserScope
	c.CustomUser = sel.CustomUser
	c.IncludeMerges = sel.IncludeMerges
	c.DateSource = sel.DateSource
	c.ColorScheme = sel.ColorScheme
	c.Metric = sel.Metric
}

// ProcessAndValidate performs all parsing and validation on the raw inputs and
// populates the final Config struct.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	if err := processRoots(cfg, input); err != nil {
		return err
	}
	if err := processFilterInputs(cfg, input); err != nil {
		return err
	}
	if err := processRuntimeInputs(cfg, input); err != nil {
		return err
	}
	return nil
}

// processRoots resolves workspace roots, extra paths and exclude patterns.
func processRoots(cfg *Config, input *ConfigRawInput) error {
	roots := input.RootArgs
	if len(roots) == 0 {
		roots = []string{"."}
	}
	cfg.Roots = cfg.Roots[:0]
	for _, r := range roots {
		abs, err := filepath.Abs(r)
		if err != nil {
			return fmt.Errorf("invalid root %q: %w", r, err)
		}
		cfg.Roots = append(cfg.Roots, filepath.Clean(abs))
	}

	cfg.ExtraPaths = cfg.ExtraPaths[:0]
	for _, p := range splitCommaList(input.Paths) {
		abs, err := filepath.Abs(p)
		if err != nil {
			return fmt.Errorf("invalid path %q: %w", p, err)
		}
		cfg.ExtraPaths = append(cfg.ExtraPaths, filepath.Clean(abs))
	}

	defaults := []string{"node_modules/", ".cache/", ".Trash/", "Library/"}
	cfg.Excludes = append(defaults, splitCommaList(input.Exclude)...)
	return nil
}

// processFilterInputs validates the filter-shaped fields.
func processFilterInputs(cfg *Config, input *ConfigRawInput) error {
	cfg.TimeRange = schema.TimeRange(strings.ToLower(input.Range))
	if _, ok := schema.ValidTimeRanges[cfg.TimeRange]; !ok {
		return fmt.Errorf("invalid range '%s'. must be month, quarter, halfyear, year, custom", input.Range)
	}

	cfg.CustomStart = strings.TrimSpace(input.Start)
	cfg.CustomEnd = strings.TrimSpace(input.End)
	if cfg.TimeRange == schema.CustomRange {
		if cfg.CustomStart == "" || cfg.CustomEnd == "" {
			return fmt.Errorf("custom range requires both --start and --end (YYYY-MM-DD)")
		}
		start, err := time.ParseInLocation(schema.DayKeyFormat, cfg.CustomStart, time.Local)
		if err != nil {
			return fmt.Errorf("invalid start date '%s': expected YYYY-MM-DD", cfg.CustomStart)
		}
		end, err := time.ParseInLocation(schema.DayKeyFormat, cfg.CustomEnd, time.Local)
		if err != nil {
			return fmt.Errorf("invalid end date '%s': expected YYYY-MM-DD", cfg.CustomEnd)
		}
		if start.After(end) {
			return fmt.Errorf("start date (%s) cannot be after end date (%s)", cfg.CustomStart, cfg.CustomEnd)
		}
	}

	cfg.UserScope = schema.UserScope(strings.ToLower(input.User))
	if _, ok := schema.ValidUserScopes[cfg.UserScope]; !ok {
		return fmt.Errorf("invalid user scope '%s'. must be current, all, custom", input.User)
	}
	cfg.CustomUser = strings.TrimSpace(input.CustomUser)
	if cfg.UserScope == schema.CustomUserScope && cfg.CustomUser == "" {
		return fmt.Errorf("custom user scope requires --custom-user")
	}

	cfg.Metric = schema.Metric(strings.ToLower(input.Metric))
	if _, ok := schema.ValidMetrics[cfg.Metric]; !ok {
		return fmt.Errorf("invalid metric '%s'. must be commits, lines, added, deleted", input.Metric)
	}

	cfg.ColorScheme = schema.ColorScheme(strings.ToLower(input.Scheme))
	if _, ok := schema.ValidColorSchemes[cfg.ColorScheme]; !ok {
		return fmt.Errorf("invalid color scheme '%s'. must be github, fire, ocean, mono", input.Scheme)
	}

	cfg.DateSource = schema.DateSource(strings.ToLower(input.DateSource))
	if _, ok := schema.ValidDateSources[cfg.DateSource]; !ok {
		return fmt.Errorf("invalid date source '%s'. must be committer, author", input.DateSource)
	}

	cfg.IncludeMerges = input.Merges
	cfg.ForceRefresh = input.Refresh
	return nil
}

// processRuntimeInputs validates workers, timeouts, cache and output fields.
func processRuntimeInputs(cfg *Config, input *ConfigRawInput) error {
	if input.Workers <= 0 {
		return fmt.Errorf("workers must be greater than 0 (received %d)", input.Workers)
	}
	cfg.Workers = input.Workers

	ttl, err := time.ParseDuration(input.CacheTTL)
	if err != nil || ttl <= 0 {
		return fmt.Errorf("invalid cache-ttl '%s': expected a positive duration like 5m", input.CacheTTL)
	}
	cfg.CacheTTL = ttl

	gitTimeout, err := time.ParseDuration(input.GitTimeout)
	if err != nil || gitTimeout <= 0 {
		return fmt.Errorf("invalid git-timeout '%s': expected a positive duration like 30s", input.GitTimeout)
	}
	cfg.GitTimeout = gitTimeout

	cfg.CacheBackend = schema.CacheBackend(strings.ToLower(input.CacheBackend))
	if _, ok := schema.ValidCacheBackends[cfg.CacheBackend]; !ok {
		return fmt.Errorf("invalid cache backend '%s'. must be sqlite, mysql, postgresql, none", input.CacheBackend)
	}
	cfg.CacheDBConnect = input.CacheDB
	if err := ValidateDatabaseConnectionString(cfg.CacheBackend, cfg.CacheDBConnect); err != nil {
		return err
	}

	cfg.Output = schema.OutputMode(strings.ToLower(input.Output))
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output format '%s'. must be text, csv, json", input.Output)
	}
	cfg.OutputFile = input.OutputFile
	cfg.Width = input.Width

	colors, err := ParseBoolString(input.Color)
	if err != nil {
		return fmt.Errorf("invalid --color value: %w", err)
	}
	cfg.UseColors = colors
	return nil
}

// ValidateDatabaseConnectionString validates the format of database connection
// strings for MySQL and PostgreSQL backends.
func ValidateDatabaseConnectionString(backend schema.CacheBackend, connStr string) error {
	switch backend {
	case schema.SQLiteBackend, schema.NoneBackend:
		return nil
	case schema.MySQLBackend:
		if connStr == "" {
			return fmt.Errorf("cache-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "@tcp(") {
			return fmt.Errorf("MySQL connection string must contain '@tcp(' for host:port specification")
		}
		if !strings.Contains(connStr, "/") {
			return fmt.Errorf("MySQL connection string must contain '/' followed by database name")
		}
	case schema.PostgreSQLBackend:
		if connStr == "" {
			return fmt.Errorf("cache-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "host=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'host=' parameter")
		}
		if !strings.Contains(connStr, "dbname=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'dbname=' parameter")
		}
	}
	return nil
}

// splitCommaList splits a comma-separated flag value, dropping empty entries.
func splitCommaList(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	var out []string
	for p := range strings.SplitSeq(s, ",") {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
