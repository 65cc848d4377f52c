package contract

import (
	"testing"
	"time"

	"github.com/liushen/calheat/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// validInput returns a raw input that passes validation, for tests to mutate.
func validInput() *ConfigRawInput {
	return &ConfigRawInput{
		Range:        "year",
		User:         "all",
		Metric:       "commits",
		Scheme:       "github",
		DateSource:   "committer",
		Workers:      3,
		CacheTTL:     "5m",
		GitTimeout:   "30s",
		CacheBackend: "sqlite",
		Output:       "text",
		Color:        "yes",
	}
}

func TestProcessAndValidateDefaults(t *testing.T) {
	cfg := &Config{}
	require.NoError(t, ProcessAndValidate(cfg, validInput()))

	assert.Len(t, cfg.Roots, 1, "defaults to the current directory")
	assert.Equal(t, schema.YearRange, cfg.TimeRange)
	assert.Equal(t, schema.AllUsersScope, cfg.UserScope)
	assert.Equal(t, schema.CommitCountMetric, cfg.Metric)
	assert.Equal(t, schema.GithubScheme, cfg.ColorScheme)
	assert.Equal(t, schema.CommitterDate, cfg.DateSource)
	assert.Equal(t, 5*time.Minute, cfg.CacheTTL)
	assert.Equal(t, 30*time.Second, cfg.GitTimeout)
	assert.Equal(t, schema.SQLiteBackend, cfg.CacheBackend)
	assert.True(t, cfg.UseColors)
	assert.Contains(t, cfg.Excludes, "node_modules/")
}

func TestProcessAndValidateCustomRange(t *testing.T) {
	input := validInput()
	input.Range = "custom"
	input.Start = "2026-01-01"
	input.End = "2026-03-31"

	cfg := &Config{}
	require.NoError(t, ProcessAndValidate(cfg, input))
	assert.Equal(t, schema.CustomRange, cfg.TimeRange)
	assert.Equal(t, "2026-01-01", cfg.CustomStart)
	assert.Equal(t, "2026-03-31", cfg.CustomEnd)
}

func TestProcessAndValidateCustomRangeErrors(t *testing.T) {
	tests := []struct {
		name  string
		start string
		end   string
	}{
		{"missing both", "", ""},
		{"missing end", "2026-01-01", ""},
		{"malformed start", "01/01/2026", "2026-03-31"},
		{"start after end", "2026-04-01", "2026-03-31"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := validInput()
			input.Range = "custom"
			input.Start = tt.start
			input.End = tt.end
			assert.Error(t, ProcessAndValidate(&Config{}, input))
		})
	}
}

func TestProcessAndValidateCustomUserRequiresValue(t *testing.T) {
	input := validInput()
	input.User = "custom"
	assert.Error(t, ProcessAndValidate(&Config{}, input))

	input.CustomUser = "dev@example.com"
	cfg := &Config{}
	require.NoError(t, ProcessAndValidate(cfg, input))
	assert.Equal(t, schema.CustomUserScope, cfg.UserScope)
	assert.Equal(t, "dev@example.com", cfg.CustomUser)
}

func TestProcessAndValidateRejectsBadEnums(t *testing.T) {
	mutations := []func(*ConfigRawInput){
		func(in *ConfigRawInput) { in.Range = "fortnight" },
		func(in *ConfigRawInput) { in.User = "everyone" },
		func(in *ConfigRawInput) { in.Metric = "velocity" },
		func(in *ConfigRawInput) { in.Scheme = "rainbow" },
		func(in *ConfigRawInput) { in.DateSource = "push" },
		func(in *ConfigRawInput) { in.CacheBackend = "redis" },
		func(in *ConfigRawInput) { in.Output = "xml" },
		func(in *ConfigRawInput) { in.Workers = 0 },
		func(in *ConfigRawInput) { in.CacheTTL = "soon" },
		func(in *ConfigRawInput) { in.GitTimeout = "-5s" },
		func(in *ConfigRawInput) { in.Color = "maybe" },
	}
	for _, mutate := range mutations {
		input := validInput()
		mutate(input)
		assert.Error(t, ProcessAndValidate(&Config{}, input))
	}
}

func TestProcessAndValidateSplitsLists(t *testing.T) {
	input := validInput()
	input.Exclude = "vendor/, archive , "

	cfg := &Config{}
	require.NoError(t, ProcessAndValidate(cfg, input))
	assert.Contains(t, cfg.Excludes, "vendor/")
	assert.Contains(t, cfg.Excludes, "archive")
}

func TestValidateDatabaseConnectionString(t *testing.T) {
	assert.NoError(t, ValidateDatabaseConnectionString(schema.SQLiteBackend, ""))
	assert.NoError(t, ValidateDatabaseConnectionString(schema.NoneBackend, ""))

	assert.Error(t, ValidateDatabaseConnectionString(schema.MySQLBackend, ""))
	assert.Error(t, ValidateDatabaseConnectionString(schema.MySQLBackend, "user:pass@host/db"))
	assert.NoError(t, ValidateDatabaseConnectionString(schema.MySQLBackend, "user:pass@tcp(localhost:3306)/calheat"))

	assert.Error(t, ValidateDatabaseConnectionString(schema.PostgreSQLBackend, ""))
	assert.Error(t, ValidateDatabaseConnectionString(schema.PostgreSQLBackend, "host=localhost"))
	assert.NoError(t, ValidateDatabaseConnectionString(schema.PostgreSQLBackend, "host=localhost port=5432 user=postgres dbname=calheat"))
}

func TestFilterSelectionRoundTrip(t *testing.T) {
	cfg := &Config{
		TimeRange:     schema.CustomRange,
		CustomStart:   "2026-01-01",
		CustomEnd:     "2026-02-01",
		UserScope:     schema.CustomUserScope,
		CustomUser:    "dev@example.com",
		Metric:        schema.LinesChangedMetric,
		ColorScheme:   schema.OceanScheme,
		IncludeMerges: true,
		DateSource:    schema.AuthorDate,
	}

	sel := cfg.FilterSelection()
	restored := &Config{}
	restored.ApplySelection(sel)

	assert.Equal(t, cfg.TimeRange, restored.TimeRange)
	assert.Equal(t, cfg.CustomStart, restored.CustomStart)
	assert.Equal(t, cfg.CustomEnd, restored.CustomEnd)
	assert.Equal(t, cfg.UserScope, restored.UserScope)
	assert.Equal(t, cfg.CustomUser, restored.CustomUser)
	assert.Equal(t, cfg.Metric, restored.Metric)
	assert.Equal(t, cfg.ColorScheme, restored.ColorScheme)
	assert.Equal(t, cfg.IncludeMerges, restored.IncludeMerges)
	assert.Equal(t, cfg.DateSource, restored.DateSource)
}
