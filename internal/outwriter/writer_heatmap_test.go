package outwriter

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/liushen/calheat/internal/contract"
	"github.com/liushen/calheat/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIntensityLevel(t *testing.T) {
	tests := []struct {
		name     string
		v, max   int
		expected int
	}{
		{"zero value", 0, 10, 0},
		{"negative value", -1, 10, 0},
		{"hottest cell", 10, 10, 4},
		{"single commit low max", 1, 1, 4},
		{"quarter of max", 1, 4, 1},
		{"just above quarter", 2, 4, 2},
		{"three quarters", 3, 4, 3},
		{"small value large max", 1, 100, 1},
		{"zero max nonzero value", 5, 0, 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, intensityLevel(tt.v, tt.max))
		})
	}
}

// calendarDataset builds a small dataset spanning one week.
func calendarDataset(t *testing.T) *schema.HeatmapDataset {
	t.Helper()
	start := time.Date(2026, 3, 2, 0, 0, 0, 0, time.Local) // a Monday
	cells := make([]schema.DayCell, 0, 7)
	for i := range 7 {
		cells = append(cells, schema.DayCell{
			Date:    start.AddDate(0, 0, i).Format(schema.DayKeyFormat),
			Commits: i % 3,
		})
	}
	ds := &schema.HeatmapDataset{Cells: cells}
	ds.Summary = schema.Summary{
		TotalCommits: ds.CellSum(),
		Repositories: 1,
		RangeStart:   start,
		RangeEnd:     start.AddDate(0, 0, 6),
		Metric:       schema.CommitCountMetric,
	}
	return ds
}

func TestWriteCalendar(t *testing.T) {
	prev := color.NoColor
	color.NoColor = true
	defer func() { color.NoColor = prev }()

	var buf bytes.Buffer
	require.NoError(t, writeCalendar(&buf, calendarDataset(t), schema.GithubScheme))
	out := buf.String()

	assert.Contains(t, out, "Mar", "month label row")
	assert.Contains(t, out, "Mon")
	assert.Contains(t, out, "Wed")
	assert.Contains(t, out, "Fri")
	assert.Contains(t, out, "Less")
	assert.Contains(t, out, "More")

	// Active days draw the block glyph, zero days the dot.
	assert.Contains(t, out, strings.TrimSpace(cellGlyph))
	assert.Contains(t, out, strings.TrimSpace(emptyGlyph))

	// Month label row plus seven weekday rows plus the legend.
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	assert.Len(t, lines, 9)
}

func TestWriteCalendarEmptyDataset(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeCalendar(&buf, &schema.HeatmapDataset{}, schema.GithubScheme))
	assert.Contains(t, buf.String(), "No activity")
}

func TestWriteCalendarUnknownSchemeFallsBack(t *testing.T) {
	prev := color.NoColor
	color.NoColor = true
	defer func() { color.NoColor = prev }()

	var buf bytes.Buffer
	require.NoError(t, writeCalendar(&buf, calendarDataset(t), schema.ColorScheme("rainbow")))
	assert.Contains(t, buf.String(), "Less")
}

func TestWriteHeatmapSummary(t *testing.T) {
	var buf bytes.Buffer
	ds := calendarDataset(t)
	writeHeatmapSummary(&buf, ds)

	out := buf.String()
	assert.Contains(t, out, "across 1 repositories")
	assert.Contains(t, out, "2026-03-02")
	assert.Contains(t, out, "2026-03-08")
	assert.NotContains(t, out, "partial")
}

func TestWriteHeatmapSummaryPartialFailure(t *testing.T) {
	var buf bytes.Buffer
	ds := calendarDataset(t)
	ds.Summary.FailedRepositories = 2
	writeHeatmapSummary(&buf, ds)
	assert.Contains(t, buf.String(), "2 repositories failed")
}

func TestWriteCSVHeatmapRows(t *testing.T) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	require.NoError(t, writeCSVHeatmapRows(w, calendarDataset(t)))
	w.Flush()

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 7)
	assert.Equal(t, "2026-03-02,0", lines[0])
	assert.Equal(t, "2026-03-03,1", lines[1])
	assert.Equal(t, "2026-03-04,2", lines[2])
}

func TestGetMaxMessageWidth(t *testing.T) {
	assert.Equal(t, 15, GetMaxMessageWidth(&contract.Config{Width: 40}), "narrow terminals clamp low")
	assert.Equal(t, 40, GetMaxMessageWidth(&contract.Config{Width: 100}))
	assert.Equal(t, 70, GetMaxMessageWidth(&contract.Config{Width: 400}), "wide terminals clamp high")
}

func TestGetTerminalWidthOverride(t *testing.T) {
	assert.Equal(t, 120, GetTerminalWidth(&contract.Config{Width: 120}))
}
