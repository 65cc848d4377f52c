package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/fatih/color"
	"github.com/liushen/calheat/schema"
)

// cellGlyph is the block drawn for an active day; emptyGlyph marks a day in
// range with zero activity.
const (
	cellGlyph  = "■ "
	emptyGlyph = "· "
	padGlyph   = "  "
)

// schemePalettes maps each color scheme to its five intensity levels, from
// empty to hottest.
var schemePalettes = map[schema.ColorScheme][]*color.Color{
	schema.GithubScheme: {
		color.New(color.FgHiBlack),
		color.New(color.FgGreen),
		color.New(color.FgGreen, color.Bold),
		color.New(color.FgHiGreen),
		color.New(color.FgHiGreen, color.Bold),
	},
	schema.FireScheme: {
		color.New(color.FgHiBlack),
		color.New(color.FgYellow),
		color.New(color.FgHiYellow),
		color.New(color.FgRed),
		color.New(color.FgHiRed),
	},
	schema.OceanScheme: {
		color.New(color.FgHiBlack),
		color.New(color.FgCyan),
		color.New(color.FgHiCyan),
		color.New(color.FgBlue),
		color.New(color.FgHiBlue),
	},
	schema.MonoScheme: {
		color.New(color.FgHiBlack),
		color.New(color.FgWhite, color.Faint),
		color.New(color.FgWhite),
		color.New(color.FgHiWhite),
		color.New(color.FgHiWhite, color.Bold),
	},
}

// intensityLevel maps a cell value to one of five levels relative to the
// hottest cell in the dataset.
func intensityLevel(v, maxValue int) int {
	if v <= 0 {
		return 0
	}
	if maxValue <= 0 {
		return 4
	}
	level := (v*4 + maxValue - 1) / maxValue
	if level > 4 {
		level = 4
	}
	return level
}

// writeCalendar renders the dataset as a weeks-by-weekdays grid in the style
// of a contribution calendar: columns are weeks, rows are weekdays, months
// labeled along the top.
func writeCalendar(w io.Writer, ds *schema.HeatmapDataset, scheme schema.ColorScheme) error {
	if len(ds.Cells) == 0 {
		_, err := fmt.Fprintln(w, "No activity in the selected range.")
		return err
	}

	palette, ok := schemePalettes[scheme]
	if !ok {
		palette = schemePalettes[schema.GithubScheme]
	}

	values := make(map[string]int, len(ds.Cells))
	for _, cell := range ds.Cells {
		values[cell.Date] = cell.Commits
	}
	maxValue := ds.MaxCellValue()

	start, err := time.ParseInLocation(schema.DayKeyFormat, ds.Cells[0].Date, time.Local)
	if err != nil {
		return fmt.Errorf("invalid cell date %q: %w", ds.Cells[0].Date, err)
	}
	end, err := time.ParseInLocation(schema.DayKeyFormat, ds.Cells[len(ds.Cells)-1].Date, time.Local)
	if err != nil {
		return fmt.Errorf("invalid cell date %q: %w", ds.Cells[len(ds.Cells)-1].Date, err)
	}

	// Snap the grid to the Sunday on or before the range start.
	gridStart := start.AddDate(0, 0, -int(start.Weekday()))
	weeks := int(end.Sub(gridStart).Hours()/(24*7)) + 1

	writeMonthLabels(w, gridStart, weeks, end)

	weekdayLabels := map[int]string{1: "Mon", 3: "Wed", 5: "Fri"}
	for weekday := 0; weekday < 7; weekday++ {
		if label, ok := weekdayLabels[weekday]; ok {
			fmt.Fprintf(w, "%-4s", label)
		} else {
			fmt.Fprint(w, "    ")
		}
		for week := 0; week < weeks; week++ {
			day := gridStart.AddDate(0, 0, week*7+weekday)
			if day.Before(start) || day.After(end) {
				fmt.Fprint(w, padGlyph)
				continue
			}
			v := values[day.Format(schema.DayKeyFormat)]
			level := intensityLevel(v, maxValue)
			glyph := cellGlyph
			if level == 0 {
				glyph = emptyGlyph
			}
			palette[level].Fprint(w, glyph)
		}
		fmt.Fprintln(w)
	}

	writeLegend(w, palette)
	return nil
}

// writeMonthLabels prints month abbreviations above the week columns.
func writeMonthLabels(w io.Writer, gridStart time.Time, weeks int, end time.Time) {
	fmt.Fprint(w, "    ")
	lastMonth := time.Month(0)
	skip := 0
	for week := 0; week < weeks; week++ {
		if skip > 0 {
			skip--
			continue
		}
		day := gridStart.AddDate(0, 0, week*7)
		if day.After(end) {
			break
		}
		if day.Month() != lastMonth {
			label := day.Format("Jan")
			fmt.Fprint(w, label, " ")
			lastMonth = day.Month()
			// A label plus its space spans two cell columns.
			skip = 1
			continue
		}
		fmt.Fprint(w, padGlyph)
	}
	fmt.Fprintln(w)
}

// writeLegend prints the intensity legend under the grid.
func writeLegend(w io.Writer, palette []*color.Color) {
	fmt.Fprint(w, "    Less ")
	for level := 0; level <= 4; level++ {
		glyph := cellGlyph
		if level == 0 {
			glyph = emptyGlyph
		}
		palette[level].Fprint(w, glyph)
	}
	fmt.Fprintln(w, "More")
}

// writeHeatmapSummary prints the totals line under the calendar.
func writeHeatmapSummary(w io.Writer, ds *schema.HeatmapDataset) {
	s := ds.Summary
	fmt.Fprintf(w, "\n%d total (%s) from %s to %s across %d repositories\n",
		s.TotalCommits, s.Metric,
		s.RangeStart.Format(schema.DayKeyFormat), s.RangeEnd.Format(schema.DayKeyFormat),
		s.Repositories)
	if s.FailedRepositories > 0 {
		fmt.Fprintf(w, "⚠️  %d repositories failed; totals are partial\n", s.FailedRepositories)
	}
}

// writeJSONHeatmap writes the full dataset in JSON format.
func writeJSONHeatmap(w io.Writer, ds *schema.HeatmapDataset) error {
	return writeJSON(w, ds)
}

// writeCSVHeatmapRows writes one row per day cell.
func writeCSVHeatmapRows(w *csv.Writer, ds *schema.HeatmapDataset) error {
	for _, cell := range ds.Cells {
		record := []string{cell.Date, strconv.Itoa(cell.Commits)}
		if err := w.Write(record); err != nil {
			return fmt.Errorf("failed to write CSV record: %w", err)
		}
	}
	return nil
}
