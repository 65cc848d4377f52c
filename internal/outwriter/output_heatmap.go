package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/liushen/calheat/internal/contract"
	"github.com/liushen/calheat/schema"
)

// PrintHeatmap outputs the heatmap dataset, dispatching based on the output format configured.
func PrintHeatmap(ds *schema.HeatmapDataset, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		if err := printJSONHeatmap(ds, cfg); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := printCSVHeatmap(ds, cfg); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	default:
		// Default to the human-readable calendar
		if err := printHeatmapCalendar(ds, cfg); err != nil {
			return fmt.Errorf("error writing calendar output: %w", err)
		}
	}
	return nil
}

// printJSONHeatmap handles opening the file and calling the JSON writer.
func printJSONHeatmap(ds *schema.HeatmapDataset, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeJSONHeatmap(w, ds)
	}, "Wrote JSON heatmap")
}

// printCSVHeatmap handles opening the file and calling the CSV writer.
func printCSVHeatmap(ds *schema.HeatmapDataset, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeCSVWithHeader(w, []string{"date", "count"}, func(csvWriter *csv.Writer) error {
			return writeCSVHeatmapRows(csvWriter, ds)
		})
	}, "Wrote CSV heatmap")
}

// printHeatmapCalendar renders the calendar grid to the selected file.
func printHeatmapCalendar(ds *schema.HeatmapDataset, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		color.NoColor = !cfg.UseColors || cfg.OutputFile != ""
		if err := writeCalendar(w, ds, ds.Summary.ColorScheme); err != nil {
			return err
		}
		writeHeatmapSummary(w, ds)
		return nil
	}, "Wrote calendar heatmap")
}
