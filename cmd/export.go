package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/liushen/calheat/internal/contract"
	"github.com/liushen/calheat/internal/outwriter"
	"github.com/liushen/calheat/internal/parquet"
	"github.com/liushen/calheat/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// exportCmd writes the heatmap dataset to a file for external analysis.
var exportCmd = &cobra.Command{
	Use:   "export [root...]",
	Short: "Export the heatmap dataset to CSV, JSON or Parquet.",
	Long: `Aggregate commit activity under the current filters and write the
dataset out for external tooling.

CSV writes the day cells; JSON writes the full dataset including commit
records and summary; Parquet writes columnar day cells, optionally with the
commit records in a second file.

Examples:
  # Day cells as CSV
  calheat export --format csv --output-file activity.csv

  # Full dataset as JSON
  calheat export --format json --output-file activity.json

  # Columnar export with commit records
  calheat export --format parquet --output-file activity.parquet --with-commits`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := runExport(); err != nil {
			contract.LogFatal("Cannot export dataset", err)
		}
	},
}

func runExport() error {
	format := schema.OutputMode(strings.ToLower(viper.GetString("format")))
	if _, ok := schema.ValidExportModes[format]; !ok {
		return fmt.Errorf("invalid export format '%s'. must be csv, json, parquet", format)
	}
	if format == schema.ParquetOut && cfg.OutputFile == "" {
		return errors.New("parquet export requires --output-file")
	}

	ds, err := engine.GetFilteredHeatmapData(rootCtx, cfg.FilterSelection(), cfg.ForceRefresh)
	if err != nil {
		return err
	}

	if format == schema.ParquetOut {
		if err := parquet.WriteCellsParquet(parquet.CellsFromDataset(ds), cfg.OutputFile); err != nil {
			return err
		}
		if viper.GetBool("with-commits") {
			commitsPath := cfg.OutputFile + ".commits.parquet"
			if err := parquet.WriteCommitsParquet(parquet.CommitsFromDataset(ds), commitsPath); err != nil {
				return err
			}
		}
		fmt.Printf("Exported %d day cells to %s\n", len(ds.Cells), cfg.OutputFile)
		return nil
	}

	// CSV and JSON reuse the heatmap writers with the format forced.
	exportCfg := *cfg
	exportCfg.Output = format
	return outwriter.PrintHeatmap(ds, &exportCfg)
}
