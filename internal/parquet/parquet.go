// Package parquet provides data structures and functions for exporting
// heatmap data to Parquet files using github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"os"
	"time"

	"github.com/liushen/calheat/schema"
	"github.com/parquet-go/parquet-go"
)

// HeatmapCell represents one day bucket in the exported heatmap.
type HeatmapCell struct {
	// Date is the local calendar day in YYYY-MM-DD form
	Date string `parquet:"date,snappy"`

	// Value is the aggregated metric value for the day
	Value int32 `parquet:"value,snappy"`

	// Metric names the aggregated metric
	Metric string `parquet:"metric,snappy"`
}

// CommitRow represents one commit record in the exported dataset.
type CommitRow struct {
	// Hash is the full commit hash
	Hash string `parquet:"hash,snappy"`

	// Author is the commit author's display name
	Author string `parquet:"author,snappy"`

	// Email is the commit author's email
	Email string `parquet:"email,snappy"`

	// Date is the commit timestamp on the selected date source
	Date time.Time `parquet:"date,snappy"`

	// Message is the commit subject line
	Message string `parquet:"message,snappy"`

	// RepoName is the repository the commit belongs to
	RepoName string `parquet:"repo_name,snappy"`

	// Additions is the number of lines added (zero without numstat)
	Additions int32 `parquet:"additions,snappy"`

	// Deletions is the number of lines deleted (zero without numstat)
	Deletions int32 `parquet:"deletions,snappy"`
}

// CellsFromDataset converts the dataset's day cells to parquet rows.
func CellsFromDataset(ds *schema.HeatmapDataset) []HeatmapCell {
	rows := make([]HeatmapCell, 0, len(ds.Cells))
	for _, cell := range ds.Cells {
		rows = append(rows, HeatmapCell{
			Date:   cell.Date,
			Value:  int32(cell.Commits),
			Metric: string(ds.Summary.Metric),
		})
	}
	return rows
}

// CommitsFromDataset converts the dataset's commit records to parquet rows.
func CommitsFromDataset(ds *schema.HeatmapDataset) []CommitRow {
	rows := make([]CommitRow, 0, len(ds.AllCommits))
	for _, r := range ds.AllCommits {
		rows = append(rows, CommitRow{
			Hash:      r.Hash,
			Author:    r.Author,
			Email:     r.Email,
			Date:      r.Date,
			Message:   r.Message,
			RepoName:  r.RepoName,
			Additions: int32(r.Additions),
			Deletions: int32(r.Deletions),
		})
	}
	return rows
}

// WriteCellsParquet writes a slice of HeatmapCell structs to a Parquet file.
func WriteCellsParquet(data []HeatmapCell, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	// Schema is inferred from the HeatmapCell struct tags
	writer := parquet.NewGenericWriter[HeatmapCell](file)
	defer func() { _ = writer.Close() }()

	if _, err := writer.Write(data); err != nil {
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}
	return nil
}

// WriteCommitsParquet writes a slice of CommitRow structs to a Parquet file.
func WriteCommitsParquet(data []CommitRow, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	// Schema is inferred from the CommitRow struct tags
	writer := parquet.NewGenericWriter[CommitRow](file)
	defer func() { _ = writer.Close() }()

	if _, err := writer.Write(data); err != nil {
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}
	return nil
}
