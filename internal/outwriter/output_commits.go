package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/liushen/calheat/internal/contract"
	"github.com/liushen/calheat/schema"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// commitTimeFormat is the display format for commit timestamps.
const commitTimeFormat = "2006-01-02 15:04"

// PrintCommits outputs commit records, dispatching based on the output format configured.
func PrintCommits(records []schema.CommitRecord, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		if err := printJSONCommits(records, cfg); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := printCSVCommits(records, cfg); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	default:
		if err := printCommitsTable(records, cfg); err != nil {
			return fmt.Errorf("error writing commits table output: %w", err)
		}
	}
	return nil
}

// printJSONCommits handles opening the file and calling the JSON writer.
func printJSONCommits(records []schema.CommitRecord, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeJSON(w, records)
	}, "Wrote JSON commits")
}

// printCSVCommits handles opening the file and calling the CSV writer.
func printCSVCommits(records []schema.CommitRecord, cfg *contract.Config) error {
	header := []string{"hash", "author", "email", "date", "message", "repo", "additions", "deletions"}
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
			return writeCSVCommitRows(csvWriter, records)
		})
	}, "Wrote CSV commits")
}

// writeCSVCommitRows writes one row per commit record.
func writeCSVCommitRows(w *csv.Writer, records []schema.CommitRecord) error {
	for _, r := range records {
		record := []string{
			r.Hash,
			r.Author,
			r.Email,
			r.Date.Format(commitTimeFormat),
			r.Message,
			r.RepoName,
			strconv.Itoa(r.Additions),
			strconv.Itoa(r.Deletions),
		}
		if err := w.Write(record); err != nil {
			return fmt.Errorf("failed to write CSV record: %w", err)
		}
	}
	return nil
}

// printCommitsTable prints commits in a five-column table.
func printCommitsTable(records []schema.CommitRecord, cfg *contract.Config) error {
	if len(records) == 0 {
		fmt.Println("No commits in the selected range.")
		return nil
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.Header([]string{"Date", "Hash", "Repo", "Author", "Message"})

	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignLeft
	})

	maxMsg := GetMaxMessageWidth(cfg)
	var data [][]string
	for _, r := range records {
		hash := r.Hash
		if len(hash) > 7 {
			hash = hash[:7]
		}
		row := []string{
			r.Date.Format(commitTimeFormat),
			hash,
			r.RepoName,
			r.Author,
			contract.TruncateMessage(r.Message, maxMsg),
		}
		data = append(data, row)
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	fmt.Printf("%d commits\n", len(records))
	return nil
}
