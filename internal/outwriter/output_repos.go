package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/liushen/calheat/internal/contract"
	"github.com/liushen/calheat/schema"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// PrintRepos outputs discovered repositories, dispatching based on the output format configured.
func PrintRepos(repos []schema.Repository, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, repos)
		}, "Wrote JSON repositories")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCSVWithHeader(w, []string{"name", "path"}, func(csvWriter *csv.Writer) error {
				for _, r := range repos {
					if err := csvWriter.Write([]string{r.Name, r.Path}); err != nil {
						return fmt.Errorf("failed to write CSV record: %w", err)
					}
				}
				return nil
			})
		}, "Wrote CSV repositories")
	default:
		return printReposTable(repos)
	}
}

// printReposTable prints repositories in a two-column table.
func printReposTable(repos []schema.Repository) error {
	if len(repos) == 0 {
		fmt.Println("No repositories found.")
		return nil
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.Header([]string{"Name", "Path"})

	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignLeft
	})

	var data [][]string
	for _, r := range repos {
		data = append(data, []string{r.Name, r.Path})
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	fmt.Printf("%d repositories\n", len(repos))
	return nil
}
