package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/liushen/calheat/internal/contract"
	"github.com/liushen/calheat/schema"
)

// PrintUsers outputs the distinct author list, dispatching based on the output format configured.
func PrintUsers(users []string, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, users)
		}, "Wrote JSON users")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCSVWithHeader(w, []string{"author"}, func(csvWriter *csv.Writer) error {
				for _, u := range users {
					if err := csvWriter.Write([]string{u}); err != nil {
						return fmt.Errorf("failed to write CSV record: %w", err)
					}
				}
				return nil
			})
		}, "Wrote CSV users")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			for _, u := range users {
				fmt.Fprintln(w, u)
			}
			fmt.Fprintf(w, "%d authors\n", len(users))
			return nil
		}, "Wrote users")
	}
}
