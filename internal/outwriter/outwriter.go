// Package outwriter has output and writer logic.
package outwriter

import (
	"os"

	"github.com/liushen/calheat/internal/contract"
	"github.com/liushen/calheat/schema"
	"golang.org/x/term"
)

// OutWriter provides a unified interface for all output operations.
// It encapsulates the various output formats and provides a clean API for the core logic.
type OutWriter struct{}

// NewOutWriter creates a new instance of the output writer.
func NewOutWriter() *OutWriter {
	return &OutWriter{}
}

// WriteHeatmap prints the heatmap dataset using the configured output format.
func (ow *OutWriter) WriteHeatmap(ds *schema.HeatmapDataset, cfg *contract.Config) error {
	return PrintHeatmap(ds, cfg)
}

// WriteCommits prints commit records using the configured output format.
func (ow *OutWriter) WriteCommits(records []schema.CommitRecord, cfg *contract.Config) error {
	return PrintCommits(records, cfg)
}

// WriteUsers prints the distinct author list using the configured output format.
func (ow *OutWriter) WriteUsers(users []string, cfg *contract.Config) error {
	return PrintUsers(users, cfg)
}

// WriteRepos prints discovered repositories using the configured output format.
func (ow *OutWriter) WriteRepos(repos []schema.Repository, cfg *contract.Config) error {
	return PrintRepos(repos, cfg)
}

// GetTerminalWidth returns the effective output width, honoring the
// configured override before falling back to terminal detection.
func GetTerminalWidth(cfg *contract.Config) int {
	if cfg.Width > 0 {
		return cfg.Width
	}
	detectedWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || detectedWidth <= 0 {
		// Conservative default for narrow terminals and CI
		return 80
	}
	return detectedWidth
}

// GetMaxMessageWidth calculates the space left for commit messages in table
// output after the fixed columns.
func GetMaxMessageWidth(cfg *contract.Config) int {
	// Date + Hash + Repo + Author with borders and padding
	baseWidth := 60
	available := GetTerminalWidth(cfg) - baseWidth
	if available < 15 {
		return 15
	}
	if available > 70 {
		return 70
	}
	return available
}
