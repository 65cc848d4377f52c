package schema

import (
	"time"
)

// Repository identifies one discovered version-control repository.
type Repository struct {
	Name string `json:"name"` // display name, the base directory name
	Path string `json:"path"` // absolute path to the working tree root
}

// CommitRecord is one parsed commit from a repository log.
type CommitRecord struct {
	Hash      string    `json:"hash"`
	Author    string    `json:"author"`
	Email     string    `json:"email"`
	Date      time.Time `json:"date"` // the selected date source field, zone preserved
	Message   string    `json:"message"`
	RepoName  string    `json:"repoName"`
	RepoPath  string    `json:"repoPath"`
	Additions int       `json:"additions"`
	Deletions int       `json:"deletions"`
}

// MetricValue returns this commit's contribution to a day bucket under the
// given metric.
func (c CommitRecord) MetricValue(m Metric) int {
	switch m {
	case LinesChangedMetric:
		return c.Additions + c.Deletions
	case LinesAddedMetric:
		return c.Additions
	case LinesDeletedMetric:
		return c.Deletions
	default:
		return 1
	}
}

// DayCell is one calendar day in the dense dataset.
type DayCell struct {
	Date    string `json:"date"` // YYYY-MM-DD, local time
	Commits int    `json:"commits"`
}

// Summary describes the aggregation that produced a dataset.
type Summary struct {
	Repositories int `json:"repositories"` // discovered count, including failed ones
	// FailedRepositories counts repositories whose query failed and therefore
	// contributed zero data. Non-zero means "partial data shown".
	FailedRepositories int         `json:"failedRepositories"`
	TotalCommits       int         `json:"totalCommits"`
	RangeStart         time.Time   `json:"rangeStart"`
	RangeEnd           time.Time   `json:"rangeEnd"`
	Metric             Metric      `json:"metric"`
	ColorScheme        ColorScheme `json:"colorScheme"`
}

// HeatmapDataset is the aggregation result and the stable wire contract
// between the engine and any presentation layer.
//
// Invariants:
//   - len(Cells) equals the inclusive day count of [RangeStart, RangeEnd]
//   - Summary.TotalCommits equals the sum over Cells
//   - AllCommits is sorted by date descending
type HeatmapDataset struct {
	Cells      []DayCell      `json:"cells"`
	AllCommits []CommitRecord `json:"allCommits"`
	Summary    Summary        `json:"summary"`
}

// CellSum recomputes the total over materialized cells. Summary.TotalCommits
// must always be derived through this, never kept as a running counter.
func (d *HeatmapDataset) CellSum() int {
	total := 0
	for _, c := range d.Cells {
		total += c.Commits
	}
	return total
}

// MaxCellValue returns the largest cell value, used for render intensity scaling.
func (d *HeatmapDataset) MaxCellValue() int {
	maxVal := 0
	for _, c := range d.Cells {
		if c.Commits > maxVal {
			maxVal = c.Commits
		}
	}
	return maxVal
}
