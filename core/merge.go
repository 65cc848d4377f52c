package core

import (
	"sort"
	"time"

	"github.com/liushen/calheat/core/agg"
	"github.com/liushen/calheat/schema"
)

// RepoOutcome is the per-repository result fed into the merger. A failed
// repository contributes zero records but still counts toward the summary.
type RepoOutcome struct {
	Repo    schema.Repository
	Commits []schema.CommitRecord
	Failed  bool
}

// MergeOutcomes combines per-repository results into the dense dataset.
// Merging is commutative addition over a day map, so repository completion
// order never affects the result. Days with no activity materialize with a
// zero count, one cell per calendar day across the inclusive range.
func MergeOutcomes(outcomes []RepoOutcome, opts schema.QueryOptions) *schema.HeatmapDataset {
	buckets := make(map[string]int)
	var all []schema.CommitRecord
	failed := 0

	for _, oc := range outcomes {
		if oc.Failed {
			failed++
			continue
		}
		for day, v := range agg.BucketByDay(oc.Commits, opts.Metric) {
			buckets[day] += v
		}
		all = append(all, oc.Commits...)
	}

	// Most recent first; hash breaks ties so the order is deterministic.
	sort.Slice(all, func(i, j int) bool {
		if !all[i].Date.Equal(all[j].Date) {
			return all[i].Date.After(all[j].Date)
		}
		return all[i].Hash < all[j].Hash
	})

	ds := &schema.HeatmapDataset{
		Cells:      MaterializeCells(buckets, opts.RangeStart, opts.RangeEnd),
		AllCommits: all,
		Summary: schema.Summary{
			Repositories:       len(outcomes),
			FailedRepositories: failed,
			RangeStart:         opts.RangeStart,
			RangeEnd:           opts.RangeEnd,
			Metric:             opts.Metric,
			ColorScheme:        opts.ColorScheme,
		},
	}
	// Recomputed from cells rather than kept as a running counter, so the
	// summary invariant survives changes to the merge logic above.
	ds.Summary.TotalCommits = ds.CellSum()
	return ds
}

// MaterializeCells produces one cell per local calendar day in [start, end].
func MaterializeCells(buckets map[string]int, start, end time.Time) []schema.DayCell {
	cells := make([]schema.DayCell, 0, schema.InclusiveDayCount(start, end))
	first := dayStart(start)
	last := dayStart(end)
	for d := first; !d.After(last); d = d.AddDate(0, 0, 1) {
		key := d.Format(schema.DayKeyFormat)
		cells = append(cells, schema.DayCell{Date: key, Commits: buckets[key]})
	}
	return cells
}

// dayStart returns the start of t's local calendar day.
func dayStart(t time.Time) time.Time {
	local := t.Local()
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, time.Local)
}
