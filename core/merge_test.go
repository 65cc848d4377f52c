package core

import (
	"testing"
	"time"

	"github.com/liushen/calheat/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mergeOpts(startDay, endDay int) schema.QueryOptions {
	return schema.QueryOptions{
		RangeStart:  time.Date(2026, 3, startDay, 0, 0, 0, 0, time.Local),
		RangeEnd:    time.Date(2026, 3, endDay, 0, 0, 0, 0, time.Local),
		Metric:      schema.CommitCountMetric,
		ColorScheme: schema.GithubScheme,
	}
}

func commitOn(day int, hour int, hash string) schema.CommitRecord {
	return schema.CommitRecord{
		Hash: hash,
		Date: time.Date(2026, 3, day, hour, 0, 0, 0, time.Local),
	}
}

func TestMergeOutcomes(t *testing.T) {
	opts := mergeOpts(10, 12)
	outcomes := []RepoOutcome{
		{Repo: schema.Repository{Name: "a"}, Commits: []schema.CommitRecord{
			commitOn(10, 9, "aaa"),
			commitOn(12, 15, "bbb"),
		}},
		{Repo: schema.Repository{Name: "b"}, Commits: []schema.CommitRecord{
			commitOn(10, 18, "ccc"),
		}},
	}

	ds := MergeOutcomes(outcomes, opts)

	// Dense cells, one per day across the inclusive range.
	require.Len(t, ds.Cells, 3)
	assert.Equal(t, schema.DayCell{Date: "2026-03-10", Commits: 2}, ds.Cells[0])
	assert.Equal(t, schema.DayCell{Date: "2026-03-11", Commits: 0}, ds.Cells[1])
	assert.Equal(t, schema.DayCell{Date: "2026-03-12", Commits: 1}, ds.Cells[2])

	// Totals recomputed from cells.
	assert.Equal(t, 3, ds.Summary.TotalCommits)
	assert.Equal(t, ds.CellSum(), ds.Summary.TotalCommits)
	assert.Equal(t, 2, ds.Summary.Repositories)
	assert.Equal(t, 0, ds.Summary.FailedRepositories)

	// Most recent first.
	require.Len(t, ds.AllCommits, 3)
	assert.Equal(t, "bbb", ds.AllCommits[0].Hash)
	assert.Equal(t, "ccc", ds.AllCommits[1].Hash)
	assert.Equal(t, "aaa", ds.AllCommits[2].Hash)
}

func TestMergeOutcomesCommutative(t *testing.T) {
	opts := mergeOpts(10, 12)
	a := RepoOutcome{Repo: schema.Repository{Name: "a"}, Commits: []schema.CommitRecord{
		commitOn(10, 9, "aaa"), commitOn(11, 10, "bbb"),
	}}
	b := RepoOutcome{Repo: schema.Repository{Name: "b"}, Commits: []schema.CommitRecord{
		commitOn(11, 11, "ccc"),
	}}
	c := RepoOutcome{Repo: schema.Repository{Name: "c"}, Commits: []schema.CommitRecord{
		commitOn(12, 8, "ddd"),
	}}

	orders := [][]RepoOutcome{
		{a, b, c}, {c, b, a}, {b, a, c},
	}
	var first *schema.HeatmapDataset
	for _, order := range orders {
		ds := MergeOutcomes(order, opts)
		if first == nil {
			first = ds
			continue
		}
		assert.Equal(t, first.Cells, ds.Cells, "cell totals must not depend on completion order")
		assert.Equal(t, first.AllCommits, ds.AllCommits, "commit order is deterministic")
		assert.Equal(t, first.Summary.TotalCommits, ds.Summary.TotalCommits)
	}
}

func TestMergeOutcomesPartialFailure(t *testing.T) {
	opts := mergeOpts(10, 10)
	outcomes := []RepoOutcome{
		{Repo: schema.Repository{Name: "ok"}, Commits: []schema.CommitRecord{commitOn(10, 9, "aaa")}},
		{Repo: schema.Repository{Name: "broken"}, Failed: true},
	}

	ds := MergeOutcomes(outcomes, opts)
	assert.Equal(t, 2, ds.Summary.Repositories, "failed repositories still count as discovered")
	assert.Equal(t, 1, ds.Summary.FailedRepositories)
	assert.Equal(t, 1, ds.Summary.TotalCommits)
}

func TestMergeOutcomesSingleActiveDay(t *testing.T) {
	opts := schema.QueryOptions{
		RangeStart: time.Date(2024, 1, 1, 0, 0, 0, 0, time.Local),
		RangeEnd:   time.Date(2024, 1, 3, 0, 0, 0, 0, time.Local),
		Metric:     schema.CommitCountMetric,
	}
	active := time.Date(2024, 1, 2, 0, 0, 0, 0, time.Local)
	outcomes := []RepoOutcome{
		{Commits: []schema.CommitRecord{
			{Hash: "aaa", Date: active.Add(10 * time.Hour)},
			{Hash: "bbb", Date: active.Add(16 * time.Hour)},
		}},
	}

	ds := MergeOutcomes(outcomes, opts)
	assert.Equal(t, []schema.DayCell{
		{Date: "2024-01-01", Commits: 0},
		{Date: "2024-01-02", Commits: 2},
		{Date: "2024-01-03", Commits: 0},
	}, ds.Cells)
	assert.Equal(t, 2, ds.Summary.TotalCommits)
}

func TestMergeOutcomesEmpty(t *testing.T) {
	opts := mergeOpts(10, 12)
	ds := MergeOutcomes(nil, opts)

	require.Len(t, ds.Cells, 3)
	for _, cell := range ds.Cells {
		assert.Zero(t, cell.Commits)
	}
	assert.Zero(t, ds.Summary.TotalCommits)
	assert.Empty(t, ds.AllCommits)
}

func TestMergeOutcomesHashTieBreak(t *testing.T) {
	opts := mergeOpts(10, 10)
	ts := time.Date(2026, 3, 10, 12, 0, 0, 0, time.Local)
	outcomes := []RepoOutcome{
		{Commits: []schema.CommitRecord{{Hash: "zzz", Date: ts}, {Hash: "aaa", Date: ts}}},
	}

	ds := MergeOutcomes(outcomes, opts)
	require.Len(t, ds.AllCommits, 2)
	assert.Equal(t, "aaa", ds.AllCommits[0].Hash)
	assert.Equal(t, "zzz", ds.AllCommits[1].Hash)
}

func TestMaterializeCellsDayCount(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.Local)
	end := time.Date(2026, 12, 31, 0, 0, 0, 0, time.Local)

	cells := MaterializeCells(map[string]int{}, start, end)
	assert.Equal(t, schema.InclusiveDayCount(start, end), len(cells))
	assert.Equal(t, "2026-01-01", cells[0].Date)
	assert.Equal(t, "2026-12-31", cells[len(cells)-1].Date)
}
