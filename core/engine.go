// Package core implements the calheat engine: repository discovery, commit
// aggregation, cross-repository merging and dataset caching.
package core

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/liushen/calheat/core/agg"
	"github.com/liushen/calheat/internal/contract"
	"github.com/liushen/calheat/schema"
	"golang.org/x/sync/errgroup"
)

// settingsKey is the key under which the saved filter selection lives in the
// settings store.
const settingsKey = "filter_selection"

// Options configures a new engine instance.
type Options struct {
	Roots      []string
	ExtraPaths []string
	Excludes   []string
	Workers    int // concurrent repository queries, defaults to contract.DefaultWorkers
	CacheTTL   time.Duration
}

// Engine is the aggregation engine handed to presentation layers. It holds no
// singleton state; construct one per consumer and pass it down explicitly.
type Engine struct {
	client   contract.GitClient
	cache    *DatasetCache
	settings contract.SettingsStore
	opts     Options
	now      func() time.Time
	warnf    func(msg string, err error)
}

// NewEngine creates an engine over the given git client and persistence
// manager. mgr may be nil when no durable tiers are configured.
func NewEngine(client contract.GitClient, mgr contract.CacheManager, opts Options) *Engine {
	if opts.Workers <= 0 {
		opts.Workers = contract.DefaultWorkers
	}
	var store contract.CacheStore
	var settings contract.SettingsStore
	if mgr != nil {
		store = mgr.GetCacheStore()
		settings = mgr.GetSettingsStore()
	}
	return &Engine{
		client:   client,
		cache:    NewDatasetCache(opts.CacheTTL, store),
		settings: settings,
		opts:     opts,
		now:      time.Now,
		warnf:    contract.LogWarn,
	}
}

// DiscoverRepositories returns all repositories under the configured roots.
// It fails with contract.ErrGitNotFound when the tool itself is missing; this
// is the only fatal failure class at this layer.
func (e *Engine) DiscoverRepositories(ctx context.Context) ([]schema.Repository, error) {
	if _, err := e.client.Version(ctx); err != nil {
		return nil, err
	}
	return DiscoverRepositories(e.opts.Roots, e.opts.ExtraPaths, e.opts.Excludes), nil
}

// GetFilteredHeatmapData translates the selection and returns the dataset,
// served from cache within the freshness window. forceRefresh bypasses the
// cache read but still stores the recomputed result. Per-repository failures
// never fail the call; they surface in Summary.FailedRepositories.
func (e *Engine) GetFilteredHeatmapData(ctx context.Context, sel schema.FilterSelection, forceRefresh bool) (*schema.HeatmapDataset, error) {
	opts, err := TranslateFilter(sel, e.now())
	if err != nil {
		return nil, err
	}

	if !forceRefresh {
		if ds := e.cache.Get(opts); ds != nil {
			return ds, nil
		}
	}

	// Concurrent identical requests share one computation per key.
	return e.cache.DoOnce(CacheKey(opts), func() (*schema.HeatmapDataset, error) {
		ds, err := e.computeDataset(ctx, opts)
		if err != nil {
			return nil, err
		}
		e.cache.Put(opts, ds)
		return ds, nil
	})
}

// computeDataset runs the full discovery, per-repository aggregation and
// merge pipeline for one option set.
func (e *Engine) computeDataset(ctx context.Context, opts schema.QueryOptions) (*schema.HeatmapDataset, error) {
	repos, err := e.DiscoverRepositories(ctx)
	if err != nil {
		return nil, err
	}

	outcomes, err := e.collectAll(ctx, repos, opts)
	if err != nil {
		return nil, err
	}

	ds := MergeOutcomes(outcomes, opts)
	if ds.Summary.FailedRepositories > 0 {
		e.warnf(fmt.Sprintf("%d of %d repositories failed; showing partial data",
			ds.Summary.FailedRepositories, ds.Summary.Repositories), nil)
	}
	return ds, nil
}

// collectAll queries every repository with bounded parallelism. Individual
// repository failures are recorded in the outcome, never propagated; only
// context cancellation and a missing tool abort the whole collection.
func (e *Engine) collectAll(ctx context.Context, repos []schema.Repository, opts schema.QueryOptions) ([]RepoOutcome, error) {
	authorFilter, degraded, err := agg.ResolveAuthorFilter(ctx, e.client, opts)
	if err != nil {
		return nil, err
	}
	if degraded {
		e.warnf("author filter requested but no identity configured; showing all authors", nil)
	}

	outcomes := make([]RepoOutcome, len(repos))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.opts.Workers)

	for i, repo := range repos {
		g.Go(func() error {
			records, err := agg.CollectRepository(gctx, e.client, repo, opts, authorFilter)
			if err != nil {
				if gctx.Err() != nil {
					return gctx.Err()
				}
				e.warnf(fmt.Sprintf("repository %s query failed", repo.Path), err)
				outcomes[i] = RepoOutcome{Repo: repo, Failed: true}
				return nil
			}
			outcomes[i] = RepoOutcome{Repo: repo, Commits: records}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return outcomes, nil
}

// GetCommitsForDate re-queries one calendar day under the same filters and
// returns its commit records, most recent first. The day dataset is cheap and
// always fresh, so it bypasses the cache.
func (e *Engine) GetCommitsForDate(ctx context.Context, date string, sel schema.FilterSelection) ([]schema.CommitRecord, error) {
	day, err := time.ParseInLocation(schema.DayKeyFormat, date, time.Local)
	if err != nil {
		return nil, fmt.Errorf("invalid date '%s': expected YYYY-MM-DD", date)
	}

	opts, err := TranslateFilter(sel, e.now())
	if err != nil {
		return nil, err
	}
	opts.RangeStart = day
	opts.RangeEnd = day

	repos, err := e.DiscoverRepositories(ctx)
	if err != nil {
		return nil, err
	}
	outcomes, err := e.collectAll(ctx, repos, opts)
	if err != nil {
		return nil, err
	}
	return MergeOutcomes(outcomes, opts).AllCommits, nil
}

// GetUserList returns the distinct author identities across all discovered
// repositories, sorted, for autocomplete use.
func (e *Engine) GetUserList(ctx context.Context) ([]string, error) {
	repos, err := e.DiscoverRepositories(ctx)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{})
	for _, repo := range repos {
		out, err := e.client.AuthorIdentities(ctx, repo.Path)
		if err != nil {
			e.warnf(fmt.Sprintf("could not list authors for %s", repo.Path), err)
			continue
		}
		for line := range strings.SplitSeq(string(out), "\n") {
			if id := strings.TrimSpace(line); id != "" {
				seen[id] = struct{}{}
			}
		}
	}

	users := make([]string, 0, len(seen))
	for u := range seen {
		users = append(users, u)
	}
	sort.Strings(users)
	return users, nil
}

// SaveFilterSettings persists the selection in the settings store.
func (e *Engine) SaveFilterSettings(sel schema.FilterSelection) error {
	if e.settings == nil {
		return fmt.Errorf("no settings store configured")
	}
	data, err := json.Marshal(sel)
	if err != nil {
		return fmt.Errorf("could not encode filter settings: %w", err)
	}
	return e.settings.Update(settingsKey, data)
}

// LoadFilterSettings returns the saved selection. found is false when nothing
// has been saved yet; the zero-value selection is then the caller's default.
func (e *Engine) LoadFilterSettings() (sel schema.FilterSelection, found bool, err error) {
	if e.settings == nil {
		return schema.FilterSelection{}, false, nil
	}
	data, err := e.settings.Get(settingsKey)
	if err != nil || data == nil {
		return schema.FilterSelection{}, false, nil
	}
	if err := json.Unmarshal(data, &sel); err != nil {
		return schema.FilterSelection{}, false, fmt.Errorf("saved filter settings are corrupt: %w", err)
	}
	return sel, true, nil
}

// ClearSavedFilterSettings removes the persisted selection.
func (e *Engine) ClearSavedFilterSettings() error {
	if e.settings == nil {
		return nil
	}
	return e.settings.Update(settingsKey, nil)
}

// ClearCache invalidates both cache tiers.
func (e *Engine) ClearCache() error {
	return e.cache.InvalidateAll()
}
