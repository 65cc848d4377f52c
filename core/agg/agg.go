// Package agg turns one repository's git log into commit records and day
// buckets.
package agg

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/liushen/calheat/internal/contract"
	"github.com/liushen/calheat/schema"
)

// ResolveAuthorFilter computes the effective --author filter for a query.
// Priority order: explicit custom author, then the invoking user's configured
// email, then their configured name. When nothing resolves, the query runs
// unfiltered and degraded is true so the caller can warn; silently returning
// zero commits would be the worse failure mode.
func ResolveAuthorFilter(ctx context.Context, client contract.GitClient, opts schema.QueryOptions) (filter string, degraded bool, err error) {
	if !opts.FilterByAuthor {
		return "", false, nil
	}
	if opts.AuthorEmail != "" {
		return opts.AuthorEmail, false, nil
	}
	if opts.AuthorName != "" {
		return opts.AuthorName, false, nil
	}
	id, err := client.ConfiguredIdentity(ctx)
	if err != nil {
		return "", false, err
	}
	if id.Email != "" {
		return id.Email, false, nil
	}
	if id.Name != "" {
		return id.Name, false, nil
	}
	return "", true, nil
}

// CollectRepository queries one repository and returns its commit records
// restricted to the option range. Failures here are recovered by the caller
// per repository; they never abort sibling repositories.
func CollectRepository(ctx context.Context, client contract.GitClient, repo schema.Repository, opts schema.QueryOptions, authorFilter string) ([]schema.CommitRecord, error) {
	q := contract.LogQuery{
		Since:         opts.RangeStart,
		Before:        DayAfter(opts.RangeEnd),
		IncludeMerges: opts.IncludeMerges,
		DateSource:    opts.DateSource,
		Author:        authorFilter,
		NumStat:       opts.Metric.NeedsNumstat(),
	}
	out, err := client.ActivityLog(ctx, repo.Path, q)
	if err != nil {
		return nil, err
	}
	records := ParseActivityLog(out, repo)
	return FilterByRange(records, opts.RangeStart, opts.RangeEnd), nil
}

// ParseActivityLog decodes the delimited log output into commit records.
// Header lines carry hash/author/email/date/subject separated by the field
// delimiter; a subject containing the delimiter is kept intact because the
// split is bounded and the remainder stays attached to the message. When
// numstat was requested, the stat lines following a header are accumulated
// into that record's line counts.
func ParseActivityLog(out []byte, repo schema.Repository) []schema.CommitRecord {
	lines := strings.Split(string(out), "\n")
	records := make([]schema.CommitRecord, 0, len(lines))
	var current *schema.CommitRecord

	for _, line := range lines {
		line = strings.TrimRight(line, "\r")
		if line == "" {
			continue
		}

		if strings.Contains(line, contract.FieldDelimiter) {
			rec, ok := parseHeaderLine(line, repo)
			if !ok {
				continue
			}
			records = append(records, rec)
			current = &records[len(records)-1]
			continue
		}

		if current != nil {
			if add, del, ok := parseNumstatLine(line); ok {
				current.Additions += add
				current.Deletions += del
			}
		}
	}
	return records
}

// parseHeaderLine decodes one commit header line.
func parseHeaderLine(line string, repo schema.Repository) (schema.CommitRecord, bool) {
	parts := strings.SplitN(line, contract.FieldDelimiter, 5)
	if len(parts) < 5 {
		return schema.CommitRecord{}, false
	}
	date, err := time.Parse(time.RFC3339, parts[3])
	if err != nil {
		return schema.CommitRecord{}, false
	}
	return schema.CommitRecord{
		Hash:     parts[0],
		Author:   parts[1],
		Email:    parts[2],
		Date:     date,
		Message:  parts[4],
		RepoName: repo.Name,
		RepoPath: repo.Path,
	}, true
}

// parseNumstatLine decodes an "added\tdeleted\tpath" stat line. Binary files
// report "-" which counts as zero.
func parseNumstatLine(line string) (add, del int, ok bool) {
	parts := strings.SplitN(line, "\t", 3)
	if len(parts) < 3 {
		return 0, 0, false
	}
	return parseChurnValue(parts[0]), parseChurnValue(parts[1]), true
}

// parseChurnValue converts a churn string to int, handling "-" as 0.
func parseChurnValue(s string) int {
	if s == "-" {
		return 0
	}
	if val, err := strconv.Atoi(s); err == nil && val >= 0 {
		return val
	}
	return 0
}

// FilterByRange drops records outside [start, end] where end is inclusive of
// the whole calendar day. The local re-filter matters because git's
// --since/--until constrain committer time regardless of the selected date
// source.
func FilterByRange(records []schema.CommitRecord, start, end time.Time) []schema.CommitRecord {
	upper := DayAfter(end)
	kept := records[:0]
	for _, r := range records {
		if r.Date.Before(start) || !r.Date.Before(upper) {
			continue
		}
		kept = append(kept, r)
	}
	return kept
}

// BucketByDay folds commit records into a local-calendar-day bucket map under
// the given metric.
func BucketByDay(records []schema.CommitRecord, metric schema.Metric) map[string]int {
	buckets := make(map[string]int)
	for _, r := range records {
		buckets[schema.DayKey(r.Date)] += r.MetricValue(metric)
	}
	return buckets
}

// DayAfter returns the start of the local calendar day following t. It is the
// exclusive upper bound that makes the range end-date inclusive.
func DayAfter(t time.Time) time.Time {
	local := t.Local()
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, time.Local).AddDate(0, 0, 1)
}
