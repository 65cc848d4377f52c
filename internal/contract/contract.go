// Package contract provides interfaces and shared utilities for calheat's
// internal architecture.
package contract

import (
	"context"
	"errors"
	"time"

	"github.com/liushen/calheat/schema"
)

// Typed process-runner failures. Callers branch on these with errors.Is.
var (
	// ErrGitNotFound means the git executable is missing from PATH. This is
	// fatal for a whole operation, never recovered per repository.
	ErrGitNotFound = errors.New("git executable not found in PATH")

	// ErrGitTimeout means a git invocation exceeded its deadline.
	ErrGitTimeout = errors.New("git command timed out")

	// ErrGitPermission means the process could not be started or the working
	// directory could not be entered due to permissions.
	ErrGitPermission = errors.New("permission denied running git")
)

// Identity is the invoking user's configured version-control identity.
// Either field may be empty on a misconfigured machine.
type Identity struct {
	Email string
	Name  string
}

// LogQuery describes one bounded commit-log request. Since is inclusive and
// Before is exclusive; end-date-inclusive semantics are achieved by callers
// passing rangeEnd + 1 day as Before.
type LogQuery struct {
	Since         time.Time
	Before        time.Time
	IncludeMerges bool
	DateSource    schema.DateSource
	Author        string // effective author filter, empty means unfiltered
	NumStat       bool   // include per-commit line counts
}

// GitClient defines the operations the aggregation core needs from the
// version-control tool. It exists so the core can be tested without a real
// git executable.
type GitClient interface {
	// Version returns the git version string and doubles as the tool
	// availability probe.
	Version(ctx context.Context) (string, error)

	// Run executes a git command in repoPath with a discrete argument vector
	// and returns captured stdout. Argument values are never interpreted as
	// shell syntax. Its use should be minimized in favor of the explicit
	// methods below.
	Run(ctx context.Context, repoPath string, args ...string) ([]byte, error)

	// ActivityLog returns the raw delimited commit log for one repository,
	// constrained by the query.
	ActivityLog(ctx context.Context, repoPath string, q LogQuery) ([]byte, error)

	// ConfiguredIdentity returns the invoking user's configured email and
	// display name. Empty fields are not an error.
	ConfiguredIdentity(ctx context.Context) (Identity, error)

	// AuthorIdentities returns the raw "Name <email>" lines across the full
	// history of one repository, used to build the distinct user list.
	AuthorIdentities(ctx context.Context, repoPath string) ([]byte, error)
}

// CacheManager defines the interface for managing durable stores.
// This allows the persistence layer to be mocked for testing.
type CacheManager interface {
	GetCacheStore() CacheStore
	GetSettingsStore() SettingsStore
}

// CacheStore defines the durable tier of the dataset cache. Implementations
// must be safe for concurrent use.
type CacheStore interface {
	Get(key string) (value []byte, version int, timestamp int64, err error)
	Set(key string, value []byte, version int, timestamp int64) error
	Clear() error
	GetStatus() (schema.CacheStatus, error)
	Close() error
}

// SettingsStore is the key-value persistence capability used for saved filter
// selections. Update with a nil value deletes the key.
type SettingsStore interface {
	Get(key string) ([]byte, error)
	Update(key string, value []byte) error
	ListKeys() ([]string, error)
	GetStatus() (schema.SettingsStatus, error)
	Close() error
}
