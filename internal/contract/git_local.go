package contract

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/liushen/calheat/schema"
)

// FieldDelimiter separates fields in the delimited log format. The unit
// separator is vanishingly unlikely to appear in a commit subject; subjects
// that do contain it are reassembled by the parser rather than truncated.
const FieldDelimiter = "\x1f"

// DefaultGitTimeout bounds a single git invocation.
const DefaultGitTimeout = 30 * time.Second

// LocalGitClient implements the GitClient interface by executing the local
// 'git' binary installed on the machine.
type LocalGitClient struct {
	// Timeout bounds each invocation. Zero means DefaultGitTimeout.
	Timeout time.Duration
}

var _ GitClient = &LocalGitClient{} // Compile-time check

// NewLocalGitClient creates a new instance of the local Git client.
func NewLocalGitClient(timeout time.Duration) *LocalGitClient {
	return &LocalGitClient{Timeout: timeout}
}

// Run executes a git command and returns its captured stdout. Errors are
// classified into the typed failures declared in contract.go.
func (c *LocalGitClient) Run(ctx context.Context, repoPath string, args ...string) ([]byte, error) {
	timeout := c.Timeout
	if timeout <= 0 {
		timeout = DefaultGitTimeout
	}
	runCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	fullArgs := args
	if repoPath != "" {
		fullArgs = append([]string{"-C", repoPath}, args...)
	}
	cmd := exec.CommandContext(runCtx, "git", fullArgs...)
	out, err := cmd.Output()
	if err != nil {
		return nil, classifyRunError(runCtx, fullArgs, err)
	}
	return out, nil
}

// classifyRunError maps exec failures onto the typed error taxonomy.
func classifyRunError(ctx context.Context, args []string, err error) error {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return fmt.Errorf("git '%s': %w", strings.Join(args, " "), ErrGitTimeout)
	}
	if errors.Is(err, exec.ErrNotFound) {
		return ErrGitNotFound
	}
	if errors.Is(err, os.ErrPermission) {
		return fmt.Errorf("git '%s': %w", strings.Join(args, " "), ErrGitPermission)
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		stderr := strings.TrimSpace(string(exitErr.Stderr))
		return fmt.Errorf("git '%s' exit: %s: %w", strings.Join(args, " "), stderr, err)
	}
	return fmt.Errorf("git '%s' failed: %w", strings.Join(args, " "), err)
}

// Version implements the GitClient interface and doubles as the availability
// probe for the git executable.
func (c *LocalGitClient) Version(ctx context.Context) (string, error) {
	out, err := c.Run(ctx, "", "--version")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(out)), nil
}

// ActivityLog implements the GitClient interface.
func (c *LocalGitClient) ActivityLog(ctx context.Context, repoPath string, q LogQuery) ([]byte, error) {
	return c.Run(ctx, repoPath, BuildLogArgs(q)...)
}

// BuildLogArgs translates a LogQuery into a git argument vector. Values land
// in discrete argv entries, never in a shell string.
func BuildLogArgs(q LogQuery) []string {
	dateField := "%cI"
	if q.DateSource == schema.AuthorDate {
		dateField = "%aI"
	}
	format := strings.Join([]string{"%H", "%an", "%ae", dateField, "%s"}, FieldDelimiter)

	args := []string{"log", "--pretty=format:" + format}
	if !q.IncludeMerges {
		args = append(args, "--no-merges")
	}
	if !q.Since.IsZero() {
		args = append(args, "--since="+q.Since.Format(time.RFC3339))
	}
	if !q.Before.IsZero() {
		args = append(args, "--before="+q.Before.Format(time.RFC3339))
	}
	if q.Author != "" {
		args = append(args, "--author="+q.Author)
	}
	if q.NumStat {
		args = append(args, "--numstat")
	}
	return args
}

// ConfiguredIdentity implements the GitClient interface. A missing config key
// makes git exit non-zero; that is treated as an empty value, not an error.
func (c *LocalGitClient) ConfiguredIdentity(ctx context.Context) (Identity, error) {
	var id Identity
	if out, err := c.Run(ctx, "", "config", "--get", "user.email"); err == nil {
		id.Email = strings.TrimSpace(string(out))
	} else if errors.Is(err, ErrGitNotFound) {
		return id, err
	}
	if out, err := c.Run(ctx, "", "config", "--get", "user.name"); err == nil {
		id.Name = strings.TrimSpace(string(out))
	} else if errors.Is(err, ErrGitNotFound) {
		return id, err
	}
	return id, nil
}

// AuthorIdentities implements the GitClient interface.
func (c *LocalGitClient) AuthorIdentities(ctx context.Context, repoPath string) ([]byte, error) {
	return c.Run(ctx, repoPath, "log", "--pretty=format:%an <%ae>")
}
