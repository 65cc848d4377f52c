package contract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// ShouldIgnore returns true if the given slash-separated path matches any of
// the exclude patterns. Patterns containing glob characters go through
// doublestar (so "**" spans directories); patterns ending with '/' are treated
// as path-segment prefixes; anything else matches as a path substring.
// Users can provide patterns like "node_modules/", "**/build", "*.bak".
func ShouldIgnore(path string, excludes []string) bool {
	path = filepath.ToSlash(path)
	for _, ex := range excludes {
		ex = strings.TrimSpace(ex)
		if ex == "" {
			continue
		}

		if strings.ContainsAny(ex, "*?[") {
			if ok, err := doublestar.Match(ex, path); err == nil && ok {
				return true
			}
			// Also try the base name so "*.bak" matches nested entries.
			if ok, err := doublestar.Match(ex, filepath.Base(path)); err == nil && ok {
				return true
			}
			continue
		}

		switch {
		case strings.HasSuffix(ex, "/"):
			if strings.HasPrefix(path, ex) || strings.Contains(path, "/"+ex) {
				return true
			}
		default:
			if strings.Contains(path, ex) {
				return true
			}
		}
	}
	return false
}

// ParseBoolString parses a string value into a boolean.
// Accepts "yes", "no", "true", "false", "1", "0" (case-insensitive).
func ParseBoolString(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "yes", "true", "1":
		return true, nil
	case "no", "false", "0":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean string: %s (expected yes/no/true/false/1/0)", s)
	}
}

// LogFatal logs an error and exits the program.
func LogFatal(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Fatal %s: %v\n", msg, err)
	os.Exit(1)
}

// LogWarn logs a warning message to stderr.
func LogWarn(msg string, err error) {
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Warn %s: %v\n", msg, err)
		return
	}
	_, _ = fmt.Fprintf(os.Stderr, "Warn %s\n", msg)
}

// GetCacheDBFilePath returns the path to the SQLite DB file for cache storage.
func GetCacheDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".calheat_cache.db"
	}
	return filepath.Join(homeDir, ".calheat_cache.db")
}

// GetSettingsDBFilePath returns the path to the SQLite DB file for saved
// filter settings.
func GetSettingsDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".calheat_settings.db"
	}
	return filepath.Join(homeDir, ".calheat_settings.db")
}

// SelectOutputFile returns the appropriate file handle for output based on
// the provided file path, falling back to stdout for an empty path.
func SelectOutputFile(filePath string) (*os.File, error) {
	if filePath == "" {
		return os.Stdout, nil
	}
	return os.Create(filePath)
}

// TruncateMessage shortens a commit subject for table display.
func TruncateMessage(msg string, maxWidth int) string {
	runes := []rune(msg)
	if len(runes) > maxWidth && maxWidth > 3 {
		return string(runes[:maxWidth-3]) + "..."
	}
	return msg
}
