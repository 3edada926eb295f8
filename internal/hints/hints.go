// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/alnah/go-cssurl/internal/fileutil"
)

// IsInContainer detects if running inside a Docker container or similar.
// Checks for /.dockerenv file which Docker creates automatically.
var IsInContainer = func() bool {
	return fileutil.FileExists("/.dockerenv")
}

// ForConfigNotFound returns hints for config file not found errors.
// Suggests --config flag and creating a config in ~/.config/go-cssurl/.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/cssurl.yaml"

	for _, p := range searchedPaths {
		if strings.Contains(filepath.ToSlash(p), ".config/go-cssurl") {
			hint += " or create " + p
			break
		}
	}

	return format(hint)
}

// ForOutputDirectory returns hints for output directory creation errors.
func ForOutputDirectory() string {
	return format("check parent directory exists and is writable, or set --public-path")
}

// ForPublicPathRoot warns when assets would be copied under the filesystem root,
// which happens when no public path is configured.
func ForPublicPathRoot(publicPath string) string {
	if filepath.Clean(publicPath) != string(filepath.Separator) {
		return ""
	}
	return format("public path is \"/\" (the default); set --public-path or publicPath in cssurl.yaml")
}

// ForUnresolved returns hints when references could not be found on disk.
func ForUnresolved(count int, hasIncludePaths bool) string {
	if count == 0 {
		return ""
	}
	var hints []string
	hints = append(hints, fmt.Sprintf("%d reference(s) left unchanged", count))
	if !hasIncludePaths {
		hints = append(hints, "add search directories with --include")
	}
	hints = append(hints, "map prefixes with --alias name=path")
	return formatHints(hints)
}

// ForPermission returns a hint for permission denied errors.
func ForPermission() string {
	return format("check file permissions on the asset and the public path")
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}

// formatHints joins multiple hints with consistent formatting.
func formatHints(hints []string) string {
	if len(hints) == 0 {
		return ""
	}
	return format(strings.Join(hints, "; "))
}
