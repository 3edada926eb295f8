package cssurl

import (
	"cmp"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"

	"github.com/alnah/go-cssurl/internal/fileutil"
)

// Alias substitutes a path prefix before lookup.
// With Prefix "@assets" and Target "./static", "@assets/a.png" becomes "./static/a.png".
type Alias struct {
	Prefix string
	Target string
}

// AliasMatch selects which alias applies when several prefixes match.
type AliasMatch string

// Alias matching modes.
const (
	// AliasLongest applies the most specific (longest) matching prefix.
	AliasLongest AliasMatch = "longest"
	// AliasFirst applies the first matching alias in configuration order.
	AliasFirst AliasMatch = "first"
)

// ParseAliasMatch converts a name (case-insensitive) to an AliasMatch.
// An empty name selects AliasLongest.
func ParseAliasMatch(name string) (AliasMatch, error) {
	switch AliasMatch(strings.ToLower(strings.TrimSpace(name))) {
	case "", AliasLongest:
		return AliasLongest, nil
	case AliasFirst:
		return AliasFirst, nil
	}
	return "", fmt.Errorf("%w: %q (must be %s or %s)", ErrInvalidAliasMatch, name, AliasLongest, AliasFirst)
}

// PathResolver turns reference paths into absolute paths of existing files.
// It is read-only after construction and safe for concurrent use.
type PathResolver struct {
	baseDir     string
	aliases     []Alias
	searchPaths []string
}

// NewPathResolver creates a PathResolver.
// baseDir anchors relative lookups; empty means the current working directory.
// Relative search paths are resolved against baseDir.
func NewPathResolver(baseDir string, aliases []Alias, searchPaths []string, match AliasMatch) (*PathResolver, error) {
	base, err := absBaseDir(baseDir)
	if err != nil {
		return nil, err
	}

	normalized := make([]Alias, 0, len(aliases))
	seen := make(map[string]bool, len(aliases))
	for _, a := range aliases {
		prefix := strings.TrimRight(toSlash(a.Prefix), "/")
		if strings.TrimSpace(prefix) == "" {
			return nil, fmt.Errorf("%w: empty prefix", ErrInvalidAlias)
		}
		if a.Target == "" {
			return nil, fmt.Errorf("%w: %q has no target", ErrInvalidAlias, a.Prefix)
		}
		if seen[prefix] {
			return nil, fmt.Errorf("%w: duplicate prefix %q", ErrInvalidAlias, a.Prefix)
		}
		seen[prefix] = true
		normalized = append(normalized, Alias{Prefix: prefix, Target: toSlash(a.Target)})
	}

	switch match {
	case "", AliasLongest:
		slices.SortStableFunc(normalized, func(a, b Alias) int {
			return cmp.Compare(len(b.Prefix), len(a.Prefix))
		})
	case AliasFirst:
		// configuration order
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidAliasMatch, match)
	}

	dirs := make([]string, 0, len(searchPaths))
	for _, p := range searchPaths {
		if p == "" {
			continue
		}
		dirs = append(dirs, absFrom(base, filepath.FromSlash(toSlash(p))))
	}

	return &PathResolver{baseDir: base, aliases: normalized, searchPaths: dirs}, nil
}

// BaseDir returns the absolute directory relative lookups start from.
func (r *PathResolver) BaseDir() string {
	return r.baseDir
}

// Resolve returns the absolute path of the file rawPath refers to, and
// whether one was found. Query strings and fragments must already be removed.
//
// Steps: normalize separators, substitute an alias, look the path up
// relative to the base directory, then in each search path in order. Only
// regular files resolve. Not finding a file is not an error.
func (r *PathResolver) Resolve(rawPath string) (string, bool) {
	p := normalizePath(rawPath)
	if p == "" {
		return "", false
	}
	p = r.substituteAlias(p)

	native := filepath.FromSlash(p)
	candidate := absFrom(r.baseDir, native)
	if fileutil.FileExists(candidate) {
		return candidate, true
	}
	if filepath.IsAbs(native) {
		return "", false
	}

	for _, dir := range r.searchPaths {
		candidate := filepath.Join(dir, native)
		if fileutil.FileExists(candidate) {
			return candidate, true
		}
	}
	return "", false
}

// substituteAlias applies the first alias (in resolver order) whose prefix
// followed by "/" starts p.
func (r *PathResolver) substituteAlias(p string) string {
	for _, a := range r.aliases {
		if strings.HasPrefix(p, a.Prefix+"/") {
			return normalizePath(a.Target + p[len(a.Prefix):])
		}
	}
	return p
}

// normalizePath converts backslashes to "/", collapses duplicate separators,
// and cleans "." and ".." segments. The empty path stays empty.
func normalizePath(p string) string {
	p = strings.TrimSpace(toSlash(p))
	if p == "" {
		return ""
	}
	cleaned := path.Clean(p)
	if cleaned == "." {
		return ""
	}
	return cleaned
}

func toSlash(p string) string {
	return strings.ReplaceAll(p, `\`, "/")
}

func absBaseDir(dir string) (string, error) {
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("%w: %v", ErrInvalidBaseDir, err)
		}
		return wd, nil
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidBaseDir, err)
	}
	if !fileutil.DirExists(abs) {
		return "", fmt.Errorf("%w: not a directory: %s", ErrInvalidBaseDir, abs)
	}
	return abs, nil
}

// absFrom resolves p against base unless it is already absolute.
func absFrom(base, p string) string {
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Join(base, p)
}
