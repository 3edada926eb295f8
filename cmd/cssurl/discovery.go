package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Sentinel errors for file discovery.
var (
	ErrNoInput         = errors.New("no input specified")
	ErrNoCSSFiles      = errors.New("no CSS files found")
	ErrOutputCollision = errors.New("two inputs write the same output file")
)

// FileToResolve is one CSS document and where its rewritten copy goes.
type FileToResolve struct {
	InputPath  string
	OutputPath string
}

// discoverFiles expands inputs (files, directories, or doublestar globs such
// as "src/**/*.css") into documents. Rewritten CSS is written flat into
// outputDir: references point at "../<category>/", so every document must sit
// one level below the public path.
func discoverFiles(inputs []string, outputDir string) ([]FileToResolve, error) {
	if len(inputs) == 0 {
		return nil, ErrNoInput
	}

	var paths []string
	for _, in := range inputs {
		found, err := expandInput(in)
		if err != nil {
			return nil, err
		}
		paths = append(paths, found...)
	}

	files := make([]FileToResolve, 0, len(paths))
	seenIn := make(map[string]bool, len(paths))
	owner := make(map[string]string, len(paths))
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			return nil, err
		}
		if seenIn[abs] {
			continue
		}
		seenIn[abs] = true

		out := filepath.Join(outputDir, filepath.Base(p))
		if absOut, err := filepath.Abs(out); err == nil && absOut == abs {
			return nil, fmt.Errorf("%w: %s would overwrite its input", ErrOutputCollision, out)
		}
		if prev, ok := owner[out]; ok {
			return nil, fmt.Errorf("%w: %s and %s -> %s", ErrOutputCollision, prev, p, out)
		}
		owner[out] = p
		files = append(files, FileToResolve{InputPath: p, OutputPath: out})
	}

	if len(files) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoCSSFiles, strings.Join(inputs, ", "))
	}
	return files, nil
}

// expandInput returns the CSS files an input names, sorted.
func expandInput(input string) ([]string, error) {
	if isGlob(input) {
		base, pattern := doublestar.SplitPattern(filepath.ToSlash(input))
		matches, err := doublestar.Glob(os.DirFS(base), pattern, doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("expanding %s: %w", input, err)
		}
		out := make([]string, 0, len(matches))
		for _, m := range matches {
			if isCSSFile(m) {
				out = append(out, filepath.Join(filepath.FromSlash(base), filepath.FromSlash(m)))
			}
		}
		return out, nil
	}

	info, err := os.Stat(input)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return []string{input}, nil
	}

	var out []string
	err = filepath.WalkDir(input, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("scanning %s: %w", path, err)
		}
		if !d.IsDir() && isCSSFile(path) {
			out = append(out, path)
		}
		return nil
	})
	return out, err
}

func isGlob(s string) bool {
	return strings.ContainsAny(s, "*?[{")
}

func isCSSFile(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".css")
}
