package cssurl

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/alnah/go-cssurl/internal/fileutil"
)

// PlanDestination returns where an asset is copied:
// outputRoot[/category]/<hash><ext>, where ext is the source extension as written.
func PlanDestination(outputRoot, sourcePath, hash string, cat Category) string {
	dir := outputRoot
	if cat != CategoryOther {
		dir = filepath.Join(outputRoot, string(cat))
	}
	return filepath.Join(dir, hash+filepath.Ext(sourcePath))
}

// PublicURL returns the reference written into CSS for destination. Rewritten
// CSS is expected to live one directory below outputRoot (e.g. dist/css/), so
// the path always starts with "../".
func PublicURL(outputRoot, destination string) (string, error) {
	rel, err := filepath.Rel(outputRoot, destination)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidPublicPath, err)
	}
	return "../" + filepath.ToSlash(rel), nil
}

// CleanOutput removes every category folder under outputRoot. Files placed
// directly under outputRoot (CategoryOther) are kept, as is anything else.
//
// Call it once per build, before documents are resolved. Resolve never
// deletes anything. A filesystem root is refused.
func CleanOutput(outputRoot string) error {
	if outputRoot == "" {
		return fmt.Errorf("%w: empty path", ErrInvalidPublicPath)
	}
	root, err := filepath.Abs(outputRoot)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidPublicPath, err)
	}
	if isFilesystemRoot(root) {
		return fmt.Errorf("%w: refusing to clean filesystem root %s", ErrInvalidPublicPath, root)
	}

	for _, cat := range Categories() {
		dir := filepath.Join(root, string(cat))
		if err := os.RemoveAll(dir); err != nil {
			return fmt.Errorf("%w: %w", ErrCleanOutput, err)
		}
	}
	return nil
}

func isFilesystemRoot(p string) bool {
	return filepath.Dir(p) == p
}

// ensureDir creates the destination directory of an asset if missing.
func ensureDir(destination string) error {
	if err := fileutil.EnsureDir(filepath.Dir(destination)); err != nil {
		return fmt.Errorf("%w: %w", ErrCreateDir, err)
	}
	return nil
}
