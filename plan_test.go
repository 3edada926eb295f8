package cssurl

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

// ---------------------------------------------------------------------------
// TestPlanDestination - Destination layout
// ---------------------------------------------------------------------------

func TestPlanDestination(t *testing.T) {
	t.Parallel()

	root := filepath.Join("out", "dist")

	tests := []struct {
		name string
		src  string
		cat  Category
		want string
	}{
		{"image", "static/bg.png", CategoryImage, filepath.Join(root, "img", "h.png")},
		{"font keeps extension case", "a/Font.WOFF2", CategoryFont, filepath.Join(root, "fonts", "h.WOFF2")},
		{"other goes to root", "a/data.json", CategoryOther, filepath.Join(root, "h.json")},
		{"no extension", "a/LICENSE", CategoryOther, filepath.Join(root, "h")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := PlanDestination(root, tt.src, "h", tt.cat); got != tt.want {
				t.Errorf("PlanDestination() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestPublicURL(t *testing.T) {
	t.Parallel()

	root := filepath.Join(t.TempDir(), "dist")

	tests := []struct {
		dest string
		want string
	}{
		{filepath.Join(root, "img", "abc.png"), "../img/abc.png"},
		{filepath.Join(root, "abc.json"), "../abc.json"},
	}

	for _, tt := range tests {
		got, err := PublicURL(root, tt.dest)
		if err != nil {
			t.Fatalf("PublicURL() error = %v", err)
		}
		if got != tt.want {
			t.Errorf("PublicURL(%q) = %q, want %q", tt.dest, got, tt.want)
		}
	}
}

// ---------------------------------------------------------------------------
// TestCleanOutput - Category folder removal
// ---------------------------------------------------------------------------

func TestCleanOutput(t *testing.T) {
	t.Parallel()

	t.Run("removes category folders only", func(t *testing.T) {
		t.Parallel()

		root := t.TempDir()
		for _, cat := range Categories() {
			writeFixture(t, root, string(cat)+"/stale.bin", textData)
		}
		keep := writeFixture(t, root, "css/site.css", textData)
		rootAsset := writeFixture(t, root, "0123456789abcdef.json", textData)

		if err := CleanOutput(root); err != nil {
			t.Fatalf("CleanOutput() error = %v", err)
		}

		for _, cat := range Categories() {
			if _, err := os.Stat(filepath.Join(root, string(cat))); !os.IsNotExist(err) {
				t.Errorf("%s still exists", cat)
			}
		}
		for _, p := range []string{keep, rootAsset} {
			if _, err := os.Stat(p); err != nil {
				t.Errorf("%s removed: %v", p, err)
			}
		}
	})

	t.Run("missing root is not an error", func(t *testing.T) {
		t.Parallel()

		if err := CleanOutput(filepath.Join(t.TempDir(), "never-created")); err != nil {
			t.Errorf("CleanOutput() error = %v", err)
		}
	})

	t.Run("filesystem root refused", func(t *testing.T) {
		t.Parallel()

		root := filepath.VolumeName(t.TempDir()) + string(filepath.Separator)
		if err := CleanOutput(root); !errors.Is(err, ErrInvalidPublicPath) {
			t.Errorf("CleanOutput(%q) error = %v, want ErrInvalidPublicPath", root, err)
		}
	})

	t.Run("empty root", func(t *testing.T) {
		t.Parallel()

		if err := CleanOutput(""); !errors.Is(err, ErrInvalidPublicPath) {
			t.Errorf("CleanOutput(\"\") error = %v, want ErrInvalidPublicPath", err)
		}
	})
}

func TestEnsureDir(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	dest := filepath.Join(root, "img", "nested", "h.png")

	for range 2 {
		if err := ensureDir(dest); err != nil {
			t.Fatalf("ensureDir() error = %v", err)
		}
	}
	if info, err := os.Stat(filepath.Dir(dest)); err != nil || !info.IsDir() {
		t.Errorf("directory not created: %v", err)
	}

	blocker := writeFixture(t, root, "file", textData)
	if err := ensureDir(filepath.Join(blocker, "x", "h.png")); !errors.Is(err, ErrCreateDir) {
		t.Errorf("ensureDir() under a file error = %v, want ErrCreateDir", err)
	}
}
