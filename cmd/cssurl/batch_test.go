package main

// Notes:
// - resolveBatch: a fake DocumentResolver isolates batching from the library.
// - printResults: we check what reaches each writer, not the exact layout.
// These are acceptable gaps: we test observable behavior, not implementation details.

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	cssurl "github.com/alnah/go-cssurl"
)

// fakeResolver upper-cases CSS and fails documents whose text contains "fail".
type fakeResolver struct {
	calls atomic.Int32
}

func (f *fakeResolver) Resolve(_ context.Context, in cssurl.Input) (*cssurl.Result, error) {
	f.calls.Add(1)
	if strings.Contains(in.CSS, "fail") {
		return nil, errors.New("fake failure")
	}
	return &cssurl.Result{CSS: strings.ToUpper(in.CSS)}, nil
}

func batchFixture(t *testing.T, docs map[string]string) (string, []FileToResolve) {
	t.Helper()
	dir := t.TempDir()
	var files []FileToResolve
	for name, css := range docs {
		in := filepath.Join(dir, "src", name)
		if err := os.MkdirAll(filepath.Dir(in), 0o750); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(in, []byte(css), 0o600); err != nil {
			t.Fatal(err)
		}
		files = append(files, FileToResolve{InputPath: in, OutputPath: filepath.Join(dir, "out", name)})
	}
	return dir, files
}

// ---------------------------------------------------------------------------
// TestResolveBatch - Concurrent documents
// ---------------------------------------------------------------------------

func TestResolveBatch(t *testing.T) {
	t.Parallel()

	t.Run("writes outputs and keeps order", func(t *testing.T) {
		t.Parallel()

		_, files := batchFixture(t, map[string]string{"a.css": "a{}", "b.css": "b{}", "c.css": "c{}"})
		r := &fakeResolver{}

		results := resolveBatch(context.Background(), r, files, 2, false)

		if len(results) != len(files) {
			t.Fatalf("got %d results, want %d", len(results), len(files))
		}
		for i, res := range results {
			if res.Err != nil {
				t.Errorf("%s: unexpected error %v", res.InputPath, res.Err)
			}
			if res.InputPath != files[i].InputPath {
				t.Errorf("results[%d] = %s, want input order", i, res.InputPath)
			}
			got, err := os.ReadFile(res.OutputPath)
			if err != nil {
				t.Fatalf("reading output: %v", err)
			}
			if string(got) != res.Result.CSS {
				t.Errorf("output %q, want %q", got, res.Result.CSS)
			}
		}
		if r.calls.Load() != 3 {
			t.Errorf("resolver called %d times, want 3", r.calls.Load())
		}
	})

	t.Run("one failure does not stop others", func(t *testing.T) {
		t.Parallel()

		_, files := batchFixture(t, map[string]string{"ok.css": "a{}", "bad.css": "fail{}"})
		results := resolveBatch(context.Background(), &fakeResolver{}, files, 1, false)

		summary := countResults(results)
		if summary.Succeeded != 1 || summary.Failed != 1 {
			t.Errorf("summary = %+v, want 1 succeeded 1 failed", summary)
		}
	})

	t.Run("dry run writes nothing", func(t *testing.T) {
		t.Parallel()

		dir, files := batchFixture(t, map[string]string{"a.css": "a{}"})
		results := resolveBatch(context.Background(), &fakeResolver{}, files, 1, true)

		if results[0].Err != nil {
			t.Fatalf("unexpected error %v", results[0].Err)
		}
		if _, err := os.Stat(filepath.Join(dir, "out")); !os.IsNotExist(err) {
			t.Errorf("output dir exists after dry run: %v", err)
		}
	})

	t.Run("missing input is a read error", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		files := []FileToResolve{{InputPath: filepath.Join(dir, "gone.css"), OutputPath: filepath.Join(dir, "out.css")}}
		results := resolveBatch(context.Background(), &fakeResolver{}, files, 1, false)

		if !errors.Is(results[0].Err, ErrReadCSS) {
			t.Errorf("error = %v, want ErrReadCSS", results[0].Err)
		}
	})

	t.Run("canceled context", func(t *testing.T) {
		t.Parallel()

		_, files := batchFixture(t, map[string]string{"a.css": "a{}", "b.css": "b{}"})
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		r := &fakeResolver{}
		results := resolveBatch(ctx, r, files, 1, false)
		for _, res := range results {
			if !errors.Is(res.Err, context.Canceled) {
				t.Errorf("%s: error = %v, want context.Canceled", res.InputPath, res.Err)
			}
		}
		if r.calls.Load() != 0 {
			t.Errorf("resolver called %d times after cancel", r.calls.Load())
		}
	})

	t.Run("no files", func(t *testing.T) {
		t.Parallel()

		if results := resolveBatch(context.Background(), &fakeResolver{}, nil, 4, false); results != nil {
			t.Errorf("results = %v, want nil", results)
		}
	})
}

// ---------------------------------------------------------------------------
// TestPrintResults - Reporting
// ---------------------------------------------------------------------------

func TestPrintResults(t *testing.T) {
	t.Parallel()

	results := []ResolveResult{
		{
			InputPath:  "src/site.css",
			OutputPath: "dist/css/site.css",
			Result: &cssurl.Result{
				Assets:     []cssurl.Asset{{SourcePath: "/p/img/a.png", Destination: "/p/dist/img/0011.png"}},
				Unresolved: []cssurl.Reference{{Path: "missing.png"}},
			},
		},
		{InputPath: "src/bad.css", Err: errors.New("boom")},
	}

	t.Run("default", func(t *testing.T) {
		t.Parallel()

		env, stdout, stderr := newTestEnv()
		summary := printResults(results, false, false, false, env)

		if summary != (ResultSummary{Succeeded: 1, Failed: 1, Assets: 1, Unresolved: 1}) {
			t.Errorf("summary = %+v", summary)
		}
		for _, want := range []string{"Created dist/css/site.css", "1 succeeded, 1 failed"} {
			if !strings.Contains(stdout.String(), want) {
				t.Errorf("stdout should contain %q, got %q", want, stdout.String())
			}
		}
		for _, want := range []string{"FAILED src/bad.css: boom", "missing.png not found"} {
			if !strings.Contains(stderr.String(), want) {
				t.Errorf("stderr should contain %q, got %q", want, stderr.String())
			}
		}
	})

	t.Run("quiet keeps warnings", func(t *testing.T) {
		t.Parallel()

		env, stdout, stderr := newTestEnv()
		printResults(results, true, false, false, env)

		if stdout.Len() != 0 {
			t.Errorf("stdout = %q, want empty", stdout.String())
		}
		if !strings.Contains(stderr.String(), "missing.png") {
			t.Errorf("stderr = %q, want unresolved warning", stderr.String())
		}
	})

	t.Run("verbose lists assets", func(t *testing.T) {
		t.Parallel()

		env, stdout, _ := newTestEnv()
		printResults(results[:1], false, true, false, env)

		if !strings.Contains(stdout.String(), "/p/img/a.png -> /p/dist/img/0011.png") {
			t.Errorf("stdout = %q, want asset line", stdout.String())
		}
	})

	t.Run("dry run wording", func(t *testing.T) {
		t.Parallel()

		env, stdout, _ := newTestEnv()
		printResults(results[:1], false, false, true, env)

		if !strings.Contains(stdout.String(), "Would create dist/css/site.css") {
			t.Errorf("stdout = %q", stdout.String())
		}
	})
}
