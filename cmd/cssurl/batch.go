package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/sync/errgroup"

	cssurl "github.com/alnah/go-cssurl"
	"github.com/alnah/go-cssurl/internal/fileutil"
)

// Sentinel errors for batch operations.
var (
	ErrReadCSS     = errors.New("failed to read CSS file")
	ErrWriteCSS    = errors.New("failed to write CSS file")
	ErrBatchFailed = errors.New("some documents failed")
)

// DocumentResolver is the library surface the batch needs.
type DocumentResolver interface {
	Resolve(ctx context.Context, input cssurl.Input) (*cssurl.Result, error)
}

// Compile-time interface implementation check.
var _ DocumentResolver = (*cssurl.Resolver)(nil)

// ResolveResult holds the outcome of a single document.
type ResolveResult struct {
	InputPath  string
	OutputPath string
	Result     *cssurl.Result
	Err        error
	Duration   time.Duration
}

// resolveBatch processes files concurrently, at most workers at a time.
// A failing document does not stop the others; cancellation of ctx does.
// Results are returned in input order.
func resolveBatch(ctx context.Context, r DocumentResolver, files []FileToResolve, workers int, dryRun bool) []ResolveResult {
	if len(files) == 0 {
		return nil
	}

	results := make([]ResolveResult, len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(workers, 1))

	for i, f := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				results[i] = ResolveResult{InputPath: f.InputPath, OutputPath: f.OutputPath, Err: err}
				return nil
			}
			results[i] = resolveFile(gctx, r, f, dryRun)
			return nil
		})
	}

	// Workers never return errors; failures are carried in results.
	_ = g.Wait()
	return results
}

// resolveFile processes a single document and returns the result.
func resolveFile(ctx context.Context, r DocumentResolver, f FileToResolve, dryRun bool) ResolveResult {
	start := time.Now()
	result := ResolveResult{
		InputPath:  f.InputPath,
		OutputPath: f.OutputPath,
	}

	content, err := os.ReadFile(f.InputPath) // #nosec G304 -- discovered path
	if err != nil {
		result.Err = fmt.Errorf("%w: %w", ErrReadCSS, err)
		result.Duration = time.Since(start)
		return result
	}

	res, err := r.Resolve(ctx, cssurl.Input{CSS: string(content), Name: f.InputPath})
	if err != nil {
		result.Err = err
		result.Duration = time.Since(start)
		return result
	}
	result.Result = res

	if !dryRun {
		if err := fileutil.EnsureDir(filepath.Dir(f.OutputPath)); err != nil {
			result.Err = fmt.Errorf("%w: %w", ErrWriteCSS, err)
			result.Duration = time.Since(start)
			return result
		}
		if err := fileutil.WriteFileAtomic(f.OutputPath, []byte(res.CSS)); err != nil {
			result.Err = fmt.Errorf("%w: %w", ErrWriteCSS, err)
			result.Duration = time.Since(start)
			return result
		}
	}

	result.Duration = time.Since(start)
	return result
}

// ResultSummary holds batch counters.
type ResultSummary struct {
	Succeeded  int
	Failed     int
	Assets     int
	Unresolved int
}

// countResults tallies documents and references.
func countResults(results []ResolveResult) ResultSummary {
	var summary ResultSummary
	for _, r := range results {
		if r.Err != nil {
			summary.Failed++
			continue
		}
		summary.Succeeded++
		if r.Result != nil {
			summary.Assets += len(r.Result.Assets)
			summary.Unresolved += len(r.Result.Unresolved)
		}
	}
	return summary
}

// printResults outputs batch results using the provided writers and returns
// the summary. Failures and unresolved references go to Stderr even when quiet
// is set; verbose adds one line per resolved asset.
func printResults(results []ResolveResult, quiet, verbose, dryRun bool, env *Environment) ResultSummary {
	summary := countResults(results)

	for _, r := range results {
		if r.Err != nil {
			fmt.Fprintf(env.Stderr, "FAILED %s: %v\n", r.InputPath, r.Err)
			continue
		}

		for _, ref := range r.Result.Unresolved {
			fmt.Fprintf(env.Stderr, "warning: %s: %s not found, left unchanged\n", r.InputPath, ref.Path)
		}

		if quiet {
			continue
		}

		verb := "Created"
		if dryRun {
			verb = "Would create"
		}
		if verbose {
			fmt.Fprintf(env.Stdout, "%s -> %s (%d assets, %v)\n",
				r.InputPath, r.OutputPath, len(r.Result.Assets), r.Duration.Round(time.Millisecond))
			for _, a := range r.Result.Assets {
				fmt.Fprintf(env.Stdout, "  %s -> %s\n", a.SourcePath, a.Destination)
			}
		} else {
			fmt.Fprintf(env.Stdout, "%s %s\n", verb, r.OutputPath)
		}
	}

	if !quiet && len(results) > 1 {
		fmt.Fprintf(env.Stdout, "\n%d succeeded, %d failed, %d assets, %d unresolved\n",
			summary.Succeeded, summary.Failed, summary.Assets, summary.Unresolved)
	}

	return summary
}
