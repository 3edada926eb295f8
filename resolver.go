package cssurl

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/alnah/go-cssurl/internal/fileutil"
	"github.com/alnah/go-cssurl/internal/pipeline"
)

// Resolver rewrites url() references in CSS documents and copies the
// referenced assets. Create with NewResolver. A Resolver is safe for
// concurrent use.
type Resolver struct {
	cfg        resolverConfig
	paths      *PathResolver
	outputRoot string
}

// NewResolver creates a Resolver. The public path defaults to "/".
// Returns an error if an alias, the alias match mode, the hash algorithm, or
// the base directory is invalid.
func NewResolver(opts ...Option) (*Resolver, error) {
	r := &Resolver{
		cfg: resolverConfig{
			publicPath: DefaultPublicPath,
			aliasMatch: AliasLongest,
			hash:       DefaultHashAlgorithm,
		},
	}

	for _, opt := range opts {
		opt(r)
	}

	alg, err := ParseHashAlgorithm(string(r.cfg.hash))
	if err != nil {
		return nil, err
	}
	r.cfg.hash = alg

	match, err := ParseAliasMatch(string(r.cfg.aliasMatch))
	if err != nil {
		return nil, err
	}
	r.cfg.aliasMatch = match

	r.paths, err = NewPathResolver(r.cfg.baseDir, r.cfg.aliases, r.cfg.includePaths, r.cfg.aliasMatch)
	if err != nil {
		return nil, err
	}

	r.outputRoot = absFrom(r.paths.BaseDir(), filepath.FromSlash(toSlash(r.cfg.publicPath)))
	return r, nil
}

// OutputRoot returns the absolute public path assets are copied under.
func (r *Resolver) OutputRoot() string {
	return r.outputRoot
}

// HashAlgorithm returns the hash algorithm in use.
func (r *Resolver) HashAlgorithm() HashAlgorithm {
	return r.cfg.hash
}

// Resolve rewrites every resolvable url() reference in input.CSS and copies
// the referenced files under the output root.
//
// References that are data: URIs, network URLs, or that cannot be found are
// left unchanged. Any I/O failure on a found file aborts the document and no
// CSS is returned. Recovers from internal panics to prevent crashes from
// propagating to callers.
func (r *Resolver) Resolve(ctx context.Context, input Input) (result *Result, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("internal error: %v", rec)
		}
	}()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	res := &Result{}
	planned := make(map[string]Asset) // keyed by source path
	var reps []pipeline.Replacement

	for ref := range pipeline.References(input.CSS) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		lookup := ref.Lookup()
		if ref.IsDataURI() || ref.IsRemote() || lookup == "" {
			res.Skipped++
			continue
		}

		src, ok := r.paths.Resolve(lookup)
		if !ok {
			res.Unresolved = append(res.Unresolved, ref)
			continue
		}

		asset, seen := planned[src]
		if !seen {
			asset, err = r.plan(src)
			if err != nil {
				return nil, r.documentError(input, ref, err)
			}
			planned[src] = asset
		}
		asset.Reference = ref

		res.Assets = append(res.Assets, asset)
		reps = append(reps, pipeline.Replacement{
			Start: ref.Start,
			End:   ref.End,
			Text:  pipeline.FormatURL(asset.URL, ref.Suffix()),
		})
	}

	res.CSS = pipeline.ApplyReplacements(input.CSS, reps)

	if !r.cfg.dryRun {
		if err := r.copyAssets(ctx, res.Assets); err != nil {
			return nil, r.documentError(input, Reference{}, err)
		}
	}

	return res, nil
}

// Transform reads a whole CSS document from src, resolves it, and writes the
// rewritten CSS to dst.
func (r *Resolver) Transform(ctx context.Context, src io.Reader, dst io.Writer) error {
	data, err := io.ReadAll(src)
	if err != nil {
		return fmt.Errorf("reading CSS: %w", err)
	}

	res, err := r.Resolve(ctx, Input{CSS: string(data)})
	if err != nil {
		return err
	}

	if _, err := io.WriteString(dst, res.CSS); err != nil {
		return fmt.Errorf("writing CSS: %w", err)
	}
	return nil
}

// plan hashes and classifies src and computes its destination and public URL.
func (r *Resolver) plan(src string) (Asset, error) {
	hash, err := HashFile(src, r.cfg.hash)
	if err != nil {
		return Asset{}, err
	}

	mimeType, err := DetectMIME(src)
	if err != nil {
		return Asset{}, err
	}

	cat := Classify(mimeType)
	dest := PlanDestination(r.outputRoot, src, hash, cat)
	url, err := PublicURL(r.outputRoot, dest)
	if err != nil {
		return Asset{}, err
	}

	return Asset{
		SourcePath:  src,
		Hash:        hash,
		MIME:        mimeType,
		Category:    cat,
		Destination: dest,
		URL:         url,
	}, nil
}

// copyAssets copies each distinct destination once. A source that already is
// its destination (a previous build output referenced again) is left alone.
func (r *Resolver) copyAssets(ctx context.Context, assets []Asset) error {
	done := make(map[string]bool, len(assets))
	for _, a := range assets {
		if done[a.Destination] {
			continue
		}
		done[a.Destination] = true

		if err := ctx.Err(); err != nil {
			return err
		}
		if sameFile(a.SourcePath, a.Destination) {
			continue
		}
		if err := ensureDir(a.Destination); err != nil {
			return err
		}
		if err := fileutil.CopyFile(a.SourcePath, a.Destination); err != nil {
			return fmt.Errorf("%w: %w", ErrCopyAsset, err)
		}
	}
	return nil
}

// documentError adds the document name and reference to err.
func (r *Resolver) documentError(input Input, ref Reference, err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	switch {
	case input.Name != "" && ref.Raw != "":
		return fmt.Errorf("%s: %s: %w", input.Name, ref.Raw, err)
	case input.Name != "":
		return fmt.Errorf("%s: %w", input.Name, err)
	case ref.Raw != "":
		return fmt.Errorf("%s: %w", ref.Raw, err)
	}
	return err
}

func sameFile(a, b string) bool {
	if filepath.Clean(a) == filepath.Clean(b) {
		return true
	}
	ai, err := os.Stat(a)
	if err != nil {
		return false
	}
	bi, err := os.Stat(b)
	if err != nil {
		return false
	}
	return os.SameFile(ai, bi)
}
