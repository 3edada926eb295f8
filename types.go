package cssurl

import (
	"github.com/alnah/go-cssurl/internal/pipeline"
)

// DefaultPublicPath is the output root used when none is configured.
const DefaultPublicPath = "/"

// Input contains the document to resolve.
type Input struct {
	CSS  string // CSS text (may be empty)
	Name string // document name used in error messages (optional)
}

// Reference is one url() occurrence in a CSS document, with byte offsets of
// the full url(...) span.
type Reference = pipeline.Reference

// Asset describes one resolved reference and where its file was copied.
type Asset struct {
	Reference   Reference
	SourcePath  string   // absolute path of the referenced file
	Hash        string   // 16 lowercase hex characters
	MIME        string   // sniffed content type, parameters stripped
	Category    Category // output subfolder, CategoryOther for the root
	Destination string   // absolute path of the copy
	URL         string   // path written into the CSS, without query or fragment
}

// Result is the outcome of resolving one document.
type Result struct {
	CSS        string      // rewritten CSS
	Assets     []Asset     // resolved references, in document order
	Unresolved []Reference // references whose file could not be found
	Skipped    int         // data: URIs, network URLs, and empty paths
}

// Option configures a Resolver.
type Option func(*Resolver)

// resolverConfig holds internal configuration for Resolver.
type resolverConfig struct {
	publicPath   string
	aliases      []Alias
	aliasMatch   AliasMatch
	includePaths []string
	baseDir      string
	hash         HashAlgorithm
	dryRun       bool
}

// WithPublicPath sets the output root. Relative paths are resolved against
// the base directory.
// Panics if path is empty (programmer error).
func WithPublicPath(path string) Option {
	if path == "" {
		panic("cssurl: WithPublicPath path must not be empty")
	}
	return func(r *Resolver) {
		r.cfg.publicPath = path
	}
}

// WithAliases appends path prefix aliases. Order matters for AliasFirst.
func WithAliases(aliases ...Alias) Option {
	return func(r *Resolver) {
		r.cfg.aliases = append(r.cfg.aliases, aliases...)
	}
}

// WithAliasMatch selects how overlapping alias prefixes are chosen.
func WithAliasMatch(match AliasMatch) Option {
	return func(r *Resolver) {
		r.cfg.aliasMatch = match
	}
}

// WithIncludePaths appends directories searched, in order, when a path is not
// found relative to the base directory.
func WithIncludePaths(dirs ...string) Option {
	return func(r *Resolver) {
		r.cfg.includePaths = append(r.cfg.includePaths, dirs...)
	}
}

// WithBaseDir sets the directory relative references and paths are resolved
// against. Defaults to the current working directory.
func WithBaseDir(dir string) Option {
	return func(r *Resolver) {
		r.cfg.baseDir = dir
	}
}

// WithHashAlgorithm selects the content hash used in asset names.
func WithHashAlgorithm(alg HashAlgorithm) Option {
	return func(r *Resolver) {
		r.cfg.hash = alg
	}
}

// WithDryRun rewrites CSS and plans destinations without creating
// directories or copying files.
func WithDryRun(dryRun bool) Option {
	return func(r *Resolver) {
		r.cfg.dryRun = dryRun
	}
}
