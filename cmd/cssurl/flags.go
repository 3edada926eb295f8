package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	flag "github.com/spf13/pflag"

	"github.com/alnah/go-cssurl/internal/config"
)

// Sentinel errors for argument parsing.
var (
	ErrUsage            = errors.New("invalid usage")
	ErrInvalidAliasFlag = errors.New("invalid --alias value")
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// resolverFlags holds the flags that shape path resolution and output.
type resolverFlags struct {
	publicPath string
	aliases    []string // name=path, in command-line order
	includes   []string
	aliasMatch string
	hash       string
}

// resolveFlags holds all flags for the resolve command.
type resolveFlags struct {
	common   commonFlags
	resolver resolverFlags
	output   string
	workers  int
	noClean  bool
	dryRun   bool
}

// cleanFlags holds flags for the clean command.
type cleanFlags struct {
	common     commonFlags
	publicPath string
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show each resolved asset and timings")
}

// addResolverFlags adds path resolution flags to a FlagSet.
func addResolverFlags(fs *flag.FlagSet, f *resolverFlags) {
	fs.StringVarP(&f.publicPath, "public-path", "p", "", "output root for copied assets (default \"/\")")
	fs.StringArrayVarP(&f.aliases, "alias", "a", nil, "path alias as name=path (repeatable)")
	fs.StringArrayVarP(&f.includes, "include", "I", nil, "directory searched for assets (repeatable)")
	fs.StringVar(&f.aliasMatch, "alias-match", "", "alias selection: longest, first")
	fs.StringVar(&f.hash, "hash", "", "content hash: xxhash, blake3")
}

// parseResolveFlags parses resolve command flags and returns positional args.
func parseResolveFlags(args []string, stderr io.Writer) (*resolveFlags, []string, error) {
	fs := flag.NewFlagSet("resolve", flag.ContinueOnError)
	fs.SetOutput(stderr)
	f := &resolveFlags{}

	fs.StringVarP(&f.output, "output", "o", "", "directory for rewritten CSS (default <public-path>/css)")
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel workers (0 = auto)")
	fs.BoolVar(&f.noClean, "no-clean", false, "keep existing category folders")
	fs.BoolVar(&f.dryRun, "dry-run", false, "print what would be done without writing")

	addCommonFlags(fs, &f.common)
	addResolverFlags(fs, &f.resolver)

	fs.Usage = func() { printResolveUsage(stderr) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}

// parseCleanFlags parses clean command flags.
func parseCleanFlags(args []string, stderr io.Writer) (*cleanFlags, error) {
	fs := flag.NewFlagSet("clean", flag.ContinueOnError)
	fs.SetOutput(stderr)
	f := &cleanFlags{}

	fs.StringVarP(&f.publicPath, "public-path", "p", "", "output root to clean")
	addCommonFlags(fs, &f.common)

	fs.Usage = func() { printCleanUsage(stderr) }

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		return nil, fmt.Errorf("clean takes no arguments, got %q", fs.Args())
	}
	return f, nil
}

// parseAliasFlag splits "name=path". The name may not be empty; the path is
// everything after the first "=".
func parseAliasFlag(value string) (config.Alias, error) {
	name, path, ok := strings.Cut(value, "=")
	name = strings.TrimSpace(name)
	if !ok || name == "" || path == "" {
		return config.Alias{}, fmt.Errorf("%w: %q (want name=path)", ErrInvalidAliasFlag, value)
	}
	return config.Alias{Name: name, Path: path}, nil
}
