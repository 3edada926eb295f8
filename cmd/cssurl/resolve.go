package main

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	flag "github.com/spf13/pflag"

	cssurl "github.com/alnah/go-cssurl"
	"github.com/alnah/go-cssurl/internal/config"
	"github.com/alnah/go-cssurl/internal/hints"
)

// runResolveCmd parses flags and runs the resolve command.
func runResolveCmd(ctx context.Context, args []string, env *Environment) error {
	flags, inputs, err := parseResolveFlags(args, env.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUsage, err)
	}
	return runResolve(ctx, inputs, flags, env)
}

// runResolve orchestrates one build: load settings, clean the output once,
// resolve every document concurrently, then report.
func runResolve(ctx context.Context, inputs []string, flags *resolveFlags, env *Environment) error {
	start := env.Now()

	if err := validateWorkers(flags.workers); err != nil {
		return err
	}

	envCfg := loadEnvConfig()
	if !flags.common.quiet {
		warnUnknownEnvVars(env.Stderr)
	}

	cfg, err := loadSettings(flags.common, envCfg)
	if err != nil {
		return err
	}
	if err := mergeResolverFlags(flags.resolver, cfg); err != nil {
		return err
	}

	resolver, err := newResolver(cfg, flags.dryRun)
	if err != nil {
		return err
	}

	outputDir := resolveOutputDir(flags.output, cfg, resolver.OutputRoot())
	files, err := discoverFiles(inputs, outputDir)
	if err != nil {
		return err
	}

	// Cleaning is skipped at the filesystem root; CleanOutput refuses it.
	rootHint := hints.ForPublicPathRoot(resolver.OutputRoot())
	if rootHint != "" && !flags.common.quiet {
		fmt.Fprintf(env.Stderr, "warning: assets are copied under %s, output is not cleaned%s\n", resolver.OutputRoot(), rootHint)
	}

	if cfg.ShouldClean() && !flags.noClean && !flags.dryRun && rootHint == "" {
		if err := cssurl.CleanOutput(resolver.OutputRoot()); err != nil {
			return err
		}
	}

	workers := resolveWorkers(flags.workers, envCfg.Workers, len(files))
	if flags.common.verbose {
		fmt.Fprintf(env.Stderr, "Workers: %d, output root: %s\n", workers, resolver.OutputRoot())
	}

	results := resolveBatch(ctx, resolver, files, workers, flags.dryRun)
	summary := printResults(results, flags.common.quiet, flags.common.verbose, flags.dryRun, env)

	if summary.Unresolved > 0 && !flags.common.quiet {
		fmt.Fprintf(env.Stderr, "warning: unresolved references%s\n",
			hints.ForUnresolved(summary.Unresolved, len(cfg.IncludePaths) > 0))
	}
	if flags.common.verbose {
		fmt.Fprintf(env.Stderr, "Done in %v\n", env.Now().Sub(start).Round(time.Millisecond))
	}

	if err := ctx.Err(); err != nil {
		return err
	}
	if summary.Failed > 0 {
		return fmt.Errorf("%w: %d of %d", ErrBatchFailed, summary.Failed, len(results))
	}
	return nil
}

// resolveOutputDir picks where rewritten CSS goes: the --output flag, then
// output.dir from config or CSSURL_OUTPUT_DIR, then <public path>/css.
func resolveOutputDir(flagOutput string, cfg *config.Config, outputRoot string) string {
	if flagOutput != "" {
		return flagOutput
	}
	if cfg.Output.Dir != "" {
		return cfg.Output.Dir
	}
	return filepath.Join(outputRoot, "css")
}

// runClean removes the category folders under the public path.
func runClean(args []string, env *Environment) error {
	flags, err := parseCleanFlags(args, env.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUsage, err)
	}

	cfg, err := loadSettings(flags.common, loadEnvConfig())
	if err != nil {
		return err
	}
	if err := mergeResolverFlags(resolverFlags{publicPath: flags.publicPath}, cfg); err != nil {
		return err
	}

	resolver, err := newResolver(cfg, false)
	if err != nil {
		return err
	}

	if err := cssurl.CleanOutput(resolver.OutputRoot()); err != nil {
		return err
	}
	if !flags.common.quiet {
		fmt.Fprintf(env.Stdout, "Cleaned %s\n", resolver.OutputRoot())
	}
	return nil
}
