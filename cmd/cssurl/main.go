package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/automaxprocs/maxprocs"

	"github.com/alnah/go-cssurl/internal/hints"
)

// Version is set at build time via ldflags.
var Version = "dev"

// commands lists the subcommand names recognized as the first argument.
var commands = map[string]bool{
	"resolve": true,
	"clean":   true,
	"doctor":  true,
	"version": true,
	"help":    true,
}

func main() {
	env := DefaultEnv()

	// Error ignored: maxprocs.Set only fails if GOMAXPROCS env is invalid,
	// in which case Go runtime defaults apply and the program continues safely.
	if hasVerboseFlag(os.Args[1:]) {
		_, _ = maxprocs.Set(maxprocs.Logger(func(format string, args ...interface{}) {
			fmt.Fprintf(env.Stderr, format+"\n", args...)
		}))
	} else {
		_, _ = maxprocs.Set(maxprocs.Logger(func(string, ...interface{}) {}))
	}

	os.Exit(runMain(os.Args, env))
}

// runMain dispatches to a command and returns the process exit code.
// args includes the program name, as in os.Args.
func runMain(args []string, env *Environment) int {
	if len(args) < 2 {
		printUsage(env.Stderr)
		return ExitUsage
	}

	ctx, stop := notifyContext(context.Background())
	defer stop()

	cmd, rest := args[1], args[2:]
	switch {
	case cmd == "version", cmd == "--version":
		fmt.Fprintf(env.Stdout, "cssurl %s\n", Version)
		return ExitSuccess
	case cmd == "help", cmd == "-h", cmd == "--help":
		return runHelp(rest, env)
	case cmd == "doctor":
		return runDoctorCmd(rest, env)
	case cmd == "clean":
		return reportError(runClean(rest, env), env)
	case cmd == "resolve":
		return reportError(runResolveCmd(ctx, rest, env), env)
	case strings.HasPrefix(cmd, "-"), looksLikeCSS(cmd):
		// resolve is the default command
		return reportError(runResolveCmd(ctx, args[1:], env), env)
	}

	fmt.Fprintf(env.Stderr, "unknown command: %s\n", cmd)
	printUsage(env.Stderr)
	return ExitUsage
}

// reportError prints err with any hints and maps it to an exit code.
func reportError(err error, env *Environment) int {
	if err == nil {
		return ExitSuccess
	}
	fmt.Fprintf(env.Stderr, "error: %v%s\n", err, hintFor(err))
	return exitCodeFor(err)
}

// isCommand reports whether arg names a subcommand.
func isCommand(arg string) bool {
	return commands[arg]
}

// looksLikeCSS reports whether arg is a CSS file, a directory, or a glob,
// so the resolve command can be omitted.
func looksLikeCSS(arg string) bool {
	if isCommand(arg) {
		return false
	}
	if strings.EqualFold(filepath.Ext(arg), ".css") || strings.ContainsAny(arg, "*?[{") {
		return true
	}
	info, err := os.Stat(arg)
	return err == nil && info.IsDir()
}

// hasVerboseFlag scans raw arguments for -v or --verbose before flags are parsed.
func hasVerboseFlag(args []string) bool {
	for _, a := range args {
		if a == "--" {
			return false
		}
		if a == "-v" || a == "--verbose" {
			return true
		}
	}
	return false
}

// hintFor returns an actionable hint for well-known failures.
func hintFor(err error) string {
	switch {
	case isConfigNotFound(err):
		return hints.ForConfigNotFound(searchedConfigPaths())
	case isPermission(err):
		return hints.ForPermission()
	case isOutputDirError(err):
		return hints.ForOutputDirectory()
	}
	return ""
}
