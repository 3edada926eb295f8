package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: cssurl <command> [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  resolve    Copy url() assets and rewrite CSS (default)")
	fmt.Fprintln(w, "  clean      Remove category folders under the public path")
	fmt.Fprintln(w, "  doctor     Check configuration and paths")
	fmt.Fprintln(w, "  version    Show version information")
	fmt.Fprintln(w, "  help       Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'cssurl help <command>' for details on a specific command.")
}

// printResolveUsage prints usage for the resolve command.
func printResolveUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: cssurl resolve <input>... [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Copy the files referenced by url() into content-addressed folders")
	fmt.Fprintln(w, "under the public path and rewrite the references.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  input    CSS file, directory, or glob (e.g. 'src/**/*.css')")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Input/Output:")
	fmt.Fprintln(w, "  -o, --output <dir>        Directory for rewritten CSS (default <public-path>/css)")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path (default ./cssurl.yaml)")
	fmt.Fprintln(w, "  -w, --workers <n>         Parallel workers (0 = auto)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Resolution:")
	fmt.Fprintln(w, "  -p, --public-path <dir>   Output root for assets (default \"/\")")
	fmt.Fprintln(w, "  -a, --alias <name=path>   Path alias, repeatable (e.g. @assets=./static)")
	fmt.Fprintln(w, "  -I, --include <dir>       Search directory, repeatable, in order")
	fmt.Fprintln(w, "      --alias-match <s>     Overlapping aliases: longest, first")
	fmt.Fprintln(w, "      --hash <s>            Content hash: xxhash, blake3")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Build:")
	fmt.Fprintln(w, "      --no-clean            Keep existing category folders")
	fmt.Fprintln(w, "      --dry-run             Show what would be written")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors and warnings")
	fmt.Fprintln(w, "  -v, --verbose             Show each resolved asset and timings")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment:")
	fmt.Fprintln(w, "  CSSURL_CONFIG, CSSURL_PUBLIC_PATH, CSSURL_OUTPUT_DIR,")
	fmt.Fprintln(w, "  CSSURL_INCLUDE_PATHS, CSSURL_HASH, CSSURL_WORKERS")
}

// printCleanUsage prints usage for the clean command.
func printCleanUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: cssurl clean [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Remove the img, audio, video, and fonts folders under the public path.")
	fmt.Fprintln(w, "Files directly under the public path are kept.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  -p, --public-path <dir>   Output root to clean")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
}

// printDoctorUsage prints usage for the doctor command.
func printDoctorUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: cssurl doctor [--json] [-c config]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Check the config file, public path, aliases, and include paths.")
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) int {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return ExitSuccess
	}

	switch args[0] {
	case "resolve":
		printResolveUsage(env.Stdout)
	case "clean":
		printCleanUsage(env.Stdout)
	case "doctor":
		printDoctorUsage(env.Stdout)
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: cssurl version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: cssurl help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		fmt.Fprintf(env.Stderr, "unknown command: %s\n", args[0])
		printUsage(env.Stderr)
		return ExitUsage
	}
	return ExitSuccess
}
