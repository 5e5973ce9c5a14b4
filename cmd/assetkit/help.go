package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: assetkit <command> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  build       Build plugin assets into the destination")
	fmt.Fprintln(w, "  list        List plugin assets and where they resolve from")
	fmt.Fprintln(w, "  watch       Build, then rebuild on source changes")
	fmt.Fprintln(w, "  doctor      Check the Sass toolchain and environment")
	fmt.Fprintln(w, "  completion  Generate a shell completion script")
	fmt.Fprintln(w, "  version     Show version information")
	fmt.Fprintln(w, "  help        Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'assetkit help <command>' for details on a specific command.")
}

func printCommonFlags(w io.Writer) {
	fmt.Fprintln(w, "Site:")
	fmt.Fprintln(w, "  -c, --config <path>         Config file (default <source>/_config.yml)")
	fmt.Fprintln(w, "  -s, --source <dir>          Site source directory (default .)")
}

func printSiteFlags(w io.Writer) {
	fmt.Fprintln(w, "  -d, --destination <dir>     Output directory (default <source>/_site)")
	fmt.Fprintln(w, "      --baseurl <url>         URL prefix for generated links")
	fmt.Fprintln(w, "  -e, --env <name>            Environment exposed to templates")
	fmt.Fprintln(w, "      --highlight-style <s>   Emit stylesheets/highlight.css in a Chroma style")
}

func printOutputFlags(w io.Writer) {
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "  -q, --quiet                 Only show errors")
	fmt.Fprintln(w, "  -v, --verbose               Log every asset")
}

func printBuildOnlyFlags(w io.Writer) {
	fmt.Fprintln(w, "Build:")
	fmt.Fprintln(w, "  -w, --workers <n>           Plugins built in parallel (0 = auto, max 32)")
	fmt.Fprintln(w, "  -t, --timeout <d>           Per-stylesheet compile timeout (e.g. 30s)")
	fmt.Fprintln(w, "      --stats                 Print a build summary")
	fmt.Fprintln(w, "      --metrics <path>        Write Prometheus metrics to a text file")
}

// printBuildUsage prints usage for the build command.
func printBuildUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: assetkit build [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Resolve, render, and compile the assets of every configured plugin,")
	fmt.Fprintln(w, "then write them under the destination directory.")
	fmt.Fprintln(w)
	printCommonFlags(w)
	printSiteFlags(w)
	fmt.Fprintln(w)
	printBuildOnlyFlags(w)
	fmt.Fprintln(w)
	printOutputFlags(w)
}

// printWatchUsage prints usage for the watch command.
func printWatchUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: assetkit watch [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Build once, then rebuild whenever the site source or a plugin")
	fmt.Fprintln(w, "asset tree changes. Stop with Ctrl+C.")
	fmt.Fprintln(w)
	printCommonFlags(w)
	printSiteFlags(w)
	fmt.Fprintln(w)
	printBuildOnlyFlags(w)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Watch:")
	fmt.Fprintln(w, "      --debounce <d>          Quiet period before rebuilding (default 300ms)")
	fmt.Fprintln(w, "      --metrics-addr <addr>   Serve /metrics on this address (e.g. :9090)")
	fmt.Fprintln(w)
	printOutputFlags(w)
}

// printListUsage prints usage for the list command.
func printListUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: assetkit list [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "List every plugin asset with its destination URL or override source.")
	fmt.Fprintln(w, "Nothing is compiled or written.")
	fmt.Fprintln(w)
	printCommonFlags(w)
	fmt.Fprintln(w)
	printOutputFlags(w)
}

// printDoctorUsage prints usage for the doctor command.
func printDoctorUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: assetkit doctor [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Check that Dart Sass is installed and the environment can build.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "      --json                  Output results as JSON")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Exit codes:")
	fmt.Fprintln(w, "  0  All checks passed (warnings allowed)")
	fmt.Fprintln(w, "  1  At least one check failed")
}

// printCompletionUsage prints usage for the completion command.
func printCompletionUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: assetkit completion <shell>")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Generate a completion script for bash, zsh, or fish.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Examples:")
	fmt.Fprintln(w, "  assetkit completion bash > /etc/bash_completion.d/assetkit")
	fmt.Fprintln(w, "  assetkit completion zsh > \"${fpath[1]}/_assetkit\"")
	fmt.Fprintln(w, "  assetkit completion fish > ~/.config/fish/completions/assetkit.fish")
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return
	}

	switch args[0] {
	case "build":
		printBuildUsage(env.Stdout)
	case "watch":
		printWatchUsage(env.Stdout)
	case "list":
		printListUsage(env.Stdout)
	case "doctor":
		printDoctorUsage(env.Stdout)
	case "completion":
		printCompletionUsage(env.Stdout)
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: assetkit version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: assetkit help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", args[0])
		printUsage(env.Stderr)
	}
}
