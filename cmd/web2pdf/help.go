package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: web2pdf <command> [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  render     Render web pages into one PDF")
	fmt.Fprintln(w, "  doctor     Check browser, config and system readiness")
	fmt.Fprintln(w, "  version    Show version information")
	fmt.Fprintln(w, "  help       Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'web2pdf help <command>' for details on a specific command.")
}

// printRenderUsage prints usage for the render command.
func printRenderUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: web2pdf render [flags] <url>...")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Render the given pages, in order, into one PDF with a cover page.")
	fmt.Fprintln(w, "Pages that cannot be loaded appear as \"Error loading page\" sections.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  url      http(s) address (optional if --job lists addresses)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Input/Output:")
	fmt.Fprintln(w, "  -o, --output <path>       Output file or directory (default: <name>.pdf)")
	fmt.Fprintln(w, "  -j, --job <path>          Job file (YAML)")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "      --id <s>              Job id (default: random)")
	fmt.Fprintln(w, "  -n, --name <s>            Document name (title and filename)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Page:")
	fmt.Fprintln(w, "  -p, --page-size <s>       Page size: a4, letter, legal, ...")
	fmt.Fprintln(w, "      --landscape           Landscape orientation")
	fmt.Fprintln(w, "      --no-expand           Leave collapsed sections collapsed")
	fmt.Fprintln(w, "      --exclude <sel>       CSS selector to remove (repeatable)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Engine:")
	fmt.Fprintln(w, "  -s, --strategies <list>   Strategy order: full,minimal,remote,static")
	fmt.Fprintln(w, "  -t, --timeout <d>         Per-strategy render timeout (e.g. 90s)")
	fmt.Fprintln(w, "  -w, --max-engines <n>     Concurrent browser engines (0 = auto)")
	fmt.Fprintln(w, "      --log-format <s>      Log format: console, json")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show strategy attempts and source errors")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment:")
	fmt.Fprintln(w, "  WEB2PDF_CONFIG, WEB2PDF_REMOTE_RENDER_TOKEN, WEB2PDF_REMOTE_RENDER_URL,")
	fmt.Fprintln(w, "  WEB2PDF_RENDER_TIMEOUT, WEB2PDF_NAVIGATION_TIMEOUT, WEB2PDF_FETCH_TIMEOUT,")
	fmt.Fprintln(w, "  WEB2PDF_MAX_ENGINES, WEB2PDF_STRATEGIES, WEB2PDF_LOG_LEVEL, WEB2PDF_LOG_FORMAT,")
	fmt.Fprintln(w, "  ROD_BROWSER_BIN, ROD_NO_SANDBOX")
}

// printDoctorUsage prints usage for the doctor command.
func printDoctorUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: web2pdf doctor [--json] [-c <config>]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Check Chrome/Chromium, configuration, remote token and temp directory.")
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return
	}

	switch args[0] {
	case "render":
		printRenderUsage(env.Stdout)
	case "doctor":
		printDoctorUsage(env.Stdout)
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: web2pdf version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: web2pdf help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", args[0])
		printUsage(env.Stderr)
	}
}
