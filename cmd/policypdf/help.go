package main

import (
	"fmt"
	"io"
)

// printUsage prints the usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: policypdf [input.md] [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Render the VIVALY policies markdown document to a styled A4 PDF.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintf(w, "  input    Markdown file (default %s)\n", DefaultInputFile)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintf(w, "  -o, --output <path>     PDF output path (default %s)\n", DefaultOutputFile)
	fmt.Fprintln(w, "  -c, --config <name>     Config file name or path")
	fmt.Fprintln(w, "  -t, --timeout <dur>     Render timeout, e.g. 90s or 2m (default 60s)")
	fmt.Fprintln(w, "      --html              Also write the intermediate HTML next to the PDF")
	fmt.Fprintln(w, "  -v, --verbose           Print timing and resolved paths")
	fmt.Fprintln(w, "  -q, --quiet             Suppress status output")
	fmt.Fprintln(w, "      --version           Show version information")
	fmt.Fprintln(w, "  -h, --help              Show this help")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment:")
	fmt.Fprintln(w, "  POLICYPDF_CONFIG        Config file name or path")
	fmt.Fprintln(w, "  POLICYPDF_INPUT         Markdown file")
	fmt.Fprintln(w, "  POLICYPDF_OUTPUT        PDF output path")
	fmt.Fprintln(w, "  POLICYPDF_TIMEOUT       Render timeout")
	fmt.Fprintln(w, "  ROD_BROWSER_BIN         Chrome/Chromium binary to use")
	fmt.Fprintln(w, "  ROD_NO_SANDBOX=1        Disable the Chromium sandbox (Docker/CI)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Exit codes:")
	fmt.Fprintln(w, "  0  success")
	fmt.Fprintln(w, "  1  unexpected error")
	fmt.Fprintln(w, "  2  invalid flags or config")
	fmt.Fprintln(w, "  3  input not found, read or write failure")
	fmt.Fprintln(w, "  4  browser or rendering failure")
}

// printVersion prints the version line.
func printVersion(w io.Writer) {
	fmt.Fprintf(w, "policypdf %s\n", Version)
}
