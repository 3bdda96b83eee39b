package main

import (
	"fmt"
	"io"

	flag "github.com/spf13/pflag"
)

// cliFlags holds the parsed command line.
type cliFlags struct {
	output  string
	config  string
	timeout string
	verbose bool
	quiet   bool
	html    bool
	version bool
	help    bool
}

// parseFlags parses args (without the program name) and returns the flags
// and the remaining positional arguments.
func parseFlags(args []string) (*cliFlags, []string, error) {
	f := &cliFlags{}
	fs := flag.NewFlagSet("policypdf", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVarP(&f.output, "output", "o", "", "PDF output path")
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.StringVarP(&f.timeout, "timeout", "t", "", "render timeout (e.g. 90s, 2m)")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "print timing and resolved paths")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "suppress status output")
	fs.BoolVar(&f.html, "html", false, "also write the intermediate HTML next to the PDF")
	fs.BoolVar(&f.version, "version", false, "print version and exit")
	fs.BoolVarP(&f.help, "help", "h", false, "show help")

	if err := fs.Parse(args); err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrUsage, err)
	}

	if f.quiet && f.verbose {
		return nil, nil, fmt.Errorf("%w: --quiet and --verbose are mutually exclusive", ErrUsage)
	}

	positional := fs.Args()
	if len(positional) > 1 {
		return nil, nil, fmt.Errorf("%w: expected at most one input file, got %d", ErrUsage, len(positional))
	}

	return f, positional, nil
}
