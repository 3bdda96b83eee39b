package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/vivaly/policypdf"
	"github.com/vivaly/policypdf/internal/config"
	"github.com/vivaly/policypdf/internal/fileutil"
	"github.com/vivaly/policypdf/internal/hints"
)

// Sentinel errors for CLI operations.
var (
	ErrUsage         = errors.New("invalid usage")
	ErrInputNotFound = errors.New("input file not found")
)

// Built-in paths, relative to the working directory.
const (
	DefaultInputFile  = "VIVALY-Complete-Policies-Document.md"
	DefaultOutputFile = "VIVALY-Complete-Policies-Document.pdf"
)

// Converter is the part of policypdf.Converter the CLI needs.
type Converter interface {
	ConvertFile(ctx context.Context, src, dst string) (string, error)
	Close() error
}

// Compile-time interface implementation check.
var _ Converter = (*policypdf.Converter)(nil)

// converterFactory builds a Converter; tests swap in a mock.
type converterFactory func(opts ...policypdf.Option) (Converter, error)

// newConverter is the production converterFactory.
func newConverter(opts ...policypdf.Option) (Converter, error) {
	c, err := policypdf.NewConverter(opts...)
	if err != nil {
		return nil, err
	}
	return c, nil
}

// converterSettings are the resolved library options.
type converterSettings struct {
	timeout    time.Duration // 0 = library default
	browserBin string
	noSandbox  bool
	keepHTML   bool
}

// options converts the settings to policypdf options.
func (s converterSettings) options() []policypdf.Option {
	var opts []policypdf.Option
	if s.timeout > 0 {
		opts = append(opts, policypdf.WithTimeout(s.timeout))
	}
	if s.browserBin != "" {
		opts = append(opts, policypdf.WithBrowserBin(s.browserBin))
	}
	if s.noSandbox {
		opts = append(opts, policypdf.WithNoSandbox(true))
	}
	if s.keepHTML {
		opts = append(opts, policypdf.WithKeepHTML(true))
	}
	return opts
}

// run executes the CLI and returns the process exit code.
func run(args []string, env *Environment, factory converterFactory) int {
	flags, positional, err := parseFlags(args)
	if err != nil {
		fmt.Fprintf(env.Stderr, "Error: %v\n", err)
		fmt.Fprintln(env.Stderr, "Run 'policypdf --help' for usage.")
		return exitCodeFor(err)
	}

	if flags.help {
		printUsage(env.Stdout)
		return ExitSuccess
	}
	if flags.version {
		printVersion(env.Stdout)
		return ExitSuccess
	}

	ctx, stop := notifyContext(context.Background())
	defer stop()

	err = runConvert(ctx, positional, flags, factory, env)
	if err != nil && !errors.Is(err, ErrInputNotFound) {
		fmt.Fprintf(env.Stderr, "Error: %v%s\n", err, hintFor(err))
	}
	return exitCodeFor(err)
}

// runConvert resolves paths and settings, converts, and prints the status lines.
func runConvert(ctx context.Context, positional []string, flags *cliFlags, factory converterFactory, env *Environment) error {
	warnUnknownEnvVars(env.Stderr)
	envCfg := loadEnvConfig()

	configName := flags.config
	if configName == "" {
		configName = envCfg.ConfigPath
	}

	cfg := config.DefaultConfig()
	if configName != "" {
		var err error
		cfg, err = config.LoadConfig(configName)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
	}
	if err := applyEnvConfig(envCfg, cfg); err != nil {
		return fmt.Errorf("applying environment: %w", err)
	}

	inputPath := resolveInputPath(positional, cfg)
	outputPath := resolveOutputPath(flags.output, cfg)

	settings, err := resolveSettings(flags, cfg)
	if err != nil {
		return err
	}

	if flags.verbose {
		fmt.Fprintf(env.Stderr, "Input:  %s\n", inputPath)
		fmt.Fprintf(env.Stderr, "Output: %s\n", outputPath)
	}

	// The diagnostic goes to stdout, and nothing is written.
	if !fileutil.FileExists(inputPath) {
		fmt.Fprintf(env.Stdout, "Error: %s not found\n", inputPath)
		return fmt.Errorf("%w: %s", ErrInputNotFound, inputPath)
	}

	conv, err := factory(settings.options()...)
	if err != nil {
		return fmt.Errorf("creating converter: %w", err)
	}
	defer func() { _ = conv.Close() }()

	start := env.Now()
	written, err := conv.ConvertFile(ctx, inputPath, outputPath)
	if err != nil {
		return err
	}

	info, err := os.Stat(written)
	if err != nil {
		return fmt.Errorf("reading output size: %w", err)
	}

	if flags.verbose {
		fmt.Fprintf(env.Stderr, "Converted in %v\n", env.Now().Sub(start).Round(time.Millisecond))
	}

	if !flags.quiet {
		printSuccess(env, written, info.Size())
	}
	return nil
}

// printSuccess prints the two status lines of a successful run.
func printSuccess(env *Environment, path string, size int64) {
	fmt.Fprintf(env.Stdout, "PDF successfully created: %s\n", path)
	fmt.Fprintf(env.Stdout, "File size: %.1f KB\n", fileutil.Kilobytes(size))
}

// resolveInputPath applies positional argument > config > default.
func resolveInputPath(positional []string, cfg *config.Config) string {
	if len(positional) > 0 {
		return positional[0]
	}
	if cfg.Input != "" {
		return cfg.Input
	}
	return DefaultInputFile
}

// resolveOutputPath applies flag > config > default.
func resolveOutputPath(flagOutput string, cfg *config.Config) string {
	if flagOutput != "" {
		return flagOutput
	}
	if cfg.Output != "" {
		return cfg.Output
	}
	return DefaultOutputFile
}

// resolveSettings merges flags over config into converter settings.
func resolveSettings(flags *cliFlags, cfg *config.Config) (converterSettings, error) {
	timeout, err := resolveTimeout(flags.timeout, cfg)
	if err != nil {
		return converterSettings{}, err
	}
	return converterSettings{
		timeout:    timeout,
		browserBin: cfg.Browser.Bin,
		noSandbox:  cfg.Browser.NoSandbox,
		keepHTML:   flags.html,
	}, nil
}

// resolveTimeout applies flag > config. Zero means the library default.
func resolveTimeout(flagTimeout string, cfg *config.Config) (time.Duration, error) {
	if flagTimeout == "" {
		return cfg.TimeoutDuration()
	}
	d, err := time.ParseDuration(flagTimeout)
	if err != nil {
		return 0, fmt.Errorf("%w: %q: %v", config.ErrInvalidTimeout, flagTimeout, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%w: %q must be positive", config.ErrInvalidTimeout, flagTimeout)
	}
	return d, nil
}

// hintFor returns an actionable hint for known failures, or "".
func hintFor(err error) string {
	switch {
	case errors.Is(err, policypdf.ErrBrowserConnect):
		return hints.ForBrowserConnect()
	case errors.Is(err, policypdf.ErrPageLoad), errors.Is(err, context.DeadlineExceeded):
		return hints.ForTimeout()
	case errors.Is(err, policypdf.ErrDecode):
		return hints.ForDecode()
	case errors.Is(err, policypdf.ErrWritePDF), errors.Is(err, policypdf.ErrWriteHTML):
		return hints.ForOutputDirectory()
	case errors.Is(err, config.ErrConfigNotFound):
		return hints.ForConfigNotFound(triedPaths(err))
	}
	return ""
}

// triedPaths extracts the searched locations from a config-not-found error.
func triedPaths(err error) []string {
	_, list, ok := strings.Cut(err.Error(), "tried ")
	if !ok {
		return nil
	}
	return strings.Split(list, ", ")
}
