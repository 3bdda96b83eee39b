package policypdf

import "time"

// Input contains the conversion parameters.
type Input struct {
	Markdown  string // Markdown document; may be empty
	SourceDir string // Directory for resolving relative image and link paths
	HTMLOnly  bool   // Skip PDF rendering and return only the HTML
}

// ConvertResult contains the output of a conversion.
// PDF is nil when Input.HTMLOnly was set.
type ConvertResult struct {
	HTML []byte
	PDF  []byte
}

// Option configures a Converter.
type Option func(*Converter)

// converterConfig holds internal configuration for Converter.
type converterConfig struct {
	timeout    time.Duration
	browserBin string
	noSandbox  bool
	keepHTML   bool
}

// defaultTimeout is used when no timeout is specified.
// A full policy document with a table of contents renders in a few seconds;
// the first run also downloads Chromium.
const defaultTimeout = 60 * time.Second

// WithTimeout sets the page load timeout.
// Panics if d <= 0 (programmer error, similar to time.NewTicker).
func WithTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("policypdf: WithTimeout duration must be positive")
	}
	return func(c *Converter) {
		c.cfg.timeout = d
	}
}

// WithBrowserBin uses an installed Chrome or Chromium instead of the
// managed download. Takes precedence over ROD_BROWSER_BIN.
func WithBrowserBin(path string) Option {
	return func(c *Converter) {
		c.cfg.browserBin = path
	}
}

// WithNoSandbox disables the Chromium sandbox, which most containers require.
func WithNoSandbox(noSandbox bool) Option {
	return func(c *Converter) {
		c.cfg.noSandbox = noSandbox
	}
}

// WithKeepHTML makes ConvertFile also write the rendered HTML next to the
// PDF, with the same base name and an .html extension.
func WithKeepHTML(keep bool) Option {
	return func(c *Converter) {
		c.cfg.keepHTML = keep
	}
}
