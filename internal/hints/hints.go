// Package hints appends actionable advice to CLI error messages.
// Every hint renders as "\n  hint: <text>".
package hints

import (
	"os"
	"strings"

	"github.com/vivaly/policypdf/internal/fileutil"
)

// IsInContainer reports whether the process runs inside Docker.
// A variable so tests can override it.
var IsInContainer = func() bool {
	return fileutil.FileExists("/.dockerenv")
}

// ForBrowserConnect suggests the environment variables that usually fix a
// Chromium launch failure.
func ForBrowserConnect() string {
	var hints []string

	inCI := os.Getenv("CI") != "" ||
		os.Getenv("GITHUB_ACTIONS") != "" ||
		os.Getenv("GITLAB_CI") != "" ||
		os.Getenv("JENKINS_URL") != ""

	if (inCI || IsInContainer()) && os.Getenv("ROD_NO_SANDBOX") != "1" {
		hints = append(hints, "set ROD_NO_SANDBOX=1 for Docker/CI")
	}

	if os.Getenv("ROD_BROWSER_BIN") == "" {
		hints = append(hints, "set ROD_BROWSER_BIN or browser.bin to use an installed Chrome")
	}

	return formatHints(hints)
}

// ForTimeout suggests raising the render timeout.
func ForTimeout() string {
	return format("long policy documents may need --timeout 2m")
}

// ForConfigNotFound suggests --config and, when one of the searched paths is
// the user config directory, creating the file there.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/policypdf.yaml"

	for _, p := range searchedPaths {
		if strings.Contains(filepathSlash(p), "/policypdf/") {
			hint += " or create " + p
			break
		}
	}

	return format(hint)
}

// ForOutputDirectory is shown when the PDF cannot be written.
func ForOutputDirectory() string {
	return format("check the output directory exists and is writable")
}

// ForDecode is shown when the markdown source is not valid UTF-8.
func ForDecode() string {
	return format("save the markdown file as UTF-8")
}

func filepathSlash(p string) string {
	return strings.ReplaceAll(p, `\`, "/")
}

func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}

func formatHints(hints []string) string {
	if len(hints) == 0 {
		return ""
	}
	return format(strings.Join(hints, "; "))
}
