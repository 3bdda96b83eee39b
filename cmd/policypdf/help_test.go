package main

import (
	"bytes"
	"strings"
	"testing"
)

func TestPrintUsage(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	printUsage(&buf)
	out := buf.String()

	for _, want := range []string{
		"Usage: policypdf",
		DefaultInputFile,
		DefaultOutputFile,
		"--output",
		"--config",
		"--timeout",
		"--html",
		"--quiet",
		"--verbose",
		"--version",
		"ROD_NO_SANDBOX",
		"POLICYPDF_CONFIG",
		"Exit codes:",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("usage missing %q", want)
		}
	}
}

func TestPrintVersion(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	printVersion(&buf)

	if got, want := buf.String(), "policypdf "+Version+"\n"; got != want {
		t.Errorf("printVersion() = %q, want %q", got, want)
	}
}
