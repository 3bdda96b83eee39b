package main

import (
	"context"
	"errors"
	"os"

	"github.com/vivaly/policypdf"
	"github.com/vivaly/policypdf/internal/config"
)

// Exit codes for the policypdf CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // PDF written
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags or config
	ExitIO      = 3 // Input not found, read/decode/write failure
	ExitBrowser = 4 // Browser/Chrome errors
)

// exitCodeFor returns the exit code for an error.
// It uses errors.Is, so callers must wrap with fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Browser errors (exit 4)
	if errors.Is(err, policypdf.ErrBrowserConnect) ||
		errors.Is(err, policypdf.ErrPageCreate) ||
		errors.Is(err, policypdf.ErrPageLoad) ||
		errors.Is(err, policypdf.ErrPDFGeneration) ||
		errors.Is(err, context.DeadlineExceeded) {
		return ExitBrowser
	}

	// I/O errors (exit 3)
	if errors.Is(err, ErrInputNotFound) ||
		errors.Is(err, policypdf.ErrReadMarkdown) ||
		errors.Is(err, policypdf.ErrDecode) ||
		errors.Is(err, policypdf.ErrWritePDF) ||
		errors.Is(err, policypdf.ErrWriteHTML) ||
		errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) {
		return ExitIO
	}

	// Usage/config errors (exit 2)
	if errors.Is(err, ErrUsage) ||
		errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrEmptyConfigName) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidTimeout) ||
		errors.Is(err, policypdf.ErrStyleNotFound) {
		return ExitUsage
	}

	return ExitGeneral
}
