package policypdf

import (
	"errors"

	"github.com/vivaly/policypdf/internal/assets"
	"github.com/vivaly/policypdf/internal/pipeline"
)

// Sentinel errors for library operations.
var (
	ErrReadMarkdown   = errors.New("failed to read markdown file")
	ErrDecode         = errors.New("markdown file is not valid UTF-8")
	ErrHTMLConversion = pipeline.ErrHTMLConversion
	ErrBrowserConnect = errors.New("failed to connect to browser")
	ErrPageCreate     = errors.New("failed to create browser page")
	ErrPageLoad       = errors.New("failed to load page")
	ErrPDFGeneration  = errors.New("PDF generation failed")
	ErrWritePDF       = errors.New("failed to write PDF file")
	ErrWriteHTML      = errors.New("failed to write HTML file")

	// Asset loading errors.
	ErrStyleNotFound = assets.ErrStyleNotFound
)
