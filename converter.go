package policypdf

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/vivaly/policypdf/internal/assets"
	"github.com/vivaly/policypdf/internal/pipeline"
)

// Compile-time interface implementation checks.
var (
	_ pipeline.MarkdownPreprocessor = (*pipeline.PolicyPreprocessor)(nil)
	_ pipeline.HTMLConverter        = (*pipeline.GoldmarkConverter)(nil)
	_ pipeline.TOCInjector          = (*pipeline.TOCInjection)(nil)
	_ pipeline.CSSInjector          = (*pipeline.CSSInjection)(nil)
)

// utf8BOM is dropped from the start of the source if present.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Converter orchestrates the markdown-to-PDF conversion pipeline.
// Create with NewConverter(), use ConvertFile() or Convert(), and Close() when done.
// A Converter is not safe for concurrent use.
type Converter struct {
	cfg           converterConfig
	assetLoader   assets.AssetLoader
	stylesheet    string
	preprocessor  pipeline.MarkdownPreprocessor
	htmlConverter pipeline.HTMLConverter
	tocInjector   pipeline.TOCInjector
	cssInjector   pipeline.CSSInjector
	pdfConverter  pdfConverter
}

// NewConverter creates a Converter with the fixed VIVALY stylesheet.
// The browser is not started until the first PDF is rendered.
// Returns error if the embedded stylesheet cannot be loaded.
func NewConverter(opts ...Option) (*Converter, error) {
	c := &Converter{
		cfg:           converterConfig{timeout: defaultTimeout},
		assetLoader:   assets.NewEmbeddedLoader(),
		preprocessor:  &pipeline.PolicyPreprocessor{},
		htmlConverter: pipeline.NewGoldmarkConverter(),
		tocInjector:   pipeline.NewTOCInjection(),
		cssInjector:   &pipeline.CSSInjection{},
	}

	for _, opt := range opts {
		opt(c)
	}

	css, err := assets.Stylesheet(c.assetLoader)
	if err != nil {
		return nil, fmt.Errorf("loading stylesheet: %w", err)
	}
	c.stylesheet = css

	// Tests inject a mock before this point.
	if c.pdfConverter == nil {
		c.pdfConverter = newRodConverter(c.cfg)
	}

	return c, nil
}

// ConvertFile renders the markdown file at src to a PDF at dst and returns dst.
// An existing file at dst is replaced. The caller is expected to have
// checked that src exists; a missing file surfaces as ErrReadMarkdown
// wrapping os.ErrNotExist.
func (c *Converter) ConvertFile(ctx context.Context, src, dst string) (string, error) {
	data, err := os.ReadFile(src) // #nosec G304 -- user-provided path
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrReadMarkdown, err)
	}
	if !utf8.Valid(data) {
		return "", fmt.Errorf("%w: %s", ErrDecode, src)
	}
	data = bytes.TrimPrefix(data, utf8BOM)

	result, err := c.Convert(ctx, Input{
		Markdown:  string(data),
		SourceDir: filepath.Dir(src),
	})
	if err != nil {
		return "", err
	}

	if c.cfg.keepHTML {
		htmlPath := htmlPathFor(dst)
		if err := os.WriteFile(htmlPath, result.HTML, 0o644); err != nil { // #nosec G306 -- shareable document
			return "", fmt.Errorf("%w: %w", ErrWriteHTML, err)
		}
	}

	if err := os.WriteFile(dst, result.PDF, 0o644); err != nil { // #nosec G306 -- shareable document
		return "", fmt.Errorf("%w: %w", ErrWritePDF, err)
	}

	return dst, nil
}

// htmlPathFor swaps the extension of the PDF path for .html.
func htmlPathFor(pdfPath string) string {
	return strings.TrimSuffix(pdfPath, filepath.Ext(pdfPath)) + ".html"
}

// Convert runs the full pipeline and returns the result containing HTML and PDF.
// The context is used for cancellation and timeout.
// If input.HTMLOnly is true, PDF generation is skipped.
// Recovers from internal panics to prevent crashes from propagating to callers.
func (c *Converter) Convert(ctx context.Context, input Input) (result *ConvertResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("internal error: %v", r)
		}
	}()

	mdContent := c.preprocessor.PreprocessMarkdown(ctx, input.Markdown)
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	htmlContent, err := c.htmlConverter.ToHTML(ctx, mdContent)
	if err != nil {
		return nil, fmt.Errorf("converting to HTML: %w", err)
	}

	if input.SourceDir != "" {
		htmlContent, err = pipeline.RewriteRelativePaths(htmlContent, input.SourceDir)
		if err != nil {
			return nil, fmt.Errorf("rewriting relative paths: %w", err)
		}
	}

	htmlContent, err = c.tocInjector.InjectTOC(ctx, htmlContent)
	if err != nil {
		return nil, fmt.Errorf("injecting TOC: %w", err)
	}

	htmlContent = c.cssInjector.InjectCSS(ctx, htmlContent, c.stylesheet)
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	res := &ConvertResult{
		HTML: []byte(htmlContent),
	}

	if input.HTMLOnly {
		return res, nil
	}

	pdfBytes, err := c.pdfConverter.ToPDF(ctx, htmlContent, policyPDFOptions())
	if err != nil {
		return nil, fmt.Errorf("converting to PDF: %w", err)
	}

	res.PDF = pdfBytes
	return res, nil
}

// Close releases resources (headless Chrome browser). Safe to call twice.
func (c *Converter) Close() error {
	if c.pdfConverter != nil {
		return c.pdfConverter.Close()
	}
	return nil
}
