package policypdf

import (
	"context"
	"fmt"
	"html"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"

	"github.com/vivaly/policypdf/internal/fileutil"
	"github.com/vivaly/policypdf/internal/process"
)

// pdfConverter abstracts HTML to PDF conversion to allow different backends.
type pdfConverter interface {
	ToPDF(ctx context.Context, htmlContent string, opts *pdfOptions) ([]byte, error)
	Close() error
}

// pdfRenderer abstracts PDF rendering from an HTML file to enable testing without a browser.
type pdfRenderer interface {
	RenderFromFile(ctx context.Context, filePath string, opts *pdfOptions) ([]byte, error)
	Close() error
}

// Compile-time interface checks
var (
	_ pdfConverter = (*rodConverter)(nil)
	_ pdfRenderer  = (*rodRenderer)(nil)
)

// pdfOptions holds the running header and footer printed in the page margins.
// Empty strings leave the margin blank.
type pdfOptions struct {
	HeaderText  string
	PageNumbers bool
}

// PDF page geometry in inches: A4 with 2cm margins on every side.
const (
	paperWidthInches  = 8.27
	paperHeightInches = 11.69
	marginInches      = 0.7874
)

// runningHeader is printed at the top center of every page.
const runningHeader = "VIVALY Care Platform - Policies & Terms"

// marginBoxStyle matches the stylesheet's body font. Chrome renders header
// and footer templates at font-size 0 unless one is set.
const marginBoxStyle = `font-family: Georgia, 'Times New Roman', serif; font-size: 10pt; color: #666; width: 100%; text-align: center;`

// policyPDFOptions returns the margin content of every policy document.
func policyPDFOptions() *pdfOptions {
	return &pdfOptions{
		HeaderText:  runningHeader,
		PageNumbers: true,
	}
}

// rodRenderer implements pdfRenderer using go-rod.
// Rod automatically downloads Chromium on first run if not found.
type rodRenderer struct {
	browser    *rod.Browser
	launcher   *launcher.Launcher
	timeout    time.Duration
	browserBin string
	noSandbox  bool
}

// newRodRenderer creates a rodRenderer from the converter settings.
func newRodRenderer(cfg converterConfig) *rodRenderer {
	return &rodRenderer{
		timeout:    cfg.timeout,
		browserBin: cfg.browserBin,
		noSandbox:  cfg.noSandbox,
	}
}

// resolvedBin returns the configured browser binary, falling back to ROD_BROWSER_BIN.
func (r *rodRenderer) resolvedBin() string {
	if r.browserBin != "" {
		return r.browserBin
	}
	return os.Getenv("ROD_BROWSER_BIN")
}

// sandboxDisabled reports whether Chromium runs with --no-sandbox: when
// asked to, in CI, with ROD_NO_SANDBOX=1, or with a custom binary.
func (r *rodRenderer) sandboxDisabled() bool {
	return r.noSandbox ||
		os.Getenv("CI") == "true" ||
		os.Getenv("ROD_NO_SANDBOX") == "1" ||
		r.resolvedBin() != ""
}

// newLauncher configures the Chromium launcher.
func (r *rodRenderer) newLauncher() *launcher.Launcher {
	l := launcher.New()
	if bin := r.resolvedBin(); bin != "" {
		l = l.Bin(bin)
	}
	if r.sandboxDisabled() {
		l = l.NoSandbox(true)
	}
	return l
}

// ensureBrowser lazily launches and connects to the browser.
func (r *rodRenderer) ensureBrowser() error {
	if r.browser != nil {
		return nil
	}

	l := r.newLauncher()
	u, err := l.Launch()
	if err != nil {
		l.Kill()
		return fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}
	r.launcher = l

	r.browser = rod.New().ControlURL(u)
	if err := r.browser.Connect(); err != nil {
		r.browser = nil
		r.killLauncher()
		return fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}
	return nil
}

// killLauncher stops the Chromium process tree started by ensureBrowser.
func (r *rodRenderer) killLauncher() {
	if r.launcher == nil {
		return
	}
	pid := r.launcher.PID()
	r.launcher.Kill()
	process.KillGroup(pid)
	r.launcher = nil
}

// Close releases browser resources. Safe to call more than once.
func (r *rodRenderer) Close() error {
	var err error
	if r.browser != nil {
		err = r.browser.Close()
		r.browser = nil
	}
	r.killLauncher()
	return err
}

// RenderFromFile opens a local HTML file in headless Chrome and renders it to PDF.
// Returns explicit errors instead of panicking when browser operations fail.
func (r *rodRenderer) RenderFromFile(ctx context.Context, filePath string, opts *pdfOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if err := r.ensureBrowser(); err != nil {
		return nil, err
	}

	page, err := r.browser.Page(proto.TargetCreateTarget{URL: fileURL(filePath)})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageCreate, err)
	}
	defer page.Close()

	timeout := r.timeout
	if deadline, ok := ctx.Deadline(); ok {
		timeout = time.Until(deadline)
		if timeout <= 0 {
			return nil, context.DeadlineExceeded
		}
	}

	page = page.Context(ctx)
	if err := page.Timeout(timeout).WaitLoad(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageLoad, err)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	reader, err := page.PDF(buildPDFOptions(opts))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPDFGeneration, err)
	}

	pdfBuf, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("%w: reading PDF stream: %v", ErrPDFGeneration, err)
	}

	return pdfBuf, nil
}

// fileURL converts an absolute path to a file:// URL, including Windows drive paths.
func fileURL(path string) string {
	p := filepath.ToSlash(path)
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return (&url.URL{Scheme: "file", Path: p}).String()
}

// buildPDFOptions constructs proto.PagePrintToPDF for A4 with the running header and footer.
func buildPDFOptions(opts *pdfOptions) *proto.PagePrintToPDF {
	pdfOpts := &proto.PagePrintToPDF{
		PaperWidth:      floatPtr(paperWidthInches),
		PaperHeight:     floatPtr(paperHeightInches),
		MarginTop:       floatPtr(marginInches),
		MarginBottom:    floatPtr(marginInches),
		MarginLeft:      floatPtr(marginInches),
		MarginRight:     floatPtr(marginInches),
		PrintBackground: true,
	}

	if opts == nil || (opts.HeaderText == "" && !opts.PageNumbers) {
		return pdfOpts
	}

	pdfOpts.DisplayHeaderFooter = true
	pdfOpts.HeaderTemplate = buildHeaderTemplate(opts.HeaderText)
	pdfOpts.FooterTemplate = buildFooterTemplate(opts.PageNumbers)
	return pdfOpts
}

// buildHeaderTemplate generates the HTML template for Chrome's native header.
func buildHeaderTemplate(text string) string {
	if text == "" {
		return "<span></span>"
	}
	return fmt.Sprintf(`<div style="%s">%s</div>`, marginBoxStyle, html.EscapeString(text))
}

// buildFooterTemplate generates the "Page N of M" footer. Chrome fills the
// pageNumber and totalPages classes at print time.
func buildFooterTemplate(pageNumbers bool) string {
	if !pageNumbers {
		return "<span></span>"
	}
	return fmt.Sprintf(`<div style="%s">Page <span class="pageNumber"></span> of <span class="totalPages"></span></div>`, marginBoxStyle)
}

// floatPtr returns a pointer to a float64 value.
func floatPtr(v float64) *float64 {
	return &v
}

// rodConverter converts HTML to PDF using headless Chrome via go-rod.
type rodConverter struct {
	renderer pdfRenderer
}

// newRodConverter creates a rodConverter with production renderer.
func newRodConverter(cfg converterConfig) *rodConverter {
	return &rodConverter{
		renderer: newRodRenderer(cfg),
	}
}

// ToPDF writes the HTML to a temporary .html file and renders it from there.
func (c *rodConverter) ToPDF(ctx context.Context, htmlContent string, opts *pdfOptions) ([]byte, error) {
	tmpPath, cleanup, err := fileutil.WriteTempFile(htmlContent, "html")
	if err != nil {
		return nil, err
	}
	defer cleanup()

	return c.renderer.RenderFromFile(ctx, tmpPath, opts)
}

// Close releases browser resources.
func (c *rodConverter) Close() error {
	if c.renderer != nil {
		return c.renderer.Close()
	}
	return nil
}
