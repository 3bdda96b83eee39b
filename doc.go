// Package policypdf renders the VIVALY policies document from Markdown to PDF
// using headless Chrome.
//
// # Quick Start
//
// Create a converter, convert the file, and close when done:
//
//	conv, err := policypdf.NewConverter()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer conv.Close()
//
//	out, err := conv.ConvertFile(ctx,
//	    "VIVALY-Complete-Policies-Document.md",
//	    "VIVALY-Complete-Policies-Document.pdf")
//
// ConvertFile reads the source, which must be valid UTF-8, and writes the PDF
// to the destination, replacing any existing file. It does not check that the
// source exists beforehand and prints nothing: both belong to the caller.
//
// # Conversion Pipeline
//
//  1. Markdown preprocessing (line endings)
//  2. Markdown to HTML via Goldmark (tables, heading anchors, code highlighting)
//  3. Relative image and link paths rewritten to file:// URLs
//  4. [TOC] markers replaced by the heading outline
//  5. The fixed VIVALY stylesheet injected into <head>
//  6. PDF rendering via headless Chrome (go-rod): A4, 2cm margins, running
//     header and "Page N of M" footer
//
// Convert runs the same pipeline on an in-memory Input and returns both the
// HTML and the PDF bytes. Input.HTMLOnly skips the browser entirely.
//
// # Configuration
//
//	conv, err := policypdf.NewConverter(
//	    policypdf.WithTimeout(2 * time.Minute),
//	    policypdf.WithBrowserBin("/usr/bin/chromium"),
//	    policypdf.WithNoSandbox(true),
//	)
//
// The stylesheet is not configurable.
//
// # Browser
//
// Rod downloads a managed Chromium on first use unless a binary is given via
// WithBrowserBin or ROD_BROWSER_BIN. The sandbox is disabled when CI=true,
// ROD_NO_SANDBOX=1, or a custom binary is used.
//
// # Errors
//
// Failures wrap one of the package's sentinel errors (ErrReadMarkdown,
// ErrDecode, ErrBrowserConnect, ErrPDFGeneration, ErrWritePDF, ...); test
// with errors.Is.
package policypdf
