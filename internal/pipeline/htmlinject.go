package pipeline

import (
	"context"
	"strings"
)

// CSSInjector defines the contract for CSS injection into HTML.
type CSSInjector interface {
	InjectCSS(ctx context.Context, htmlContent, cssContent string) string
}

// CSSInjection injects CSS as a <style> block into HTML content.
type CSSInjection struct{}

// InjectCSS places the stylesheet in a <style> element at the end of the
// document head. Documents without </head> get it right after the opening
// <body> tag; anything else gets it prepended.
func (s *CSSInjection) InjectCSS(ctx context.Context, htmlContent, cssContent string) string {
	if cssContent == "" || ctx.Err() != nil {
		return htmlContent
	}

	block := "<style>\n" + escapeStyleContent(cssContent) + "\n</style>\n"
	pos := styleInsertPos(htmlContent)
	return htmlContent[:pos] + block + htmlContent[pos:]
}

// styleInsertPos returns the byte offset where the style block goes.
func styleInsertPos(doc string) int {
	lower := strings.ToLower(doc)
	if i := strings.Index(lower, "</head>"); i >= 0 {
		return i
	}
	if i := strings.Index(lower, "<body"); i >= 0 {
		if j := strings.IndexByte(doc[i:], '>'); j >= 0 {
			return i + j + 1
		}
	}
	return 0
}

// escapeStyleContent keeps the stylesheet from closing its own <style> element.
func escapeStyleContent(css string) string {
	return strings.ReplaceAll(css, "</", `<\/`)
}
