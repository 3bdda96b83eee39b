package pipeline

import (
	"context"
	"html"
	"regexp"
	"strconv"
	"strings"
)

// tocMarkerPattern matches a paragraph that holds nothing but [TOC].
var tocMarkerPattern = regexp.MustCompile(`(?i)<p>\s*\[TOC\]\s*</p>`)

// headingPattern matches h1-h6 tags with id attribute.
var headingPattern = regexp.MustCompile(`(?is)<h([1-6])[^>]*\bid="([^"]*)"[^>]*>(.*?)</h[1-6]>`)

// htmlTagPattern matches HTML tags for stripping from heading text.
var htmlTagPattern = regexp.MustCompile(`<[^>]*>`)

// headingInfo is one table of contents entry.
type headingInfo struct {
	Level int
	ID    string
	Text  string
}

// TOCInjector defines the contract for table of contents injection.
type TOCInjector interface {
	InjectTOC(ctx context.Context, htmlContent string) (string, error)
}

// TOCInjection replaces [TOC] markers with a nested list of heading links.
type TOCInjection struct{}

// NewTOCInjection creates a new TOC injector.
func NewTOCInjection() *TOCInjection {
	return &TOCInjection{}
}

// InjectTOC replaces every [TOC] paragraph with the document outline.
// Documents without a marker are returned unchanged.
func (t *TOCInjection) InjectTOC(ctx context.Context, htmlContent string) (string, error) {
	if ctx.Err() != nil {
		return "", ctx.Err()
	}

	if !tocMarkerPattern.MatchString(htmlContent) {
		return htmlContent, nil
	}

	tocHTML := generateTOC(extractHeadings(htmlContent))
	return tocMarkerPattern.ReplaceAllLiteralString(htmlContent, tocHTML), nil
}

// stripHTMLTags removes tags and decodes entities so the text can be re-escaped once.
func stripHTMLTags(s string) string {
	s = htmlTagPattern.ReplaceAllString(s, "")
	return strings.TrimSpace(html.UnescapeString(s))
}

// extractHeadings returns every heading that carries an id, in document order.
func extractHeadings(htmlContent string) []headingInfo {
	matches := headingPattern.FindAllStringSubmatch(htmlContent, -1)

	headings := make([]headingInfo, 0, len(matches))
	for _, m := range matches {
		level, _ := strconv.Atoi(m[1])
		headings = append(headings, headingInfo{
			Level: level,
			ID:    html.UnescapeString(m[2]),
			Text:  stripHTMLTags(m[3]),
		})
	}
	return headings
}

// generateTOC renders headings as nested <ul> lists inside <div class="toc">.
// A deeper heading opens a list inside the previous item; a shallower one
// closes lists until it finds one at its level or reaches the outermost.
// After a skipped level (h1, h3, h2) the shallower heading stays beside the
// deeper one, under their common parent.
func generateTOC(headings []headingInfo) string {
	var buf strings.Builder
	buf.WriteString("<div class=\"toc\">\n")

	if len(headings) == 0 {
		buf.WriteString("<ul></ul>\n</div>\n")
		return buf.String()
	}

	var open []int // levels of the open <ul> elements
	for _, h := range headings {
		switch {
		case len(open) == 0:
			buf.WriteString("<ul>\n")
			open = append(open, h.Level)
		case h.Level > open[len(open)-1]:
			buf.WriteString("\n<ul>\n")
			open = append(open, h.Level)
		default:
			buf.WriteString("</li>\n")
			for len(open) > 1 && h.Level < open[len(open)-1] {
				// Between the parent and the current list: join the current
				// list, which now holds this level.
				if open[len(open)-2] < h.Level {
					open[len(open)-1] = h.Level
					break
				}
				buf.WriteString("</ul>\n</li>\n")
				open = open[:len(open)-1]
			}
		}

		buf.WriteString(`<li><a href="#`)
		buf.WriteString(html.EscapeString(h.ID))
		buf.WriteString(`">`)
		buf.WriteString(html.EscapeString(h.Text))
		buf.WriteString(`</a>`)
	}

	buf.WriteString("</li>\n")
	for len(open) > 0 {
		buf.WriteString("</ul>\n")
		open = open[:len(open)-1]
		if len(open) > 0 {
			buf.WriteString("</li>\n")
		}
	}

	buf.WriteString("</div>\n")
	return buf.String()
}
