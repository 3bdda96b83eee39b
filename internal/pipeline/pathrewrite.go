package pipeline

import (
	"net/url"
	"path/filepath"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// RewriteRelativePaths converts relative image and link paths to absolute file:// URLs.
// The document is rendered from a temporary file, so relative references
// must be anchored to the markdown's own directory.
// If sourceDir is empty, returns the HTML unchanged.
//
// Rewritten: img[src] and a[href]. Left alone: anything with a URL scheme
// (http, mailto, tel, data, file), protocol-relative URLs, in-page anchors,
// absolute paths and paths that resolve outside sourceDir.
func RewriteRelativePaths(htmlContent, sourceDir string) (string, error) {
	if sourceDir == "" {
		return htmlContent, nil
	}

	absSourceDir, err := filepath.Abs(sourceDir)
	if err != nil {
		return "", err
	}

	doc, isFragment, err := parseHTML(htmlContent)
	if err != nil {
		return "", err
	}

	if !rewriteNode(doc, absSourceDir) {
		return htmlContent, nil
	}

	return renderHTML(doc, isFragment)
}

// parseHTML parses a full document, or a fragment in <body> context.
func parseHTML(content string) (*html.Node, bool, error) {
	lower := strings.ToLower(strings.TrimSpace(content))
	if strings.HasPrefix(lower, "<!doctype") || strings.HasPrefix(lower, "<html") {
		doc, err := html.Parse(strings.NewReader(content))
		return doc, false, err
	}

	body := &html.Node{Type: html.ElementNode, DataAtom: atom.Body, Data: "body"}
	nodes, err := html.ParseFragment(strings.NewReader(content), body)
	if err != nil {
		return nil, true, err
	}

	container := &html.Node{Type: html.DocumentNode}
	for _, n := range nodes {
		container.AppendChild(n)
	}
	return container, true, nil
}

// renderHTML renders the tree back to a string. Fragments render their
// children only, so no <html><body> wrapper is added.
func renderHTML(doc *html.Node, isFragment bool) (string, error) {
	var buf strings.Builder

	if !isFragment {
		if err := html.Render(&buf, doc); err != nil {
			return "", err
		}
		return buf.String(), nil
	}

	for c := doc.FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(&buf, c); err != nil {
			return "", err
		}
	}
	return buf.String(), nil
}

// rewriteNode walks the tree and reports whether any attribute changed.
func rewriteNode(n *html.Node, sourceDir string) bool {
	changed := false
	if n.Type == html.ElementNode {
		switch n.DataAtom {
		case atom.Img:
			changed = rewriteAttr(n, "src", sourceDir)
		case atom.A:
			changed = rewriteAttr(n, "href", sourceDir)
		}
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if rewriteNode(c, sourceDir) {
			changed = true
		}
	}
	return changed
}

// rewriteAttr rewrites attrName in place when it holds a relative path under sourceDir.
func rewriteAttr(n *html.Node, attrName, sourceDir string) bool {
	for i, attr := range n.Attr {
		if attr.Key != attrName {
			continue
		}

		ref, ok := relativeRef(attr.Val)
		if !ok {
			return false
		}

		absPath := filepath.Join(sourceDir, filepath.FromSlash(ref.Path))
		if !isPathUnderDir(absPath, sourceDir) {
			return false
		}

		u := url.URL{
			Scheme:   "file",
			Path:     filepath.ToSlash(absPath),
			RawQuery: ref.RawQuery,
			Fragment: ref.Fragment,
		}
		if !strings.HasPrefix(u.Path, "/") {
			u.Path = "/" + u.Path // C:/docs -> /C:/docs
		}
		n.Attr[i].Val = u.String()
		return true
	}
	return false
}

// relativeRef parses val and returns it when it is a relative file reference.
func relativeRef(val string) (*url.URL, bool) {
	if val == "" || strings.HasPrefix(val, "#") || strings.HasPrefix(val, "//") {
		return nil, false
	}
	if filepath.IsAbs(val) || strings.HasPrefix(val, "/") {
		return nil, false
	}

	ref, err := url.Parse(val)
	if err != nil || ref.Scheme != "" || ref.Host != "" || ref.Path == "" {
		return nil, false
	}
	return ref, true
}

// isPathUnderDir checks if absPath is dir itself or below it.
func isPathUnderDir(absPath, dir string) bool {
	rel, err := filepath.Rel(filepath.Clean(dir), filepath.Clean(absPath))
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
