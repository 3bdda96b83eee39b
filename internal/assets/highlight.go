package assets

import (
	"fmt"
	"strings"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/styles"
)

// HighlightStyleName is the chroma style whose palette colors code blocks.
// "friendly" is the closest chroma port of the Pygments default used by
// codehilite.
const HighlightStyleName = "friendly"

// HighlightCSS renders the class-based CSS for a chroma style. The class
// names match what the markdown converter emits with chroma's WithClasses.
func HighlightCSS(styleName string) (string, error) {
	style, ok := styles.Registry[styleName]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrHighlightStyle, styleName)
	}

	var buf strings.Builder
	formatter := chromahtml.New(chromahtml.WithClasses(true))
	if err := formatter.WriteCSS(&buf, style); err != nil {
		return "", fmt.Errorf("%w: %v", ErrHighlightStyle, err)
	}
	return buf.String(), nil
}
