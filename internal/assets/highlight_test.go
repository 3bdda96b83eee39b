package assets

import (
	"errors"
	"strings"
	"testing"
)

// stubLoader serves a fixed style or error.
type stubLoader struct {
	css string
	err error
}

func (s *stubLoader) LoadStyle(string) (string, error) {
	return s.css, s.err
}

func TestHighlightCSS(t *testing.T) {
	t.Parallel()

	css, err := HighlightCSS(HighlightStyleName)
	if err != nil {
		t.Fatalf("HighlightCSS() error = %v", err)
	}
	if !strings.Contains(css, ".chroma") {
		t.Errorf("highlight CSS should target .chroma classes, got:\n%s", css)
	}
}

func TestHighlightCSS_UnknownStyle(t *testing.T) {
	t.Parallel()

	_, err := HighlightCSS("no-such-chroma-style")
	if !errors.Is(err, ErrHighlightStyle) {
		t.Errorf("error = %v, want %v", err, ErrHighlightStyle)
	}
}

// ---------------------------------------------------------------------------
// TestStylesheet - Base rules plus highlight palette
// ---------------------------------------------------------------------------

func TestStylesheet(t *testing.T) {
	t.Parallel()

	css, err := Stylesheet(NewEmbeddedLoader())
	if err != nil {
		t.Fatalf("Stylesheet() error = %v", err)
	}

	base := strings.Index(css, "size: A4")
	palette := strings.Index(css, ".chroma")
	if base == -1 || palette == -1 {
		t.Fatalf("stylesheet missing base or palette (base=%d, palette=%d)", base, palette)
	}
	if base > palette {
		t.Error("base rules must precede the highlight palette")
	}
}

func TestStylesheet_LoaderError(t *testing.T) {
	t.Parallel()

	_, err := Stylesheet(&stubLoader{err: ErrStyleNotFound})
	if !errors.Is(err, ErrStyleNotFound) {
		t.Errorf("error = %v, want %v", err, ErrStyleNotFound)
	}
}

func TestStylesheet_CustomBase(t *testing.T) {
	t.Parallel()

	css, err := Stylesheet(&stubLoader{css: "body{color:red}"})
	if err != nil {
		t.Fatalf("Stylesheet() error = %v", err)
	}
	if !strings.HasPrefix(css, "body{color:red}") {
		t.Errorf("stylesheet should start with loader content, got %q", css[:20])
	}
}
