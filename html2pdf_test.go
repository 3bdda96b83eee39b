package policypdf

import (
	"context"
	"errors"
	"os"
	"strings"
	"testing"
)

// mockRenderer implements pdfRenderer for testing.
type mockRenderer struct {
	Result      []byte
	Err         error
	CalledWith  string
	CalledOpts  *pdfOptions
	FileContent string
	Closed      int
}

func (m *mockRenderer) RenderFromFile(ctx context.Context, filePath string, opts *pdfOptions) ([]byte, error) {
	m.CalledWith = filePath
	m.CalledOpts = opts
	if data, err := os.ReadFile(filePath); err == nil {
		m.FileContent = string(data)
	}
	return m.Result, m.Err
}

func (m *mockRenderer) Close() error {
	m.Closed++
	return nil
}

func TestRodConverter_ToPDF(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mock    *mockRenderer
		wantErr error
	}{
		{
			name: "renders from temp file",
			mock: &mockRenderer{Result: []byte("%PDF-1.4 test")},
		},
		{
			name:    "browser connect error propagates",
			mock:    &mockRenderer{Err: ErrBrowserConnect},
			wantErr: ErrBrowserConnect,
		},
		{
			name:    "page load error propagates",
			mock:    &mockRenderer{Err: ErrPageLoad},
			wantErr: ErrPageLoad,
		},
		{
			name:    "generation error propagates",
			mock:    &mockRenderer{Err: ErrPDFGeneration},
			wantErr: ErrPDFGeneration,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			conv := &rodConverter{renderer: tt.mock}
			html := "<html><body><h1>Policies</h1></body></html>"
			opts := policyPDFOptions()

			result, err := conv.ToPDF(context.Background(), html, opts)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("ToPDF() error = %v, want %v", err, tt.wantErr)
			}
			if tt.wantErr == nil && string(result) != string(tt.mock.Result) {
				t.Errorf("ToPDF() = %q, want %q", result, tt.mock.Result)
			}

			if !strings.Contains(tt.mock.CalledWith, "policypdf-") || !strings.HasSuffix(tt.mock.CalledWith, ".html") {
				t.Errorf("renderer called with %q, want a policypdf-*.html temp file", tt.mock.CalledWith)
			}
			if tt.mock.FileContent != html {
				t.Errorf("temp file content = %q, want %q", tt.mock.FileContent, html)
			}
			if tt.mock.CalledOpts != opts {
				t.Error("options should be passed through unchanged")
			}
			if _, err := os.Stat(tt.mock.CalledWith); !os.IsNotExist(err) {
				t.Errorf("temp file %s should be removed after rendering", tt.mock.CalledWith)
			}
		})
	}
}

func TestRodConverter_Close(t *testing.T) {
	t.Parallel()

	mock := &mockRenderer{}
	conv := &rodConverter{renderer: mock}

	if err := conv.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if mock.Closed != 1 {
		t.Errorf("renderer closed %d times, want 1", mock.Closed)
	}

	if err := (&rodConverter{}).Close(); err != nil {
		t.Errorf("Close() on empty converter = %v, want nil", err)
	}
}

func TestNewRodConverter(t *testing.T) {
	t.Parallel()

	cfg := converterConfig{timeout: defaultTimeout, browserBin: "/opt/chrome", noSandbox: true}
	conv := newRodConverter(cfg)

	r, ok := conv.renderer.(*rodRenderer)
	if !ok {
		t.Fatalf("renderer = %T, want *rodRenderer", conv.renderer)
	}
	if r.timeout != defaultTimeout {
		t.Errorf("timeout = %v, want %v", r.timeout, defaultTimeout)
	}
	if r.browserBin != "/opt/chrome" {
		t.Errorf("browserBin = %q, want %q", r.browserBin, "/opt/chrome")
	}
	if !r.noSandbox {
		t.Error("noSandbox = false, want true")
	}
}

func TestRodRenderer_CloseWithoutBrowser(t *testing.T) {
	t.Parallel()

	r := newRodRenderer(converterConfig{timeout: defaultTimeout})
	if err := r.Close(); err != nil {
		t.Errorf("first Close() = %v", err)
	}
	if err := r.Close(); err != nil {
		t.Errorf("second Close() = %v", err)
	}
}

func TestRodRenderer_RenderFromFile_CancelledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r := newRodRenderer(converterConfig{timeout: defaultTimeout})
	_, err := r.RenderFromFile(ctx, "/tmp/none.html", nil)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("RenderFromFile() error = %v, want %v", err, context.Canceled)
	}
	if r.browser != nil {
		t.Error("browser should not be launched for a cancelled context")
	}
}

// Uses t.Setenv, so no t.Parallel.
func TestRodRenderer_BrowserSettings(t *testing.T) {
	tests := []struct {
		name          string
		bin           string
		noSandbox     bool
		env           map[string]string
		wantBin       string
		wantNoSandbox bool
	}{
		{
			name: "defaults",
		},
		{
			name:          "configured bin wins over env",
			bin:           "/opt/chrome",
			env:           map[string]string{"ROD_BROWSER_BIN": "/usr/bin/chromium"},
			wantBin:       "/opt/chrome",
			wantNoSandbox: true,
		},
		{
			name:          "env bin",
			env:           map[string]string{"ROD_BROWSER_BIN": "/usr/bin/chromium"},
			wantBin:       "/usr/bin/chromium",
			wantNoSandbox: true,
		},
		{
			name:          "CI disables sandbox",
			env:           map[string]string{"CI": "true"},
			wantNoSandbox: true,
		},
		{
			name:          "ROD_NO_SANDBOX disables sandbox",
			env:           map[string]string{"ROD_NO_SANDBOX": "1"},
			wantNoSandbox: true,
		},
		{
			name:          "option disables sandbox",
			noSandbox:     true,
			wantNoSandbox: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, key := range []string{"ROD_BROWSER_BIN", "CI", "ROD_NO_SANDBOX"} {
				t.Setenv(key, tt.env[key])
			}

			r := newRodRenderer(converterConfig{timeout: defaultTimeout, browserBin: tt.bin, noSandbox: tt.noSandbox})
			if got := r.resolvedBin(); got != tt.wantBin {
				t.Errorf("resolvedBin() = %q, want %q", got, tt.wantBin)
			}
			if got := r.sandboxDisabled(); got != tt.wantNoSandbox {
				t.Errorf("sandboxDisabled() = %v, want %v", got, tt.wantNoSandbox)
			}
		})
	}
}

func TestBuildPDFOptions(t *testing.T) {
	t.Parallel()

	t.Run("A4 with 2cm margins", func(t *testing.T) {
		t.Parallel()

		pdfOpts := buildPDFOptions(policyPDFOptions())

		if *pdfOpts.PaperWidth != 8.27 || *pdfOpts.PaperHeight != 11.69 {
			t.Errorf("paper = %vx%v, want 8.27x11.69", *pdfOpts.PaperWidth, *pdfOpts.PaperHeight)
		}
		for name, m := range map[string]*float64{
			"top":    pdfOpts.MarginTop,
			"bottom": pdfOpts.MarginBottom,
			"left":   pdfOpts.MarginLeft,
			"right":  pdfOpts.MarginRight,
		} {
			if *m != marginInches {
				t.Errorf("margin %s = %v, want %v", name, *m, marginInches)
			}
		}
		if !pdfOpts.PrintBackground {
			t.Error("PrintBackground = false, want true")
		}
		if !pdfOpts.DisplayHeaderFooter {
			t.Error("DisplayHeaderFooter = false, want true")
		}
		if !strings.Contains(pdfOpts.HeaderTemplate, "VIVALY Care Platform - Policies &amp; Terms") {
			t.Errorf("HeaderTemplate = %q", pdfOpts.HeaderTemplate)
		}
		if !strings.Contains(pdfOpts.FooterTemplate, `Page <span class="pageNumber"></span> of <span class="totalPages"></span>`) {
			t.Errorf("FooterTemplate = %q", pdfOpts.FooterTemplate)
		}
	})

	t.Run("nil opts has no header or footer", func(t *testing.T) {
		t.Parallel()

		pdfOpts := buildPDFOptions(nil)
		if pdfOpts.DisplayHeaderFooter {
			t.Error("DisplayHeaderFooter = true, want false")
		}
		if *pdfOpts.MarginBottom != marginInches {
			t.Errorf("margin = %v, want %v", *pdfOpts.MarginBottom, marginInches)
		}
	})

	t.Run("empty opts has no header or footer", func(t *testing.T) {
		t.Parallel()

		if buildPDFOptions(&pdfOptions{}).DisplayHeaderFooter {
			t.Error("DisplayHeaderFooter = true, want false")
		}
	})
}

func TestMarginInchesIsTwoCentimeters(t *testing.T) {
	t.Parallel()

	const cm = 2.0 / 2.54
	if diff := marginInches - cm; diff > 0.0001 || diff < -0.0001 {
		t.Errorf("marginInches = %v, want %v (2cm)", marginInches, cm)
	}
}

func TestBuildHeaderTemplate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		text     string
		wantPart string
		wantNot  string
	}{
		{"empty", "", "<span></span>", "<div"},
		{"escapes ampersand", "Policies & Terms", "Policies &amp; Terms", "& Terms"},
		{"escapes markup", "<script>x</script>", "&lt;script&gt;", "<script>"},
		{"sets font size", "x", "font-size: 10pt", ""},
		{"centered grey", "x", "color: #666", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := buildHeaderTemplate(tt.text)
			if !strings.Contains(got, tt.wantPart) {
				t.Errorf("buildHeaderTemplate(%q) = %q, want it to contain %q", tt.text, got, tt.wantPart)
			}
			if tt.wantNot != "" && strings.Contains(got, tt.wantNot) {
				t.Errorf("buildHeaderTemplate(%q) = %q, should not contain %q", tt.text, got, tt.wantNot)
			}
		})
	}
}

func TestBuildFooterTemplate(t *testing.T) {
	t.Parallel()

	if got := buildFooterTemplate(false); got != "<span></span>" {
		t.Errorf("buildFooterTemplate(false) = %q, want empty span", got)
	}

	got := buildFooterTemplate(true)
	for _, want := range []string{`class="pageNumber"`, `class="totalPages"`, "Page ", " of ", "text-align: center"} {
		if !strings.Contains(got, want) {
			t.Errorf("buildFooterTemplate(true) = %q, missing %q", got, want)
		}
	}
}

func TestFileURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path string
		want string
	}{
		{"/tmp/policypdf-1.html", "file:///tmp/policypdf-1.html"},
		{"/tmp/with space.html", "file:///tmp/with%20space.html"},
	}

	for _, tt := range tests {
		if got := fileURL(tt.path); got != tt.want {
			t.Errorf("fileURL(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}
