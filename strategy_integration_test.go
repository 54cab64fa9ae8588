//go:build integration

package web2pdf

// Notes:
// - Real Chromium: skipped when no browser can be located
// - Full and minimal strategies against an httptest source
// - The whole pipeline with default strategies

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/go-rod/rod/lib/launcher"

	"github.com/alnah/go-web2pdf/internal/pdfgen"
)

// testTimeout is the standard timeout for integration test operations.
const testTimeout = 90 * time.Second

func integrationConfig(t *testing.T) Config {
	t.Helper()

	cfg := DefaultConfig()
	cfg.BrowserBin = os.Getenv("ROD_BROWSER_BIN")
	if cfg.BrowserBin == "" {
		path, found := launcher.LookPath()
		if !found {
			t.Skip("Chromium not found; set ROD_BROWSER_BIN")
		}
		cfg.BrowserBin = path
	}
	cfg.NoSandbox = os.Getenv("ROD_NO_SANDBOX") == "1" || os.Getenv("CI") != ""
	return cfg
}

func integrationDoc(t *testing.T) *Document {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(`<html><head><title>Source</title></head><body>
<details><summary>More</summary><p>Hidden text</p></details>
<div class="ad">buy now</div><p>Visible text</p></body></html>`))
	}))
	t.Cleanup(srv.Close)

	cfg := DefaultConfig()
	raw, err := NewHTTPFetcher(cfg, srv.Client()).Fetch(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}

	return &Document{
		JobID:       "it",
		Title:       "Integration",
		GeneratedAt: time.Now(),
		Pages: []Page{
			{Address: srv.URL, OK: true, Title: "Source", Markup: raw},
			{Address: "https://unreachable.test/", Err: "source fetch failed: no such host"},
		},
	}
}

func assertValidPDF(t *testing.T, data []byte) {
	t.Helper()

	if !pdfgen.HasSignature(data) {
		t.Fatalf("data does not have PDF magic bytes, got prefix: %q", data[:min(10, len(data))])
	}
	if _, err := pdfgen.PageCount(data); err != nil {
		t.Errorf("PageCount() error = %v", err)
	}
}

func TestFullStrategy_Render_Integration(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithTimeout(context.Background(), testTimeout)
	defer cancel()

	limiter := NewEngineLimiter(1)
	data, err := NewFullStrategy(integrationConfig(t), limiter).Render(ctx, integrationDoc(t))
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	assertValidPDF(t, data)

	if limiter.Active() != 0 {
		t.Errorf("engine slot still held after Render")
	}
}

func TestMinimalStrategy_Render_Integration(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithTimeout(context.Background(), testTimeout)
	defer cancel()

	data, err := NewMinimalStrategy(integrationConfig(t), nil).Render(ctx, integrationDoc(t))
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	assertValidPDF(t, data)
}

func TestRenderer_DefaultStrategies_Integration(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(`<html><head><title>Hello</title></head><body><h1>Hello</h1></body></html>`))
	}))
	t.Cleanup(srv.Close)

	r, err := NewRenderer(integrationConfig(t))
	if err != nil {
		t.Fatalf("NewRenderer() error = %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), testTimeout)
	defer cancel()

	res, err := r.RenderJob(ctx, &Job{ID: "it", Name: "Integration", URLs: []string{srv.URL}})
	if err != nil {
		t.Fatalf("RenderJob() error = %v", err)
	}
	assertValidPDF(t, res.Data)
	if res.Strategy != StrategyFull {
		t.Errorf("Strategy = %q, want %q (attempts: %+v)", res.Strategy, StrategyFull, res.Attempts)
	}
}
