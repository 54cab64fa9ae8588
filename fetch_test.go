package web2pdf

// Notes:
// - HTTPFetcher: status, content type, charset decoding, size cap, timeout
// - Every failure wraps ErrFetch

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestHTTPFetcher_Fetch(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/html":
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			_, _ = w.Write([]byte("<html><body>hello</body></html>"))
		case "/latin1":
			w.Header().Set("Content-Type", "text/html; charset=iso-8859-1")
			_, _ = w.Write([]byte("<p>caf\xe9</p>"))
		case "/untyped":
			w.Header()["Content-Type"] = nil
			_, _ = w.Write([]byte("<p>bare</p>"))
		case "/image":
			w.Header().Set("Content-Type", "image/png")
			_, _ = w.Write([]byte("\x89PNG"))
		case "/error":
			http.Error(w, "boom", http.StatusInternalServerError)
		case "/ua":
			w.Header().Set("Content-Type", "text/plain")
			_, _ = w.Write([]byte(r.UserAgent()))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)

	cfg := DefaultConfig()
	cfg.UserAgent = "web2pdf-test/1.0"
	f := NewHTTPFetcher(cfg, srv.Client())

	tests := []struct {
		name     string
		path     string
		want     string
		wantErr  bool
		errMatch string
	}{
		{name: "html", path: "/html", want: "hello"},
		{name: "latin1 decoded to utf-8", path: "/latin1", want: "café"},
		{name: "missing content type accepted", path: "/untyped", want: "bare"},
		{name: "user agent sent", path: "/ua", want: "web2pdf-test/1.0"},
		{name: "non-markup rejected", path: "/image", wantErr: true, errMatch: "image/png"},
		{name: "server error", path: "/error", wantErr: true, errMatch: "HTTP 500"},
		{name: "not found", path: "/nope", wantErr: true, errMatch: "HTTP 404"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := f.Fetch(context.Background(), srv.URL+tt.path)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Fetch() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				if !errors.Is(err, ErrFetch) {
					t.Errorf("error = %v, want ErrFetch", err)
				}
				if !strings.Contains(err.Error(), tt.errMatch) {
					t.Errorf("error = %q, want it to contain %q", err, tt.errMatch)
				}
				return
			}
			if !strings.Contains(got, tt.want) {
				t.Errorf("Fetch() = %q, want it to contain %q", got, tt.want)
			}
		})
	}
}

func TestHTTPFetcher_Fetch_SizeCap(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(strings.Repeat("a", 4096)))
	}))
	t.Cleanup(srv.Close)

	cfg := DefaultConfig()
	cfg.MaxPageBytes = 100
	got, err := NewHTTPFetcher(cfg, srv.Client()).Fetch(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if len(got) != 100 {
		t.Errorf("len(Fetch()) = %d, want 100", len(got))
	}
}

func TestHTTPFetcher_Fetch_Timeout(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	t.Cleanup(srv.Close)

	cfg := DefaultConfig()
	cfg.FetchTimeout = 50 * time.Millisecond
	f := NewHTTPFetcher(cfg, srv.Client())

	start := time.Now()
	_, err := f.Fetch(context.Background(), srv.URL)
	if !errors.Is(err, ErrFetch) {
		t.Fatalf("Fetch() error = %v, want ErrFetch", err)
	}
	if !strings.Contains(err.Error(), "timed out") {
		t.Errorf("error = %q, want a timeout description", err)
	}
	if elapsed := time.Since(start); elapsed > 5*time.Second {
		t.Errorf("Fetch() took %v, timeout not applied", elapsed)
	}
}

func TestHTTPFetcher_Fetch_BadAddress(t *testing.T) {
	t.Parallel()

	f := NewHTTPFetcher(DefaultConfig(), nil)

	_, err := f.Fetch(context.Background(), "http://[::1")
	if !errors.Is(err, ErrFetch) {
		t.Errorf("Fetch() error = %v, want ErrFetch", err)
	}
}

func TestIsMarkup(t *testing.T) {
	t.Parallel()

	tests := []struct {
		contentType string
		want        bool
	}{
		{"", true},
		{"text/html", true},
		{"TEXT/HTML; charset=UTF-8", true},
		{"application/xhtml+xml", true},
		{"text/plain; charset=utf-8", true},
		{"application/pdf", false},
		{"image/jpeg", false},
		{"text/html; charset", false},
	}

	for _, tt := range tests {
		t.Run(tt.contentType, func(t *testing.T) {
			t.Parallel()

			if got := isMarkup(tt.contentType); got != tt.want {
				t.Errorf("isMarkup(%q) = %v, want %v", tt.contentType, got, tt.want)
			}
		})
	}
}
