package pipeline

// Notes:
// - Reference resolution runs inside Normalize, so tests go through it.

import (
	"strings"
	"testing"
)

// ---------------------------------------------------------------------------
// TestNormalize_References - Reference resolution against the source address
// ---------------------------------------------------------------------------

func TestNormalize_References(t *testing.T) {
	t.Parallel()

	const source = "https://a.test/docs/page"

	tests := []struct {
		name         string
		html         string
		source       string
		wantContains []string
		wantExcludes []string
	}{
		{
			name:         "relative image",
			html:         `<img src="img/logo.png">`,
			source:       source,
			wantContains: []string{`src="https://a.test/docs/img/logo.png"`},
		},
		{
			name:         "root-relative link",
			html:         `<a href="/about">About</a>`,
			source:       source,
			wantContains: []string{`href="https://a.test/about"`},
		},
		{
			name:         "parent directory",
			html:         `<a href="../up">Up</a>`,
			source:       source,
			wantContains: []string{`href="https://a.test/up"`},
		},
		{
			name:         "protocol-relative uses source scheme",
			html:         `<img src="//cdn.test/x.png">`,
			source:       source,
			wantContains: []string{`src="https://cdn.test/x.png"`},
		},
		{
			name:         "fragment unchanged",
			html:         `<a href="#top">Top</a>`,
			source:       source,
			wantContains: []string{`href="#top"`},
		},
		{
			name:         "absolute URL unchanged",
			html:         `<a href="https://other.test/x">x</a>`,
			source:       source,
			wantContains: []string{`href="https://other.test/x"`},
		},
		{
			name:         "mailto unchanged",
			html:         `<a href="mailto:team@a.test">mail</a>`,
			source:       source,
			wantContains: []string{`href="mailto:team@a.test"`},
		},
		{
			name:         "srcset candidates",
			html:         `<img srcset="img/a.png 1x, img/b.png 2x">`,
			source:       source,
			wantContains: []string{`srcset="https://a.test/docs/img/a.png 1x, https://a.test/docs/img/b.png 2x"`},
		},
		{
			name:         "video poster",
			html:         `<video poster="still.jpg"></video>`,
			source:       source,
			wantContains: []string{`poster="https://a.test/docs/still.jpg"`},
		},
		{
			name:         "lazy image promoted",
			html:         `<img data-src="lazy.png">`,
			source:       source,
			wantContains: []string{`src="https://a.test/docs/lazy.png"`},
		},
		{
			name:         "lazy image with real src kept",
			html:         `<img src="real.png" data-src="lazy.png">`,
			source:       source,
			wantContains: []string{`src="https://a.test/docs/real.png"`},
			wantExcludes: []string{`src="https://a.test/docs/lazy.png"`},
		},
		{
			name:         "absolute base element honoured and removed",
			html:         `<!DOCTYPE html><html><head><base href="https://b.test/root/"></head><body><img src="x.png"></body></html>`,
			source:       source,
			wantContains: []string{`src="https://b.test/root/x.png"`},
			wantExcludes: []string{"<base"},
		},
		{
			name:         "relative base resolved against source",
			html:         `<html><head><base href="/sub/"></head><body><img src="x.png"></body></html>`,
			source:       source,
			wantContains: []string{`src="https://a.test/sub/x.png"`},
		},
		{
			name:         "relative source leaves markup alone",
			html:         `<img src="img/logo.png">`,
			source:       "",
			wantContains: []string{`src="img/logo.png"`},
		},
		{
			name:         "unparsable source leaves markup alone",
			html:         `<a href="/about">About</a>`,
			source:       "http://[::1",
			wantContains: []string{`href="/about"`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := NewNormalizer().Normalize(tt.html, tt.source)
			for _, want := range tt.wantContains {
				if !strings.Contains(got, want) {
					t.Errorf("result missing %q\ngot: %s", want, got)
				}
			}
			for _, exclude := range tt.wantExcludes {
				if strings.Contains(got, exclude) {
					t.Errorf("result should not contain %q\ngot: %s", exclude, got)
				}
			}
		})
	}
}
