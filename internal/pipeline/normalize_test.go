package pipeline

// Notes:
// - The panic-recovery branch of Normalize is not exercised directly:
//   goquery and x/net/html accept any byte sequence, so no input reaches it.
//   TestNormalize_MalformedMarkup covers the observable contract instead.

import (
	"strings"
	"testing"
)

const pageSource = "https://a.test/docs/page"

func TestNormalize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		opts         []NormalizerOption
		html         string
		wantContains []string
		wantExcludes []string
	}{
		{
			name: "strips scripts and handlers",
			html: `<html><head><script>alert(1)</script></head><body onload="boot()">` +
				`<noscript>NOSCRIPT</noscript><a href="javascript:void(0)" onclick="go()">link</a></body></html>`,
			wantContains: []string{">link</a>"},
			wantExcludes: []string{"alert(1)", "NOSCRIPT", "onload", "onclick", "javascript:"},
		},
		{
			name: "removes noise by class and id",
			html: `<body><div class="ad">BUYNOW</div><div id="cookie-banner">ACCEPTCOOKIES</div>` +
				`<div class="top sticky-nav">PINNEDNAV</div><div class="advertisement-slot">ADSLOT</div>` +
				`<div class="header">SITETITLE</div><div class="shadow">SHADOW</div><p>BODYTEXT</p></body>`,
			wantContains: []string{"SITETITLE", "SHADOW", "BODYTEXT"},
			wantExcludes: []string{"BUYNOW", "ACCEPTCOOKIES", "PINNEDNAV", "ADSLOT"},
		},
		{
			name:         "protected body survives noise class",
			html:         `<body class="cookie-consent"><p>BODYTEXT</p></body>`,
			wantContains: []string{"BODYTEXT"},
		},
		{
			name: "removes excluded sections",
			opts: []NormalizerOption{WithExcludedSections([]string{"#comments", ".sidebar", "related", "bad id", "#"})},
			html: `<body><section id="comments">COMMENTS</section><aside class="widget sidebar">SIDEBAR</aside>` +
				`<div class="related">RELATEDCLASS</div><div id="related">RELATEDID</div><p>KEEP</p></body>`,
			wantContains: []string{"KEEP"},
			wantExcludes: []string{"COMMENTS", "SIDEBAR", "RELATEDCLASS", "RELATEDID"},
		},
		{
			name: "expands collapsed widgets",
			html: `<body><details><summary>S</summary>HIDDEN</details>` +
				`<button aria-expanded="false">B</button><div class="collapse">C</div></body>`,
			wantContains: []string{`<details open="">`, `aria-expanded="true"`, `class="collapse show"`, ".accordion"},
		},
		{
			name:         "collapse class list stays single spaced",
			html:         `<body><div class=" panel  collapse ">P</div><div class="collapse show">Q</div></body>`,
			wantContains: []string{`class="panel collapse show"`, `<div class="collapse show">Q</div>`},
			wantExcludes: []string{"  show", "show show"},
		},
		{
			name:         "expansion disabled",
			opts:         []NormalizerOption{WithExpandSections(false)},
			html:         `<body><details><summary>S</summary>HIDDEN</details></body>`,
			wantContains: []string{"<details>", "max-height: 1200px"},
			wantExcludes: []string{`open=""`, ".accordion"},
		},
		{
			name:         "caps media",
			html:         `<body><img src="big.png"></body>`,
			wantContains: []string{"max-height: 1200px", "max-width: 100%"},
		},
		{
			name:         "resolves references",
			html:         `<body><img src="img/a.png"><a href="/about">About</a></body>`,
			wantContains: []string{`src="https://a.test/docs/img/a.png"`, `href="https://a.test/about"`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := NewNormalizer(tt.opts...).Normalize(tt.html, pageSource)
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

func TestNormalize_EmptyInput(t *testing.T) {
	t.Parallel()

	if got := NewNormalizer().Normalize("  ", pageSource); got != "  " {
		t.Errorf("Normalize(blank) = %q, want input unchanged", got)
	}
}

func TestNormalize_MalformedMarkup(t *testing.T) {
	t.Parallel()

	got := NewNormalizer().Normalize(`<<div <p>unclosed <b>bold`, pageSource)
	if !strings.Contains(got, "unclosed") {
		t.Errorf("Normalize() lost content of malformed markup: %q", got)
	}
}

func TestNormalize_Deterministic(t *testing.T) {
	t.Parallel()

	const html = `<body><div class="ad">x</div><details>d</details><img src="a.png"></body>`
	n := NewNormalizer()
	if a, b := n.Normalize(html, pageSource), n.Normalize(html, pageSource); a != b {
		t.Errorf("Normalize() not deterministic:\n%s\n%s", a, b)
	}
}

func TestSectionSelector(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{"#main-nav", `[id="main-nav"]`},
		{".promo", `[class~="promo"]`},
		{"footer-links", `[id="footer-links"], [class~="footer-links"]`},
		{"", ""},
		{"#", ""},
		{"a b", ""},
		{`x"]`, ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			if got := sectionSelector(tt.in); got != tt.want {
				t.Errorf("sectionSelector(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
