package pipeline

import (
	"net/url"
	"regexp"
	"strings"
	"unicode/utf8"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/PuerkitoBio/goquery"
)

// DefaultDigestLength is the rune budget for Digest.
const DefaultDigestLength = 1200

var blankLines = regexp.MustCompile(`\n{3,}`)

// Fragment is a normalized page split for embedding in a combined document.
type Fragment struct {
	Title string
	Head  string // <style> and stylesheet <link> elements
	Body  string // inner HTML of <body>
}

// Extract splits normalized markup into its title, styles and body.
// Malformed markup yields an empty Fragment.
func Extract(markup string) Fragment {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return Fragment{}
	}

	var head strings.Builder
	doc.Find(`style, link[rel~="stylesheet"]`).Each(func(_ int, s *goquery.Selection) {
		if h, err := goquery.OuterHtml(s); err == nil {
			head.WriteString(h)
		}
	})

	body := doc.Find("body").First()
	body.Find(`style, link[rel~="stylesheet"]`).Remove()
	inner, err := body.Html()
	if err != nil {
		inner = ""
	}

	return Fragment{
		Title: titleOf(doc),
		Head:  head.String(),
		Body:  strings.TrimSpace(inner),
	}
}

// Title returns the page title, falling back to the first <h1>.
func Title(markup string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return ""
	}
	return titleOf(doc)
}

func titleOf(doc *goquery.Document) string {
	if t := collapseSpace(doc.Find("title").First().Text()); t != "" {
		return t
	}
	return collapseSpace(doc.Find("h1").First().Text())
}

// Digest converts the main content of markup to Markdown and truncates it
// to maxRunes (DefaultDigestLength when maxRunes <= 0). Navigation, forms
// and media are dropped first.
func Digest(markup, sourceAddress string, maxRunes int) string {
	if maxRunes <= 0 {
		maxRunes = DefaultDigestLength
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return ""
	}

	content := doc.Find(`main, [role="main"], article`).First()
	if content.Length() == 0 {
		content = doc.Find("body")
	}
	content.Find("script, style, noscript, nav, header, footer, aside, form, iframe, svg, img, video, button, input").Remove()

	body, err := content.Html()
	if err != nil {
		return ""
	}

	conv := md.NewConverter(hostOf(sourceAddress), true, nil)
	out, err := conv.ConvertString(body)
	if err != nil {
		return ""
	}

	out = strings.TrimSpace(blankLines.ReplaceAllString(out, "\n\n"))
	return truncateRunes(out, maxRunes)
}

func truncateRunes(s string, maxRunes int) string {
	if utf8.RuneCountInString(s) <= maxRunes {
		return s
	}
	runes := []rune(s)
	cut := strings.TrimSpace(string(runes[:maxRunes]))
	return cut + " …"
}

func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// hostOf returns scheme://host for resolving links in the digest.
func hostOf(address string) string {
	u, err := url.Parse(address)
	if err != nil || u.Host == "" {
		return ""
	}
	return u.Scheme + "://" + u.Host
}
