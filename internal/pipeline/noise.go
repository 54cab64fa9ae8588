package pipeline

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// noiseToken matches class or id tokens of advertising and pinned overlays.
var noiseToken = regexp.MustCompile(`^(ad|ads|advert[\w-]*|advertisement|banner-ad|sponsor[\w-]*|cookie[\w-]*|popup|modal-backdrop|newsletter|sticky-[\w-]+|fixed-[\w-]+)$`)

// protectedElements are never removed by heuristics.
var protectedElements = map[string]bool{
	"html":    true,
	"head":    true,
	"body":    true,
	"main":    true,
	"article": true,
}

// urlAttrs may carry javascript: URLs.
var urlAttrs = []string{"href", "src", "action", "formaction", "xlink:href"}

// StripScripts removes script and noscript elements, inline on* handlers
// and javascript: URLs.
func StripScripts(sel *goquery.Selection) {
	sel.Find("script, noscript").Remove()

	sel.Find("*").Each(func(_ int, s *goquery.Selection) {
		node := s.Get(0)
		kept := node.Attr[:0]
		for _, a := range node.Attr {
			if strings.HasPrefix(strings.ToLower(a.Key), "on") {
				continue
			}
			if isJavaScriptURL(a.Key, a.Val) {
				continue
			}
			kept = append(kept, a)
		}
		node.Attr = kept
	})
}

func isJavaScriptURL(key, val string) bool {
	for _, k := range urlAttrs {
		if strings.EqualFold(key, k) {
			v := strings.ToLower(strings.TrimSpace(val))
			return strings.HasPrefix(v, "javascript:")
		}
	}
	return false
}

// StripNoise removes elements whose class or id looks like advertising,
// cookie banners, popups or pinned headers. Returns the number removed.
func StripNoise(sel *goquery.Selection) int {
	removed := 0
	sel.Find("[class], [id]").Each(func(_ int, s *goquery.Selection) {
		if protectedElements[goquery.NodeName(s)] || !isNoise(s) {
			return
		}
		s.Remove()
		removed++
	})
	return removed
}

func isNoise(s *goquery.Selection) bool {
	if id, ok := s.Attr("id"); ok && noiseToken.MatchString(strings.ToLower(strings.TrimSpace(id))) {
		return true
	}
	class, _ := s.Attr("class")
	for _, token := range strings.Fields(strings.ToLower(class)) {
		if noiseToken.MatchString(token) {
			return true
		}
	}
	return false
}

// RemoveSections removes caller-excluded sections. Each identifier is
// "#id", ".class", or a bare name matching either an id or a class.
// Identifiers containing quotes, backslashes or whitespace are ignored.
func RemoveSections(sel *goquery.Selection, identifiers []string) int {
	removed := 0
	for _, ident := range identifiers {
		selector := sectionSelector(ident)
		if selector == "" {
			continue
		}
		matches := sel.Find(selector).FilterFunction(func(_ int, s *goquery.Selection) bool {
			return !protectedElements[goquery.NodeName(s)]
		})
		removed += matches.Length()
		matches.Remove()
	}
	return removed
}

func sectionSelector(ident string) string {
	ident = strings.TrimSpace(ident)
	if ident == "" || strings.ContainsAny(ident, "\"\\ \t\n") {
		return ""
	}
	switch {
	case strings.HasPrefix(ident, "#"):
		if name := ident[1:]; name != "" {
			return `[id="` + name + `"]`
		}
	case strings.HasPrefix(ident, "."):
		if name := ident[1:]; name != "" {
			return `[class~="` + name + `"]`
		}
	default:
		return `[id="` + ident + `"], [class~="` + ident + `"]`
	}
	return ""
}

// ExpandSections marks collapsible widgets as open so that static
// rendering shows their content.
func ExpandSections(sel *goquery.Selection) {
	sel.Find("details").SetAttr("open", "")
	sel.Find(`[aria-expanded="false"]`).SetAttr("aria-expanded", "true")
	sel.Find(`[aria-hidden="true"]`).FilterFunction(func(_ int, s *goquery.Selection) bool {
		return s.Closest(`[class*="accordion"], [class*="collapse"]`).Length() > 0
	}).RemoveAttr("aria-hidden")
	sel.Find(`[class*="accordion"] [hidden], [class*="collapse"][hidden]`).RemoveAttr("hidden")
	sel.Find(".collapse").Each(func(_ int, s *goquery.Selection) {
		if s.HasClass("show") {
			return
		}
		cls, _ := s.Attr("class")
		s.SetAttr("class", strings.Join(append(strings.Fields(cls), "show"), " "))
	})
}
