package pipeline

import (
	"net/url"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// referenceAttrs lists the attributes that carry a single URL.
var referenceAttrs = map[string]bool{
	"href":   true,
	"src":    true,
	"poster": true,
	"action": true,
}

// resolveReferences rewrites relative references under n against base and
// drops <base> elements, since all references are absolute afterwards. A
// <base href> in the markup is honoured first.
//
// Rewrites href, src, poster and action values, every srcset candidate, and
// promotes img[data-src] to src when src is missing or a data: placeholder.
// Fragments, absolute URLs and scheme URLs such as mailto: are left alone.
func resolveReferences(n *html.Node, base *url.URL) {
	if b := findBaseHref(n); b != "" {
		if resolved, err := base.Parse(b); err == nil && resolved.IsAbs() {
			base = resolved
		}
	}
	rewriteNode(n, base)
	removeBaseElements(n)
}

func findBaseHref(n *html.Node) string {
	if n.Type == html.ElementNode && n.DataAtom == atom.Base {
		if v, ok := attr(n, "href"); ok {
			return strings.TrimSpace(v)
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if v := findBaseHref(c); v != "" {
			return v
		}
	}
	return ""
}

func removeBaseElements(n *html.Node) {
	for c := n.FirstChild; c != nil; {
		next := c.NextSibling
		if c.Type == html.ElementNode && c.DataAtom == atom.Base {
			n.RemoveChild(c)
		} else {
			removeBaseElements(c)
		}
		c = next
	}
}

// rewriteNode traverses the DOM and resolves references.
func rewriteNode(n *html.Node, base *url.URL) {
	if n.Type == html.ElementNode {
		if n.DataAtom == atom.Img {
			promoteLazySource(n)
		}
		for i, a := range n.Attr {
			switch {
			case referenceAttrs[a.Key]:
				n.Attr[i].Val = resolveURL(a.Val, base)
			case a.Key == "srcset":
				n.Attr[i].Val = resolveSrcset(a.Val, base)
			}
		}
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		rewriteNode(c, base)
	}
}

// promoteLazySource copies data-src into src for lazily loaded images, which
// would otherwise render as placeholders without script execution.
func promoteLazySource(n *html.Node) {
	lazy, ok := attr(n, "data-src")
	if !ok || strings.TrimSpace(lazy) == "" {
		return
	}
	src, hasSrc := attr(n, "src")
	if hasSrc && src != "" && !strings.HasPrefix(src, "data:") {
		return
	}
	setAttr(n, "src", lazy)
}

// isRelativeReference returns true if ref needs resolving against a base.
func isRelativeReference(ref string) bool {
	ref = strings.TrimSpace(ref)
	if ref == "" || strings.HasPrefix(ref, "#") {
		return false
	}
	u, err := url.Parse(ref)
	if err != nil {
		return false
	}
	return u.Scheme == ""
}

func resolveURL(ref string, base *url.URL) string {
	if !isRelativeReference(ref) {
		return ref
	}
	resolved, err := base.Parse(strings.TrimSpace(ref))
	if err != nil {
		return ref
	}
	return resolved.String()
}

// resolveSrcset resolves each "url [descriptor]" candidate.
func resolveSrcset(srcset string, base *url.URL) string {
	if strings.Contains(srcset, "data:") {
		return srcset
	}
	candidates := strings.Split(srcset, ",")
	for i, c := range candidates {
		fields := strings.Fields(c)
		if len(fields) == 0 {
			continue
		}
		fields[0] = resolveURL(fields[0], base)
		candidates[i] = strings.Join(fields, " ")
	}
	return strings.Join(candidates, ", ")
}

func attr(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

func setAttr(n *html.Node, key, val string) {
	for i, a := range n.Attr {
		if a.Key == key {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}
