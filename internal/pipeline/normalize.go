package pipeline

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/alnah/go-web2pdf/internal/assets"
)

// Normalizer rewrites fetched page markup for static rendering.
// A Normalizer is immutable and safe for concurrent use.
type Normalizer struct {
	expand  bool
	exclude []string
	css     string
}

// NormalizerOption configures a Normalizer.
type NormalizerOption func(*Normalizer)

// WithExpandSections toggles forcing collapsed widgets open (default true).
func WithExpandSections(expand bool) NormalizerOption {
	return func(n *Normalizer) {
		n.expand = expand
	}
}

// WithExcludedSections sets section identifiers to remove.
func WithExcludedSections(identifiers []string) NormalizerOption {
	return func(n *Normalizer) {
		n.exclude = append([]string(nil), identifiers...)
	}
}

// NewNormalizer creates a Normalizer.
func NewNormalizer(opts ...NormalizerOption) *Normalizer {
	n := &Normalizer{expand: true}
	for _, opt := range opts {
		opt(n)
	}

	css := assets.MustStyle(assets.StyleMedia)
	if n.expand {
		css += "\n" + assets.MustStyle(assets.StyleExpand)
	}
	n.css = css

	return n
}

// Normalize rewrites raw markup fetched from sourceAddress. It never fails:
// on any internal error, including a panic, raw is returned unchanged.
func (n *Normalizer) Normalize(raw, sourceAddress string) (out string) {
	defer func() {
		if r := recover(); r != nil {
			out = raw
		}
	}()

	if strings.TrimSpace(raw) == "" {
		return raw
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(raw))
	if err != nil {
		return raw
	}

	if base, err := url.Parse(sourceAddress); err == nil && base.IsAbs() {
		for _, node := range doc.Nodes {
			resolveReferences(node, base)
		}
	}

	root := doc.Selection
	StripScripts(root)
	StripNoise(root)
	RemoveSections(root, n.exclude)
	if n.expand {
		ExpandSections(root)
	}

	rendered, err := doc.Html()
	if err != nil {
		return raw
	}

	return InjectCSS(rendered, n.css)
}
