package web2pdf

import (
	"context"
	"html/template"
	"sync"

	"github.com/alnah/go-web2pdf/internal/assets"
	"github.com/alnah/go-web2pdf/internal/pdfgen"
	"github.com/alnah/go-web2pdf/internal/pipeline"
)

// Strategy turns a Document into PDF bytes. Implementations must release
// every engine or process they start before Render returns.
type Strategy interface {
	Name() string
	Render(ctx context.Context, doc *Document) ([]byte, error)
}

// Compile-time interface checks.
var (
	_ Strategy = (*FullStrategy)(nil)
	_ Strategy = (*MinimalStrategy)(nil)
	_ Strategy = (*RemoteStrategy)(nil)
	_ Strategy = (*StaticStrategy)(nil)
	_ Fetcher  = (*HTTPFetcher)(nil)
)

// pageMarginInches is the 20px print margin at 96 CSS pixels per inch.
const pageMarginInches = 20.0 / 96.0

var (
	composerOnce sync.Once
	composer     *pipeline.Composer
)

// sharedComposer returns the composer for the embedded templates.
// The embedded assets are fixed at build time, so a failure is a bug.
func sharedComposer() *pipeline.Composer {
	composerOnce.Do(func() {
		c, err := pipeline.NewComposer(assets.NewEmbeddedLoader())
		if err != nil {
			panic("web2pdf: embedded templates: " + err.Error())
		}
		composer = c
	})
	return composer
}

// sections converts pages to template sections, splitting each fetched
// page into its styles and body.
func sections(doc *Document) []pipeline.Section {
	out := make([]pipeline.Section, len(doc.Pages))
	for i, p := range doc.Pages {
		s := pipeline.Section{
			Index:   i + 1,
			Address: p.Address,
			Title:   p.Title,
			OK:      p.OK,
			Error:   p.Err,
		}
		if p.OK {
			frag := pipeline.Extract(p.Markup)
			if s.Title == "" {
				s.Title = frag.Title
			}
			s.Head = template.HTML(frag.Head) // #nosec G203 -- normalized, scripts stripped
			s.Body = template.HTML(frag.Body) // #nosec G203 -- normalized, scripts stripped
		}
		out[i] = s
	}
	return out
}

// summary describes doc without any engine: titles, addresses, error
// placeholders and, when digests is set, a text digest of each page.
func summary(doc *Document, digests bool) pdfgen.Summary {
	opts := doc.Options.WithDefaults()
	entries := make([]pdfgen.Entry, len(doc.Pages))
	for i, p := range doc.Pages {
		e := pdfgen.Entry{
			Index:   i + 1,
			Address: p.Address,
			Title:   p.Title,
			OK:      p.OK,
			Error:   p.Err,
		}
		if p.OK && digests {
			e.Digest = pipeline.Digest(p.Markup, p.Address, pipeline.DefaultDigestLength)
		}
		entries[i] = e
	}
	return pdfgen.Summary{
		Title:       doc.Title,
		GeneratedAt: doc.GeneratedAt,
		Entries:     entries,
		PageSize:    opts.PageSize,
		Landscape:   opts.Landscape,
	}
}

// floatPtr returns a pointer to a float64 value.
func floatPtr(v float64) *float64 {
	return &v
}
