package pipeline

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"time"

	"github.com/alnah/go-web2pdf/internal/assets"
	"github.com/alnah/go-web2pdf/internal/pdfgen"
)

// ErrComposeRender indicates a document template failed to execute.
var ErrComposeRender = errors.New("document template rendering failed")

// Section is one source page in a composed document.
type Section struct {
	Index   int // 1-based
	Address string
	Title   string
	OK      bool
	Error   string        // placeholder reason when !OK
	Head    template.HTML // page styles, already normalized
	Body    template.HTML // page body, already normalized
}

// Composer renders the combined documents handed to browser engines.
type Composer struct {
	document      *template.Template
	minimal       *template.Template
	documentStyle template.CSS
	minimalStyle  template.CSS
}

// NewComposer parses the document templates from loader.
func NewComposer(loader assets.AssetLoader) (*Composer, error) {
	docTmpl, err := parseTemplate(loader, assets.TemplateDocument)
	if err != nil {
		return nil, err
	}
	minTmpl, err := parseTemplate(loader, assets.TemplateMinimal)
	if err != nil {
		return nil, err
	}
	docStyle, err := loader.LoadStyle(assets.StyleDocument)
	if err != nil {
		return nil, err
	}
	minStyle, err := loader.LoadStyle(assets.StyleMinimal)
	if err != nil {
		return nil, err
	}

	return &Composer{
		document:      docTmpl,
		minimal:       minTmpl,
		documentStyle: template.CSS(docStyle), // #nosec G203 -- embedded asset
		minimalStyle:  template.CSS(minStyle), // #nosec G203 -- embedded asset
	}, nil
}

func parseTemplate(loader assets.AssetLoader, name string) (*template.Template, error) {
	content, err := loader.LoadTemplate(name)
	if err != nil {
		return nil, err
	}
	tmpl, err := template.New(name).Parse(content)
	if err != nil {
		return nil, fmt.Errorf("parsing %s template: %w", name, err)
	}
	return tmpl, nil
}

type composeData struct {
	Title       string
	GeneratedAt string
	Styles      template.CSS
	Sections    []Section
}

// Document renders a cover followed by one page-broken section per source.
func (c *Composer) Document(title string, generatedAt time.Time, sections []Section) (string, error) {
	return c.execute(c.document, composeData{
		Title:       title,
		GeneratedAt: generatedAt.Format(pdfgen.TimestampLayout),
		Styles:      c.documentStyle,
		Sections:    sections,
	})
}

// Minimal renders the job title and each source's title and address only.
// Section bodies are ignored, so no remote content is referenced.
func (c *Composer) Minimal(title string, generatedAt time.Time, sections []Section) (string, error) {
	stripped := make([]Section, len(sections))
	for i, s := range sections {
		stripped[i] = Section{Index: s.Index, Address: s.Address, Title: s.Title, OK: s.OK, Error: s.Error}
	}
	return c.execute(c.minimal, composeData{
		Title:       title,
		GeneratedAt: generatedAt.Format(pdfgen.TimestampLayout),
		Styles:      c.minimalStyle,
		Sections:    stripped,
	})
}

func (c *Composer) execute(tmpl *template.Template, data composeData) (string, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("%w: %v", ErrComposeRender, err)
	}
	return buf.String(), nil
}
