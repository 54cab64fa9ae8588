package web2pdf

import (
	"context"

	"github.com/alnah/go-web2pdf/internal/pdfgen"
)

// StaticStrategy builds the PDF directly, without a rendering engine.
// Each source gets its own page after the cover. Render never fails:
// if the layout library errors or panics, a minimal hand-written PDF
// carrying the same facts is returned instead.
type StaticStrategy struct{}

// NewStaticStrategy creates a StaticStrategy.
func NewStaticStrategy() *StaticStrategy {
	return &StaticStrategy{}
}

// Name implements Strategy.
func (s *StaticStrategy) Name() string { return StrategyStatic }

// Render implements Strategy. The returned error is always nil.
func (s *StaticStrategy) Render(_ context.Context, doc *Document) (data []byte, err error) {
	if doc == nil {
		doc = &Document{}
	}
	defer func() {
		if r := recover(); r != nil {
			data, err = pdfgen.Raw(summary(doc, false)), nil
		}
	}()

	sum := summary(doc, true)
	if data, err := pdfgen.Static(sum); err == nil && len(data) > 0 {
		return data, nil
	}
	return pdfgen.Raw(sum), nil
}
