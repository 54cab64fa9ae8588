package pdfgen

import (
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

// mdRenderer walks a goldmark AST into fpdf calls. Output stops at the
// bottom of the current page.
type mdRenderer struct {
	d         *document
	source    []byte
	size      float64
	bold      bool
	italic    bool
	listLevel int
}

func renderMarkdown(d *document, markdown string) {
	source := []byte(markdown)
	doc := goldmark.New().Parser().Parse(text.NewReader(source))
	r := &mdRenderer{d: d, source: source, size: 9}
	_ = ast.Walk(doc, r.walk)
	r.d.pdf.SetFont(fontFamily, "", 9)
}

func (r *mdRenderer) full() bool {
	return r.d.pdf.GetY() > r.d.bottom
}

func (r *mdRenderer) updateFont() {
	style := ""
	if r.bold {
		style += "B"
	}
	if r.italic {
		style += "I"
	}
	r.d.pdf.SetFont(fontFamily, style, r.size)
}

func (r *mdRenderer) write(s string) {
	r.d.pdf.Write(lineHeight, r.d.tr(s))
}

func (r *mdRenderer) walk(n ast.Node, entering bool) (ast.WalkStatus, error) {
	if entering && r.full() {
		return ast.WalkStop, nil
	}

	switch n.Kind() {
	case ast.KindHeading:
		return r.handleHeading(n.(*ast.Heading), entering)
	case ast.KindParagraph, ast.KindTextBlock:
		if !entering {
			r.d.pdf.Ln(lineHeight + 1)
		}
	case ast.KindText:
		if entering {
			t := n.(*ast.Text)
			r.write(string(util.UnescapePunctuations(t.Segment.Value(r.source))))
			switch {
			case t.HardLineBreak():
				r.d.pdf.Ln(lineHeight)
			case t.SoftLineBreak():
				r.write(" ")
			}
		}
	case ast.KindString:
		if entering {
			r.write(string(n.(*ast.String).Value))
		}
	case ast.KindEmphasis:
		if n.(*ast.Emphasis).Level == 2 {
			r.bold = entering
		} else {
			r.italic = entering
		}
		r.updateFont()
	case ast.KindCodeSpan:
		return r.handleCodeSpan(n, entering)
	case ast.KindFencedCodeBlock, ast.KindCodeBlock:
		if entering {
			r.renderCodeBlock(n.Lines())
			return ast.WalkSkipChildren, nil
		}
	case ast.KindList:
		if entering {
			r.listLevel++
		} else {
			r.listLevel--
			if r.listLevel == 0 {
				r.d.pdf.Ln(2)
			}
		}
	case ast.KindListItem:
		if entering {
			r.d.pdf.SetX(margin + float64(r.listLevel)*5)
			r.write("- ")
		}
	case ast.KindBlockquote:
		if entering {
			r.italic = true
		} else {
			r.italic = false
		}
		r.updateFont()
	case ast.KindThematicBreak:
		if entering {
			pdf := r.d.pdf
			pdf.Ln(2)
			pdf.Line(margin, pdf.GetY(), margin+r.d.width, pdf.GetY())
			pdf.Ln(2)
		}
	case ast.KindImage, ast.KindHTMLBlock, ast.KindRawHTML:
		return ast.WalkSkipChildren, nil
	}
	return ast.WalkContinue, nil
}

func (r *mdRenderer) handleHeading(n *ast.Heading, entering bool) (ast.WalkStatus, error) {
	if entering {
		r.d.pdf.Ln(3)
		size := 9.0
		switch n.Level {
		case 1:
			size = 12
		case 2:
			size = 11
		case 3:
			size = 10
		}
		r.d.pdf.SetFont(fontFamily, "B", size)
		r.d.pdf.MultiCell(0, 6, r.d.tr(r.inlineText(n)), "", "L", false)
		r.updateFont()
		return ast.WalkSkipChildren, nil
	}
	return ast.WalkContinue, nil
}

func (r *mdRenderer) handleCodeSpan(n ast.Node, entering bool) (ast.WalkStatus, error) {
	if entering {
		r.d.pdf.SetFont(monoFamily, "", r.size)
		r.write(r.inlineText(n))
		r.updateFont()
	}
	return ast.WalkSkipChildren, nil
}

func (r *mdRenderer) renderCodeBlock(lines *text.Segments) {
	pdf := r.d.pdf
	pdf.Ln(2)
	pdf.SetFont(monoFamily, "", 8)
	pdf.SetFillColor(245, 245, 245)
	for i := 0; i < lines.Len() && !r.full(); i++ {
		line := lines.At(i)
		pdf.MultiCell(0, 4, r.d.tr(strings.TrimRight(string(line.Value(r.source)), "\n")), "", "L", true)
	}
	pdf.SetFillColor(255, 255, 255)
	r.updateFont()
	pdf.Ln(2)
}

// inlineText concatenates the text under n.
func (r *mdRenderer) inlineText(n ast.Node) string {
	var b strings.Builder
	_ = ast.Walk(n, func(c ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch t := c.(type) {
		case *ast.Text:
			b.Write(util.UnescapePunctuations(t.Segment.Value(r.source)))
			if t.SoftLineBreak() {
				b.WriteByte(' ')
			}
		case *ast.String:
			b.Write(t.Value)
		}
		return ast.WalkContinue, nil
	})
	return b.String()
}
