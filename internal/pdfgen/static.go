package pdfgen

import (
	"bytes"
	"errors"
	"fmt"
	"strconv"

	"github.com/go-pdf/fpdf"
)

// ErrBuild indicates fpdf could not produce a document.
var ErrBuild = errors.New("pdf build failed")

const (
	mmPerInch  = 25.4
	margin     = 15.0
	lineHeight = 5.0
	fontFamily = "Helvetica"
	monoFamily = "Courier"
	creator    = "web2pdf"
)

// document wraps an fpdf instance with the translator and page limits.
type document struct {
	pdf    *fpdf.Fpdf
	tr     func(string) string
	width  float64 // printable width
	bottom float64 // last usable y
}

func newDocument(s Summary) *document {
	w, h := PaperSize(s.PageSize, s.Landscape)
	orientation := "P"
	if s.Landscape {
		orientation = "L"
	}

	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: orientation,
		UnitStr:        "mm",
		// NewCustom expects portrait dimensions and applies the orientation.
		Size: fpdf.SizeType{Wd: min(w, h) * mmPerInch, Ht: max(w, h) * mmPerInch},
	})
	pdf.SetCompression(false)
	pdf.SetMargins(margin, margin, margin)
	// Pages never flow: each entry owns exactly one page.
	pdf.SetAutoPageBreak(false, margin)
	pdf.SetCreator(creator, true)
	pdf.SetTitle(s.Title, true)
	if !s.GeneratedAt.IsZero() {
		pdf.SetCreationDate(s.GeneratedAt)
		pdf.SetModificationDate(s.GeneratedAt)
	}

	pageW, pageH := pdf.GetPageSize()
	return &document{
		pdf:    pdf,
		tr:     pdf.UnicodeTranslatorFromDescriptor(""),
		width:  pageW - 2*margin,
		bottom: pageH - margin - lineHeight,
	}
}

// Static renders the summary: a cover page then one page per entry.
func Static(s Summary) (data []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			data, err = nil, fmt.Errorf("%w: panic: %v", ErrBuild, r)
		}
	}()

	d := newDocument(s)
	d.cover(s)
	for _, e := range s.Entries {
		d.entry(e)
	}
	return d.output()
}

// Cover renders only the cover page.
func Cover(s Summary) (data []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			data, err = nil, fmt.Errorf("%w: panic: %v", ErrBuild, r)
		}
	}()

	d := newDocument(s)
	d.cover(s)
	return d.output()
}

// Placeholder renders a single page for an entry, typically a failed one.
func Placeholder(s Summary, e Entry) (data []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			data, err = nil, fmt.Errorf("%w: panic: %v", ErrBuild, r)
		}
	}()

	d := newDocument(s)
	d.entry(e)
	return d.output()
}

func (d *document) output() ([]byte, error) {
	if err := d.pdf.Error(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBuild, err)
	}
	var buf bytes.Buffer
	if err := d.pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBuild, err)
	}
	return buf.Bytes(), nil
}

func (d *document) cover(s Summary) {
	pdf := d.pdf
	pdf.AddPage()

	pdf.SetFont(fontFamily, "B", 18)
	pdf.MultiCell(0, 9, d.tr(s.Title), "", "L", false)
	pdf.Ln(2)

	pdf.SetFont(fontFamily, "", 10)
	pdf.SetTextColor(100, 100, 100)
	pdf.CellFormat(0, lineHeight, "Generated on "+s.GeneratedAt.Format(TimestampLayout), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, lineHeight, strconv.Itoa(len(s.Entries))+" source(s)", "", 1, "L", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
	pdf.Ln(4)

	for i, e := range s.Entries {
		if pdf.GetY() > d.bottom-lineHeight {
			pdf.SetFont(fontFamily, "I", 10)
			pdf.CellFormat(0, lineHeight, "... and "+strconv.Itoa(len(s.Entries)-i)+" more", "", 1, "L", false, 0, "")
			return
		}
		d.literalLine(strconv.Itoa(e.Index)+". "+e.PrintableAddress(), 10, "", e.PrintableAddress())
	}
}

func (d *document) entry(e Entry) {
	pdf := d.pdf
	pdf.AddPage()

	d.literalLine(e.Heading(), 13, "B", e.PrintableAddress())
	pdf.SetDrawColor(220, 220, 220)
	pdf.Line(margin, pdf.GetY()+1, margin+d.width, pdf.GetY()+1)
	pdf.Ln(4)

	if e.Title != "" {
		pdf.SetFont(fontFamily, "B", 11)
		pdf.MultiCell(0, 6, d.tr(e.Title), "", "L", false)
		pdf.Ln(2)
	}

	if !e.OK {
		pdf.SetFont(fontFamily, "", 10)
		pdf.SetTextColor(204, 0, 0)
		pdf.SetDrawColor(204, 0, 0)
		pdf.SetFillColor(255, 240, 240)
		pdf.MultiCell(0, 8, d.tr(e.Placeholder()), "1", "L", true)
		pdf.SetTextColor(0, 0, 0)
		pdf.SetFillColor(255, 255, 255)
		return
	}

	if e.Digest != "" {
		pdf.SetFont(fontFamily, "", 9)
		renderMarkdown(d, e.Digest)
	}
}

// literalLine writes text as one cell so it stays a single string in the
// content stream, linked to link when set. The font shrinks to fit; text
// that still does not fit is clipped at the right margin.
func (d *document) literalLine(text string, size float64, style, link string) {
	pdf := d.pdf
	text = d.tr(text)
	for ; size > 6; size-- {
		pdf.SetFont(fontFamily, style, size)
		if pdf.GetStringWidth(text) <= d.width {
			pdf.CellFormat(0, size*0.5, text, "", 1, "L", false, 0, link)
			return
		}
	}
	pdf.SetFont(fontFamily, style, size)
	x, y := pdf.GetXY()
	pdf.ClipRect(x, y, d.width, size*0.5, false)
	pdf.CellFormat(0, size*0.5, text, "", 1, "L", false, 0, link)
	pdf.ClipEnd()
}
