package pdfgen

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
)

const (
	rawFontSize   = 11.0
	rawLeading    = 15.0
	rawMargin     = 56.0 // points
	rawWrapColumn = 90
	rawMaxDigest  = 30
)

// Raw writes the summary as a minimal PDF 1.4 document without any PDF
// library: one cover page, then one page per entry, Helvetica text only.
// It never fails.
func Raw(s Summary) []byte {
	w, h := PaperSize(s.PageSize, s.Landscape)
	pageW, pageH := w*72, h*72
	maxLines := int((pageH - 2*rawMargin) / rawLeading)

	pages := [][]string{rawCoverLines(s, maxLines)}
	for _, e := range s.Entries {
		pages = append(pages, rawEntryLines(e, maxLines))
	}

	return writeRawPDF(pages, pageW, pageH)
}

func rawCoverLines(s Summary, maxLines int) []string {
	lines := []string{
		s.Title,
		"Generated on " + s.GeneratedAt.Format(TimestampLayout),
		strconv.Itoa(len(s.Entries)) + " source(s)",
		"",
	}
	for i, e := range s.Entries {
		if len(lines) >= maxLines-1 {
			lines = append(lines, "... and "+strconv.Itoa(len(s.Entries)-i)+" more")
			break
		}
		lines = append(lines, strconv.Itoa(e.Index)+". "+e.PrintableAddress())
	}
	return lines
}

func rawEntryLines(e Entry, maxLines int) []string {
	lines := []string{e.Heading(), ""}
	if e.Title != "" {
		lines = append(lines, e.Title, "")
	}
	if !e.OK {
		return append(lines, e.Placeholder())
	}

	budget := min(rawMaxDigest, maxLines-len(lines))
	for _, para := range strings.Split(e.Digest, "\n") {
		for _, l := range wrap(para, rawWrapColumn) {
			if budget <= 0 {
				return lines
			}
			lines = append(lines, l)
			budget--
		}
	}
	return lines
}

// wrap splits s at spaces so no line exceeds width runes where possible.
func wrap(s string, width int) []string {
	words := strings.Fields(s)
	if len(words) == 0 {
		return []string{""}
	}
	var lines []string
	line := words[0]
	for _, w := range words[1:] {
		if len(line)+1+len(w) > width {
			lines = append(lines, line)
			line = w
			continue
		}
		line += " " + w
	}
	return append(lines, line)
}

// writeRawPDF lays out objects as: 1 catalog, 2 pages, 3 font, then a
// page object and a content stream per page.
func writeRawPDF(pages [][]string, pageW, pageH float64) []byte {
	var buf bytes.Buffer
	offsets := []int{0}

	obj := func(body string) {
		offsets = append(offsets, buf.Len())
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", len(offsets)-1, body)
	}

	buf.WriteString("%PDF-1.4\n%\xe2\xe3\xcf\xd3\n")

	kids := make([]string, len(pages))
	for i := range pages {
		kids[i] = strconv.Itoa(4+2*i) + " 0 R"
	}

	obj("<< /Type /Catalog /Pages 2 0 R >>")
	obj(fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d >>", strings.Join(kids, " "), len(pages)))
	obj("<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica /Encoding /WinAnsiEncoding >>")

	for i, lines := range pages {
		content := rawContent(lines, pageH)
		obj(fmt.Sprintf("<< /Type /Page /Parent 2 0 R /MediaBox [0 0 %.2f %.2f] /Resources << /Font << /F1 3 0 R >> >> /Contents %d 0 R >>",
			pageW, pageH, 5+2*i))
		obj(fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(content), content))
	}

	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n0000000000 65535 f \n", len(offsets))
	for _, off := range offsets[1:] {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(offsets), xref)

	return buf.Bytes()
}

func rawContent(lines []string, pageH float64) string {
	var b strings.Builder
	fmt.Fprintf(&b, "BT\n/F1 %.0f Tf\n%.0f TL\n%.2f %.2f Td\n", rawFontSize, rawLeading, rawMargin, pageH-rawMargin)
	for _, l := range lines {
		fmt.Fprintf(&b, "(%s) Tj T*\n", escapeRaw(l))
	}
	b.WriteString("ET")
	return b.String()
}

// escapeRaw escapes a PDF literal string and replaces non-ASCII runes.
func escapeRaw(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch {
		case r == '\\' || r == '(' || r == ')':
			b.WriteByte('\\')
			b.WriteRune(r)
		case r < 0x20 || r > 0x7e:
			b.WriteByte('?')
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
