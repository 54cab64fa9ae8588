package pdfgen

import "strings"

// DefaultPageSize is used when a size token is empty or unknown.
const DefaultPageSize = "A4"

// Paper dimensions in inches, portrait.
var paperSizes = map[string][2]float64{
	"a3":      {11.69, 16.54},
	"a4":      {8.27, 11.69},
	"a5":      {5.83, 8.27},
	"letter":  {8.5, 11},
	"legal":   {8.5, 14},
	"tabloid": {11, 17},
}

// IsPageSize reports whether name is a known page size token.
func IsPageSize(name string) bool {
	_, ok := paperSizes[strings.ToLower(strings.TrimSpace(name))]
	return ok
}

// PaperSize returns width and height in inches, swapped for landscape.
// Unknown names resolve to A4.
func PaperSize(name string, landscape bool) (width, height float64) {
	dims, ok := paperSizes[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		dims = paperSizes["a4"]
	}
	if landscape {
		return dims[1], dims[0]
	}
	return dims[0], dims[1]
}

// PageSizes lists the supported tokens.
func PageSizes() []string {
	return []string{"A3", "A4", "A5", "Letter", "Legal", "Tabloid"}
}
