package pdfgen

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// Sentinel errors for PDF post-processing.
var (
	ErrNoParts = errors.New("no documents to merge")
	ErrMerge   = errors.New("pdf merge failed")
	ErrRead    = errors.New("pdf read failed")
)

var signature = []byte("%PDF-")

var disableConfigDir sync.Once

// HasSignature reports whether data starts with the PDF file signature.
func HasSignature(data []byte) bool {
	return bytes.HasPrefix(data, signature)
}

func newConfiguration() *model.Configuration {
	// pdfcpu would otherwise create and read a user config directory.
	disableConfigDir.Do(api.DisableConfigDir)
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	return conf
}

// Merge concatenates parts in order into one document.
func Merge(parts [][]byte) ([]byte, error) {
	switch len(parts) {
	case 0:
		return nil, ErrNoParts
	case 1:
		return parts[0], nil
	}

	readers := make([]io.ReadSeeker, len(parts))
	for i, p := range parts {
		if !HasSignature(p) {
			return nil, fmt.Errorf("%w: part %d is not a PDF", ErrMerge, i+1)
		}
		readers[i] = bytes.NewReader(p)
	}

	var buf bytes.Buffer
	if err := api.MergeRaw(readers, &buf, false, newConfiguration()); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMerge, err)
	}
	return buf.Bytes(), nil
}

// PageCount returns the number of pages in data.
func PageCount(data []byte) (int, error) {
	n, err := api.PageCount(bytes.NewReader(data), newConfiguration())
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrRead, err)
	}
	return n, nil
}
