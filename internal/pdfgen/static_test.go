package pdfgen

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var summaryTime = time.Date(2026, 10, 15, 8, 30, 0, 0, time.UTC)

func testSummary() Summary {
	return Summary{
		Title:       "Demo",
		GeneratedAt: summaryTime,
		PageSize:    "A4",
		Entries: []Entry{
			{Index: 1, Address: "https://a.test/x", Title: "X page", OK: true, Digest: "# Hello\n\nWorld **bold** text with `code`.\n\n- one\n- two\n"},
			{Index: 2, Address: "https://b.test/", OK: false, Error: "connection refused"},
			{Index: 3, Address: "https://c.test/z", OK: true},
		},
	}
}

func TestStatic(t *testing.T) {
	t.Parallel()

	data, err := Static(testSummary())
	require.NoError(t, err)
	require.True(t, HasSignature(data), "output should start with the PDF signature")

	pages, err := PageCount(data)
	require.NoError(t, err)
	assert.Equal(t, 4, pages, "cover plus one page per entry")

	for _, want := range []string{
		"Demo",
		"Generated on 2026-10-15 08:30:00 UTC",
		"Page 1: https://a.test/x",
		"Page 2: https://b.test/",
		"Error loading page: connection refused",
		"1. https://a.test/x",
		"Hello",
	} {
		assert.True(t, bytes.Contains(data, []byte(want)), "output should contain %q", want)
	}
}

func TestStatic_OverflowKeepsOnePagePerEntry(t *testing.T) {
	t.Parallel()

	s := testSummary()
	s.Entries[0].Digest = strings.Repeat("- a list item that goes on\n", 400)

	data, err := Static(s)
	require.NoError(t, err)

	pages, err := PageCount(data)
	require.NoError(t, err)
	assert.Equal(t, 4, pages)
}

func TestStatic_ManySourcesCoverTruncates(t *testing.T) {
	t.Parallel()

	s := Summary{Title: "Many", GeneratedAt: summaryTime}
	for i := 1; i <= 120; i++ {
		s.Entries = append(s.Entries, Entry{Index: i, Address: "https://a.test/p", OK: false, Error: "timeout"})
	}

	data, err := Static(s)
	require.NoError(t, err)

	pages, err := PageCount(data)
	require.NoError(t, err)
	assert.Equal(t, 121, pages)
	assert.True(t, bytes.Contains(data, []byte("... and ")), "cover should summarize overflow")
}

func TestStatic_Landscape(t *testing.T) {
	t.Parallel()

	s := testSummary()
	s.PageSize = "Letter"
	s.Landscape = true

	data, err := Static(s)
	require.NoError(t, err)
	assert.True(t, HasSignature(data))
}

func TestStatic_SameInputSamePlaceholders(t *testing.T) {
	t.Parallel()

	first, err := Static(testSummary())
	require.NoError(t, err)
	second, err := Static(testSummary())
	require.NoError(t, err)

	firstPages, err := PageCount(first)
	require.NoError(t, err)
	secondPages, err := PageCount(second)
	require.NoError(t, err)

	assert.Equal(t, firstPages, secondPages)
	placeholder := []byte("Error loading page: connection refused")
	assert.Equal(t, bytes.Count(first, placeholder), bytes.Count(second, placeholder))
}

func TestCover(t *testing.T) {
	t.Parallel()

	data, err := Cover(testSummary())
	require.NoError(t, err)

	pages, err := PageCount(data)
	require.NoError(t, err)
	assert.Equal(t, 1, pages)
	assert.True(t, bytes.Contains(data, []byte("3. https://c.test/z")))
}

func TestPlaceholder(t *testing.T) {
	t.Parallel()

	s := testSummary()
	data, err := Placeholder(s, s.Entries[1])
	require.NoError(t, err)

	pages, err := PageCount(data)
	require.NoError(t, err)
	assert.Equal(t, 1, pages)
	assert.True(t, bytes.Contains(data, []byte("Error loading page: connection refused")))
}

func TestEntry_Placeholder(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Error loading page: dns failure", Entry{Error: "dns failure"}.Placeholder())
	assert.Equal(t, "Error loading page: unknown error", Entry{}.Placeholder())
	assert.Equal(t, "Page 7: https://a.test/x", Entry{Index: 7, Address: "https://a.test/x"}.Heading())
}

func TestStatic_LongAddressStaysLiteral(t *testing.T) {
	t.Parallel()

	long := "https://a.test/" + strings.Repeat("segment/", 30) + "end"
	require.Greater(t, len(long), 250)

	s := testSummary()
	s.Entries[0].Address = long
	data, err := Static(s)
	require.NoError(t, err)

	assert.True(t, bytes.Contains(data, []byte("Page 1: "+long+") Tj")), "heading should be one text string")
	assert.True(t, bytes.Contains(data, []byte("1. "+long+") Tj")), "cover line should be one text string")
	assert.True(t, bytes.Contains(data, []byte("/URI ("+long+")")), "heading should link the full address")
}

func TestStatic_UnicodeAddressPrintedAsASCII(t *testing.T) {
	t.Parallel()

	s := testSummary()
	s.Entries[0].Address = "https://bücher.example/straße?q=ü"
	data, err := Static(s)
	require.NoError(t, err)

	want := "https://xn--bcher-kva.example/stra%C3%9Fe?q=%C3%BC"
	assert.True(t, bytes.Contains(data, []byte("Page 1: "+want)), "output should contain %q", want)
	assert.True(t, bytes.Contains(Raw(s), []byte("1. "+want)), "raw output should contain %q", want)
}

func TestEntry_PrintableAddress(t *testing.T) {
	t.Parallel()

	tests := []struct {
		address string
		want    string
	}{
		{"https://a.test/x", "https://a.test/x"},
		{"https://bücher.example:8443/", "https://xn--bcher-kva.example:8443/"},
		{"https://a.test/日本", "https://a.test/%E6%97%A5%E6%9C%AC"},
		{"not a url", "not a url"},
		{"http://[::1", "http://[::1"},
	}

	for _, tt := range tests {
		t.Run(tt.address, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, Entry{Address: tt.address}.PrintableAddress())
		})
	}
}
