package pdfgen

import (
	"net"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/net/idna"
)

// TimestampLayout formats the "Generated on" line.
const TimestampLayout = "2006-01-02 15:04:05 MST"

// Entry is one source in a summary.
type Entry struct {
	Index   int // 1-based
	Address string
	Title   string
	OK      bool
	Error   string // placeholder reason when !OK
	Digest  string // Markdown text digest when OK
}

// Summary is the engine-free description of a render job.
type Summary struct {
	Title       string
	GeneratedAt time.Time
	Entries     []Entry
	PageSize    string
	Landscape   bool
}

// Heading returns the section heading for an entry.
func (e Entry) Heading() string {
	return "Page " + strconv.Itoa(e.Index) + ": " + e.PrintableAddress()
}

// PrintableAddress returns the address in ASCII: the host punycoded and
// the rest percent-encoded. Unparsable addresses are returned as given.
func (e Entry) PrintableAddress() string {
	u, err := url.Parse(e.Address)
	if err != nil || u.Host == "" {
		return e.Address
	}
	if host, err := idna.Lookup.ToASCII(u.Hostname()); err == nil {
		if port := u.Port(); port != "" {
			host = net.JoinHostPort(host, port)
		}
		u.Host = host
	}
	u.RawQuery = escapeNonASCII(u.RawQuery)
	return u.String()
}

// escapeNonASCII percent-encodes bytes outside the ASCII range.
func escapeNonASCII(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if c := s[i]; c >= 0x80 {
			b.WriteString("%" + strings.ToUpper(strconv.FormatUint(uint64(c), 16)))
		} else {
			b.WriteByte(c)
		}
	}
	return b.String()
}

// Placeholder returns the visible error text for a failed entry.
func (e Entry) Placeholder() string {
	reason := e.Error
	if reason == "" {
		reason = "unknown error"
	}
	return "Error loading page: " + reason
}
