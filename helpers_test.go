package web2pdf

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"
)

// ---------------------------------------------------------------------------
// Shared fakes for chain and renderer tests
// ---------------------------------------------------------------------------

// testTime is the fixed clock used by renderer tests.
var testTime = time.Date(2026, 10, 15, 8, 30, 0, 0, time.UTC)

func fixedClock() time.Time { return testTime }

// fakePDF is a minimal byte string carrying the PDF signature.
var fakePDF = []byte("%PDF-1.4\n% fake\n%%EOF\n")

// fakeStrategy returns canned output or error and records every document
// it receives.
type fakeStrategy struct {
	name  string
	data  []byte
	err   error
	panic any

	mu    sync.Mutex
	calls []*Document
}

func (f *fakeStrategy) Name() string { return f.name }

func (f *fakeStrategy) Render(_ context.Context, doc *Document) ([]byte, error) {
	f.mu.Lock()
	f.calls = append(f.calls, doc)
	f.mu.Unlock()

	if f.panic != nil {
		panic(f.panic)
	}
	if f.err != nil {
		return nil, f.err
	}
	return f.data, nil
}

func (f *fakeStrategy) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func (f *fakeStrategy) lastDoc() *Document {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.calls) == 0 {
		return nil
	}
	return f.calls[len(f.calls)-1]
}

func succeeding(name string) *fakeStrategy {
	return &fakeStrategy{name: name, data: fakePDF}
}

func failing(name string, err error) *fakeStrategy {
	return &fakeStrategy{name: name, err: err}
}

// deadlineStrategy blocks until its context expires.
type deadlineStrategy struct{}

func (deadlineStrategy) Name() string { return "slow" }

func (deadlineStrategy) Render(ctx context.Context, _ *Document) ([]byte, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

// pageFetcher serves canned markup per address and fails all others.
func pageFetcher(pages map[string]string) Fetcher {
	return FetcherFunc(func(_ context.Context, address string) (string, error) {
		if markup, ok := pages[address]; ok {
			return markup, nil
		}
		return "", fmt.Errorf("%w: dial tcp: connection refused", ErrFetch)
	})
}

// newTestRenderer creates a Renderer with a fixed clock and no logging.
func newTestRenderer(t *testing.T, opts ...Option) *Renderer {
	t.Helper()

	opts = append([]Option{WithClock(fixedClock)}, opts...)
	r, err := NewRenderer(DefaultConfig(), opts...)
	if err != nil {
		t.Fatalf("NewRenderer() error = %v", err)
	}
	return r
}

func demoJob() *Job {
	return &Job{
		ID:   "job-1",
		Name: "Demo",
		URLs: []string{"https://a.test/x"},
	}
}

const demoMarkup = `<html><head><title>X page</title></head>
<body><h1>Hello</h1><p>Some <a href="/about">content</a>.</p></body></html>`
