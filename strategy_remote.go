package web2pdf

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"golang.org/x/time/rate"

	"github.com/alnah/go-web2pdf/internal/hints"
	"github.com/alnah/go-web2pdf/internal/pdfgen"
)

const (
	// remoteWaitFor is the settle delay, in milliseconds, requested from the service.
	remoteWaitFor = 2000

	// maxRemoteResponseBytes caps one rendered source.
	maxRemoteResponseBytes = 64 << 20

	// maxErrorBodyBytes caps the response excerpt quoted in errors.
	maxErrorBodyBytes = 256
)

// remoteRequest is the render API request body.
type remoteRequest struct {
	URL     string        `json:"url"`
	Options remoteOptions `json:"options"`
	WaitFor int           `json:"waitFor"`
}

type remoteOptions struct {
	PrintBackground bool         `json:"printBackground"`
	Format          string       `json:"format"`
	Landscape       bool         `json:"landscape"`
	Margin          remoteMargin `json:"margin"`
}

type remoteMargin struct {
	Top    string `json:"top"`
	Bottom string `json:"bottom"`
	Left   string `json:"left"`
	Right  string `json:"right"`
}

// RemoteStrategy delegates each fetched source to an HTTPS render API,
// one POST per address. A locally built cover comes first, sources that
// failed to fetch become placeholder pages, and every part is merged in
// job order.
type RemoteStrategy struct {
	endpoint string
	token    Secret
	client   *http.Client
	limiter  *rate.Limiter
}

// RemoteOption configures a RemoteStrategy.
type RemoteOption func(*RemoteStrategy)

// WithRemoteHTTPClient sets the HTTP client used for render calls.
func WithRemoteHTTPClient(c *http.Client) RemoteOption {
	return func(s *RemoteStrategy) {
		if c != nil {
			s.client = c
		}
	}
}

// WithRemoteRateLimit sets the maximum render calls per second.
func WithRemoteRateLimit(perSecond float64) RemoteOption {
	return func(s *RemoteStrategy) {
		if perSecond > 0 {
			s.limiter = rate.NewLimiter(rate.Limit(perSecond), 1)
		}
	}
}

// NewRemoteStrategy creates a RemoteStrategy from cfg.
func NewRemoteStrategy(cfg Config, opts ...RemoteOption) *RemoteStrategy {
	timeout := cfg.RemoteTimeout
	if timeout <= 0 {
		timeout = DefaultRemoteTimeout
	}
	perSecond := cfg.RemoteRequestsPerSecond
	if perSecond <= 0 {
		perSecond = DefaultRemoteRequestsPerSecond
	}

	s := &RemoteStrategy{
		endpoint: cfg.RemoteRenderURL,
		token:    cfg.RemoteRenderToken,
		client:   &http.Client{Timeout: timeout},
		limiter:  rate.NewLimiter(rate.Limit(perSecond), 1),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Name implements Strategy.
func (s *RemoteStrategy) Name() string { return StrategyRemote }

// Render implements Strategy.
func (s *RemoteStrategy) Render(ctx context.Context, doc *Document) ([]byte, error) {
	if !s.token.IsSet() {
		return nil, fmt.Errorf("%w: no render token configured%s", ErrRemoteService, hints.ForRemoteToken())
	}
	if s.endpoint == "" {
		return nil, fmt.Errorf("%w: no render endpoint configured", ErrRemoteService)
	}

	sum := summary(doc, false)
	cover, err := pdfgen.Cover(sum)
	if err != nil {
		return nil, fmt.Errorf("%w: cover: %v", ErrAssembly, err)
	}

	opts := doc.Options.WithDefaults()
	parts := make([][]byte, 0, len(sum.Entries)+1)
	parts = append(parts, cover)

	for _, e := range sum.Entries {
		var part []byte
		if e.OK {
			part, err = s.renderAddress(ctx, e.Address, opts)
		} else {
			part, err = pdfgen.Placeholder(sum, e)
			if err != nil {
				err = fmt.Errorf("%w: placeholder: %v", ErrAssembly, err)
			}
		}
		if err != nil {
			return nil, err
		}
		parts = append(parts, part)
	}

	merged, err := pdfgen.Merge(parts)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAssembly, err)
	}
	return merged, nil
}

// renderAddress renders one address through the API.
func (s *RemoteStrategy) renderAddress(ctx context.Context, address string, opts RenderOptions) ([]byte, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%w: rate limit: %v", ErrRemoteService, err)
	}

	margin := "20px"
	body, err := json.Marshal(remoteRequest{
		URL: address,
		Options: remoteOptions{
			PrintBackground: true,
			Format:          opts.PageSize,
			Landscape:       opts.Landscape,
			Margin:          remoteMargin{Top: margin, Bottom: margin, Left: margin, Right: margin},
		},
		WaitFor: remoteWaitFor,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: encoding request: %v", ErrRemoteService, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: creating request: %v", ErrRemoteService, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", ContentTypePDF)
	req.Header.Set("Authorization", "Bearer "+s.token.Reveal())

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrRemoteService, address, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		excerpt, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
		return nil, fmt.Errorf("%w: %s: status %d: %s",
			ErrRemoteService, address, resp.StatusCode, strings.TrimSpace(string(excerpt)))
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxRemoteResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: reading response: %v", ErrRemoteService, address, err)
	}
	if !pdfgen.HasSignature(data) {
		return nil, fmt.Errorf("%w: %s: response is not a PDF", ErrRemoteService, address)
	}
	return data, nil
}
