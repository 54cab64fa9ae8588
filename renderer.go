package web2pdf

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/alnah/go-web2pdf/internal/fileutil"
	"github.com/alnah/go-web2pdf/internal/logging"
	"github.com/alnah/go-web2pdf/internal/pdfgen"
	"github.com/alnah/go-web2pdf/internal/pipeline"
)

// Renderer turns a Job into one PDF. Sources are fetched and normalized
// one after another; the ordered pages then go through the fallback Chain.
// A Renderer is safe for concurrent use.
type Renderer struct {
	cfg           Config
	fetcher       Fetcher
	limiter       *EngineLimiter
	strategies    []Strategy
	strategiesSet bool
	chain         *Chain
	logger        zerolog.Logger
	now           func() time.Time
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithLogger sets the logger. The default discards everything.
func WithLogger(l zerolog.Logger) Option {
	return func(r *Renderer) {
		r.logger = l
	}
}

// WithFetcher replaces the HTTP fetcher.
func WithFetcher(f Fetcher) Option {
	return func(r *Renderer) {
		if f != nil {
			r.fetcher = f
		}
	}
}

// WithStrategies replaces the strategies built from Config.Strategies.
// The static fallback still runs when all of them fail.
func WithStrategies(strategies ...Strategy) Option {
	return func(r *Renderer) {
		r.strategies = strategies
		r.strategiesSet = true
	}
}

// WithEngineLimiter shares an engine cap across Renderers.
func WithEngineLimiter(l *EngineLimiter) Option {
	return func(r *Renderer) {
		if l != nil {
			r.limiter = l
		}
	}
}

// WithClock sets the time source used for timestamps.
func WithClock(now func() time.Time) Option {
	return func(r *Renderer) {
		if now != nil {
			r.now = now
		}
	}
}

// NewRenderer validates cfg and creates a Renderer.
func NewRenderer(cfg Config, opts ...Option) (*Renderer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	r := &Renderer{
		cfg:    cfg,
		logger: logging.Nop(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}

	if r.limiter == nil {
		r.limiter = NewEngineLimiter(ResolvePoolSize(cfg.MaxEngines))
	}
	if r.fetcher == nil {
		r.fetcher = NewHTTPFetcher(cfg, nil)
	}
	if !r.strategiesSet {
		r.strategies = buildStrategies(cfg, r.limiter)
	}
	r.chain = NewChain(r.strategies,
		WithAttemptTimeout(cfg.RenderTimeout),
		WithChainLogger(r.logger),
	)
	return r, nil
}

// buildStrategies instantiates the configured strategies in order.
func buildStrategies(cfg Config, limiter *EngineLimiter) []Strategy {
	out := make([]Strategy, 0, len(cfg.Strategies))
	for _, name := range cfg.Strategies {
		switch name {
		case StrategyFull:
			out = append(out, NewFullStrategy(cfg, limiter))
		case StrategyMinimal:
			out = append(out, NewMinimalStrategy(cfg, limiter))
		case StrategyRemote:
			out = append(out, NewRemoteStrategy(cfg))
		case StrategyStatic:
			out = append(out, NewStaticStrategy())
		}
	}
	return out
}

// Strategies returns the strategy names the chain tries, in order.
func (r *Renderer) Strategies() []string {
	return r.chain.Strategies()
}

// Render checks the caller's authorization decision, then renders req.Job.
func (r *Renderer) Render(ctx context.Context, req Request) (*Result, error) {
	if req.Job == nil {
		return nil, fmt.Errorf("%w: job is nil", ErrInvalidJob)
	}
	if !req.Allowed {
		return nil, fmt.Errorf("%w: caller %q, job %q", ErrUnauthorized, req.CallerID, req.Job.ID)
	}
	return r.RenderJob(ctx, req.Job)
}

// RenderJob renders job. Only validation fails: source and strategy
// failures are recovered and reported through Result.Pages and
// Result.Attempts. Recovers from internal panics to prevent crashes
// from propagating to callers.
func (r *Renderer) RenderJob(ctx context.Context, job *Job) (res *Result, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			res, err = nil, fmt.Errorf("%w: internal error: %v", ErrAssembly, rec)
		}
	}()

	if err := validateJob(job); err != nil {
		return nil, err
	}

	started := r.now()
	opts := job.Options.WithDefaults()
	normalizer := pipeline.NewNormalizer(
		pipeline.WithExpandSections(opts.Expand()),
		pipeline.WithExcludedSections(opts.ExcludeSections),
	)

	log := r.logger.With().Str("job", job.ID).Logger()
	log.Info().Int("sources", len(job.URLs)).Msg("rendering job")

	// Sequential: only one source's content is held in flight at a time.
	pages := make([]Page, len(job.URLs))
	for i, address := range job.URLs {
		pages[i] = r.loadPage(ctx, normalizer, strings.TrimSpace(address), log)
	}

	doc := &Document{
		JobID:       job.ID,
		Title:       jobTitle(job, started),
		GeneratedAt: started,
		Pages:       pages,
		Options:     opts,
	}

	data, attempts := r.chain.Produce(ctx, doc)

	contentType := ContentTypeText
	if pdfgen.HasSignature(data) {
		contentType = ContentTypePDF
	}
	res = &Result{
		ID:          uuid.NewString(),
		JobID:       job.ID,
		Data:        data,
		ContentType: contentType,
		Filename:    SuggestedFilename(job),
		Strategy:    attempts[len(attempts)-1].Strategy,
		RenderedAt:  r.now(),
		Pages:       pages,
		Attempts:    attempts,
	}

	log.Info().
		Str("strategy", res.Strategy).
		Int("attempts", len(attempts)).
		Int("bytes", len(data)).
		Str("content_type", contentType).
		Msg("job rendered")
	return res, nil
}

// loadPage fetches and normalizes one source. Failures, including a
// panicking Fetcher, become a placeholder.
func (r *Renderer) loadPage(ctx context.Context, n *pipeline.Normalizer, address string, log zerolog.Logger) (p Page) {
	defer func() {
		if rec := recover(); rec != nil {
			p = Page{Address: address, Err: fmt.Sprintf("%v: internal error: %v", ErrFetch, rec)}
		}
	}()

	raw, err := r.fetcher.Fetch(ctx, address)
	if err != nil {
		log.Warn().Str("address", address).Err(err).Msg("source fetch failed")
		return Page{Address: address, Err: err.Error()}
	}

	markup := n.Normalize(raw, address)
	log.Debug().Str("address", address).Int("bytes", len(markup)).Msg("source normalized")
	return Page{
		Address: address,
		OK:      true,
		Title:   pipeline.Title(markup),
		Markup:  markup,
	}
}

// jobTitle returns the job name, or a timestamped default.
func jobTitle(job *Job, at time.Time) string {
	if name := strings.TrimSpace(job.Name); name != "" {
		return name
	}
	return "PDF Job " + at.Format(time.RFC3339)
}

// SuggestedFilename derives the download name from the job name, falling
// back to the job id.
func SuggestedFilename(job *Job) string {
	if job == nil {
		return "document.pdf"
	}
	if slug := fileutil.Slug(job.Name); slug != "" {
		return slug + ".pdf"
	}
	if slug := fileutil.Slug(job.ID); slug != "" {
		return "combined-pdf-" + slug + ".pdf"
	}
	return "document.pdf"
}
