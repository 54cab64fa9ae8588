package web2pdf

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/alnah/go-web2pdf/internal/logging"
	"github.com/alnah/go-web2pdf/internal/pdfgen"
)

// Chain tries strategies strictly in order and stops at the first one
// that returns non-empty bytes. It is total: when every strategy fails,
// a built-in static strategy produces the output.
type Chain struct {
	strategies []Strategy
	fallback   Strategy
	timeout    time.Duration
	logger     zerolog.Logger
}

// ChainOption configures a Chain.
type ChainOption func(*Chain)

// WithAttemptTimeout bounds each strategy attempt (default DefaultRenderTimeout).
func WithAttemptTimeout(d time.Duration) ChainOption {
	return func(c *Chain) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithChainLogger sets the logger used to report failed attempts.
func WithChainLogger(l zerolog.Logger) ChainOption {
	return func(c *Chain) {
		c.logger = l
	}
}

// NewChain creates a Chain over strategies. Nil entries are skipped.
func NewChain(strategies []Strategy, opts ...ChainOption) *Chain {
	c := &Chain{
		fallback: NewStaticStrategy(),
		timeout:  DefaultRenderTimeout,
		logger:   logging.Nop(),
	}
	for _, s := range strategies {
		if s != nil {
			c.strategies = append(c.strategies, s)
		}
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Strategies returns the configured strategy names in order.
func (c *Chain) Strategies() []string {
	names := make([]string, len(c.strategies))
	for i, s := range c.strategies {
		names[i] = s.Name()
	}
	return names
}

// Produce renders doc. It always returns non-empty bytes and the list of
// attempts made, in order.
func (c *Chain) Produce(ctx context.Context, doc *Document) ([]byte, []Attempt) {
	attempts := make([]Attempt, 0, len(c.strategies)+1)

	for _, s := range c.strategies {
		data, attempt := c.attempt(ctx, s, doc)
		attempts = append(attempts, attempt)
		if attempt.Err == nil {
			return data, attempts
		}
		c.logger.Warn().
			Str("strategy", attempt.Strategy).
			Dur("duration", attempt.Duration).
			Err(attempt.Err).
			Msg("render strategy failed")
	}

	// The fallback runs without the caller's deadline: output is guaranteed
	// even when ctx is already done.
	data, attempt := c.attempt(context.WithoutCancel(ctx), c.fallback, doc)
	attempts = append(attempts, attempt)
	if attempt.Err == nil {
		return data, attempts
	}

	c.logger.Error().Err(attempt.Err).Msg("static fallback failed; writing raw document")
	return pdfgen.Raw(summary(doc, false)), attempts
}

// attempt runs one strategy under the per-attempt timeout. Panics and
// empty output count as failures.
func (c *Chain) attempt(ctx context.Context, s Strategy, doc *Document) (data []byte, a Attempt) {
	a.Strategy = s.Name()
	start := time.Now()

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer func() {
		cancel()
		if r := recover(); r != nil {
			data = nil
			a.Err = fmt.Errorf("%w: %s panicked: %v", ErrAssembly, a.Strategy, r)
		}
		a.Duration = time.Since(start)
	}()

	data, err := s.Render(ctx, doc)
	switch {
	case err != nil:
		if !isStrategyError(err) {
			err = fmt.Errorf("%w: %v", ErrRender, err)
		}
		return nil, Attempt{Strategy: a.Strategy, Err: err}
	case len(data) == 0:
		return nil, Attempt{Strategy: a.Strategy, Err: fmt.Errorf("%w: empty output", ErrRender)}
	}
	return data, Attempt{Strategy: a.Strategy}
}

// isStrategyError reports whether err already carries a strategy sentinel.
func isStrategyError(err error) bool {
	for _, target := range []error{ErrEngineLaunch, ErrNavigationTimeout, ErrRender, ErrRemoteService, ErrAssembly} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
