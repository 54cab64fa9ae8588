package web2pdf

import (
	"context"
	"fmt"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"

	"github.com/alnah/go-web2pdf/internal/hints"
	"github.com/alnah/go-web2pdf/internal/pdfgen"
)

// MinimalStrategy prints a single local document listing the job title and
// each source's title and address. It loads no remote content, so it only
// fails when the engine itself does.
type MinimalStrategy struct {
	cfg     Config
	limiter *EngineLimiter
}

// NewMinimalStrategy creates a MinimalStrategy. A nil limiter imposes no cap.
func NewMinimalStrategy(cfg Config, limiter *EngineLimiter) *MinimalStrategy {
	return &MinimalStrategy{cfg: cfg, limiter: limiter}
}

// Name implements Strategy.
func (s *MinimalStrategy) Name() string { return StrategyMinimal }

// Render implements Strategy.
func (s *MinimalStrategy) Render(ctx context.Context, doc *Document) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRender, err)
	}

	markup, err := sharedComposer().Minimal(doc.Title, doc.GeneratedAt, sections(doc))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRender, err)
	}

	release, err := acquireSlot(ctx, s.limiter)
	if err != nil {
		return nil, err
	}
	defer release()

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, s.allocatorOptions()...)
	defer cancelAlloc()
	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	defer cancelBrowser()

	// An empty Run starts the browser, separating launch from print failures.
	if err := chromedp.Run(browserCtx); err != nil {
		return nil, fmt.Errorf("%w: %v%s", ErrEngineLaunch, err, hints.ForBrowserLaunch())
	}

	opts := doc.Options.WithDefaults()
	width, height := pdfgen.PaperSize(opts.PageSize, false)

	var data []byte
	err = chromedp.Run(browserCtx,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			tree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(tree.Frame.ID, markup).Do(ctx)
		}),
		chromedp.ActionFunc(func(ctx context.Context) error {
			buf, _, err := page.PrintToPDF().
				WithPrintBackground(true).
				WithLandscape(opts.Landscape).
				WithPaperWidth(width).
				WithPaperHeight(height).
				WithMarginTop(pageMarginInches).
				WithMarginBottom(pageMarginInches).
				WithMarginLeft(pageMarginInches).
				WithMarginRight(pageMarginInches).
				Do(ctx)
			data = buf
			return err
		}),
	)
	if err != nil {
		if isDeadline(err) {
			return nil, fmt.Errorf("%w: %v", ErrNavigationTimeout, err)
		}
		return nil, fmt.Errorf("%w: printing: %v", ErrRender, err)
	}
	return data, nil
}

func (s *MinimalStrategy) allocatorOptions() []chromedp.ExecAllocatorOption {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("font-render-hinting", "none"),
	)
	if s.cfg.NoSandbox {
		opts = append(opts, chromedp.NoSandbox)
	}
	if s.cfg.BrowserBin != "" {
		opts = append(opts, chromedp.ExecPath(s.cfg.BrowserBin))
	}
	return opts
}
