package web2pdf

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/go-rod/rod/lib/proto"

	"github.com/alnah/go-web2pdf/internal/fileutil"
	"github.com/alnah/go-web2pdf/internal/pdfgen"
	"github.com/alnah/go-web2pdf/internal/pipeline"
)

// idleWait bounds the best-effort wait for in-page idle after load.
const idleWait = 2 * time.Second

// FullStrategy renders the combined document (cover plus one page-broken
// section per source) in an isolated Chromium driven by rod.
type FullStrategy struct {
	cfg     Config
	limiter *EngineLimiter
}

// NewFullStrategy creates a FullStrategy. A nil limiter imposes no cap.
func NewFullStrategy(cfg Config, limiter *EngineLimiter) *FullStrategy {
	return &FullStrategy{cfg: cfg, limiter: limiter}
}

// Name implements Strategy.
func (s *FullStrategy) Name() string { return StrategyFull }

// Render implements Strategy.
func (s *FullStrategy) Render(ctx context.Context, doc *Document) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRender, err)
	}

	markup, err := sharedComposer().Document(doc.Title, doc.GeneratedAt, sections(doc))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRender, err)
	}
	path, cleanup, err := fileutil.WriteTempFile(markup, "html")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRender, err)
	}
	defer cleanup()

	release, err := acquireSlot(ctx, s.limiter)
	if err != nil {
		return nil, err
	}
	defer release()

	engine, err := launchRod(ctx, s.cfg)
	if err != nil {
		return nil, err
	}
	defer engine.Close()

	page, err := engine.browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return nil, fmt.Errorf("%w: creating page: %v", ErrRender, err)
	}

	opts := doc.Options.WithDefaults()
	err = page.SetViewport(&proto.EmulationSetDeviceMetricsOverride{
		Width:             opts.ViewportWidth,
		Height:            opts.ViewportHeight,
		DeviceScaleFactor: 1,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: setting viewport: %v", ErrRender, err)
	}

	navCtx, cancelNav := context.WithTimeout(ctx, s.navigationTimeout())
	defer cancelNav()

	nav := page.Context(navCtx)
	if err := nav.Navigate("file://" + path); err != nil {
		return nil, navigationError(err)
	}
	if err := nav.WaitLoad(); err != nil {
		return nil, navigationError(err)
	}
	// Idle is best-effort: slow trackers must not fail the page.
	_ = nav.WaitIdle(idleWait)

	if opts.Expand() {
		if _, err := page.Context(ctx).Eval(pipeline.ExpandScript); err != nil {
			return nil, fmt.Errorf("%w: expanding sections: %v", ErrRender, err)
		}
	}

	width, height := pdfgen.PaperSize(opts.PageSize, false)
	reader, err := page.Context(ctx).PDF(&proto.PagePrintToPDF{
		Landscape:       opts.Landscape,
		PaperWidth:      floatPtr(width),
		PaperHeight:     floatPtr(height),
		MarginTop:       floatPtr(pageMarginInches),
		MarginBottom:    floatPtr(pageMarginInches),
		MarginLeft:      floatPtr(pageMarginInches),
		MarginRight:     floatPtr(pageMarginInches),
		PrintBackground: true,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: printing: %v", ErrRender, err)
	}

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("%w: reading PDF stream: %v", ErrRender, err)
	}
	return data, nil
}

// navigationTimeout stays below the attempt timeout so a hung load fails
// the navigation rather than the whole attempt.
func (s *FullStrategy) navigationTimeout() time.Duration {
	d := s.cfg.NavigationTimeout
	if d <= 0 {
		d = DefaultNavigationTimeout
	}
	if s.cfg.RenderTimeout > 0 && d >= s.cfg.RenderTimeout {
		d = s.cfg.RenderTimeout * 3 / 4
	}
	return d
}

func navigationError(err error) error {
	if isDeadline(err) {
		return fmt.Errorf("%w: %v", ErrNavigationTimeout, err)
	}
	return fmt.Errorf("%w: navigating: %v", ErrRender, err)
}
