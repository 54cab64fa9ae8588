// Package web2pdf renders an ordered list of web pages into one PDF.
//
// # Quick Start
//
// Build a configuration, create a renderer, and render a job:
//
//	cfg := web2pdf.DefaultConfig()
//	r, err := web2pdf.NewRenderer(cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	result, err := r.RenderJob(ctx, &web2pdf.Job{
//	    ID:   "weekly",
//	    Name: "Weekly Digest",
//	    URLs: []string{"https://example.com/a", "https://example.com/b"},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.WriteFile(result.Filename, result.Data, 0644)
//
// RenderJob only fails on an invalid job. A source that cannot be fetched
// becomes a visible "Error loading page" section, and a failing render
// strategy hands over to the next one, so the result always carries a
// document with a cover plus one section per source, in job order.
//
// # Rendering Pipeline
//
//  1. Fetch each source sequentially over HTTP (bounded by FetchTimeout)
//  2. Normalize markup: resolve relative references, strip scripts and
//     ad/overlay noise, force collapsed sections open, cap media size
//  3. Try strategies in order until one returns a PDF:
//     full (go-rod), minimal (chromedp), remote (HTTPS render API), static
//  4. Check the PDF signature and report the content type
//
// The static strategy builds the PDF directly and never fails. It also runs
// when every configured strategy has failed, so the chain is total.
//
// # Configuration
//
// Config is validated once by NewRenderer. The remote render token is a
// Secret and prints as "****":
//
//	cfg := web2pdf.DefaultConfig()
//	cfg.RemoteRenderToken = web2pdf.Secret(os.Getenv("WEB2PDF_REMOTE_RENDER_TOKEN"))
//	cfg.Strategies = []string{web2pdf.StrategyFull, web2pdf.StrategyRemote}
//
// Per-job options live in Job.Options:
//
//	job.Options = web2pdf.RenderOptions{
//	    PageSize:        "Letter",
//	    Landscape:       true,
//	    ExcludeSections: []string{"#comments", ".related"},
//	}
//
// # Authorization
//
// The package does not authenticate anyone. Callers pass their own decision:
//
//	result, err := r.Render(ctx, web2pdf.Request{Job: job, CallerID: uid, Allowed: ok})
//
// # Browser Requirements
//
// The full and minimal strategies need Chrome/Chromium. go-rod downloads a
// managed Chromium on first run (~/.cache/rod/browser/) when none is found.
// Concurrent engines are capped by an EngineLimiter sized with
// ResolvePoolSize.
//
// For containers and CI environments, set NoSandbox (ROD_NO_SANDBOX=1 in the
// CLI). Use BrowserBin (ROD_BROWSER_BIN) to specify a custom Chrome binary.
package web2pdf
