package web2pdf

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/launcher/flags"

	"github.com/alnah/go-web2pdf/internal/hints"
	"github.com/alnah/go-web2pdf/internal/process"
)

// Chromium flags used by every engine launch. An empty value is a bare switch.
var engineFlags = []struct {
	name  flags.Flag
	value string
}{
	{"disable-dev-shm-usage", ""},
	{"disable-gpu", ""},
	{"font-render-hinting", "none"},
}

// acquireSlot reserves an engine slot. A nil limiter admits everyone.
func acquireSlot(ctx context.Context, l *EngineLimiter) (func(), error) {
	if l == nil {
		return func() {}, nil
	}
	release, err := l.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: waiting for engine slot: %v", ErrEngineLaunch, err)
	}
	return release, nil
}

// rodEngine is one isolated Chromium process driven by rod.
// Close is safe to call more than once.
type rodEngine struct {
	launcher *launcher.Launcher
	browser  *rod.Browser
	once     sync.Once
}

// launchRod starts Chromium and connects to it. On error nothing is left running.
func launchRod(ctx context.Context, cfg Config) (*rodEngine, error) {
	l := launcher.New().Context(ctx).Headless(true)
	if cfg.BrowserBin != "" {
		l = l.Bin(cfg.BrowserBin)
	}
	if cfg.NoSandbox {
		l = l.NoSandbox(true)
	}
	for _, f := range engineFlags {
		if f.value == "" {
			l = l.Set(f.name)
		} else {
			l = l.Set(f.name, f.value)
		}
	}

	e := &rodEngine{launcher: l}

	u, err := l.Launch()
	if err != nil {
		e.Close()
		return nil, fmt.Errorf("%w: %v%s", ErrEngineLaunch, err, hints.ForBrowserLaunch())
	}

	e.browser = rod.New().ControlURL(u).Context(ctx)
	if err := e.browser.Connect(); err != nil {
		e.browser = nil
		e.Close()
		return nil, fmt.Errorf("%w: connecting: %v", ErrEngineLaunch, err)
	}
	return e, nil
}

// Close terminates the browser and its whole process group.
func (e *rodEngine) Close() {
	e.once.Do(func() {
		if e.browser != nil {
			_ = e.browser.Close()
		}
		pid := e.launcher.PID()
		if pid == 0 {
			return
		}
		// Best-effort: the browser may already be gone.
		process.KillProcessGroup(pid)
		e.launcher.Kill()
		// Cleanup waits for the process to exit, then removes its profile.
		e.launcher.Cleanup()
	})
}

// isDeadline reports whether err stems from an expired deadline.
func isDeadline(err error) bool {
	return errors.Is(err, context.DeadlineExceeded)
}
