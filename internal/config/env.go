package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	web2pdf "github.com/alnah/go-web2pdf"
)

// ErrInvalidEnv is returned when a recognized variable holds a bad value.
var ErrInvalidEnv = errors.New("invalid environment variable")

// Environment variables recognized by ApplyEnv.
const (
	EnvConfig            = "WEB2PDF_CONFIG"
	EnvRemoteRenderToken = "WEB2PDF_REMOTE_RENDER_TOKEN"
	EnvRemoteRenderURL   = "WEB2PDF_REMOTE_RENDER_URL"
	EnvRenderTimeout     = "WEB2PDF_RENDER_TIMEOUT"
	EnvNavigationTimeout = "WEB2PDF_NAVIGATION_TIMEOUT"
	EnvFetchTimeout      = "WEB2PDF_FETCH_TIMEOUT"
	EnvMaxEngines        = "WEB2PDF_MAX_ENGINES"
	EnvStrategies        = "WEB2PDF_STRATEGIES"
	EnvLogLevel          = "WEB2PDF_LOG_LEVEL"
	EnvLogFormat         = "WEB2PDF_LOG_FORMAT"
	EnvBrowserBin        = "ROD_BROWSER_BIN"
	EnvNoSandbox         = "ROD_NO_SANDBOX"
)

// envPrefix marks variables checked for typos by UnknownEnvVars.
const envPrefix = "WEB2PDF_"

// knownEnvVars lists valid WEB2PDF_* environment variables.
var knownEnvVars = map[string]bool{
	EnvConfig:            true,
	EnvRemoteRenderToken: true,
	EnvRemoteRenderURL:   true,
	EnvRenderTimeout:     true,
	EnvNavigationTimeout: true,
	EnvFetchTimeout:      true,
	EnvMaxEngines:        true,
	EnvStrategies:        true,
	EnvLogLevel:          true,
	EnvLogFormat:         true,
}

// ApplyEnv overrides f with every recognized variable that is set.
// Precedence is: CLI flags > env vars > config file > defaults
// (flags are applied by the caller afterwards).
// A set variable with an unparsable value is an error rather than ignored,
// so a typo in a timeout never silently falls back to the default.
func ApplyEnv(f *File, getenv func(string) string) error {
	if getenv == nil {
		return nil
	}

	if v := getenv(EnvRemoteRenderToken); v != "" {
		f.RemoteRenderToken = web2pdf.Secret(v)
	}
	if v := getenv(EnvRemoteRenderURL); v != "" {
		f.RemoteRenderURL = v
	}

	durations := []struct {
		name string
		dst  *time.Duration
	}{
		{EnvRenderTimeout, &f.RenderTimeout},
		{EnvNavigationTimeout, &f.NavigationTimeout},
		{EnvFetchTimeout, &f.FetchTimeout},
	}
	for _, d := range durations {
		v := getenv(d.name)
		if v == "" {
			continue
		}
		parsed, err := parseDuration(v)
		if err != nil {
			return fmt.Errorf("%w: %s=%q: %v", ErrInvalidEnv, d.name, v, err)
		}
		*d.dst = parsed
	}

	if v := getenv(EnvMaxEngines); v != "" {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil || n < 0 {
			return fmt.Errorf("%w: %s=%q: must be a non-negative integer", ErrInvalidEnv, EnvMaxEngines, v)
		}
		f.MaxEngines = n
	}

	if v := getenv(EnvStrategies); v != "" {
		f.Strategies = splitList(v)
	}

	if v := getenv(EnvBrowserBin); v != "" {
		f.BrowserBin = v
	}
	if v := getenv(EnvNoSandbox); v != "" {
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("%w: %s=%q: must be a boolean", ErrInvalidEnv, EnvNoSandbox, v)
		}
		f.NoSandbox = b
	}

	if v := getenv(EnvLogLevel); v != "" {
		f.Log.Level = v
	}
	if v := getenv(EnvLogFormat); v != "" {
		f.Log.Format = v
	}
	return nil
}

// UnknownEnvVars returns the names of WEB2PDF_* variables in environ that
// are not recognized, in input order. Helps catch typos like
// WEB2PDF_RENDER_TIMOUT.
func UnknownEnvVars(environ []string) []string {
	var unknown []string
	for _, kv := range environ {
		if !strings.HasPrefix(kv, envPrefix) {
			continue
		}
		name, _, _ := strings.Cut(kv, "=")
		if !knownEnvVars[name] {
			unknown = append(unknown, name)
		}
	}
	return unknown
}

// parseDuration accepts Go durations ("90s", "1m30s") and bare integers as
// milliseconds ("45000").
func parseDuration(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if ms, err := strconv.ParseInt(s, 10, 64); err == nil {
		if ms <= 0 {
			return 0, errors.New("must be positive")
		}
		return time.Duration(ms) * time.Millisecond, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, err
	}
	if d <= 0 {
		return 0, errors.New("must be positive")
	}
	return d, nil
}

// splitList splits a comma-separated list, trimming blanks and lowercasing.
func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.ToLower(strings.TrimSpace(p)); p != "" {
			out = append(out, p)
		}
	}
	return out
}
