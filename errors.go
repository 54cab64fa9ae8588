package web2pdf

import "errors"

// Sentinel errors for pipeline stages. Per-source and per-strategy failures
// are recovered inside the pipeline; they surface in Result.Pages and
// Result.Attempts rather than as returned errors.
var (
	ErrFetch             = errors.New("source fetch failed")
	ErrEngineLaunch      = errors.New("rendering engine launch failed")
	ErrNavigationTimeout = errors.New("navigation timed out")
	ErrRender            = errors.New("render failed")
	ErrRemoteService     = errors.New("remote render service failed")
	ErrAssembly          = errors.New("document assembly failed")
)

// Caller-visible errors returned by Renderer.
var (
	ErrInvalidJob      = errors.New("invalid job")
	ErrNoURLs          = errors.New("job has no source addresses")
	ErrInvalidURL      = errors.New("invalid source address")
	ErrInvalidPageSize = errors.New("invalid page size")
	ErrUnauthorized    = errors.New("caller may not render this job")
	ErrInvalidConfig   = errors.New("invalid configuration")
)
