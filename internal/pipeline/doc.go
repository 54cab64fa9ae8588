// Package pipeline prepares fetched web pages for rendering.
//
// This package handles the markup stages that run before any PDF engine:
//   - Reference resolution (href, src, srcset, poster) against the source address
//   - Script and inline handler stripping
//   - Advertising and pinned-overlay removal by class/id heuristics
//   - Caller-excluded sections
//   - Forcing collapsed widgets open and capping oversized media
//   - Composing the combined cover + per-source document
//   - Text digests for engine-free output
//
// PDF generation is handled by the root web2pdf package. Every stage here is
// best-effort: Normalize returns its input unchanged rather than failing.
package pipeline
