package web2pdf

import (
	"strings"
	"time"
)

// Default render options.
const (
	DefaultPageSize       = "A4"
	DefaultViewportWidth  = 1200
	DefaultViewportHeight = 1600
)

// Content types reported in Result.
const (
	ContentTypePDF  = "application/pdf"
	ContentTypeText = "text/plain; charset=utf-8"
)

// RenderOptions controls page geometry and content normalization.
// All fields are optional; see WithDefaults. Decoders ignore unknown keys.
type RenderOptions struct {
	PageSize        string   `yaml:"pageSize" json:"pageSize,omitempty" validate:"omitempty,pagesize"`
	Landscape       bool     `yaml:"landscape" json:"landscape,omitempty"`
	ViewportWidth   int      `yaml:"pageWidth" json:"pageWidth,omitempty" validate:"gte=0,lte=10000"`
	ViewportHeight  int      `yaml:"pageHeight" json:"pageHeight,omitempty" validate:"gte=0,lte=100000"`
	ExpandSections  *bool    `yaml:"expandAccordions" json:"expandAccordions,omitempty"`
	ExcludeSections []string `yaml:"excludeSections" json:"excludeSections,omitempty"`
}

// WithDefaults returns a copy with zero values replaced by defaults.
func (o RenderOptions) WithDefaults() RenderOptions {
	if strings.TrimSpace(o.PageSize) == "" {
		o.PageSize = DefaultPageSize
	}
	if o.ViewportWidth <= 0 {
		o.ViewportWidth = DefaultViewportWidth
	}
	if o.ViewportHeight <= 0 {
		o.ViewportHeight = DefaultViewportHeight
	}
	if o.ExpandSections == nil {
		expand := true
		o.ExpandSections = &expand
	}
	return o
}

// Expand reports whether collapsed sections should be forced open.
func (o RenderOptions) Expand() bool {
	return o.ExpandSections == nil || *o.ExpandSections
}

// Job is a named, ordered list of source addresses to render into one PDF.
// The pipeline treats it as read-only.
type Job struct {
	ID             string        `yaml:"id" json:"id" validate:"required"`
	Name           string        `yaml:"name" json:"name" validate:"lte=200"`
	URLs           []string      `yaml:"urls" json:"urls" validate:"required,min=1,dive,source_url"`
	Options        RenderOptions `yaml:"options" json:"options"`
	OwnerID        string        `yaml:"ownerId" json:"ownerId,omitempty"`
	Public         bool          `yaml:"public" json:"public"`
	CreatedAt      time.Time     `yaml:"createdAt" json:"createdAt"`
	LastRenderedAt *time.Time    `yaml:"lastRenderedAt" json:"lastRenderedAt,omitempty"`
}

// Page is the per-source outcome of fetching and normalizing one address.
type Page struct {
	Address string
	OK      bool
	Title   string
	Markup  string // normalized markup when OK
	Err     string // placeholder reason when !OK
}

// Document is what strategies render: the job title, the time it was
// assembled, and every page in job order.
type Document struct {
	JobID       string
	Title       string
	GeneratedAt time.Time
	Pages       []Page
	Options     RenderOptions
}

// Attempt records one strategy invocation made by a Chain.
type Attempt struct {
	Strategy string
	Duration time.Duration
	Err      error
}

// Succeeded reports whether the attempt produced the output.
func (a Attempt) Succeeded() bool {
	return a.Err == nil
}

// Request carries a job and the caller's already-made authorization decision.
type Request struct {
	Job      *Job
	CallerID string
	Allowed  bool
}

// Result is a rendered job.
type Result struct {
	ID          string // unique per render
	JobID       string
	Data        []byte
	ContentType string
	Filename    string
	Strategy    string // strategy that produced Data
	RenderedAt  time.Time
	Pages       []Page
	Attempts    []Attempt
}

// IsPDF reports whether Data carries the PDF signature.
func (r *Result) IsPDF() bool {
	return r.ContentType == ContentTypePDF
}
