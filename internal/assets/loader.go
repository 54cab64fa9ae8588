package assets

// Asset names shipped with the binary.
const (
	StyleDocument = "document"
	StyleExpand   = "expand"
	StyleMedia    = "media"
	StyleMinimal  = "minimal"

	TemplateDocument = "document"
	TemplateMinimal  = "minimal"
)

// AssetLoader defines the contract for loading CSS styles and HTML templates.
type AssetLoader interface {
	// LoadStyle loads a CSS style by name (without .css extension).
	LoadStyle(name string) (string, error)

	// LoadTemplate loads an HTML template by name (without .html extension).
	LoadTemplate(name string) (string, error)
}
