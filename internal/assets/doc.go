// Package assets embeds the stylesheets and HTML templates used to compose
// the combined render document.
//
// Assets are organized by type:
//
//	styles/
//	├── document.css   # cover and per-source section layout
//	├── expand.css     # forces collapsed widgets open
//	├── media.css      # caps oversized media, unpins fixed elements
//	└── minimal.css    # title-and-address listing
//	templates/
//	├── document.html  # cover + one section per source
//	└── minimal.html   # no remote content
//
// Asset names are validated to prevent path traversal.
package assets
