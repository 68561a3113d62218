// Package rendition derives download URLs for stored image attachments.
// The rendition path is deployment-specific, so the pattern is supplied
// through configuration rather than hard-coded in core.
package rendition

import (
	"net/url"
	"strings"

	"github.com/evidex-labs/caseview-cli/internal/core/ports/driven"
)

// DefaultTemplate is the download URL pattern used when none is
// configured. "{id}" is replaced with the escaped image identifier.
const DefaultTemplate = "/files/{id}/download"

// Ensure Builder implements the interface.
var _ driven.URLBuilder = (*Builder)(nil)

// Builder builds download URLs from a template containing an "{id}"
// placeholder, optionally prefixed with a base URL.
type Builder struct {
	base     string
	template string
}

// NewBuilder creates a builder. Empty template selects DefaultTemplate;
// base may be empty for relative URLs.
func NewBuilder(base, template string) *Builder {
	if template == "" {
		template = DefaultTemplate
	}
	return &Builder{
		base:     strings.TrimRight(base, "/"),
		template: template,
	}
}

// DownloadURL derives the download URL for the given image identifier.
func (b *Builder) DownloadURL(imageID string) string {
	return b.base + strings.ReplaceAll(b.template, "{id}", url.PathEscape(imageID))
}
