// Package tui provides the interactive terminal user interface for caseview.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"fmt"

	"github.com/evidex-labs/caseview-cli/internal/core/ports/driven"
	"github.com/evidex-labs/caseview-cli/internal/core/ports/driving"
)

// Ports aggregates all port interfaces required by the TUI.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Images provides attachment image resolution for cases.
	Images driving.ImageService

	// URLs builds download URLs for images without inline data.
	// Optional; without it images lacking a data URL render a notice.
	URLs driven.URLBuilder

	// Changes signals that the underlying case data changed.
	// Optional; without it the viewer never refreshes on its own.
	Changes <-chan struct{}
}

// NewPorts creates a new Ports aggregate with the given services.
func NewPorts(images driving.ImageService, urls driven.URLBuilder) *Ports {
	return &Ports{
		Images: images,
		URLs:   urls,
	}
}

// WithChanges attaches a data-change notification channel.
func (p *Ports) WithChanges(ch <-chan struct{}) *Ports {
	p.Changes = ch
	return p
}

// Validate ensures all required ports are set. Failures wrap
// ErrInvalidPorts around the specific missing-port error.
func (p *Ports) Validate() error {
	if p.Images == nil {
		return fmt.Errorf("%w: %w", ErrInvalidPorts, ErrMissingImageService)
	}
	return nil
}
