package driven

import (
	"context"

	"github.com/evidex-labs/caseview-cli/internal/core/domain"
)

// AttachmentStore provides read and write access to cases and their
// image attachments. Backed by SQLite locally or a remote record API.
type AttachmentStore interface {
	// GetCase retrieves a case by ID.
	// Returns domain.ErrNotFound when the case does not exist.
	GetCase(ctx context.Context, id string) (*domain.Case, error)

	// ListCases returns all known cases in creation order.
	ListCases(ctx context.Context) ([]domain.Case, error)

	// ListImages returns the image attachments of a case in display order.
	// The order must be preserved by callers.
	ListImages(ctx context.Context, caseID string) ([]domain.Image, error)

	// SaveCase stores or updates a case.
	SaveCase(ctx context.Context, c *domain.Case) error

	// SaveImage stores an image attachment on a case.
	SaveImage(ctx context.Context, caseID string, img domain.Image) error
}

// URLBuilder derives a download URL for a stored image identifier.
// The rendition path is deployment-specific, so the strategy is supplied
// by an adapter rather than hard-coded in core.
type URLBuilder = domain.URLBuilder
