package driving

import (
	"context"

	"github.com/evidex-labs/caseview-cli/internal/core/domain"
)

// ImageService resolves the displayable image set for a case.
type ImageService interface {
	// GetImages returns the image set for the case, preferring images
	// attached to the parent case when the case has one and the parent
	// carries images. An empty set is a valid result, not an error.
	// The operation is idempotent and tolerates cached results.
	GetImages(ctx context.Context, caseID string) (*domain.ImageSet, error)

	// ListCases returns the cases available for selection.
	ListCases(ctx context.Context) ([]domain.Case, error)
}
