// Package services implements the driving ports over the driven ports.
package services

import (
	"context"
	"strings"

	"github.com/evidex-labs/caseview-cli/internal/core/domain"
	"github.com/evidex-labs/caseview-cli/internal/core/ports/driven"
	"github.com/evidex-labs/caseview-cli/internal/core/ports/driving"
	"github.com/evidex-labs/caseview-cli/internal/logger"
)

// Ensure ImageService implements the interface.
var _ driving.ImageService = (*ImageService)(nil)

// DefaultImageExtensions lists the file extensions treated as displayable
// images when no whitelist is configured.
var DefaultImageExtensions = []string{"png", "jpg", "jpeg", "gif", "bmp", "webp", "svg"}

// ImageService resolves the displayable image set for a case, preferring
// images attached to the parent case over the case's own.
type ImageService struct {
	store driven.AttachmentStore
	exts  map[string]bool
}

// NewImageService creates an image service. extensions is the displayable
// extension whitelist; nil selects DefaultImageExtensions.
func NewImageService(store driven.AttachmentStore, extensions []string) *ImageService {
	if len(extensions) == 0 {
		extensions = DefaultImageExtensions
	}
	exts := make(map[string]bool, len(extensions))
	for _, e := range extensions {
		exts[strings.ToLower(strings.TrimPrefix(e, "."))] = true
	}
	return &ImageService{store: store, exts: exts}
}

// GetImages returns the image set for the case. When the case links to a
// parent, the parent's images take priority; the case's own images are the
// fallback. An empty set is a valid result. When both the parent and the
// case are empty, the set reports the parent as its source, since that was
// the preferred one.
func (s *ImageService) GetImages(ctx context.Context, caseID string) (*domain.ImageSet, error) {
	if s.store == nil {
		return nil, domain.ErrStoreUnavailable
	}
	if caseID == "" {
		return nil, domain.ErrInvalidInput
	}

	c, err := s.store.GetCase(ctx, caseID)
	if err != nil {
		return nil, err
	}

	if c.HasParent() {
		parent, err := s.listDisplayable(ctx, *c.ParentID)
		if err != nil {
			return nil, err
		}
		if len(parent) > 0 {
			logger.Debug("resolved %d images from parent case %s", len(parent), *c.ParentID)
			return &domain.ImageSet{Images: parent, FromParent: true}, nil
		}
		own, err := s.listDisplayable(ctx, caseID)
		if err != nil {
			return nil, err
		}
		if len(own) > 0 {
			return &domain.ImageSet{Images: own, FromParent: false}, nil
		}
		return &domain.ImageSet{FromParent: true}, nil
	}

	own, err := s.listDisplayable(ctx, caseID)
	if err != nil {
		return nil, err
	}
	return &domain.ImageSet{Images: own, FromParent: false}, nil
}

// ListCases returns the cases available for selection.
func (s *ImageService) ListCases(ctx context.Context) ([]domain.Case, error) {
	if s.store == nil {
		return nil, domain.ErrStoreUnavailable
	}
	return s.store.ListCases(ctx)
}

// listDisplayable lists a case's attachments filtered to image extensions,
// preserving the store's order.
func (s *ImageService) listDisplayable(ctx context.Context, caseID string) ([]domain.Image, error) {
	all, err := s.store.ListImages(ctx, caseID)
	if err != nil {
		return nil, err
	}
	var imgs []domain.Image
	for _, img := range all {
		if s.exts[strings.ToLower(img.FileExtension)] {
			imgs = append(imgs, img)
		}
	}
	return imgs, nil
}
