package domain

import "time"

// Image is one displayable attachment image.
// Instances are owned by the ImageSet they arrived in and are
// referenced, never copied, by the viewer.
type Image struct {
	// ID is the unique identifier of the stored attachment version.
	ID string

	// Title is the human-readable title, without extension.
	Title string

	// FileExtension is the lowercase extension (e.g. "png"), without dot.
	FileExtension string

	// DataURL is an optional embedded data URL. When set it is preferred
	// over a derived download URL as the render source.
	DataURL string
}

// Label returns the display label for the image ("title.extension").
func (i Image) Label() string {
	if i.FileExtension == "" {
		return i.Title
	}
	return i.Title + "." + i.FileExtension
}

// ImageSet is the ordered collection of images resolved for a case.
// The order is the display and navigation order. A set is replaced
// wholesale on every successful fetch and never mutated in place.
type ImageSet struct {
	// Images holds the descriptors in display order.
	Images []Image

	// FromParent is true when the set originated from the parent case
	// rather than the case itself.
	FromParent bool
}

// Len returns the number of images in the set.
func (s *ImageSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.Images)
}

// Case is a record that may carry image attachments and may link to a
// parent case whose images take display priority.
type Case struct {
	// ID is the unique identifier for the case.
	ID string

	// Subject is the human-readable case subject.
	Subject string

	// ParentID links to a parent case, when one exists.
	ParentID *string

	// CreatedAt is when the case was created.
	CreatedAt time.Time
}

// HasParent returns true if the case links to a parent case.
func (c *Case) HasParent() bool {
	return c.ParentID != nil && *c.ParentID != ""
}
