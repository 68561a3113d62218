// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/evidex-labs/caseview-cli/internal/core/domain"
)

// CasesLoaded carries the selectable cases from the image service.
type CasesLoaded struct {
	Cases []domain.Case
	Err   error
}

// CaseSelected signals a case was chosen for viewing.
type CaseSelected struct {
	CaseID string
}

// ImagesLoaded carries a resolved image set back to the viewer.
// Seq is the request sequence number under which the fetch was issued;
// responses carrying a stale sequence are discarded so an older request
// can never overwrite a newer one.
type ImagesLoaded struct {
	CaseID string
	Seq    uint64
	Set    *domain.ImageSet
	Err    error
}

// DataChanged signals that the underlying attachment data changed and
// the current image set should be refreshed.
type DataChanged struct{}

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewCases is the case picker list.
	ViewCases ViewType = iota
	// ViewViewer is the image viewer.
	ViewViewer
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewCases:
		return "cases"
	case ViewViewer:
		return "viewer"
	default:
		return "unknown"
	}
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

// Quit signals the application should exit.
type Quit struct{}
