package domain

import (
	"fmt"
	"strconv"
)

// Zoom and pan bounds for the viewer.
const (
	// MinZoom is the minimum (and initial) zoom factor.
	MinZoom = 1.0

	// MaxZoom is the maximum zoom factor.
	MaxZoom = 4.0

	// ZoomStep is the increment applied per zoom action.
	ZoomStep = 0.25

	// PanRange is the pan limit per unit of zoom, in pixels.
	// At zoom z the pan offset is clamped to ±(PanRange×z) on each axis.
	PanRange = 100.0
)

// User-facing messages for viewer failure states.
const (
	// FetchErrorMessage is shown when the image query fails.
	FetchErrorMessage = "There was an error loading the images. Please try again."

	// RenderErrorMessage is shown when a single image cannot be displayed.
	RenderErrorMessage = "This image cannot be displayed. The format may be unsupported."

	// EmptyParentMessage is shown when the parent case has no images.
	EmptyParentMessage = "No images found on the parent case."

	// EmptyOwnMessage is shown when the case itself has no images.
	EmptyOwnMessage = "No images found on this case."
)

// Offset is a 2D translation in pixels.
type Offset struct {
	X float64
	Y float64
}

// ViewerState identifies the mutually exclusive display states of the viewer.
type ViewerState int

const (
	// ViewerLoading means a fetch is in flight.
	ViewerLoading ViewerState = iota

	// ViewerError means the fetch failed and no images are available.
	ViewerError

	// ViewerEmpty means the fetch succeeded with zero images.
	ViewerEmpty

	// ViewerViewing means at least one image is available.
	ViewerViewing
)

// String returns the string representation of the viewer state.
func (s ViewerState) String() string {
	switch s {
	case ViewerLoading:
		return "loading"
	case ViewerError:
		return "error"
	case ViewerEmpty:
		return "empty"
	case ViewerViewing:
		return "viewing"
	default:
		return "unknown"
	}
}

// URLBuilder derives a download URL from a stored image identifier.
// The concrete strategy is environment-specific and supplied by an adapter.
type URLBuilder interface {
	DownloadURL(imageID string) string
}

// Viewer is the image viewer state machine. It owns the current selection
// index and the zoom/pan transform over the active ImageSet, and derives
// all presentational values from that state. It holds no other state and
// is single-owner: all mutation happens synchronously in event handlers.
type Viewer struct {
	urls URLBuilder

	set     *ImageSet
	index   int
	zoom    float64
	pan     Offset
	drag    bool
	anchor  Offset
	loading bool
	errMsg  string
}

// NewViewer creates a viewer in its initial empty state.
// urls may be nil, in which case no download URLs are derived.
func NewViewer(urls URLBuilder) *Viewer {
	return &Viewer{urls: urls, zoom: MinZoom}
}

// StartLoading marks a fetch as in flight.
func (v *Viewer) StartLoading() {
	v.loading = true
	v.errMsg = ""
}

// SetImages replaces the image set and resets the view state to its
// defaults: first image selected, minimum zoom, pan at origin.
func (v *Viewer) SetImages(set *ImageSet) {
	v.set = set
	v.index = 0
	v.loading = false
	v.errMsg = ""
	v.resetTransform()
}

// Clear returns the viewer to its initial empty state. Used when no case
// is selected; no fetch is issued for an absent identifier.
func (v *Viewer) Clear() {
	v.set = nil
	v.index = 0
	v.loading = false
	v.errMsg = ""
	v.resetTransform()
}

// Fail records a fetch failure. The image set is cleared; the viewer
// shows the generic fetch error until a new fetch replaces it.
func (v *Viewer) Fail() {
	v.set = nil
	v.index = 0
	v.loading = false
	v.errMsg = FetchErrorMessage
	v.resetTransform()
}

// MarkRenderFailure records that the current image could not be displayed.
// The image set and selection are unchanged so navigation remains possible.
func (v *Viewer) MarkRenderFailure() {
	if v.State() != ViewerViewing {
		return
	}
	v.errMsg = RenderErrorMessage
}

// State derives the current viewer state.
func (v *Viewer) State() ViewerState {
	switch {
	case v.loading:
		return ViewerLoading
	case v.set.Len() > 0:
		return ViewerViewing
	case v.errMsg != "":
		return ViewerError
	default:
		return ViewerEmpty
	}
}

// Next advances to the next image. Saturating: a no-op on the last image.
// Moving the selection resets zoom and pan and clears any render notice.
func (v *Viewer) Next() {
	if v.State() != ViewerViewing || v.index >= v.set.Len()-1 {
		return
	}
	v.index++
	v.errMsg = ""
	v.resetTransform()
}

// Previous moves to the previous image. Saturating: a no-op on the first.
func (v *Viewer) Previous() {
	if v.State() != ViewerViewing || v.index <= 0 {
		return
	}
	v.index--
	v.errMsg = ""
	v.resetTransform()
}

// ZoomIn increases zoom by one step, clamped to MaxZoom.
func (v *Viewer) ZoomIn() {
	if v.State() != ViewerViewing || v.zoom >= MaxZoom {
		return
	}
	v.zoom = min(v.zoom+ZoomStep, MaxZoom)
}

// ZoomOut decreases zoom by one step, clamped to MinZoom.
// The pan is re-clamped to the shrunken range so the offset never
// exceeds ±(PanRange×zoom); reaching minimum zoom returns it to the
// origin.
func (v *Viewer) ZoomOut() {
	if v.State() != ViewerViewing || v.zoom <= MinZoom {
		return
	}
	v.zoom = max(v.zoom-ZoomStep, MinZoom)
	if v.zoom == MinZoom {
		v.pan = Offset{}
		return
	}
	limit := PanRange * v.zoom
	v.pan = Offset{
		X: clamp(v.pan.X, -limit, limit),
		Y: clamp(v.pan.Y, -limit, limit),
	}
}

// ResetZoom returns zoom to minimum and pan to the origin. Idempotent.
func (v *Viewer) ResetZoom() {
	if v.State() != ViewerViewing {
		return
	}
	v.zoom = MinZoom
	v.pan = Offset{}
}

// StartDrag begins a pan drag from the given pointer position.
// Dragging is only meaningful above minimum zoom; otherwise a no-op.
func (v *Viewer) StartDrag(x, y float64) {
	if v.State() != ViewerViewing || v.zoom <= MinZoom {
		return
	}
	v.drag = true
	v.anchor = Offset{X: x - v.pan.X, Y: y - v.pan.Y}
}

// Drag updates the pan from the given pointer position. The candidate
// offset is clamped per axis to ±(PanRange×zoom).
func (v *Viewer) Drag(x, y float64) {
	if !v.drag || v.zoom <= MinZoom {
		return
	}
	limit := PanRange * v.zoom
	v.pan = Offset{
		X: clamp(x-v.anchor.X, -limit, limit),
		Y: clamp(y-v.anchor.Y, -limit, limit),
	}
}

// EndDrag finishes a drag. Also used when the pointer leaves the surface.
func (v *Viewer) EndDrag() {
	v.drag = false
}

// Set returns the active image set, which may be nil.
func (v *Viewer) Set() *ImageSet {
	return v.set
}

// Index returns the selected image index. Meaningless when the set is empty.
func (v *Viewer) Index() int {
	return v.index
}

// Zoom returns the current zoom factor.
func (v *Viewer) Zoom() float64 {
	return v.zoom
}

// Pan returns the current pan offset.
func (v *Viewer) Pan() Offset {
	return v.pan
}

// IsDragging returns true while a drag is in progress.
func (v *Viewer) IsDragging() bool {
	return v.drag
}

// Current returns the selected image, and false when none is available.
func (v *Viewer) Current() (Image, bool) {
	if v.set.Len() == 0 {
		return Image{}, false
	}
	return v.set.Images[v.index], true
}

// CardTitle returns the header title, which depends on the image source.
func (v *Viewer) CardTitle() string {
	if v.set != nil && v.set.FromParent {
		return "Parent Case Images"
	}
	return "Case Images"
}

// EmptyMessage returns the message for the empty state.
func (v *Viewer) EmptyMessage() string {
	if v.set != nil && v.set.FromParent {
		return EmptyParentMessage
	}
	return EmptyOwnMessage
}

// ErrorMessage returns the active failure message, empty when none.
func (v *Viewer) ErrorMessage() string {
	return v.errMsg
}

// Counter returns the human-readable position counter ("Image 2 of 5").
func (v *Viewer) Counter() string {
	return fmt.Sprintf("Image %d of %d", v.index+1, v.set.Len())
}

// ZoomPercent returns the zoom level as a percentage label ("150%").
func (v *Viewer) ZoomPercent() string {
	return strconv.Itoa(int(v.zoom*100)) + "%"
}

// Transform returns the CSS-equivalent transform for the current zoom
// and pan, e.g. "scale(2) translate(40px, -12px)".
func (v *Viewer) Transform() string {
	return fmt.Sprintf("scale(%s) translate(%spx, %spx)",
		formatFloat(v.zoom), formatFloat(v.pan.X), formatFloat(v.pan.Y))
}

// ImageSource returns the render source for the selected image: the
// embedded data URL when present, else a download URL derived from the
// image identifier.
func (v *Viewer) ImageSource() string {
	img, ok := v.Current()
	if !ok {
		return ""
	}
	if img.DataURL != "" {
		return img.DataURL
	}
	if v.urls == nil {
		return ""
	}
	return v.urls.DownloadURL(img.ID)
}

// IsFirstImage returns true when the first image is selected.
func (v *Viewer) IsFirstImage() bool {
	return v.index == 0
}

// IsLastImage returns true when the last image is selected.
func (v *Viewer) IsLastImage() bool {
	return v.index >= v.set.Len()-1
}

// IsMinZoom returns true at minimum zoom.
func (v *Viewer) IsMinZoom() bool {
	return v.zoom == MinZoom
}

// IsMaxZoom returns true at maximum zoom.
func (v *Viewer) IsMaxZoom() bool {
	return v.zoom == MaxZoom
}

// CanDrag returns true when panning is possible (zoomed in).
func (v *Viewer) CanDrag() bool {
	return v.State() == ViewerViewing && v.zoom > MinZoom
}

func (v *Viewer) resetTransform() {
	v.zoom = MinZoom
	v.pan = Offset{}
	v.drag = false
	v.anchor = Offset{}
}

func clamp(val, lo, hi float64) float64 {
	if val < lo {
		return lo
	}
	if val > hi {
		return hi
	}
	return val
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
