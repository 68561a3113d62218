// Package viewer provides the image viewer view component for the TUI.
// It hosts the domain viewer state machine and the image set loader:
// selecting a case issues an asynchronous fetch whose result is applied
// only when it belongs to the latest request.
package viewer

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/evidex-labs/caseview-cli/internal/adapters/driving/tui/keymap"
	"github.com/evidex-labs/caseview-cli/internal/adapters/driving/tui/messages"
	"github.com/evidex-labs/caseview-cli/internal/adapters/driving/tui/styles"
	"github.com/evidex-labs/caseview-cli/internal/core/domain"
	"github.com/evidex-labs/caseview-cli/internal/core/ports/driving"
	"github.com/evidex-labs/caseview-cli/internal/logger"
)

// View is the image viewer view.
type View struct {
	styles *styles.Styles
	keys   *keymap.KeyMap
	images driving.ImageService

	viewer *domain.Viewer
	caseID string
	seq    uint64
	width  int
	height int
	ready  bool
}

// NewView creates a new viewer view. urls may be nil.
func NewView(s *styles.Styles, images driving.ImageService, urls domain.URLBuilder) *View {
	return &View{
		styles: s,
		keys:   keymap.DefaultKeyMap(),
		images: images,
		viewer: domain.NewViewer(urls),
	}
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return nil
}

// SetCase selects the case whose images should be shown and starts the
// fetch. An empty caseID clears the viewer without issuing a query.
func (v *View) SetCase(caseID string) tea.Cmd {
	v.caseID = caseID
	if caseID == "" {
		v.viewer.Clear()
		return nil
	}
	v.seq++
	v.viewer.StartLoading()
	return v.load(caseID, v.seq)
}

// Refresh refetches the current case's images without entering the
// loading state. Used when the underlying data changes.
func (v *View) Refresh() tea.Cmd {
	if v.caseID == "" {
		return nil
	}
	v.seq++
	return v.load(v.caseID, v.seq)
}

// load returns a command that fetches the image set for the case.
// The sequence number is captured so stale responses can be recognised.
func (v *View) load(caseID string, seq uint64) tea.Cmd {
	return func() tea.Msg {
		if v.images == nil {
			return messages.ImagesLoaded{CaseID: caseID, Seq: seq, Err: fmt.Errorf("image service not available")}
		}
		set, err := v.images.GetImages(context.Background(), caseID)
		return messages.ImagesLoaded{CaseID: caseID, Seq: seq, Set: set, Err: err}
	}
}

// Update handles messages for the viewer view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		v.ready = true
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case tea.MouseMsg:
		return v.handleMouseMsg(msg)

	case messages.ImagesLoaded:
		return v.handleImagesLoaded(msg)

	case messages.DataChanged:
		return v, v.Refresh()
	}

	return v, nil
}

// handleImagesLoaded applies a fetch result, discarding stale responses:
// only the latest issued request may update the viewer.
func (v *View) handleImagesLoaded(msg messages.ImagesLoaded) (*View, tea.Cmd) {
	if msg.Seq != v.seq || msg.CaseID != v.caseID {
		logger.Debug("discarding stale image fetch for case %s (seq %d)", msg.CaseID, msg.Seq)
		return v, nil
	}

	if msg.Err != nil {
		v.viewer.Fail()
		logger.Warn("loading images for case %s: %v", msg.CaseID, msg.Err)
		return v, nil
	}

	v.viewer.SetImages(msg.Set)
	v.checkRenderable()
	return v, nil
}

// handleKeyMsg handles key presses.
func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch {
	case key.Matches(msg, v.keys.Previous):
		v.viewer.Previous()
		v.checkRenderable()
	case key.Matches(msg, v.keys.Next):
		v.viewer.Next()
		v.checkRenderable()
	case key.Matches(msg, v.keys.ZoomIn):
		v.viewer.ZoomIn()
	case key.Matches(msg, v.keys.ZoomOut):
		v.viewer.ZoomOut()
	case key.Matches(msg, v.keys.ResetZoom):
		v.viewer.ResetZoom()
	case key.Matches(msg, v.keys.Back):
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewCases}
		}
	}

	return v, nil
}

// handleMouseMsg maps pointer events onto the state machine: the wheel
// zooms and a left-button drag pans. Consuming the message here is what
// suppresses any other handling of the event.
func (v *View) handleMouseMsg(msg tea.MouseMsg) (*View, tea.Cmd) {
	switch {
	case msg.Button == tea.MouseButtonWheelUp:
		v.viewer.ZoomIn()
	case msg.Button == tea.MouseButtonWheelDown:
		v.viewer.ZoomOut()
	case msg.Button == tea.MouseButtonLeft && msg.Action == tea.MouseActionPress:
		v.viewer.StartDrag(float64(msg.X), float64(msg.Y))
	case msg.Action == tea.MouseActionMotion && v.viewer.IsDragging():
		v.viewer.Drag(float64(msg.X), float64(msg.Y))
	case msg.Action == tea.MouseActionRelease && v.viewer.IsDragging():
		v.viewer.EndDrag()
	}

	return v, nil
}

// checkRenderable marks a render failure when the selected image has no
// renderable source. Each failure produces one diagnostic entry.
func (v *View) checkRenderable() {
	if v.viewer.State() != domain.ViewerViewing || v.viewer.ErrorMessage() != "" {
		return
	}
	if v.viewer.ImageSource() != "" {
		return
	}
	img, _ := v.viewer.Current()
	v.viewer.MarkRenderFailure()
	logger.Warn("no renderable source for image %s", img.ID)
}

// View renders the viewer view.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render(v.viewer.CardTitle()))
	b.WriteString("\n\n")

	switch v.viewer.State() {
	case domain.ViewerLoading:
		b.WriteString(v.styles.Muted.Render("Loading images..."))

	case domain.ViewerError:
		b.WriteString(v.styles.Error.Render(v.viewer.ErrorMessage()))

	case domain.ViewerEmpty:
		b.WriteString(v.styles.Muted.Render(v.viewer.EmptyMessage()))

	case domain.ViewerViewing:
		v.renderImage(&b)
	}

	b.WriteString("\n\n")
	b.WriteString(v.renderHelp())

	return b.String()
}

// renderImage renders the selected image's surface and status lines.
func (v *View) renderImage(b *strings.Builder) {
	img, ok := v.viewer.Current()
	if !ok {
		return
	}

	if notice := v.viewer.ErrorMessage(); notice != "" {
		b.WriteString(v.styles.Warning.Render(notice))
		b.WriteString("\n\n")
	}

	surface := fmt.Sprintf("%s\n%s", img.Label(), v.styles.Muted.Render(v.viewer.ImageSource()))
	b.WriteString(v.styles.Frame.Render(surface))
	b.WriteString("\n\n")

	b.WriteString(v.styles.Subtitle.Render(v.viewer.Counter()))
	b.WriteString("\n")

	pan := v.viewer.Pan()
	status := fmt.Sprintf("Zoom %s  Pan (%.0f, %.0f)", v.viewer.ZoomPercent(), pan.X, pan.Y)
	if v.viewer.IsDragging() {
		status += "  dragging"
	}
	b.WriteString(v.styles.Normal.Render(status))
	b.WriteString("\n")
	b.WriteString(v.styles.Muted.Render(v.viewer.Transform()))
}

// renderHelp renders the help footer from the active keybindings.
func (v *View) renderHelp() string {
	parts := make([]string, 0, len(v.keys.ViewerHelp())+2)
	for _, b := range v.keys.ViewerHelp() {
		h := b.Help()
		parts = append(parts, fmt.Sprintf("[%s] %s", h.Key, h.Desc))
	}
	parts = append(parts, "[wheel] zoom", "[drag] pan")
	return v.styles.Help.Render(strings.Join(parts, "  "))
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
}

// Viewer exposes the underlying state machine.
func (v *View) Viewer() *domain.Viewer {
	return v.viewer
}

// CaseID returns the currently selected case, empty when none.
func (v *View) CaseID() string {
	return v.caseID
}
