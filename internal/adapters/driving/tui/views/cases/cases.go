// Package cases provides the case picker view component for the TUI.
package cases

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
)

// View is the case picker view.
type View struct {
	styles *styles.Styles
	keys   *keymap.KeyMap
	images driving.ImageService

	cases    []domain.Case
	selected int
	width    int
	height   int
	ready    bool
	loading  bool
	err      error
}

// NewView creates a new case picker view.
func NewView(s *styles.Styles, images driving.ImageService) *View {
	return &View{
		styles: s,
		keys:   keymap.DefaultKeyMap(),
		images: images,
	}
}

// Init starts loading the case list.
func (v *View) Init() tea.Cmd {
	return v.loadCases()
}

// loadCases returns a command that loads the selectable cases.
func (v *View) loadCases() tea.Cmd {
	v.loading = true
	return func() tea.Msg {
		if v.images == nil {
			return messages.CasesLoaded{Err: fmt.Errorf("image service not available")}
		}
		list, err := v.images.ListCases(context.Background())
		return messages.CasesLoaded{Cases: list, Err: err}
	}
}

// Update handles messages for the case picker view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		v.ready = true
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.CasesLoaded:
		v.loading = false
		if msg.Err != nil {
			v.err = msg.Err
			v.cases = nil
			return v, nil
		}
		v.err = nil
		v.cases = msg.Cases
		if v.selected >= len(v.cases) {
			v.selected = 0
		}
		return v, nil
	}

	return v, nil
}

// handleKeyMsg handles key presses.
func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch {
	case key.Matches(msg, v.keys.Up):
		if v.selected > 0 {
			v.selected--
		}
	case key.Matches(msg, v.keys.Down):
		if v.selected < len(v.cases)-1 {
			v.selected++
		}
	case key.Matches(msg, v.keys.Select):
		if len(v.cases) == 0 {
			return v, nil
		}
		id := v.cases[v.selected].ID
		return v, func() tea.Msg {
			return messages.CaseSelected{CaseID: id}
		}
	case msg.String() == "r":
		return v, v.loadCases()
	}

	return v, nil
}

// View renders the case picker view.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Cases"))
	b.WriteString("\n\n")

	switch {
	case v.loading:
		b.WriteString(v.styles.Muted.Render("Loading cases..."))

	case v.err != nil:
		b.WriteString(v.styles.Error.Render(fmt.Sprintf("Error: %s", v.err.Error())))

	case len(v.cases) == 0:
		b.WriteString(v.styles.Muted.Render("No cases found."))

	default:
		for i, c := range v.cases {
			line := c.ID
			if c.Subject != "" {
				line += "  " + c.Subject
			}
			if c.HasParent() {
				line += "  (child of " + *c.ParentID + ")"
			}
			if i == v.selected {
				b.WriteString(v.styles.Selected.Render("> " + line))
			} else {
				b.WriteString(v.styles.Normal.Render("  " + line))
			}
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(v.renderHelp())

	return b.String()
}

// renderHelp renders the help footer from the active keybindings.
func (v *View) renderHelp() string {
	parts := make([]string, 0, len(v.keys.CasesHelp())+1)
	for _, b := range v.keys.CasesHelp() {
		h := b.Help()
		parts = append(parts, fmt.Sprintf("[%s] %s", h.Key, h.Desc))
	}
	parts = append(parts, "[r] reload")
	return v.styles.Help.Render(strings.Join(parts, "  "))
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
}

// Selected returns the highlighted case index.
func (v *View) Selected() int {
	return v.selected
}

// Cases returns the loaded cases.
func (v *View) Cases() []domain.Case {
	return v.cases
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}
