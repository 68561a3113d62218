package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/evidex-labs/caseview-cli/internal/adapters/driving/tui/messages"
	"github.com/evidex-labs/caseview-cli/internal/adapters/driving/tui/styles"
	"github.com/evidex-labs/caseview-cli/internal/adapters/driving/tui/views/cases"
	"github.com/evidex-labs/caseview-cli/internal/adapters/driving/tui/views/viewer"
)

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	// ports provides access to core services via ports.
	ports *Ports

	// ctx is the context for cancellation.
	ctx context.Context

	// styles holds the TUI styles.
	styles *styles.Styles

	// casesView is the case picker view.
	casesView *cases.View

	// viewerView is the image viewer view.
	viewerView *viewer.View

	// currentView tracks which view is active.
	currentView messages.ViewType

	// initialCase, when set, opens the viewer directly on startup.
	initialCase string

	// err holds the last error that occurred.
	err error

	// width and height are terminal dimensions.
	width  int
	height int

	// ready indicates if the app has initialised.
	ready bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()

	return &App{
		ports:       ports,
		ctx:         context.Background(),
		styles:      s,
		casesView:   cases.NewView(s, ports.Images),
		viewerView:  viewer.NewView(s, ports.Images, ports.URLs),
		currentView: messages.ViewCases,
	}, nil
}

// WithContext sets the context for the app.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	return a
}

// WithInitialCase makes the app open the viewer on the given case
// instead of starting at the case picker.
func (a *App) WithInitialCase(caseID string) *App {
	a.initialCase = caseID
	return a
}

// Init implements tea.Model.
// It runs initial commands when the program starts.
func (a *App) Init() tea.Cmd {
	cmds := []tea.Cmd{
		tea.EnterAltScreen,
		tea.SetWindowTitle("caseview - Case Images"),
		a.casesView.Init(),
	}
	if a.initialCase != "" {
		caseID := a.initialCase
		cmds = append(cmds, func() tea.Msg {
			return messages.CaseSelected{CaseID: caseID}
		})
	}
	if cmd := a.waitForChange(); cmd != nil {
		cmds = append(cmds, cmd)
	}
	return tea.Batch(cmds...)
}

// waitForChange returns a command that blocks until the data-change
// channel fires, then reports it as a DataChanged message. The command
// is re-issued after every notification so the subscription stays live.
func (a *App) waitForChange() tea.Cmd {
	if a.ports.Changes == nil {
		return nil
	}
	ch := a.ports.Changes
	return func() tea.Msg {
		if _, ok := <-ch; !ok {
			return nil
		}
		return messages.DataChanged{}
	}
}

// Update implements tea.Model.
// It handles messages and updates the model state.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.ready = true
		// Forward to all views for proper sizing
		a.casesView.SetDimensions(msg.Width, msg.Height)
		a.viewerView.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		// Global quit with ctrl+c
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}

		switch a.currentView {
		case messages.ViewCases:
			if msg.String() == "q" {
				return a, tea.Quit
			}
			a.casesView, cmd = a.casesView.Update(msg)
			return a, cmd

		case messages.ViewViewer:
			a.viewerView, cmd = a.viewerView.Update(msg)
			return a, cmd
		}
		return a, nil

	case tea.MouseMsg:
		// Mouse interaction only drives the viewer.
		if a.currentView == messages.ViewViewer {
			a.viewerView, cmd = a.viewerView.Update(msg)
			return a, cmd
		}
		return a, nil

	case messages.CasesLoaded:
		a.casesView, cmd = a.casesView.Update(msg)
		a.err = a.casesView.Err()
		return a, cmd

	case messages.CaseSelected:
		a.currentView = messages.ViewViewer
		return a, a.viewerView.SetCase(msg.CaseID)

	case messages.ImagesLoaded:
		a.viewerView, cmd = a.viewerView.Update(msg)
		return a, cmd

	case messages.DataChanged:
		// Re-arm the subscription alongside the refresh.
		return a, tea.Batch(a.viewerView.Refresh(), a.waitForChange())

	case messages.ViewChanged:
		a.currentView = msg.View
		if msg.View == messages.ViewCases {
			return a, a.casesView.Init()
		}
		return a, nil

	case messages.ErrorOccurred:
		a.err = msg.Err
		return a, nil

	case messages.Quit:
		return a, tea.Quit
	}

	// Forward other messages to the active view.
	switch a.currentView {
	case messages.ViewCases:
		a.casesView, cmd = a.casesView.Update(msg)
	case messages.ViewViewer:
		a.viewerView, cmd = a.viewerView.Update(msg)
	}

	return a, cmd
}

// View implements tea.Model.
// It renders the current view as a string.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	switch a.currentView {
	case messages.ViewViewer:
		return a.viewerView.View()
	default:
		return a.casesView.View()
	}
}

// Run starts the TUI application.
func (a *App) Run() error {
	p := tea.NewProgram(a, tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err := p.Run()
	return err
}

// CurrentView returns the current view type.
func (a *App) CurrentView() messages.ViewType {
	return a.currentView
}

// Err returns the last error that occurred.
func (a *App) Err() error {
	return a.err
}

// Ready returns whether the app has been initialised.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sets the terminal dimensions (for testing).
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	a.casesView.SetDimensions(width, height)
	a.viewerView.SetDimensions(width, height)
}
