package tui

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/evidex-labs/caseview-cli/internal/adapters/driving/tui/messages"
	"github.com/evidex-labs/caseview-cli/internal/core/domain"
)

func newTestPorts() *Ports {
	images := &MockImageService{
		GetImagesFunc: func(ctx context.Context, caseID string) (*domain.ImageSet, error) {
			return &domain.ImageSet{Images: []domain.Image{
				{ID: "img-1", Title: "photo", FileExtension: "png", DataURL: "data:image/png;base64,AAAA"},
			}}, nil
		},
		ListCasesFunc: func(ctx context.Context) ([]domain.Case, error) {
			return []domain.Case{{ID: "case-1", Subject: "Broken widget"}}, nil
		},
	}
	return NewPorts(images, stubURLBuilder{})
}

// openViewer navigates the app from the case picker into the viewer.
func openViewer(t *testing.T, app *App) {
	t.Helper()

	app.SetDimensions(80, 24)
	model, cmd := app.Update(messages.CaseSelected{CaseID: "case-1"})
	require.NotNil(t, cmd)
	require.Equal(t, app, model)

	loaded, ok := cmd().(messages.ImagesLoaded)
	require.True(t, ok)
	app.Update(loaded)
}

func TestNewApp_Success(t *testing.T) {
	app, err := NewApp(newTestPorts())

	require.NoError(t, err)
	require.NotNil(t, app)
	assert.Equal(t, messages.ViewCases, app.CurrentView())
}

func TestNewApp_InvalidPorts(t *testing.T) {
	app, err := NewApp(&Ports{})

	assert.ErrorIs(t, err, ErrMissingImageService)
	assert.Nil(t, app)
}

func TestApp_WithContext(t *testing.T) {
	app, _ := NewApp(newTestPorts())

	type contextKey string
	ctx := context.WithValue(context.Background(), contextKey("key"), "value")
	result := app.WithContext(ctx)

	assert.Equal(t, app, result)
}

func TestApp_Init(t *testing.T) {
	app, _ := NewApp(newTestPorts())

	assert.NotNil(t, app.Init())
}

func TestApp_WithInitialCase(t *testing.T) {
	app, _ := NewApp(newTestPorts())
	app.WithInitialCase("case-1")

	cmd := app.Init()
	require.NotNil(t, cmd)

	// The batch contains a command emitting the initial selection.
	batch, ok := cmd().(tea.BatchMsg)
	require.True(t, ok)

	found := false
	for _, c := range batch {
		if c == nil {
			continue
		}
		if sel, ok := c().(messages.CaseSelected); ok {
			found = true
			assert.Equal(t, "case-1", sel.CaseID)
		}
	}
	assert.True(t, found)
}

func TestApp_Update_WindowSize(t *testing.T) {
	app, _ := NewApp(newTestPorts())

	model, cmd := app.Update(tea.WindowSizeMsg{Width: 80, Height: 24})

	assert.Nil(t, cmd)
	assert.True(t, model.(*App).Ready())
}

func TestApp_Update_CtrlCQuits(t *testing.T) {
	app, _ := NewApp(newTestPorts())

	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyCtrlC})

	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestApp_Update_QQuitsFromCases(t *testing.T) {
	app, _ := NewApp(newTestPorts())

	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})

	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestApp_Update_CaseSelected_OpensViewer(t *testing.T) {
	app, _ := NewApp(newTestPorts())

	openViewer(t, app)

	assert.Equal(t, messages.ViewViewer, app.CurrentView())
	assert.Equal(t, domain.ViewerViewing, app.viewerView.Viewer().State())
}

func TestApp_Update_EscReturnsToCases(t *testing.T) {
	app, _ := NewApp(newTestPorts())
	openViewer(t, app)

	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)

	changed, ok := cmd().(messages.ViewChanged)
	require.True(t, ok)

	app.Update(changed)
	assert.Equal(t, messages.ViewCases, app.CurrentView())
}

func TestApp_Update_MouseOnlyReachesViewer(t *testing.T) {
	app, _ := NewApp(newTestPorts())
	app.SetDimensions(80, 24)

	// In the case picker, mouse input is ignored.
	_, cmd := app.Update(tea.MouseMsg{Button: tea.MouseButtonWheelUp, Action: tea.MouseActionPress})
	assert.Nil(t, cmd)

	openViewer(t, app)
	app.Update(tea.MouseMsg{Button: tea.MouseButtonWheelUp, Action: tea.MouseActionPress})

	assert.Equal(t, domain.MinZoom+domain.ZoomStep, app.viewerView.Viewer().Zoom())
}

func TestApp_Update_ErrorOccurred(t *testing.T) {
	app, _ := NewApp(newTestPorts())

	app.Update(messages.ErrorOccurred{Err: errors.New("boom")})

	assert.EqualError(t, app.Err(), "boom")
}

func TestApp_Update_QuitMessage(t *testing.T) {
	app, _ := NewApp(newTestPorts())

	_, cmd := app.Update(messages.Quit{})

	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestApp_Update_DataChanged_RefreshesViewer(t *testing.T) {
	ch := make(chan struct{}, 1)
	ports := newTestPorts().WithChanges(ch)
	app, _ := NewApp(ports)
	openViewer(t, app)

	_, cmd := app.Update(messages.DataChanged{})

	// Refresh plus the re-armed subscription.
	assert.NotNil(t, cmd)
}

func TestApp_WaitForChange(t *testing.T) {
	ch := make(chan struct{}, 1)
	app, _ := NewApp(newTestPorts().WithChanges(ch))

	cmd := app.waitForChange()
	require.NotNil(t, cmd)

	ch <- struct{}{}
	_, ok := cmd().(messages.DataChanged)
	assert.True(t, ok)
}

func TestApp_WaitForChange_NoChannel(t *testing.T) {
	app, _ := NewApp(newTestPorts())

	assert.Nil(t, app.waitForChange())
}

func TestApp_View_NotReady(t *testing.T) {
	app, _ := NewApp(newTestPorts())

	assert.Contains(t, app.View(), "Initialising")
}

func TestApp_View_Cases(t *testing.T) {
	app, _ := NewApp(newTestPorts())
	app.SetDimensions(80, 24)
	app.Update(messages.CasesLoaded{Cases: []domain.Case{{ID: "case-1"}}})

	assert.Contains(t, app.View(), "case-1")
}

func TestApp_View_Viewer(t *testing.T) {
	app, _ := NewApp(newTestPorts())
	openViewer(t, app)

	assert.Contains(t, app.View(), "Case Images")
}
