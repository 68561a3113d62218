package cli

import (
	"errors"
	"fmt"
	"os"
	"runtime/debug"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/evidex-labs/caseview-cli/internal/adapters/driving/tui"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive image viewer",
	Long: `Launch the interactive terminal user interface for caseview.

Pick a case from the list to open its image viewer. When the case has a
parent, the parent's images are shown instead of the case's own.

Controls:
  ↑/k, ↓/j   - Navigate cases
  Enter      - Open viewer
  ←/h, →/l   - Previous / next image
  +/-, wheel - Zoom in / out
  0          - Reset zoom
  drag       - Pan (when zoomed)
  Esc        - Back to case list
  q          - Quit`,
	RunE: runTUI,
}

var tuiCase string

func init() {
	tuiCmd.Flags().StringVar(&tuiCase, "case", "", "open the viewer directly on this case")
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, _ []string) error {
	// Add panic recovery to get stack traces
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in TUI: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
		}
	}()

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return errors.New("the interactive viewer requires a terminal; use 'caseview images' instead")
	}

	if imageService == nil {
		return errors.New("image service not configured")
	}

	ports := tui.NewPorts(imageService, urlBuilder).WithChanges(changeChannel)

	app, err := tui.NewApp(ports)
	if err != nil {
		return fmt.Errorf("failed to create TUI: %w", err)
	}

	app.WithContext(cmd.Context())
	if tuiCase != "" {
		app.WithInitialCase(tuiCase)
	}

	if err := app.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
