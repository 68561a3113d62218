// Package cli provides the command line interface for caseview.
// It implements a driving adapter following hexagonal architecture principles.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/evidex-labs/caseview-cli/internal/core/ports/driven"
	"github.com/evidex-labs/caseview-cli/internal/core/ports/driving"
	"github.com/evidex-labs/caseview-cli/internal/logger"
)

// version is the binary version, overridable at build time via ldflags.
var version = "dev"

// Injected services. The composition root wires these before Execute.
var (
	imageService    driving.ImageService
	attachmentStore driven.AttachmentStore
	urlBuilder      driven.URLBuilder
	changeChannel   <-chan struct{}
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "caseview",
	Short: "Browse image attachments on support cases",
	Long: `caseview shows the image attachments of support cases.

When a case has a parent, the parent's images are shown in preference
to the case's own. Run without a subcommand to launch the interactive
viewer.`,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
	RunE: runTUI,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

// SetVersion overrides the reported version.
func SetVersion(v string) {
	version = v
}

// SetImageService injects the image resolution service.
func SetImageService(s driving.ImageService) {
	imageService = s
}

// SetAttachmentStore injects the attachment store used by write commands.
func SetAttachmentStore(s driven.AttachmentStore) {
	attachmentStore = s
}

// SetURLBuilder injects the download URL strategy.
func SetURLBuilder(b driven.URLBuilder) {
	urlBuilder = b
}

// SetChangeChannel injects the data-change notification channel.
func SetChangeChannel(ch <-chan struct{}) {
	changeChannel = ch
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// RootCmd returns the root command (for testing).
func RootCmd() *cobra.Command {
	return rootCmd
}
