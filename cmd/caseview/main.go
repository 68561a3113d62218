// Command caseview browses the image attachments of support cases.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/evidex-labs/caseview-cli/internal/adapters/driven/config/file"
	"github.com/evidex-labs/caseview-cli/internal/adapters/driven/rendition"
	"github.com/evidex-labs/caseview-cli/internal/adapters/driven/storage/rest"
	"github.com/evidex-labs/caseview-cli/internal/adapters/driven/storage/sqlite"
	"github.com/evidex-labs/caseview-cli/internal/adapters/driven/watch"
	"github.com/evidex-labs/caseview-cli/internal/adapters/driving/cli"
	"github.com/evidex-labs/caseview-cli/internal/core/ports/driven"
	"github.com/evidex-labs/caseview-cli/internal/core/services"
	"github.com/evidex-labs/caseview-cli/internal/logger"
)

// version is injected at build time via
// -ldflags "-X main.version=v.X.Y.Z".
var version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "caseview: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cli.SetVersion(version)

	cfg, err := file.NewConfigStore("")
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}
	settings := cfg.Settings()

	store, dataDir, err := buildStore(settings)
	if err != nil {
		return err
	}
	if closer, ok := store.(interface{ Close() error }); ok {
		defer closer.Close()
	}

	svc := services.NewImageService(store, settings.Images.Extensions)
	cli.SetImageService(svc)
	cli.SetAttachmentStore(store)

	if settings.Rendition.BaseURL != "" {
		cli.SetURLBuilder(rendition.NewBuilder(settings.Rendition.BaseURL, settings.Rendition.Template))
	}

	// Local storage can signal data changes to a running viewer.
	if dataDir != "" {
		w, err := watch.New(dataDir, nil)
		if err != nil {
			logger.Warn("data watch unavailable: %v", err)
		} else {
			defer w.Close()
			cli.SetChangeChannel(w.Changes())
		}
	}

	return cli.Execute()
}

// buildStore creates the attachment store selected by configuration.
// The returned dataDir is non-empty only for local storage, where it is
// the directory to watch for changes.
func buildStore(settings file.Settings) (driven.AttachmentStore, string, error) {
	backend := strings.ToLower(settings.Storage.Backend)

	switch backend {
	case "", "sqlite":
		store, err := sqlite.NewStore(settings.Storage.DataDir)
		if err != nil {
			return nil, "", fmt.Errorf("opening local storage: %w", err)
		}
		return store, filepath.Dir(store.Path()), nil

	case "rest":
		store, err := rest.NewStore(rest.Config{
			BaseURL:      settings.API.BaseURL,
			TokenURL:     settings.API.TokenURL,
			ClientID:     settings.API.ClientID,
			ClientSecret: settings.API.ClientSecret,
			Timeout:      time.Duration(settings.API.TimeoutSeconds) * time.Second,
		})
		if err != nil {
			return nil, "", fmt.Errorf("configuring record API: %w", err)
		}
		return store, "", nil

	default:
		return nil, "", fmt.Errorf("unknown storage backend %q", backend)
	}
}
