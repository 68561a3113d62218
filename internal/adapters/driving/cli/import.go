package cli

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/evidex-labs/caseview-cli/internal/core/domain"
)

var (
	importSubject string
	importParent  string
	importCaseID  string
	importEmbed   bool
)

var importCmd = &cobra.Command{
	Use:   "import [files...]",
	Short: "Create a case from image files",
	Long: `Creates a case and attaches the given files as images.

Attachment order follows the argument order. With --embed the file
contents are stored inline as data URLs so the viewer can render them
without a download endpoint.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runImport,
}

func init() {
	importCmd.Flags().StringVarP(&importSubject, "subject", "s", "", "case subject")
	importCmd.Flags().StringVar(&importParent, "parent", "", "parent case ID")
	importCmd.Flags().StringVar(&importCaseID, "case", "", "attach to an existing case instead of creating one")
	importCmd.Flags().BoolVar(&importEmbed, "embed", true, "embed file contents as data URLs")
	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	if attachmentStore == nil {
		return errors.New("attachment store not configured")
	}

	ctx := context.Background()

	caseID := importCaseID
	if caseID == "" {
		c := &domain.Case{
			ID:        uuid.NewString(),
			Subject:   importSubject,
			CreatedAt: time.Now().UTC(),
		}
		if importParent != "" {
			if _, err := attachmentStore.GetCase(ctx, importParent); err != nil {
				return fmt.Errorf("parent case %s: %w", importParent, err)
			}
			c.ParentID = &importParent
		}
		if err := attachmentStore.SaveCase(ctx, c); err != nil {
			return fmt.Errorf("creating case failed: %w", err)
		}
		caseID = c.ID
		cmd.Printf("Created case %s\n", caseID)
	} else if _, err := attachmentStore.GetCase(ctx, caseID); err != nil {
		return fmt.Errorf("case %s: %w", caseID, err)
	}

	for _, path := range args {
		img, err := imageFromFile(path)
		if err != nil {
			return err
		}
		if err := attachmentStore.SaveImage(ctx, caseID, img); err != nil {
			return fmt.Errorf("attaching %s failed: %w", path, err)
		}
		cmd.Printf("Attached %s (%s)\n", img.Label(), img.ID)
	}

	return nil
}

// imageFromFile builds an image attachment from a file on disk.
// The extension is taken from the file name and lowercased.
func imageFromFile(path string) (domain.Image, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	if ext == "" {
		return domain.Image{}, fmt.Errorf("%s: cannot determine file extension", path)
	}

	img := domain.Image{
		ID:            uuid.NewString(),
		Title:         strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)),
		FileExtension: ext,
	}

	if importEmbed {
		data, err := os.ReadFile(path)
		if err != nil {
			return domain.Image{}, fmt.Errorf("reading %s: %w", path, err)
		}
		img.DataURL = dataURL(ext, data)
	}

	return img, nil
}

// dataURL encodes file contents as a base64 data URL.
func dataURL(ext string, data []byte) string {
	mime := "image/" + ext
	if ext == "jpg" {
		mime = "image/jpeg"
	}
	if ext == "svg" {
		mime = "image/svg+xml"
	}
	return fmt.Sprintf("data:%s;base64,%s", mime, base64.StdEncoding.EncodeToString(data))
}
