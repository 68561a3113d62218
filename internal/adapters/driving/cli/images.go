package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/evidex-labs/caseview-cli/internal/core/domain"
)

var imagesJSON bool

var imagesCmd = &cobra.Command{
	Use:   "images [case-id]",
	Short: "List the image attachments of a case",
	Long: `Resolves and lists the image attachments shown for a case.

When the case has a parent, the parent's images are listed instead of
the case's own. Without a case ID the known cases are listed.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runImages,
}

func init() {
	imagesCmd.Flags().BoolVar(&imagesJSON, "json", false, "output as JSON")
	rootCmd.AddCommand(imagesCmd)
}

func runImages(cmd *cobra.Command, args []string) error {
	if imageService == nil {
		return errors.New("image service not configured")
	}

	ctx := context.Background()

	if len(args) == 0 {
		return listCases(cmd, ctx)
	}
	return listImages(cmd, ctx, args[0])
}

func listCases(cmd *cobra.Command, ctx context.Context) error {
	cases, err := imageService.ListCases(ctx)
	if err != nil {
		return fmt.Errorf("listing cases failed: %w", err)
	}

	if imagesJSON {
		return outputJSON(cmd, cases)
	}

	if len(cases) == 0 {
		cmd.Println("No cases found.")
		return nil
	}

	for _, c := range cases {
		line := c.ID
		if c.Subject != "" {
			line += "  " + c.Subject
		}
		if c.HasParent() {
			line += fmt.Sprintf("  (child of %s)", *c.ParentID)
		}
		cmd.Println(line)
	}
	return nil
}

func listImages(cmd *cobra.Command, ctx context.Context, caseID string) error {
	set, err := imageService.GetImages(ctx, caseID)
	if err != nil {
		return fmt.Errorf("resolving images failed: %w", err)
	}

	if imagesJSON {
		return outputJSON(cmd, set)
	}

	if set.FromParent {
		cmd.Println("Parent Case Images")
	} else {
		cmd.Println("Case Images")
	}
	cmd.Println()

	if set.Len() == 0 {
		if set.FromParent {
			cmd.Println(domain.EmptyParentMessage)
		} else {
			cmd.Println(domain.EmptyOwnMessage)
		}
		return nil
	}

	for i, img := range set.Images {
		cmd.Printf("  [%d/%d] %s\n", i+1, set.Len(), img.Label())
		switch {
		case img.DataURL != "":
			cmd.Println("        source: embedded data URL")
		case urlBuilder != nil:
			cmd.Printf("        source: %s\n", urlBuilder.DownloadURL(img.ID))
		default:
			cmd.Println("        source: unavailable")
		}
	}
	return nil
}

func outputJSON(cmd *cobra.Command, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	cmd.Println(string(data))
	return nil
}
