// filepath: internal/cli/transfer.go
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"mediacatalog/internal/logging"
	"mediacatalog/internal/models"
	"mediacatalog/internal/services"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Replace the store content with a JSON document",
	Long: `Loads a document of the form {"media": [...], "user": [...]} into the configured store.
Existing content is replaced. Plaintext user passwords are hashed on the way in.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runImport(cmd.Context(), args[0])
	},
}

var exportCmd = &cobra.Command{
	Use:   "export <file>",
	Short: "Write the store content as a JSON document",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runExport(cmd.Context(), args[0])
	},
}

func runImport(ctx context.Context, path string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	var doc models.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}

	repo, err := openRepository(ctx, cfg)
	if err != nil {
		return err
	}
	defer repo.Close()

	if err := services.NewTransferService(repo).Import(ctx, &doc); err != nil {
		return err
	}
	logging.Log.Infof("Imported %d media items and %d users from '%s'", len(doc.Media), len(doc.User), path)
	return nil
}

func runExport(ctx context.Context, path string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	repo, err := openRepository(ctx, cfg)
	if err != nil {
		return err
	}
	defer repo.Close()

	doc, err := services.NewTransferService(repo).Export(ctx)
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode document: %w", err)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	logging.Log.Infof("Exported %d media items and %d users to '%s'", len(doc.Media), len(doc.User), path)
	return nil
}
