package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/askdoc-labs/askdoc-cli/internal/core/domain"
	"github.com/askdoc-labs/askdoc-cli/internal/logger"
)

var watchCmd = &cobra.Command{
	Use:   "watch [directory]",
	Short: "Watch a directory and ingest new documents",
	Long: `Watches a directory and automatically uploads supported files as they
are created or modified. Runs until interrupted.

Supported extensions: .txt, .md, .markdown, .csv, .pdf`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	if ingestService == nil {
		return errors.New("ingest service not configured")
	}

	dir := args[0]
	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("failed to stat directory: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("not a directory: %s", dir)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}

	cmd.Printf("Watching %s (Ctrl+C to stop)\n", dir)

	ctx := cmd.Context()
	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
				continue
			}
			if !watchable(event.Name) {
				continue
			}
			ingestFile(cmd, event.Name)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("Watcher error: %v", err)
		}
	}
}

// watchable reports whether a path looks like a supported document.
// Hidden files and editor temp files are skipped.
func watchable(path string) bool {
	name := filepath.Base(path)
	if strings.HasPrefix(name, ".") || strings.HasSuffix(name, "~") {
		return false
	}
	switch strings.ToLower(filepath.Ext(name)) {
	case ".txt", ".md", ".markdown", ".csv", ".pdf":
		return true
	}
	return false
}

func ingestFile(cmd *cobra.Command, path string) {
	content, err := os.ReadFile(path)
	if err != nil {
		logger.Warn("Failed to read %s: %v", path, err)
		return
	}
	if len(content) == 0 {
		return
	}

	filename := filepath.Base(path)
	doc, err := ingestService.Ingest(cmd.Context(), content, filename, contentTypeForFile(filename), domain.DocumentMetadata{})
	if err != nil {
		// Duplicate writes and unsupported files are routine here.
		logger.Warn("Skipped %s: %v", filename, err)
		return
	}

	ingestService.Wait(doc.ID)
	cmd.Printf("Ingested %s (%s)\n", filename, doc.ID)
}
