package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/askdoc-labs/askdoc-cli/internal/core/domain"
)

var (
	uploadTitle       string
	uploadAuthor      string
	uploadCategory    string
	uploadTags        []string
	uploadDescription string
	uploadNoWait      bool
)

var uploadCmd = &cobra.Command{
	Use:   "upload [file]",
	Short: "Upload and index a document",
	Long: `Upload a document for ingestion. The file is extracted, split into
chunks and added to the similarity index.

Supported formats: .txt, .md, .csv, .pdf`,
	Args: cobra.ExactArgs(1),
	RunE: runUpload,
}

func init() {
	uploadCmd.Flags().StringVar(&uploadTitle, "title", "", "document title")
	uploadCmd.Flags().StringVar(&uploadAuthor, "author", "", "document author")
	uploadCmd.Flags().StringVar(&uploadCategory, "category", "", "document category")
	uploadCmd.Flags().StringSliceVar(&uploadTags, "tags", nil, "comma-separated tags")
	uploadCmd.Flags().StringVar(&uploadDescription, "description", "", "short description")
	uploadCmd.Flags().BoolVar(&uploadNoWait, "no-wait", false, "return without waiting for processing to finish")
	rootCmd.AddCommand(uploadCmd)
}

func runUpload(cmd *cobra.Command, args []string) error {
	if ingestService == nil {
		return errors.New("ingest service not configured")
	}

	path := args[0]
	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}

	filename := filepath.Base(path)
	contentType := contentTypeForFile(filename)

	meta := domain.DocumentMetadata{
		Title:       uploadTitle,
		Author:      uploadAuthor,
		Category:    uploadCategory,
		Tags:        uploadTags,
		Description: uploadDescription,
	}

	ctx := cmd.Context()
	doc, err := ingestService.Ingest(ctx, content, filename, contentType, meta)
	if err != nil {
		return fmt.Errorf("upload failed: %w", err)
	}

	cmd.Printf("Uploaded %s (%d bytes)\n", doc.Filename, doc.FileSize)
	cmd.Printf("Document ID: %s\n", doc.ID)

	if uploadNoWait {
		cmd.Println("Status: processing")
		return nil
	}

	ingestService.Wait(doc.ID)

	final, err := documentService.Get(ctx, doc.ID)
	if err != nil {
		return fmt.Errorf("failed to read document status: %w", err)
	}

	switch final.Status {
	case domain.StatusProcessed:
		cmd.Printf("Status: processed (%d chunks, %.2fs)\n", final.ChunkCount, final.ProcessingTime)
	case domain.StatusFailed:
		return fmt.Errorf("processing failed: %s", final.Error)
	default:
		cmd.Printf("Status: %s\n", final.Status)
	}

	return nil
}

// contentTypeForFile maps a filename extension to the MIME type the
// extractor registry understands.
func contentTypeForFile(filename string) string {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".md", ".markdown":
		return "text/markdown"
	case ".csv":
		return "text/csv"
	case ".pdf":
		return "application/pdf"
	default:
		return "text/plain"
	}
}
