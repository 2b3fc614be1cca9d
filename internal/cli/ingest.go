package cli

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"notebook-ai/internal/extract"
	"notebook-ai/internal/indexer"
	"notebook-ai/internal/sources"
	"notebook-ai/internal/storage"
)

var ingestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Add sources to a notebook",
	Long: `Adds pasted text, web links or local files to a notebook. Each source is
split into chunks and embedded so it can be searched.`,
}

var ingestTextCmd = &cobra.Command{
	Use:   "text [notebook-id] [text]",
	Short: "Add text as a source",
	Long:  `Adds the given text as one source. Pass "-" to read the text from stdin.`,
	Args:  cobra.ExactArgs(2),
	RunE:  runIngestText,
}

var ingestLinksCmd = &cobra.Command{
	Use:   "links [notebook-id] [url...]",
	Short: "Add web pages as sources",
	Args:  cobra.MinimumNArgs(2),
	RunE:  runIngestLinks,
}

var ingestFilesCmd = &cobra.Command{
	Use:   "files [notebook-id] [path...]",
	Short: "Upload local files as sources",
	Long:  `Uploads PDF, Word, Markdown or plain-text files and extracts their text.`,
	Args:  cobra.MinimumNArgs(2),
	RunE:  runIngestFiles,
}

func init() {
	ingestCmd.AddCommand(ingestTextCmd)
	ingestCmd.AddCommand(ingestLinksCmd)
	ingestCmd.AddCommand(ingestFilesCmd)
	rootCmd.AddCommand(ingestCmd)
}

func runIngestText(cmd *cobra.Command, args []string) error {
	text := args[1]
	if text == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return fmt.Errorf("failed to read stdin: %w", err)
		}
		text = string(data)
	}
	return ingest(cmd, indexer.Request{NotebookID: args[0], Kind: storage.KindText, Text: text})
}

func runIngestLinks(cmd *cobra.Command, args []string) error {
	return ingest(cmd, indexer.Request{NotebookID: args[0], Kind: storage.KindLink, URLs: args[1:]})
}

func runIngestFiles(cmd *cobra.Command, args []string) error {
	files := make([]sources.File, 0, len(args)-1)
	for _, path := range args[1:] {
		f, err := readFile(path)
		if err != nil {
			return err
		}
		files = append(files, f)
	}
	return ingest(cmd, indexer.Request{NotebookID: args[0], Kind: storage.KindFile, Files: files})
}

func ingest(cmd *cobra.Command, req indexer.Request) error {
	ctx := commandContext(cmd)
	if _, err := notebookService.Get(ctx, userID, req.NotebookID); err != nil {
		return fmt.Errorf("failed to get notebook: %w", err)
	}

	req.UserID = userID
	res, err := ingester.Ingest(ctx, req)
	if err != nil {
		return fmt.Errorf("failed to ingest sources: %w", err)
	}

	if outputJSON {
		return printJSON(cmd, res)
	}
	for _, item := range res.Successful {
		cmd.Printf("  added %s  [%s]  %s (%d chunks)\n", item.SourceID, item.Status, displayTitle(item.Title), item.Chunks)
	}
	for _, w := range res.Warnings {
		cmd.Printf("  warning: %s\n", w)
	}
	return nil
}

// readFile loads a local file for upload. Files over the size limit are not
// read; the pipeline rejects them from the reported size.
func readFile(path string) (sources.File, error) {
	info, err := os.Stat(path)
	if err != nil {
		return sources.File{}, fmt.Errorf("failed to stat %s: %w", path, err)
	}
	f := sources.File{
		Name: filepath.Base(path),
		Size: info.Size(),
	}
	if info.Size() > indexer.MaxFileSize {
		f.MimeType = mimeFromExtension(path)
		return f, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return sources.File{}, fmt.Errorf("failed to read %s: %w", path, err)
	}
	f.Data = data
	f.MimeType = detectMimeType(path, data)
	return f, nil
}

func detectMimeType(path string, data []byte) string {
	if mt := mimeFromExtension(path); mt != "" {
		return mt
	}
	mt := http.DetectContentType(data)
	if i := strings.IndexByte(mt, ';'); i >= 0 {
		mt = mt[:i]
	}
	return mt
}

func mimeFromExtension(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		return extract.MIMEPDF
	case ".doc":
		return extract.MIMEDoc
	case ".docx":
		return extract.MIMEDocx
	case ".md", ".markdown":
		return extract.MIMEMarkdown
	case ".txt", ".text":
		return extract.MIMEText
	}
	return ""
}
