package services

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/custodia-labs/docchat-cli/internal/core/domain"
	"github.com/custodia-labs/docchat-cli/internal/core/ports/driven"
	"github.com/custodia-labs/docchat-cli/internal/logger"
)

// DocumentLoader reads a corpus folder and extracts page-level text from
// every PDF it contains.
type DocumentLoader struct {
	extractor driven.PDFExtractor
}

// NewDocumentLoader creates a document loader backed by the given extractor.
func NewDocumentLoader(extractor driven.PDFExtractor) *DocumentLoader {
	return &DocumentLoader{extractor: extractor}
}

// Load scans folder for PDF files and returns their pages. File order is
// the lexical directory order, so repeated calls over unchanged files
// return pages in the same order. Page order within a file is preserved.
//
// Returns domain.ErrFolderNotFound if the folder does not exist and
// domain.ErrEmptyCorpus if no PDF is found or extraction yields no text.
// An extraction failure aborts the load: a silently skipped file would
// leave the index answering with incomplete coverage.
func (l *DocumentLoader) Load(ctx context.Context, folder string) ([]domain.Page, error) {
	info, err := os.Stat(folder)
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", domain.ErrFolderNotFound, folder)
	}

	files, err := ListPDFs(folder)
	if err != nil {
		return nil, fmt.Errorf("reading folder %s: %w", folder, err)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("%w: no PDF files in %s", domain.ErrEmptyCorpus, folder)
	}

	logger.Section("Document Load")
	logger.Info("Folder: %s, PDFs detected: %d", folder, len(files))

	var pages []domain.Page
	withText := 0
	for _, name := range files {
		path := filepath.Join(folder, name)
		extracted, err := l.extractor.Extract(ctx, path)
		if err != nil {
			return nil, fmt.Errorf("extracting %s: %w", path, err)
		}
		for _, page := range extracted {
			if strings.TrimSpace(page.Text) != "" {
				withText++
			}
			pages = append(pages, page)
		}
		logger.Debug("Extracted %d pages from %s", len(extracted), name)
	}

	if withText == 0 {
		return nil, fmt.Errorf("%w: extraction yielded no text in %s", domain.ErrEmptyCorpus, folder)
	}

	return pages, nil
}

// ListPDFs returns the PDF file names in folder, in lexical order.
// The extension match is case-insensitive.
func ListPDFs(folder string) ([]string, error) {
	entries, err := os.ReadDir(folder)
	if err != nil {
		return nil, err
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if strings.EqualFold(filepath.Ext(entry.Name()), ".pdf") {
			files = append(files, entry.Name())
		}
	}
	return files, nil
}
