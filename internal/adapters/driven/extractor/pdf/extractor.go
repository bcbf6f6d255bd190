// Package pdf provides a PDF page-text extractor adapter.
package pdf

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/custodia-labs/docchat-cli/internal/core/domain"
	"github.com/custodia-labs/docchat-cli/internal/core/ports/driven"
)

// Ensure Extractor implements the interface.
var _ driven.PDFExtractor = (*Extractor)(nil)

// Extractor extracts page-level text from PDF files.
type Extractor struct{}

// New creates a new PDF extractor.
func New() *Extractor {
	return &Extractor{}
}

// Extract reads the PDF at path and returns its pages in order.
// Pages the library cannot decode are returned with empty text rather
// than dropped, so page numbers stay aligned with the document.
func (e *Extractor) Extract(ctx context.Context, path string) ([]domain.Page, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open PDF: %w", err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat PDF: %w", err)
	}

	reader, err := pdf.NewReader(file, info.Size())
	if err != nil {
		return nil, fmt.Errorf("read PDF %s: %w", path, err)
	}

	documentID := filepath.Base(path)
	pageCount := reader.NumPage()
	pages := make([]domain.Page, 0, pageCount)

	for i := 1; i <= pageCount; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		page := reader.Page(i)
		text := ""
		if !page.V.IsNull() {
			extracted, err := page.GetPlainText(nil)
			if err == nil {
				text = normalise(extracted)
			}
		}

		pages = append(pages, domain.Page{
			DocumentID: documentID,
			Number:     i,
			Text:       text,
		})
	}

	return pages, nil
}

// normalise collapses the extractor's run-together whitespace.
func normalise(text string) string {
	return strings.Join(strings.Fields(text), " ")
}
