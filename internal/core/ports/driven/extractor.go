package driven

import (
	"context"

	"github.com/custodia-labs/docchat-cli/internal/core/domain"
)

// PDFExtractor extracts page-level text from a PDF file.
// Page order within a file must be preserved.
type PDFExtractor interface {
	// Extract reads the PDF at path and returns its pages in order.
	// The DocumentID of each page is the file's base name.
	Extract(ctx context.Context, path string) ([]domain.Page, error)
}
