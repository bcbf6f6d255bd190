package services

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docchat-cli/internal/core/domain"
)

// touchPDF creates an empty file; extraction is mocked, only the name matters.
func touchPDF(t *testing.T, folder, name string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(folder, name), []byte("%PDF-1.4"), 0o644))
}

func TestDocumentLoader_Load_FolderNotFound(t *testing.T) {
	loader := NewDocumentLoader(&mockExtractor{})

	pages, err := loader.Load(context.Background(), "/does/not/exist")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrFolderNotFound)
	assert.Contains(t, err.Error(), "/does/not/exist")
	assert.Nil(t, pages)
}

func TestDocumentLoader_Load_NoPDFs(t *testing.T) {
	folder := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(folder, "notes.txt"), []byte("text"), 0o644))

	loader := NewDocumentLoader(&mockExtractor{})

	pages, err := loader.Load(context.Background(), folder)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrEmptyCorpus)
	assert.Nil(t, pages)
}

func TestDocumentLoader_Load_PageOrder(t *testing.T) {
	folder := t.TempDir()
	touchPDF(t, folder, "beta.pdf")
	touchPDF(t, folder, "alpha.pdf")
	touchPDF(t, folder, "GAMMA.PDF")

	loader := NewDocumentLoader(&mockExtractor{pagesPer: 2})

	pages, err := loader.Load(context.Background(), folder)
	require.NoError(t, err)
	require.Len(t, pages, 6)

	// Lexical file order, page order preserved within each file.
	assert.Equal(t, "GAMMA.PDF", pages[0].DocumentID)
	assert.Equal(t, 1, pages[0].Number)
	assert.Equal(t, "GAMMA.PDF", pages[1].DocumentID)
	assert.Equal(t, 2, pages[1].Number)
	assert.Equal(t, "alpha.pdf", pages[2].DocumentID)
	assert.Equal(t, "beta.pdf", pages[4].DocumentID)

	// Stable across repeated calls with unchanged files.
	again, err := loader.Load(context.Background(), folder)
	require.NoError(t, err)
	require.Len(t, again, len(pages))
	for i := range pages {
		assert.Equal(t, pages[i].DocumentID, again[i].DocumentID)
		assert.Equal(t, pages[i].Number, again[i].Number)
	}
}

func TestDocumentLoader_Load_ExtractionFailureAborts(t *testing.T) {
	folder := t.TempDir()
	touchPDF(t, folder, "broken.pdf")

	extractErr := errors.New("malformed xref table")
	loader := NewDocumentLoader(&mockExtractor{extractErr: extractErr})

	pages, err := loader.Load(context.Background(), folder)
	require.Error(t, err)
	assert.ErrorIs(t, err, extractErr)
	assert.Contains(t, err.Error(), "broken.pdf")
	assert.Nil(t, pages)
}

func TestDocumentLoader_Load_BlankExtraction(t *testing.T) {
	folder := t.TempDir()
	touchPDF(t, folder, "scanned.pdf")

	loader := NewDocumentLoader(&blankExtractor{})

	pages, err := loader.Load(context.Background(), folder)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrEmptyCorpus)
	assert.Nil(t, pages)
}

func TestListPDFs_SkipsDirectoriesAndOtherFiles(t *testing.T) {
	folder := t.TempDir()
	touchPDF(t, folder, "doc.pdf")
	require.NoError(t, os.Mkdir(filepath.Join(folder, "sub.pdf"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(folder, "doc.docx"), nil, 0o644))

	files, err := ListPDFs(folder)
	require.NoError(t, err)
	assert.Equal(t, []string{"doc.pdf"}, files)
}

// blankExtractor returns pages containing only whitespace.
type blankExtractor struct{}

func (b *blankExtractor) Extract(_ context.Context, path string) ([]domain.Page, error) {
	name := filepath.Base(path)
	return []domain.Page{{DocumentID: name, Number: 1, Text: "   \n\t"}}, nil
}
