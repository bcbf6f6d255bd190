package pdf

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtract_MissingFile(t *testing.T) {
	e := New()

	pages, err := e.Extract(context.Background(), "/no/such/file.pdf")
	assert.Error(t, err)
	assert.Nil(t, pages)
}

func TestExtract_NotAPDF(t *testing.T) {
	folder := t.TempDir()
	path := filepath.Join(folder, "fake.pdf")
	require.NoError(t, os.WriteFile(path, []byte("plain text, no PDF header"), 0o644))

	e := New()

	pages, err := e.Extract(context.Background(), path)
	assert.Error(t, err)
	assert.Nil(t, pages)
}

func TestNormalise(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"collapses runs", "a  b\t\tc", "a b c"},
		{"trims edges", "  hello  ", "hello"},
		{"newlines", "line1\nline2\n", "line1 line2"},
		{"empty", "   ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, normalise(tt.input))
		})
	}
}
