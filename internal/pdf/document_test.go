package pdf

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenamedOutputPath(t *testing.T) {
	got := RenamedOutputPath(filepath.Join("forms", "application.pdf"))
	assert.Equal(t, filepath.Join("forms", "application_BEM_named.pdf"), got)

	got = RenamedOutputPath("plain.pdf")
	assert.Equal(t, "plain_BEM_named.pdf", got)
}

func TestCheckPDFFile(t *testing.T) {
	dir := t.TempDir()

	emptyPDF := filepath.Join(dir, "empty.pdf")
	require.NoError(t, os.WriteFile(emptyPDF, nil, 0o644))

	smallPDF := filepath.Join(dir, "small.pdf")
	require.NoError(t, os.WriteFile(smallPDF, []byte("%PDF-1.7 tiny"), 0o644))

	textFile := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(textFile, []byte("hello"), 0o644))

	tests := []struct {
		name    string
		path    string
		maxSize int64
		wantErr string
	}{
		{"empty path", "", 100, "path cannot be empty"},
		{"missing file", filepath.Join(dir, "ghost.pdf"), 100, "does not exist"},
		{"directory", dir, 100, "is a directory"},
		{"wrong extension", textFile, 100, "not a PDF"},
		{"empty file", emptyPDF, 100, "is empty"},
		{"too large", smallPDF, 4, "too large"},
		{"valid", smallPDF, 100, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := checkPDFFile(tt.path, tt.maxSize)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadDocumentRejectsGarbage(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "garbage.pdf")
	require.NoError(t, os.WriteFile(path, []byte(strings.Repeat("not a pdf ", 10)), 0o644))

	_, err := LoadDocument(path, 100<<20)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing")
}
