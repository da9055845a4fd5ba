package pdf

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidatorRejectsNonPDFContent(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "fake.pdf")
	require.NoError(t, os.WriteFile(path, []byte("plain text wearing a pdf extension"), 0o644))

	v := NewValidator(100 << 20)

	assert.False(t, v.IsValidPDF(path))
	assert.ErrorContains(t, v.CheckFile(path), "invalid PDF")
}

func TestValidatorFileChecksRunFirst(t *testing.T) {
	v := NewValidator(100 << 20)

	assert.ErrorContains(t, v.CheckFile(""), "path cannot be empty")
	assert.False(t, v.IsValidPDF(filepath.Join(t.TempDir(), "ghost.pdf")))
}

func TestValidateFileInfo(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "form.pdf")
	require.NoError(t, os.WriteFile(path, []byte("%PDF-1.7 data"), 0o644))

	info, err := os.Stat(path)
	require.NoError(t, err)
	dirInfo, err := os.Stat(dir)
	require.NoError(t, err)

	v := NewValidator(1 << 20)
	assert.NoError(t, v.ValidateFileInfo(path, info))
	assert.ErrorContains(t, v.ValidateFileInfo(dir, dirInfo), "is a directory")
	assert.ErrorContains(t, v.ValidateFileInfo("form.txt", info), "not a PDF")

	tiny := NewValidator(2)
	assert.ErrorContains(t, tiny.ValidateFileInfo(path, info), "too large")
}
