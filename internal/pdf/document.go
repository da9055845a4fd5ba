package pdf

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// Document is one loaded PDF: the original bytes plus the parsed pdfcpu
// object graph. Bytes are never modified in place; every failure path hands
// them back unchanged.
type Document struct {
	Path    string
	Bytes   []byte
	Context *model.Context
}

// RenamedOutputPath returns the default output location for a renamed
// document: <stem>_BEM_named.pdf next to the original.
func RenamedOutputPath(docPath string) string {
	dir := filepath.Dir(docPath)
	stem := strings.TrimSuffix(filepath.Base(docPath), filepath.Ext(docPath))
	return filepath.Join(dir, stem+"_BEM_named.pdf")
}

// LoadDocument validates the file, reads it fully into memory and parses
// the object graph with relaxed validation so slightly malformed documents
// still extract.
func LoadDocument(path string, maxFileSize int64) (*Document, error) {
	if err := checkPDFFile(path, maxFileSize); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed

	ctx, err := api.ReadContext(bytes.NewReader(data), conf)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if err := ctx.EnsurePageCount(); err != nil {
		return nil, fmt.Errorf("resolving page tree of %s: %w", path, err)
	}

	return &Document{Path: path, Bytes: data, Context: ctx}, nil
}

// PageCount returns the document's page count.
func (d *Document) PageCount() int {
	return d.Context.PageCount
}

// checkPDFFile performs file-level validation before any parsing
func checkPDFFile(filePath string, maxFileSize int64) error {
	if filePath == "" {
		return fmt.Errorf("path cannot be empty")
	}

	fileInfo, err := os.Stat(filePath)
	if os.IsNotExist(err) {
		return fmt.Errorf("file does not exist: %s", filePath)
	}
	if err != nil {
		return fmt.Errorf("cannot access file: %w", err)
	}

	if fileInfo.IsDir() {
		return fmt.Errorf("path is a directory, not a file: %s", filePath)
	}

	if !strings.HasSuffix(strings.ToLower(filePath), ".pdf") {
		return fmt.Errorf("file is not a PDF: %s", filePath)
	}

	if fileInfo.Size() == 0 {
		return fmt.Errorf("file is empty: %s", filePath)
	}

	if fileInfo.Size() > maxFileSize {
		return fmt.Errorf("file too large: %d bytes (max: %d bytes)",
			fileInfo.Size(), maxFileSize)
	}

	return nil
}
