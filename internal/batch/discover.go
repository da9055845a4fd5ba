package batch

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/wsekete/PDFParseV2/internal/pdf"
)

// Discover walks dir recursively and returns every usable PDF, sorted.
// Hidden directories are skipped; files that fail the cheap validation
// probe are silently left out, the batch summary only ever sees candidates
// that at least open as PDFs.
func Discover(dir string, service *pdf.Service) ([]string, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("cannot access directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("not a directory: %s", dir)
	}

	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve directory path: %w", err)
	}

	var files []string
	err = filepath.WalkDir(absDir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil //nolint:nilerr // Intentionally continue on file errors
		}
		if d.IsDir() {
			if strings.HasPrefix(d.Name(), ".") && path != absDir {
				return filepath.SkipDir
			}
			return nil
		}
		if !strings.HasSuffix(strings.ToLower(d.Name()), ".pdf") {
			return nil
		}
		// Skip outputs of a previous run.
		if strings.HasSuffix(d.Name(), "_BEM_named.pdf") || strings.Contains(d.Name(), "_backup_") {
			return nil
		}
		if !service.IsValidPDF(path) {
			return nil
		}
		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("error walking directory: %w", err)
	}

	sort.Strings(files)
	return files, nil
}
