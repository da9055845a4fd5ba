package pdf

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetServerInfo(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "form.pdf"), []byte("%PDF-1.7"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("skip me"), 0o644))

	provider := NewServerInfoProvider(newTestService(t, dir))

	result, err := provider.GetServerInfo(context.Background(), "pdfparse-mcp", "2.0.0", dir)
	require.NoError(t, err)

	assert.Equal(t, "pdfparse-mcp", result.ServerName)
	assert.Equal(t, "2.0.0", result.Version)
	assert.Equal(t, dir, result.DefaultDirectory)
	assert.Equal(t, int64(100<<20), result.MaxFileSize)

	require.Len(t, result.DirectoryContents, 1, "only PDFs are listed")
	assert.Equal(t, "form.pdf", result.DirectoryContents[0].Name)

	toolNames := make([]string, 0, len(result.AvailableTools))
	for _, tool := range result.AvailableTools {
		toolNames = append(toolNames, tool.Name)
		assert.NotEmpty(t, tool.Description, "tool %s has no description", tool.Name)
	}
	assert.Equal(t, []string{
		"pdf_extract_fields", "pdf_rename_fields", "pdf_validate_names",
		"pdf_analyze_file", "pdf_suggest_names", "pdf_server_info",
	}, toolNames)

	assert.Contains(t, result.UsageGuidance, "dry_run")
	assert.Contains(t, result.UsageGuidance, "--group")
}

func TestGetServerInfoUsesCachedListing(t *testing.T) {
	dir := t.TempDir()
	provider := NewServerInfoProvider(newTestService(t, dir))

	first, err := provider.GetServerInfo(context.Background(), "s", "v", dir)
	require.NoError(t, err)
	assert.Empty(t, first.DirectoryContents)

	// A file created after the scan is invisible until the TTL expires.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "late.pdf"), []byte("%PDF-1.7"), 0o644))

	second, err := provider.GetServerInfo(context.Background(), "s", "v", dir)
	require.NoError(t, err)
	assert.Empty(t, second.DirectoryContents)
}

func TestDirectoryCacheExpiry(t *testing.T) {
	cache := NewDirectoryCache(10 * time.Millisecond)
	cache.Set("/some/dir", []FileInfo{{Name: "a.pdf"}})

	require.NotNil(t, cache.Get("/some/dir"))

	time.Sleep(20 * time.Millisecond)
	assert.Nil(t, cache.Get("/some/dir"), "entries expire after the TTL")
	assert.Nil(t, cache.Get("/never/seen"))
}

func TestDirectoryCacheScanningFlag(t *testing.T) {
	cache := NewDirectoryCache(time.Minute)

	assert.False(t, cache.IsScanning("/dir"))
	cache.SetScanning("/dir", true)
	assert.True(t, cache.IsScanning("/dir"))
	cache.SetScanning("/dir", false)
	assert.False(t, cache.IsScanning("/dir"))
}

func TestLazyDirectoryScannerLimits(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "level1", "level2")
	require.NoError(t, os.MkdirAll(sub, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "top.pdf"), []byte("%PDF-"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(sub, "deep.pdf"), []byte("%PDF-"), 0o644))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, ".hidden"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".hidden", "secret.pdf"), []byte("%PDF-"), 0o644))

	shallow := NewLazyDirectoryScanner(1, 100, time.Second)
	files, err := shallow.ScanDirectory(context.Background(), dir)
	require.NoError(t, err)
	require.Len(t, files, 1, "depth limit stops before level1")
	assert.Equal(t, "top.pdf", files[0].Name)

	deep := NewLazyDirectoryScanner(5, 100, time.Second)
	files, err = deep.ScanDirectory(context.Background(), dir)
	require.NoError(t, err)
	assert.Len(t, files, 2, "hidden directories stay excluded at any depth")

	capped := NewLazyDirectoryScanner(5, 1, time.Second)
	files, err = capped.ScanDirectory(context.Background(), dir)
	require.NoError(t, err)
	assert.Len(t, files, 1)
}

func TestLazyDirectoryScannerCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	scanner := NewLazyDirectoryScanner(5, 100, time.Second)
	_, err := scanner.ScanDirectory(ctx, t.TempDir())
	assert.ErrorIs(t, err, context.Canceled)
}
