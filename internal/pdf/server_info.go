package pdf

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/wsekete/PDFParseV2/internal/descriptions"
)

// DirectoryCache provides TTL-based caching for directory contents
type DirectoryCache struct {
	entries map[string]*CacheEntry
	ttl     time.Duration
	mu      sync.RWMutex
}

// CacheEntry represents a cached directory scan result
type CacheEntry struct {
	files      []FileInfo
	lastUpdate time.Time
	scanning   bool
}

// LazyDirectoryScanner performs efficient directory scanning with limits
type LazyDirectoryScanner struct {
	maxDepth   int
	fileLimit  int
	timeLimit  time.Duration
	skipHidden bool
}

// ServerInfoProvider answers pdf_server_info requests. Directory listings
// are cached so repeated calls over a large workspace stay fast.
type ServerInfoProvider struct {
	cache   *DirectoryCache
	scanner *LazyDirectoryScanner
	service *Service
}

// NewDirectoryCache creates a new directory cache with specified TTL
func NewDirectoryCache(ttl time.Duration) *DirectoryCache {
	return &DirectoryCache{
		entries: make(map[string]*CacheEntry),
		ttl:     ttl,
	}
}

// Get retrieves cached directory contents if still valid
func (c *DirectoryCache) Get(path string) *CacheEntry {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, exists := c.entries[path]
	if !exists {
		return nil
	}
	if time.Since(entry.lastUpdate) > c.ttl {
		return nil
	}
	return entry
}

// Set stores directory contents in cache
func (c *DirectoryCache) Set(path string, files []FileInfo) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[path] = &CacheEntry{
		files:      files,
		lastUpdate: time.Now(),
	}
}

// SetScanning marks a directory as currently being scanned
func (c *DirectoryCache) SetScanning(path string, scanning bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, exists := c.entries[path]
	if !exists {
		entry = &CacheEntry{scanning: scanning}
		c.entries[path] = entry
	} else {
		entry.scanning = scanning
	}
}

// IsScanning checks if a directory is currently being scanned
func (c *DirectoryCache) IsScanning(path string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, exists := c.entries[path]
	return exists && entry.scanning
}

// NewLazyDirectoryScanner creates a new lazy directory scanner
func NewLazyDirectoryScanner(maxDepth, fileLimit int, timeLimit time.Duration) *LazyDirectoryScanner {
	return &LazyDirectoryScanner{
		maxDepth:   maxDepth,
		fileLimit:  fileLimit,
		timeLimit:  timeLimit,
		skipHidden: true,
	}
}

// ScanDirectory lists PDF files under root with depth, count and time
// limits, honoring context cancellation.
func (s *LazyDirectoryScanner) ScanDirectory(ctx context.Context, root string) ([]FileInfo, error) {
	startTime := time.Now()
	visited := make(map[string]bool)
	var files []FileInfo

	err := s.scanRecursive(ctx, root, 0, visited, &files, startTime)
	return files, err
}

func (s *LazyDirectoryScanner) scanRecursive(ctx context.Context, path string, depth int,
	visited map[string]bool, files *[]FileInfo, startTime time.Time,
) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	if s.maxDepth > 0 && depth >= s.maxDepth {
		return nil
	}
	if s.fileLimit > 0 && len(*files) >= s.fileLimit {
		return nil
	}
	if s.timeLimit > 0 && time.Since(startTime) > s.timeLimit {
		return nil
	}

	realPath, err := filepath.EvalSymlinks(path)
	if err != nil {
		return nil
	}
	if visited[realPath] {
		return nil
	}
	visited[realPath] = true

	entries, err := os.ReadDir(path)
	if err != nil {
		return nil
	}

	for _, entry := range entries {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if s.skipHidden && strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		if entry.Type()&os.ModeSymlink != 0 {
			continue
		}

		entryPath := filepath.Join(path, entry.Name())
		if entry.IsDir() {
			if err := s.scanRecursive(ctx, entryPath, depth+1, visited, files, startTime); err != nil {
				return err
			}
			continue
		}

		if strings.ToLower(filepath.Ext(entry.Name())) != ".pdf" {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		*files = append(*files, FileInfo{
			Name:         entry.Name(),
			Path:         entryPath,
			Size:         info.Size(),
			ModifiedTime: info.ModTime().Format("2006-01-02 15:04:05"),
		})
		if s.fileLimit > 0 && len(*files) >= s.fileLimit {
			return nil
		}
	}
	return nil
}

// NewServerInfoProvider creates a server info handler over a service
func NewServerInfoProvider(service *Service) *ServerInfoProvider {
	return &ServerInfoProvider{
		cache:   NewDirectoryCache(5 * time.Minute),
		scanner: NewLazyDirectoryScanner(5, 100, 3*time.Second),
		service: service,
	}
}

// GetServerInfo reports server metadata, the tool list and the contents of
// the working directory.
func (p *ServerInfoProvider) GetServerInfo(ctx context.Context, serverName, version, defaultDirectory string) (*ServerInfoResult, error) {
	validatedDir := defaultDirectory
	if err := p.service.pathValidator.ValidateDirectory(defaultDirectory); err != nil {
		validatedDir = p.service.pathValidator.GetConfiguredDirectory()
	}

	var files []FileInfo
	if cached := p.cache.Get(validatedDir); cached != nil {
		files = cached.files
	} else if !p.cache.IsScanning(validatedDir) {
		p.cache.SetScanning(validatedDir, true)
		defer p.cache.SetScanning(validatedDir, false)

		scanCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()

		scanned, err := p.scanner.ScanDirectory(scanCtx, validatedDir)
		if err == nil || ctx.Err() == nil {
			files = scanned
		}
		p.cache.Set(validatedDir, files)
	}

	return &ServerInfoResult{
		ServerName:        serverName,
		Version:           version,
		DefaultDirectory:  validatedDir,
		MaxFileSize:       p.service.maxFileSize,
		AvailableTools:    p.availableTools(),
		DirectoryContents: files,
		UsageGuidance:     p.usageGuidance(),
	}, nil
}

func (p *ServerInfoProvider) availableTools() []ToolInfo {
	return []ToolInfo{
		{
			Name:        "pdf_extract_fields",
			Description: descriptions.GetToolDescription("pdf_extract_fields"),
			Usage:       "Use this tool to extract the full form field model (hierarchy, kinds, geometry, labels) from a PDF.",
			Parameters: "path (required): Full path to the PDF file, " +
				"context_radius (optional): label search distance in points, " +
				"format (optional): text, json or csv",
		},
		{
			Name:        "pdf_rename_fields",
			Description: descriptions.GetToolDescription("pdf_rename_fields"),
			Usage: "Use this tool to rename form fields transactionally. Run with dry_run first to " +
				"see the validation verdict without touching the file.",
			Parameters: "path (required): Full path to the PDF file, " +
				"renames (required): JSON object mapping old fully qualified names to new names, " +
				"dry_run (optional, default false), create_backup (optional, default true), " +
				"output_path (optional): where to write the renamed document",
		},
		{
			Name:        "pdf_validate_names",
			Description: descriptions.GetToolDescription("pdf_validate_names"),
			Usage:       "Use this tool to check proposed names against the BEM grammar and reserved list before renaming.",
			Parameters: "names (required): array of proposed names, " +
				"path (optional): document to check for collisions",
		},
		{
			Name:        "pdf_analyze_file",
			Description: descriptions.GetToolDescription("pdf_analyze_file"),
			Usage:       "Use this tool to get a structural summary of a form before deciding on renames.",
			Parameters:  "path (required): Full path to the PDF file",
		},
		{
			Name:        "pdf_suggest_names",
			Description: descriptions.GetToolDescription("pdf_suggest_names"),
			Usage:       "Use this tool to get deterministic BEM name suggestions derived from on-page labels.",
			Parameters:  "path (required): Full path to the PDF file",
		},
		{
			Name:        "pdf_server_info",
			Description: descriptions.GetToolDescription("pdf_server_info"),
			Usage:       "Use this tool to get server capabilities and the working directory contents.",
			Parameters:  "No parameters required",
		},
	}
}

func (p *ServerInfoProvider) usageGuidance() string {
	maxFileSizeMB := p.service.maxFileSize / (1024 * 1024)

	return fmt.Sprintf(`PDF Form Field Renaming Server Usage Guide:

1. UNDERSTAND THE FORM:
   - Use 'pdf_analyze_file' to get field counts, kinds and structure
   - Use 'pdf_extract_fields' to get the full field model with labels and geometry

2. PLAN THE RENAMES:
   - Use 'pdf_suggest_names' for slug-based starting points
   - Use 'pdf_validate_names' to check proposals against the BEM grammar,
     the reserved list and the document's existing names

3. APPLY TRANSACTIONALLY:
   - Use 'pdf_rename_fields' with dry_run=true first; fix every reported
     problem, then run again without dry_run
   - A backup copy is written next to the original unless create_backup
     is false; the renamed document goes to output_path or
     <stem>_BEM_named.pdf

NAMING RULES:
- names are lowercase BEM: block_element__modifier, radio groups end
  with --group
- 3 to 100 characters, letters, digits and hyphens per segment
- reserved words (id, name, value, type, ...) are rejected

IMPORTANT NOTES:
- Always use absolute file paths
- The server can handle files up to %dMB
- Renames are all-or-nothing: any validation problem rejects the whole
  batch and the document is left untouched
- Fields with synthesized identifiers (unnamed radio kids) cannot be
  renamed`, maxFileSizeMB)
}

// ClearCache clears expired cache entries
func (p *ServerInfoProvider) ClearCache() {
	p.cache.mu.Lock()
	defer p.cache.mu.Unlock()

	now := time.Now()
	for path, entry := range p.cache.entries {
		if now.Sub(entry.lastUpdate) > p.cache.ttl {
			delete(p.cache.entries, path)
		}
	}
}
