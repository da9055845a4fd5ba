package pdf

import (
	"github.com/wsekete/PDFParseV2/internal/naming"
	"github.com/wsekete/PDFParseV2/internal/pdf/fields"
	"github.com/wsekete/PDFParseV2/internal/pdf/rename"
	"github.com/wsekete/PDFParseV2/internal/pdf/transaction"
)

// FileInfo represents information about a PDF file on disk
type FileInfo struct {
	Path         string `json:"path"`
	Name         string `json:"name"`
	Size         int64  `json:"size"`
	ModifiedTime string `json:"modified_time"`
}

// FieldRecord is the boundary representation of one form field. It is what
// exports, reports and naming collaborators consume; the arena node behind
// it never leaves this package.
type FieldRecord struct {
	UUID          string          `json:"uuid"`
	FQN           string          `json:"fqn"`
	Kind          string          `json:"kind"`
	ParentFQN     string          `json:"parent_fqn,omitempty"`
	Page          int             `json:"page,omitempty"`
	Rect          *fields.Rect    `json:"rect,omitempty"`
	Widgets       []fields.Widget `json:"widgets,omitempty"`
	ExportValue   string          `json:"export_value,omitempty"`
	Label         string          `json:"label,omitempty"`
	ContextBefore string          `json:"context_before,omitempty"`
	ContextAfter  string          `json:"context_after,omitempty"`
	Tooltip       string          `json:"tooltip,omitempty"`
	Flags         []string        `json:"flags,omitempty"`
	Synthetic     bool            `json:"synthetic,omitempty"`
	Diagnostics   []string        `json:"diagnostics,omitempty"`
}

// Request Types

// ExtractFieldsRequest represents a request to extract the form field model
// from a PDF file
type ExtractFieldsRequest struct {
	Path          string  `json:"path"`
	ContextRadius float64 `json:"context_radius,omitempty"`
}

// RenameFieldsRequest represents a request to rename form fields in a PDF
// file. Renames maps old fully qualified names to new partial names.
type RenameFieldsRequest struct {
	Path         string            `json:"path"`
	Renames      map[string]string `json:"renames"`
	DryRun       bool              `json:"dry_run,omitempty"`
	CreateBackup bool              `json:"create_backup"`
	OutputPath   string            `json:"output_path,omitempty"`
}

// ValidateNamesRequest represents a request to check proposed field names.
// Path is optional; when set, proposals are also checked for collisions
// against the document's existing fields.
type ValidateNamesRequest struct {
	Names []string `json:"names"`
	Path  string   `json:"path,omitempty"`
}

// AnalyzeFileRequest represents a request for a document summary
type AnalyzeFileRequest struct {
	Path string `json:"path"`
}

// SuggestNamesRequest represents a request for heuristic name suggestions
type SuggestNamesRequest struct {
	Path string `json:"path"`
}

// ServerInfoRequest represents a request to get server information and capabilities
type ServerInfoRequest struct {
	// No parameters needed for server info
}

// Response Types

// ExtractFieldsResult represents the extracted field model of one document
type ExtractFieldsResult struct {
	Path       string        `json:"path"`
	PageCount  int           `json:"page_count"`
	FieldCount int           `json:"field_count"`
	LeafCount  int           `json:"leaf_count"`
	Fields     []FieldRecord `json:"fields"`
	Violations []string      `json:"violations,omitempty"`
}

// RenameFieldsResult represents the outcome of a rename transaction
type RenameFieldsResult struct {
	Path       string                  `json:"path"`
	State      string                  `json:"state"`
	DryRun     bool                    `json:"dry_run,omitempty"`
	Applied    []rename.AppliedRename  `json:"applied,omitempty"`
	Skipped    []rename.SkippedRename  `json:"skipped,omitempty"`
	Problems   []transaction.Problem   `json:"problems,omitempty"`
	BackupPath string                  `json:"backup_path,omitempty"`
	OutputPath string                  `json:"output_path,omitempty"`
}

// NameVerdict is the validation outcome for one proposed name
type NameVerdict struct {
	Name     string         `json:"name"`
	Valid    bool           `json:"valid"`
	Issues   []naming.Issue `json:"issues,omitempty"`
	Conflict string         `json:"conflict,omitempty"`
}

// ValidateNamesResult represents the outcome of a name validation pass
type ValidateNamesResult struct {
	Verdicts []NameVerdict `json:"verdicts"`
	AllValid bool          `json:"all_valid"`
}

// AnalyzeFileResult represents a summary of one document's form structure
type AnalyzeFileResult struct {
	Path           string         `json:"path"`
	Size           int64          `json:"size"`
	PageCount      int            `json:"page_count"`
	FieldCount     int            `json:"field_count"`
	LeafCount      int            `json:"leaf_count"`
	MaxDepth       int            `json:"max_depth"`
	KindCounts     map[string]int `json:"kind_counts"`
	SyntheticCount int            `json:"synthetic_count"`
	UnnamedCount   int            `json:"unnamed_count"`
	Violations     []string       `json:"violations,omitempty"`
	Diagnostics    []string       `json:"diagnostics,omitempty"`
}

// SuggestNamesResult represents heuristic name proposals for a document
type SuggestNamesResult struct {
	Path        string              `json:"path"`
	Suggestions []naming.Suggestion `json:"suggestions"`
}

// ServerInfoResult represents server information and usage guidance
type ServerInfoResult struct {
	ServerName        string     `json:"server_name"`
	Version           string     `json:"version"`
	DefaultDirectory  string     `json:"default_directory"`
	MaxFileSize       int64      `json:"max_file_size"`
	AvailableTools    []ToolInfo `json:"available_tools"`
	DirectoryContents []FileInfo `json:"directory_contents"`
	UsageGuidance     string     `json:"usage_guidance"`
}

// ToolInfo represents information about an available tool
type ToolInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Usage       string `json:"usage"`
	Parameters  string `json:"parameters"`
}
