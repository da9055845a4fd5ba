package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sort"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/wsekete/PDFParseV2/internal/config"
	"github.com/wsekete/PDFParseV2/internal/descriptions"
	"github.com/wsekete/PDFParseV2/internal/export"
	"github.com/wsekete/PDFParseV2/internal/pdf"
)

// Server represents the MCP server instance
type Server struct {
	config     *config.Config
	pdfService *pdf.Service
	serverInfo *pdf.ServerInfoProvider
	mcpServer  *server.MCPServer
}

// NewServer creates a new MCP server instance
func NewServer(cfg *config.Config, pdfService *pdf.Service) (*Server, error) {
	if pdfService == nil {
		return nil, fmt.Errorf("pdfService cannot be nil")
	}

	mcpServer := server.NewMCPServer(
		cfg.ServerName,
		cfg.Version,
		server.WithToolCapabilities(false), // We don't support dynamic tool capabilities
	)

	s := &Server{
		config:     cfg,
		pdfService: pdfService,
		serverInfo: pdf.NewServerInfoProvider(pdfService),
		mcpServer:  mcpServer,
	}

	s.registerTools()

	return s, nil
}

// registerTools registers all available MCP tools
func (s *Server) registerTools() {
	extractFieldsTool := mcp.NewTool(
		"pdf_extract_fields",
		mcp.WithDescription(descriptions.GetToolDescription("pdf_extract_fields")),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Full path to the PDF file"),
		),
		mcp.WithNumber("context_radius",
			mcp.Description("Label search distance around widgets in points (default 50)"),
		),
		mcp.WithString("format",
			mcp.Description("Output format: text (default), json or csv"),
		),
	)
	s.mcpServer.AddTool(extractFieldsTool, s.handleExtractFields)

	renameFieldsTool := mcp.NewTool(
		"pdf_rename_fields",
		mcp.WithDescription(descriptions.GetToolDescription("pdf_rename_fields")),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Full path to the PDF file"),
		),
		mcp.WithObject("renames",
			mcp.Required(),
			mcp.Description("JSON object mapping old fully qualified field names to new names"),
		),
		mcp.WithBoolean("dry_run",
			mcp.Description("Validate and report without writing anything (default false)"),
		),
		mcp.WithBoolean("create_backup",
			mcp.Description("Write a timestamped backup next to the original (default true)"),
		),
		mcp.WithString("output_path",
			mcp.Description("Where to write the renamed document (default <stem>_BEM_named.pdf)"),
		),
	)
	s.mcpServer.AddTool(renameFieldsTool, s.handleRenameFields)

	validateNamesTool := mcp.NewTool(
		"pdf_validate_names",
		mcp.WithDescription(descriptions.GetToolDescription("pdf_validate_names")),
		mcp.WithArray("names",
			mcp.Required(),
			mcp.Description("Proposed field names to check"),
		),
		mcp.WithString("path",
			mcp.Description("Optional document to check proposals against for collisions"),
		),
	)
	s.mcpServer.AddTool(validateNamesTool, s.handleValidateNames)

	analyzeFileTool := mcp.NewTool(
		"pdf_analyze_file",
		mcp.WithDescription(descriptions.GetToolDescription("pdf_analyze_file")),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Full path to the PDF file"),
		),
	)
	s.mcpServer.AddTool(analyzeFileTool, s.handleAnalyzeFile)

	suggestNamesTool := mcp.NewTool(
		"pdf_suggest_names",
		mcp.WithDescription(descriptions.GetToolDescription("pdf_suggest_names")),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Full path to the PDF file"),
		),
	)
	s.mcpServer.AddTool(suggestNamesTool, s.handleSuggestNames)

	serverInfoTool := mcp.NewTool(
		"pdf_server_info",
		mcp.WithDescription(descriptions.GetToolDescription("pdf_server_info")),
	)
	s.mcpServer.AddTool(serverInfoTool, s.handleServerInfo)
}

// Handler functions

func (s *Server) handleExtractFields(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := request.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	args := request.GetArguments()
	req := pdf.ExtractFieldsRequest{Path: path}
	if radius, ok := args["context_radius"].(float64); ok {
		req.ContextRadius = radius
	}
	format := "text"
	if f, ok := args["format"].(string); ok && f != "" {
		format = f
	}

	result, err := s.pdfService.ExtractFields(req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	switch format {
	case "json":
		var b strings.Builder
		if err := export.WriteJSON(&b, result); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return mcp.NewToolResultText(b.String()), nil
	case "csv":
		var b strings.Builder
		if err := export.WriteCSV(&b, result.Fields); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return mcp.NewToolResultText(b.String()), nil
	case "text":
		return mcp.NewToolResultText(s.formatExtractFieldsResult(result)), nil
	default:
		return mcp.NewToolResultError(fmt.Sprintf("unknown format %q (want text, json or csv)", format)), nil
	}
}

func (s *Server) handleRenameFields(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := request.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	args := request.GetArguments()
	rawRenames, ok := args["renames"].(map[string]any)
	if !ok || len(rawRenames) == 0 {
		return mcp.NewToolResultError("renames must be a non-empty object mapping old names to new names"), nil
	}
	renames := make(map[string]string, len(rawRenames))
	for oldName, v := range rawRenames {
		newName, ok := v.(string)
		if !ok {
			return mcp.NewToolResultError(fmt.Sprintf("rename target for %q must be a string", oldName)), nil
		}
		renames[oldName] = newName
	}

	req := pdf.RenameFieldsRequest{
		Path:         path,
		Renames:      renames,
		CreateBackup: true,
	}
	if dryRun, ok := args["dry_run"].(bool); ok {
		req.DryRun = dryRun
	}
	if backup, ok := args["create_backup"].(bool); ok {
		req.CreateBackup = backup
	}
	if out, ok := args["output_path"].(string); ok {
		req.OutputPath = out
	}

	result, err := s.pdfService.RenameFields(req)
	if result == nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(s.formatRenameFieldsResult(result, err)), nil
}

func (s *Server) handleValidateNames(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	rawNames, ok := args["names"].([]any)
	if !ok || len(rawNames) == 0 {
		return mcp.NewToolResultError("names must be a non-empty array of strings"), nil
	}
	names := make([]string, 0, len(rawNames))
	for _, v := range rawNames {
		name, ok := v.(string)
		if !ok {
			return mcp.NewToolResultError("names must contain only strings"), nil
		}
		names = append(names, name)
	}

	req := pdf.ValidateNamesRequest{Names: names}
	if p, ok := args["path"].(string); ok {
		req.Path = p
	}

	result, err := s.pdfService.ValidateNames(req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(s.formatValidateNamesResult(result)), nil
}

func (s *Server) handleAnalyzeFile(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := request.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result, err := s.pdfService.AnalyzeFile(pdf.AnalyzeFileRequest{Path: path})
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(s.formatAnalyzeFileResult(result)), nil
}

func (s *Server) handleSuggestNames(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := request.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result, err := s.pdfService.SuggestNames(pdf.SuggestNamesRequest{Path: path})
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

func (s *Server) handleServerInfo(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	result, err := s.serverInfo.GetServerInfo(ctx, s.config.ServerName, s.config.Version, s.config.PDFDirectory)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(s.formatServerInfoResult(result)), nil
}

// Formatting methods

func (s *Server) formatExtractFieldsResult(result *pdf.ExtractFieldsResult) string {
	text := fmt.Sprintf("Extracted %d field(s) from %s\n", result.FieldCount, result.Path)
	text += fmt.Sprintf("Pages: %d, terminal fields: %d\n", result.PageCount, result.LeafCount)

	if len(result.Violations) > 0 {
		text += "\nStructural violations:\n"
		for _, v := range result.Violations {
			text += fmt.Sprintf("  - %s\n", v)
		}
	}

	text += "\nFields:\n"
	for i, f := range result.Fields {
		text += fmt.Sprintf("%d. %s (%s)\n", i+1, f.FQN, f.Kind)
		if f.Page > 0 && f.Rect != nil {
			text += fmt.Sprintf("   Page %d, rect [%.1f %.1f %.1f %.1f]\n",
				f.Page, f.Rect.X, f.Rect.Y, f.Rect.W, f.Rect.H)
		}
		if f.Label != "" {
			text += fmt.Sprintf("   Label: %s\n", f.Label)
		}
		if f.ExportValue != "" {
			text += fmt.Sprintf("   Export value: %s\n", f.ExportValue)
		}
		if len(f.Flags) > 0 {
			text += fmt.Sprintf("   Flags: %s\n", strings.Join(f.Flags, ", "))
		}
		if f.Synthetic {
			text += "   Synthetic identifier (not renameable)\n"
		}
		for _, d := range f.Diagnostics {
			text += fmt.Sprintf("   Diagnostic: %s\n", d)
		}
	}
	return text
}

func (s *Server) formatRenameFieldsResult(result *pdf.RenameFieldsResult, runErr error) string {
	var text string
	switch {
	case result.DryRun && len(result.Problems) == 0 && runErr == nil:
		text = fmt.Sprintf("Dry run: batch is valid against %s\n", result.Path)
	case len(result.Problems) > 0:
		text = fmt.Sprintf("Rename batch REJECTED for %s\n\nProblems:\n", result.Path)
		for _, p := range result.Problems {
			text += fmt.Sprintf("  - [%s] %s\n", p.Rule, p.Message)
		}
		return text
	case runErr != nil:
		return fmt.Sprintf("Rename failed for %s (state %s): %v\nThe original document is untouched.\n",
			result.Path, result.State, runErr)
	default:
		text = fmt.Sprintf("Renamed fields in %s\n", result.Path)
	}

	if len(result.Applied) > 0 {
		text += "\nApplied:\n"
		for _, a := range result.Applied {
			text += fmt.Sprintf("  %s -> %s\n", a.OldFQN, a.NewFQN)
		}
	}
	if len(result.Skipped) > 0 {
		text += "\nSkipped:\n"
		for _, sk := range result.Skipped {
			text += fmt.Sprintf("  %s (%s)\n", sk.FQN, sk.Reason)
		}
	}
	if result.BackupPath != "" {
		text += fmt.Sprintf("\nBackup: %s\n", result.BackupPath)
	}
	if result.OutputPath != "" {
		text += fmt.Sprintf("Output: %s\n", result.OutputPath)
	}
	return text
}

func (s *Server) formatValidateNamesResult(result *pdf.ValidateNamesResult) string {
	var text string
	if result.AllValid {
		text = fmt.Sprintf("All %d name(s) are valid\n", len(result.Verdicts))
	} else {
		text = "Some proposed names are invalid\n"
	}
	for _, v := range result.Verdicts {
		if v.Valid {
			text += fmt.Sprintf("  OK    %s\n", v.Name)
			continue
		}
		text += fmt.Sprintf("  BAD   %s\n", v.Name)
		for _, issue := range v.Issues {
			text += fmt.Sprintf("        [%s] %s\n", issue.Rule, issue.Message)
		}
	}
	return text
}

func (s *Server) formatAnalyzeFileResult(result *pdf.AnalyzeFileResult) string {
	text := "PDF Form Analysis\n"
	text += fmt.Sprintf("File: %s\n", result.Path)
	text += fmt.Sprintf("Size: %d bytes\n", result.Size)
	text += fmt.Sprintf("Pages: %d\n", result.PageCount)
	text += fmt.Sprintf("Fields: %d (%d terminal)\n", result.FieldCount, result.LeafCount)
	text += fmt.Sprintf("Hierarchy depth: %d\n", result.MaxDepth)

	if len(result.KindCounts) > 0 {
		kinds := make([]string, 0, len(result.KindCounts))
		for kind := range result.KindCounts {
			kinds = append(kinds, kind)
		}
		sort.Strings(kinds)
		text += "\nFields by kind:\n"
		for _, kind := range kinds {
			text += fmt.Sprintf("  %s: %d\n", kind, result.KindCounts[kind])
		}
	}
	if result.SyntheticCount > 0 {
		text += fmt.Sprintf("\nSynthetic identifiers: %d (not renameable)\n", result.SyntheticCount)
	}
	if result.UnnamedCount > 0 {
		text += fmt.Sprintf("Unnamed fields: %d\n", result.UnnamedCount)
	}
	if len(result.Violations) > 0 {
		text += "\nStructural violations:\n"
		for _, v := range result.Violations {
			text += fmt.Sprintf("  - %s\n", v)
		}
	}
	if len(result.Diagnostics) > 0 {
		text += "\nDiagnostics:\n"
		for _, d := range result.Diagnostics {
			text += fmt.Sprintf("  - %s\n", d)
		}
	}
	return text
}

func (s *Server) formatServerInfoResult(result *pdf.ServerInfoResult) string {
	text := fmt.Sprintf("%s v%s - Server Information\n", result.ServerName, result.Version)
	text += fmt.Sprintf("Default Directory: %s\n", result.DefaultDirectory)
	text += fmt.Sprintf("Max File Size: %d MB\n\n", result.MaxFileSize/(1024*1024))

	if len(result.DirectoryContents) > 0 {
		text += fmt.Sprintf("Directory Contents (%d PDF files found):\n", len(result.DirectoryContents))
		for i, file := range result.DirectoryContents {
			if i >= 10 { // Limit to first 10 files for readability
				text += fmt.Sprintf("   ... and %d more files\n", len(result.DirectoryContents)-10)
				break
			}
			text += fmt.Sprintf("   %d. %s (%d bytes)\n", i+1, file.Name, file.Size)
		}
		text += "\n"
	} else {
		text += "Directory Contents: No PDF files found in default directory\n\n"
	}

	text += "Available Tools:\n"
	for _, tool := range result.AvailableTools {
		text += fmt.Sprintf("\n- %s\n", tool.Name)
		text += fmt.Sprintf("  Description: %s\n", tool.Description)
		text += fmt.Sprintf("  Usage: %s\n", tool.Usage)
		text += fmt.Sprintf("  Parameters: %s\n", tool.Parameters)
	}

	text += "\n" + result.UsageGuidance
	return text
}

// Run starts the MCP server over stdio
func (s *Server) Run(ctx context.Context) error {
	return s.runStdioMode(ctx)
}

// runStdioMode runs the server in stdio mode
func (s *Server) runStdioMode(_ context.Context) error {
	if s.config.IsDebug() {
		log.Printf("Starting pdfparse MCP server in stdio mode")
		log.Printf("PDF directory: %s", s.config.PDFDirectory)
	}

	// Use the mark3labs/mcp-go server.ServeStdio function
	if err := server.ServeStdio(s.mcpServer); err != nil {
		return fmt.Errorf("failed to serve stdio: %w", err)
	}
	return nil
}
