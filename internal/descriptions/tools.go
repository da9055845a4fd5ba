package descriptions

// Comprehensive tool descriptions with practical examples and use cases

const (
	PDFExtractFieldsDescription = `Extract the complete form field model from a PDF document.

**When to use:** Need the full picture of an interactive form: every field's hierarchy, type, page position, flags, export values and nearby label text.

**Why it's useful:** Returns fully qualified names exactly as the rename tool expects them, plus the on-page label context an agent needs to decide what each field actually means.

**Examples:**
• Understand a form: "Extract all fields from application-form.pdf with their labels"
• Prepare a rename plan: "Get the field model of insurance-claim.pdf as JSON"
• Feed a spreadsheet: "Extract fields from w9.pdf as CSV"

**Common workflows:**
1. Rename Pipeline: Extract fields → Map labels to BEM names → Validate names → Rename
2. Form Audit: Extract fields → Check for unnamed or duplicate fields → Report
3. Data Mapping: Extract fields as CSV → Align with a schema → Build import rules

**Best practices:** Use format=json for programmatic consumption; radio group kids carry their export values (M, F, ...) and synthetic identifiers when unnamed.`

	PDFRenameFieldsDescription = `Rename form fields transactionally with all-or-nothing semantics.

**When to use:** Applying a reviewed renaming map to a form's field identifiers, typically after extracting the model and validating the proposed names.

**Why it's useful:** The whole batch is validated before anything is touched: unknown fields, malformed names, reserved words and name collisions reject the batch with every problem listed, and the source document is never modified in place.

**Examples:**
• Apply a plan: "Rename fields in loan-form.pdf using this old-to-new map"
• Safe preview: "Dry-run this rename map against enrollment.pdf and show what would change"
• Custom output: "Rename fields and write the result to forms/out/enrollment_v2.pdf"

**Common workflows:**
1. Safe Rename: dry_run=true → fix reported problems → run for real
2. Bulk Standardization: Extract → Suggest names → Validate → Rename
3. Versioned Output: Rename with output_path → keep the original untouched

**Best practices:** Always dry-run first. Keep create_backup enabled unless an external system already snapshots the file. Renaming a parent field moves every descendant's fully qualified name.`

	PDFValidateNamesDescription = `Check proposed field names against the BEM naming rules before renaming.

**When to use:** Vetting candidate names, whether hand-written or machine-generated, before committing to a rename batch.

**Why it's useful:** Catches grammar violations (uppercase, bad separators), reserved words, length problems and duplicates cheaply, without loading or modifying any document.

**Examples:**
• Pre-flight a plan: "Validate owner-name_first and owner-name_last"
• Check against a form: "Validate these names against fields already in benefits.pdf"
• Enforce conventions: "Is dividend-option_cash--group a valid group name?"

**Common workflows:**
1. Name Review: Generate candidates → Validate → Fix rejects → Rename
2. Convention Gate: Validate in CI → Reject PRs introducing bad names

**Best practices:** Pass the document path too when renaming into an existing form, so collisions with untouched fields are caught here instead of at rename time.`

	PDFAnalyzeFileDescription = `Summarize the form structure of a PDF document.

**When to use:** A quick structural overview before deciding how to process a form: field counts by kind, hierarchy depth, pages, and any structural problems.

**Why it's useful:** Cheap first look that tells you whether a document has a form at all, how complex it is, and whether extraction found violations worth investigating.

**Examples:**
• Triage: "Analyze tax-packet.pdf before extracting anything"
• Quality check: "How many unnamed or synthetic fields does claim-form.pdf have?"
• Inventory: "Summarize every form's field counts for the migration report"

**Common workflows:**
1. Triage: Analyze → Extract only documents with fields → Skip the rest
2. Health Check: Analyze → Flag forms with violations → Manual review

**Best practices:** Run before batch operations to estimate work; a high synthetic count means many radio kids without own names, which cannot be renamed individually.`

	PDFSuggestNamesDescription = `Generate deterministic BEM name suggestions from on-page labels.

**When to use:** Need starting-point names for a form's fields derived from the text printed next to each widget.

**Why it's useful:** Slugifies each field's label (falling back to tooltip, then current name) into the block_element grammar, prefixes a matched section block, and keeps suggestions unique per document. Deterministic, so the same document always yields the same proposals.

**Examples:**
• Bootstrap a plan: "Suggest names for all fields in application.pdf"
• Compare: "Show suggested vs current names for audit"

**Common workflows:**
1. Assisted Renaming: Suggest → Human or agent reviews/edits → Validate → Rename

**Best practices:** Treat suggestions as drafts: the heuristic knows common section vocabularies (owner, beneficiary, payment, ...) but not your domain. Confidence below 0.4 means the label was missing and the suggestion came from a fallback.`

	PDFServerInfoDescription = `Get server capabilities, available tools, directory contents, and usage guidance.

**When to use:** Starting a session with the server, or recovering context about what tools exist and where the working directory points.

**Why it's useful:** One call returns the tool catalog with parameters, the PDFs visible in the working directory, size limits, and the recommended rename workflow.

**Examples:**
• Orientation: "What can this server do and which PDFs can it see?"
• Debugging: "Confirm the server's working directory and file size limit"

**Common workflows:**
1. Session Start: Server info → Pick a document → Analyze → Extract

**Best practices:** Directory listings are cached briefly; re-query after adding files if a new document does not appear.`
)

// ToolDescriptions maps tool names to their comprehensive descriptions
var ToolDescriptions = map[string]string{
	"pdf_extract_fields": PDFExtractFieldsDescription,
	"pdf_rename_fields":  PDFRenameFieldsDescription,
	"pdf_validate_names": PDFValidateNamesDescription,
	"pdf_analyze_file":   PDFAnalyzeFileDescription,
	"pdf_suggest_names":  PDFSuggestNamesDescription,
	"pdf_server_info":    PDFServerInfoDescription,
}

// GetToolDescription returns the comprehensive description for a tool
func GetToolDescription(toolName string) string {
	if desc, exists := ToolDescriptions[toolName]; exists {
		return desc
	}
	return "Tool description not available"
}

// GetAllToolNames returns a list of all available tool names
func GetAllToolNames() []string {
	names := make([]string, 0, len(ToolDescriptions))
	for name := range ToolDescriptions {
		names = append(names, name)
	}
	return names
}
