package pdf

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/wsekete/PDFParseV2/internal/naming"
	"github.com/wsekete/PDFParseV2/internal/pdf/fields"
	"github.com/wsekete/PDFParseV2/internal/pdf/layout"
	"github.com/wsekete/PDFParseV2/internal/pdf/rename"
	"github.com/wsekete/PDFParseV2/internal/pdf/security"
	"github.com/wsekete/PDFParseV2/internal/pdf/transaction"
)

// Service orchestrates the extraction and rename pipeline over documents on
// disk. One service is safe for sequential reuse; nothing is cached between
// calls.
type Service struct {
	maxFileSize   int64
	contextRadius float64
	validator     *Validator
	pathValidator *security.PathValidator
	now           func() time.Time
}

// NewService creates a service bound to a working directory. contextRadius
// of 0 means the default label-search radius.
func NewService(maxFileSize int64, configuredDirectory string, contextRadius float64) (*Service, error) {
	pathValidator, err := security.NewPathValidator(configuredDirectory)
	if err != nil {
		return nil, fmt.Errorf("failed to create path validator: %w", err)
	}
	if contextRadius <= 0 {
		contextRadius = fields.DefaultContextRadius
	}

	return &Service{
		maxFileSize:   maxFileSize,
		contextRadius: contextRadius,
		validator:     NewValidator(maxFileSize),
		pathValidator: pathValidator,
		now:           time.Now,
	}, nil
}

// GetMaxFileSize returns the maximum file size limit
func (s *Service) GetMaxFileSize() int64 {
	return s.maxFileSize
}

// IsValidPDF performs a quick validation check on a file
func (s *Service) IsValidPDF(filePath string) bool {
	return s.validator.IsValidPDF(filePath)
}

// extract loads a document and builds its enriched field model. Label
// enrichment failures degrade to diagnostics; they never fail the call.
func (s *Service) extract(path string, radius float64) (*Document, *fields.Arena, error) {
	if err := s.pathValidator.ValidatePath(path); err != nil {
		return nil, nil, fmt.Errorf("security validation failed: %w", err)
	}

	doc, err := LoadDocument(path, s.maxFileSize)
	if err != nil {
		return nil, nil, err
	}

	arena, err := fields.Walk(doc.Context)
	if err != nil {
		return nil, nil, err
	}

	if radius <= 0 {
		radius = s.contextRadius
	}
	if provider, err := layout.OpenFile(path); err == nil {
		fields.Enrich(arena, provider, radius)
		provider.Close()
	} else {
		arena.Violations = append(arena.Violations,
			fmt.Sprintf("text layout unavailable: %v", err))
	}

	return doc, arena, nil
}

// ExtractFields builds the field model of one document
func (s *Service) ExtractFields(req ExtractFieldsRequest) (*ExtractFieldsResult, error) {
	doc, arena, err := s.extract(req.Path, req.ContextRadius)
	if err != nil {
		return nil, err
	}

	return &ExtractFieldsResult{
		Path:       req.Path,
		PageCount:  doc.PageCount(),
		FieldCount: arena.Len(),
		LeafCount:  arena.LeafCount(),
		Fields:     s.recordsFromArena(arena),
		Violations: arena.Violations,
	}, nil
}

// recordsFromArena flattens the arena into boundary records in document
// order. Every record gets a fresh UUID; identity across runs is the FQN.
func (s *Service) recordsFromArena(arena *fields.Arena) []FieldRecord {
	records := make([]FieldRecord, 0, arena.Len())
	for _, n := range arena.Nodes() {
		rec := FieldRecord{
			UUID:        uuid.NewString(),
			FQN:         n.FQN,
			Kind:        string(n.Kind),
			ParentFQN:   arena.ParentFQN(n),
			Widgets:     n.Widgets,
			Label:       n.Label,
			Tooltip:     n.Tooltip,
			Flags:       fields.FlagNames(n.Flags),
			Synthetic:   n.Synthetic,
			Diagnostics: n.Diagnostics,
		}
		rec.ContextBefore = n.ContextBefore
		rec.ContextAfter = n.ContextAfter
		if len(n.Widgets) > 0 {
			rec.Page = n.Widgets[0].Page
			rec.Rect = n.Widgets[0].Rect
			rec.ExportValue = n.Widgets[0].ExportValue
		}
		records = append(records, rec)
	}
	return records
}

// RenameFields runs a rename transaction against one document. Dry runs
// validate and report without touching disk; real runs write a backup
// (unless disabled) and the renamed output file.
func (s *Service) RenameFields(req RenameFieldsRequest) (*RenameFieldsResult, error) {
	if len(req.Renames) == 0 {
		return nil, fmt.Errorf("no renames given")
	}

	doc, arena, err := s.extract(req.Path, 0)
	if err != nil {
		return nil, err
	}

	pairs := sortedPairs(req.Renames)
	txn := transaction.New(doc.Context, arena, doc.Bytes, pairs)

	result := &RenameFieldsResult{Path: req.Path, DryRun: req.DryRun}

	if err := txn.Validate(); err != nil {
		result.State = string(txn.State())
		result.Problems = txn.Problems()
		return result, err
	}
	if err := txn.Mutate(); err != nil {
		result.State = string(txn.State())
		return result, err
	}
	if report := txn.Report(); report != nil {
		result.Applied = report.Applied
		result.Skipped = report.Skipped
	}

	if req.DryRun {
		result.State = string(transaction.StateValidated)
		return result, nil
	}

	out, err := txn.Commit()
	result.State = string(txn.State())
	if err != nil {
		return result, err
	}

	if req.CreateBackup {
		backupPath, err := transaction.WriteBackup(req.Path, doc.Bytes, s.now())
		if err != nil {
			return result, fmt.Errorf("writing backup: %w", err)
		}
		result.BackupPath = backupPath
	}

	outputPath := req.OutputPath
	if outputPath == "" {
		outputPath = RenamedOutputPath(req.Path)
	}
	if err := transaction.AtomicWriteFile(outputPath, out); err != nil {
		return result, err
	}
	result.OutputPath = outputPath
	return result, nil
}

// sortedPairs flattens a rename map into deterministic order
func sortedPairs(renames map[string]string) []rename.Pair {
	keys := make([]string, 0, len(renames))
	for k := range renames {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]rename.Pair, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, rename.Pair{OldFQN: k, NewName: renames[k]})
	}
	return pairs
}

// ValidateNames checks proposed names against the naming rules and, when a
// document is given, against its existing fields.
func (s *Service) ValidateNames(req ValidateNamesRequest) (*ValidateNamesResult, error) {
	if len(req.Names) == 0 {
		return nil, fmt.Errorf("no names given")
	}

	existing := make(map[string]string)
	if req.Path != "" {
		_, arena, err := s.extract(req.Path, 0)
		if err != nil {
			return nil, err
		}
		for _, n := range arena.Nodes() {
			existing[fields.LastSegment(n.FQN)] = n.FQN
		}
	}

	result := &ValidateNamesResult{AllValid: true}
	seen := make(map[string]int, len(req.Names))
	for _, name := range req.Names {
		isGroup := strings.HasSuffix(name, naming.GroupSuffix)
		verdict := NameVerdict{
			Name:   name,
			Issues: naming.CheckBEM(name, isGroup),
		}
		seen[name]++
		if seen[name] == 2 {
			verdict.Issues = append(verdict.Issues, naming.Issue{
				Rule:    "duplicate",
				Message: fmt.Sprintf("name %q proposed more than once", name),
			})
		}
		if fqn, ok := existing[name]; ok {
			verdict.Conflict = fqn
			verdict.Issues = append(verdict.Issues, naming.Issue{
				Rule:    "document-collision",
				Message: fmt.Sprintf("name %q already used by field %q", name, fqn),
			})
		}
		verdict.Valid = len(verdict.Issues) == 0
		if !verdict.Valid {
			result.AllValid = false
		}
		result.Verdicts = append(result.Verdicts, verdict)
	}
	return result, nil
}

// AnalyzeFile summarizes one document's form structure
func (s *Service) AnalyzeFile(req AnalyzeFileRequest) (*AnalyzeFileResult, error) {
	doc, arena, err := s.extract(req.Path, 0)
	if err != nil {
		return nil, err
	}

	info, err := os.Stat(req.Path)
	if err != nil {
		return nil, fmt.Errorf("cannot access file: %w", err)
	}

	result := &AnalyzeFileResult{
		Path:       req.Path,
		Size:       info.Size(),
		PageCount:  doc.PageCount(),
		FieldCount: arena.Len(),
		LeafCount:  arena.LeafCount(),
		KindCounts: make(map[string]int),
		Violations: arena.Violations,
	}

	for _, n := range arena.Nodes() {
		result.KindCounts[string(n.Kind)]++
		if n.Synthetic {
			result.SyntheticCount++
		}
		if n.PartialName == "" && !n.Synthetic {
			result.UnnamedCount++
		}
		result.Diagnostics = append(result.Diagnostics, n.Diagnostics...)
		if depth := nodeDepth(arena, n); depth > result.MaxDepth {
			result.MaxDepth = depth
		}
	}
	return result, nil
}

// nodeDepth counts ancestors, 1-based for roots
func nodeDepth(arena *fields.Arena, n *fields.Node) int {
	depth := 1
	for n.Parent != fields.NoParent {
		n = arena.Node(n.Parent)
		depth++
	}
	return depth
}

// SuggestNames proposes heuristic BEM names for every field in a document
func (s *Service) SuggestNames(req SuggestNamesRequest) (*SuggestNamesResult, error) {
	_, arena, err := s.extract(req.Path, 0)
	if err != nil {
		return nil, err
	}

	suggester := naming.NewSuggester()
	result := &SuggestNamesResult{Path: req.Path}
	for _, n := range arena.Nodes() {
		if n.Synthetic {
			continue
		}
		isGroup := n.Kind == fields.KindRadioGroup
		result.Suggestions = append(result.Suggestions,
			suggester.Suggest(n.FQN, n.Label, n.Tooltip, isGroup))
	}
	return result, nil
}
