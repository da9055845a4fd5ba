package naming

import (
	"fmt"
	"strings"

	goslug "github.com/gosimple/slug"
)

// Suggestion is a deterministic BEM name proposal for one field. The real
// naming intelligence stays outside this module; these are slug-based
// starting points.
type Suggestion struct {
	FQN        string  `json:"fqn"`
	Name       string  `json:"suggested_name"`
	Block      string  `json:"block,omitempty"`
	Confidence float64 `json:"confidence"`
}

// Suggester derives BEM names from labels and keeps proposals unique
// within one document.
type Suggester struct {
	used map[string]int
}

// NewSuggester returns a suggester with an empty uniqueness table.
func NewSuggester() *Suggester {
	return &Suggester{used: make(map[string]int)}
}

// Suggest proposes a BEM name for a field from its label (or tooltip, or
// current name as fallback). isGroup appends the --group suffix. Confidence
// reflects how much signal backed the proposal.
func (s *Suggester) Suggest(fqn, label, fallback string, isGroup bool) Suggestion {
	source := label
	confidence := 0.7
	if source == "" {
		source = fallback
		confidence = 0.4
	}
	if source == "" {
		source = LastDotSegment(fqn)
		confidence = 0.2
	}

	element := goslug.Make(source)
	if element == "" {
		element = "field"
		confidence = 0.1
	}
	element = strings.ReplaceAll(element, "_", "-")

	block := MatchBlock(label + " " + fallback)
	name := element
	if block != "" {
		name = block + "_" + element
		confidence += 0.1
	} else {
		name = "general_" + element
	}
	name = s.unique(name, isGroup)
	return Suggestion{FQN: fqn, Name: name, Block: block, Confidence: confidence}
}

// unique suffixes repeated proposals with an ordinal so one document never
// gets the same suggestion twice. The ordinal goes before any --group
// suffix to keep the name inside the BEM grammar.
func (s *Suggester) unique(name string, isGroup bool) string {
	key := name
	if isGroup {
		key += GroupSuffix
	}
	s.used[key]++
	if n := s.used[key]; n > 1 {
		name = fmt.Sprintf("%s-%d", name, n)
	}
	if isGroup {
		name += GroupSuffix
	}
	return name
}

// LastDotSegment returns the trailing segment of a dotted FQN.
func LastDotSegment(fqn string) string {
	if i := strings.LastIndexByte(fqn, '.'); i >= 0 {
		return fqn[i+1:]
	}
	return fqn
}
