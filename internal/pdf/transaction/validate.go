package transaction

import (
	"fmt"

	"github.com/wsekete/PDFParseV2/internal/naming"
	"github.com/wsekete/PDFParseV2/internal/pdf/fields"
	"github.com/wsekete/PDFParseV2/internal/pdf/rename"
)

// validateBatch checks a whole batch against the arena without mutating
// anything. It returns every problem found.
//
// Checks, in order per pair: the source must exist, must not be synthetic,
// and the target name must be a well-formed partial name. A pair whose
// source is gone but whose rename is already in place passes, so that
// re-running a committed batch validates as a no-op. Across the batch, no
// two pairs may share a source, and the projected post-rename name set must
// stay free of duplicates.
func validateBatch(arena *fields.Arena, pairs []rename.Pair) []Problem {
	var problems []Problem

	renamed := make(map[fields.NodeID]string, len(pairs))
	pairByID := make(map[fields.NodeID]rename.Pair, len(pairs))
	seenSource := make(map[string]bool, len(pairs))
	for _, p := range pairs {
		if seenSource[p.OldFQN] {
			problems = append(problems, Problem{
				OldFQN:  p.OldFQN,
				NewName: p.NewName,
				Rule:    "duplicate-source",
				Message: fmt.Sprintf("field %q is renamed more than once in this batch", p.OldFQN),
			})
			continue
		}
		seenSource[p.OldFQN] = true

		n, ok := arena.ByFQN(p.OldFQN)
		if !ok {
			if rename.AlreadyApplied(arena, p) {
				continue
			}
			problems = append(problems, Problem{
				OldFQN:  p.OldFQN,
				NewName: p.NewName,
				Rule:    "unknown-field",
				Message: fmt.Sprintf("no field named %q in document", p.OldFQN),
			})
			continue
		}
		if n.Synthetic {
			problems = append(problems, Problem{
				OldFQN:  p.OldFQN,
				NewName: p.NewName,
				Rule:    "synthetic-field",
				Message: fmt.Sprintf("field %q has a synthesized identifier and cannot be renamed", p.OldFQN),
			})
			continue
		}
		for _, issue := range naming.CheckSegment(p.NewName) {
			problems = append(problems, Problem{
				OldFQN:  p.OldFQN,
				NewName: p.NewName,
				Rule:    issue.Rule,
				Message: fmt.Sprintf("cannot rename %q: %s", p.OldFQN, issue.Message),
			})
		}
		renamed[n.ID] = p.NewName
		pairByID[n.ID] = p
	}

	if len(problems) == 0 {
		projected, dups := projectNames(arena, renamed)
		for _, dup := range dups {
			// One problem per contributor, so a rejection names every
			// pair behind the collision, not just the shared target.
			for _, n := range arena.Nodes() {
				if projected[n.ID] != dup {
					continue
				}
				if p, ok := pairByID[n.ID]; ok {
					problems = append(problems, Problem{
						OldFQN:  p.OldFQN,
						NewName: p.NewName,
						Rule:    "name-collision",
						Message: fmt.Sprintf("renaming %q to %q would produce more than one field named %q", p.OldFQN, p.NewName, dup),
					})
				} else {
					problems = append(problems, Problem{
						OldFQN:  n.FQN,
						Rule:    "name-collision",
						Message: fmt.Sprintf("existing field %q would share the name %q after the batch", n.FQN, dup),
					})
				}
			}
		}
	}
	return problems
}

// projectNames computes the fully qualified name every node would carry
// after the batch, plus the names that would occur more than once. Nodes
// are stored parents-first, so one pass suffices.
func projectNames(arena *fields.Arena, renamed map[fields.NodeID]string) (map[fields.NodeID]string, []string) {
	projected := make(map[fields.NodeID]string, arena.Len())
	seen := make(map[string]int, arena.Len())
	var dups []string
	for _, n := range arena.Nodes() {
		seg, ok := renamed[n.ID]
		if !ok {
			seg = fields.LastSegment(n.FQN)
		}
		parent := ""
		if n.Parent != fields.NoParent {
			parent = projected[n.Parent]
		}
		fqn := seg
		if parent != "" && seg != "" {
			fqn = parent + "." + seg
		} else if seg == "" {
			fqn = parent
		}
		projected[n.ID] = fqn
		seen[fqn]++
		if seen[fqn] == 2 {
			dups = append(dups, fqn)
		}
	}
	return projected, dups
}
