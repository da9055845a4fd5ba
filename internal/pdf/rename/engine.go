// Package rename mutates field partial names inside an extracted arena and
// the pdfcpu object graph behind it. It performs no validation beyond what
// is needed for structural safety; policy checks live in the transaction
// layer.
package rename

import (
	"fmt"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"

	"github.com/wsekete/PDFParseV2/internal/pdf/fields"
)

// Pair is one requested rename, keyed by the field's fully qualified name
// as it stood before the batch was applied.
type Pair struct {
	OldFQN  string `json:"old_fqn"`
	NewName string `json:"new_name"`
}

// AppliedRename records one rename that took effect.
type AppliedRename struct {
	OldFQN  string `json:"old_fqn"`
	NewName string `json:"new_name"`
	NewFQN  string `json:"new_fqn"`
}

// SkippedRename records one pair that was a no-op.
type SkippedRename struct {
	FQN    string `json:"fqn"`
	Reason string `json:"reason"`
}

// Report summarizes one applied batch.
type Report struct {
	Applied []AppliedRename `json:"applied"`
	Skipped []SkippedRename `json:"skipped"`
}

// UnknownFieldError reports a rename source that matches no field in the
// document.
type UnknownFieldError struct {
	FQN string
}

func (e *UnknownFieldError) Error() string {
	return fmt.Sprintf("no field named %q in document", e.FQN)
}

// SyntheticFieldError reports a rename source whose identifier was
// synthesized during extraction. Synthetic nodes carry no T entry, so there
// is nothing in the document to rewrite.
type SyntheticFieldError struct {
	FQN string
}

func (e *SyntheticFieldError) Error() string {
	return fmt.Sprintf("field %q has a synthesized identifier and cannot be renamed", e.FQN)
}

// CollisionError reports fully qualified names that would occur more than
// once after the batch.
type CollisionError struct {
	FQNs []string
}

func (e *CollisionError) Error() string {
	return fmt.Sprintf("rename batch would duplicate field names: %v", e.FQNs)
}

// AlreadyApplied reports whether a pair whose source is absent from the
// arena describes a rename an earlier batch already performed: the field
// the pair would have produced exists and carries the requested segment.
// Re-running a committed batch skips such pairs instead of failing.
func AlreadyApplied(arena *fields.Arena, p Pair) bool {
	target := p.NewName
	if i := strings.LastIndex(p.OldFQN, "."); i >= 0 {
		target = p.OldFQN[:i+1] + p.NewName
	}
	n, ok := arena.ByFQN(target)
	return ok && !n.Synthetic && n.PartialName == p.NewName
}

// Apply applies a whole batch against the arena and the dictionaries it
// holds. Sources are resolved against the pre-batch name snapshot before
// anything is written, so a batch may rename A to B and B to C without the
// pairs observing each other. Pairs whose rename is already in place,
// because the same batch ran before, are skipped rather than failed, which
// makes applying a batch twice equal to applying it once. On any error the
// arena may hold partial mutations; callers that need atomicity work on a
// throwaway copy of the document (see the transaction package).
func Apply(arena *fields.Arena, pairs []Pair) (*Report, error) {
	type resolved struct {
		node *fields.Node
		pair Pair
	}

	// Resolve every source first. A later pair must find its target by the
	// name it had when the batch was submitted, not by an intermediate
	// state.
	report := &Report{}
	batch := make([]resolved, 0, len(pairs))
	for _, p := range pairs {
		n, ok := arena.ByFQN(p.OldFQN)
		if !ok {
			if AlreadyApplied(arena, p) {
				report.Skipped = append(report.Skipped, SkippedRename{
					FQN:    p.OldFQN,
					Reason: "already renamed to " + p.NewName,
				})
				continue
			}
			return nil, &UnknownFieldError{FQN: p.OldFQN}
		}
		if n.Synthetic {
			return nil, &SyntheticFieldError{FQN: p.OldFQN}
		}
		batch = append(batch, resolved{node: n, pair: p})
	}

	for _, r := range batch {
		if r.node.PartialName == r.pair.NewName {
			report.Skipped = append(report.Skipped, SkippedRename{
				FQN:    r.pair.OldFQN,
				Reason: "already named " + r.pair.NewName,
			})
			continue
		}
		r.node.PartialName = r.pair.NewName
		if r.node.Dict != nil {
			r.node.Dict["T"] = types.StringLiteral(r.pair.NewName)
		}
		arena.RecomputeFQN(r.node.ID)
		report.Applied = append(report.Applied, AppliedRename{
			OldFQN:  r.pair.OldFQN,
			NewName: r.pair.NewName,
			NewFQN:  r.node.FQN,
		})
	}

	if dups := arena.DuplicateFQNs(); len(dups) > 0 {
		return nil, &CollisionError{FQNs: dups}
	}
	arena.Reindex()
	return report, nil
}
