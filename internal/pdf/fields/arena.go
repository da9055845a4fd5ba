// Package fields builds an in-memory model of a PDF AcroForm field tree.
//
// Nodes live in a flat arena and reference each other by index, never by
// pointer, so the parent/child graph cannot form ownership cycles. One arena
// is built per extraction pass and discarded with it; no node outlives the
// document bytes it was derived from.
package fields

import (
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
)

// NodeID is an arena index. It is stable for the lifetime of one extraction
// pass. NoParent marks a top-level node.
type NodeID int

// NoParent is the parent value of top-level nodes.
const NoParent NodeID = -1

// Rect is a widget bounding box in default user space, lower-left origin.
type Rect struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	W float64 `json:"width"`
	H float64 `json:"height"`
}

// Widget is one on-page visual representation of a field. Rect is nil when
// the annotation carries no geometry.
type Widget struct {
	Page        int    `json:"page"`
	Rect        *Rect  `json:"rect,omitempty"`
	ExportValue string `json:"export_value,omitempty"`
}

// Node is one field in the arena. Dict is the underlying pdfcpu dictionary
// and is the write-back handle for the rename engine; nothing else mutates
// it.
type Node struct {
	ID          NodeID
	Kind        FieldKind
	PartialName string
	FQN         string
	Parent      NodeID
	Children    []NodeID
	Flags       uint32
	Widgets     []Widget

	// Set only by Enrich; never consulted for classification.
	Label         string
	ContextBefore string
	ContextAfter  string

	// Synthetic marks a node whose FQN was synthesized for an unnamed
	// radio kid. Synthetic nodes have no T entry and cannot be renamed.
	Synthetic bool

	// Per-node recorded problems (structural, geometry). Never abort the
	// document.
	Diagnostics []string

	// FT is the effective field type name (own or inherited).
	FT string

	// Tooltip is the TU entry, kept for date heuristics and suggestions.
	Tooltip string

	Dict types.Dict

	// syntheticSeg is the FQN segment used in place of PartialName when
	// Synthetic is set.
	syntheticSeg string

	// formatScript is JavaScript from an AA/F format action, used only by
	// the date heuristic.
	formatScript string
}

// Arena owns every node of one extraction pass.
type Arena struct {
	nodes []*Node
	byFQN map[string]NodeID

	// Violations records structural problems that could not be attached
	// to any reachable node (a broken top-level entry, for example).
	Violations []string
}

// NewArena returns an empty arena.
func NewArena() *Arena {
	return &Arena{byFQN: make(map[string]NodeID)}
}

// Add appends a node and assigns its ID. Callers set Parent explicitly;
// the returned pointer stays valid for the arena's lifetime.
func (a *Arena) Add(n *Node) *Node {
	n.ID = NodeID(len(a.nodes))
	a.nodes = append(a.nodes, n)
	return n
}

// Len returns the number of nodes.
func (a *Arena) Len() int {
	return len(a.nodes)
}

// Node returns the node with the given ID, or nil when out of range.
func (a *Arena) Node(id NodeID) *Node {
	if id < 0 || int(id) >= len(a.nodes) {
		return nil
	}
	return a.nodes[id]
}

// Nodes returns all nodes in document order.
func (a *Arena) Nodes() []*Node {
	return a.nodes
}

// Roots returns the IDs of all top-level nodes in document order.
func (a *Arena) Roots() []NodeID {
	var roots []NodeID
	for _, n := range a.nodes {
		if n.Parent == NoParent {
			roots = append(roots, n.ID)
		}
	}
	return roots
}

// ByFQN looks a node up by fully qualified name.
func (a *Arena) ByFQN(fqn string) (*Node, bool) {
	id, ok := a.byFQN[fqn]
	if !ok {
		return nil, false
	}
	return a.nodes[id], true
}

// FQNs returns every fully qualified name in document order.
func (a *Arena) FQNs() []string {
	out := make([]string, 0, len(a.nodes))
	for _, n := range a.nodes {
		out = append(out, n.FQN)
	}
	return out
}

// LeafCount counts terminal fields (nodes without field children).
func (a *Arena) LeafCount() int {
	count := 0
	for _, n := range a.nodes {
		if len(n.Children) == 0 {
			count++
		}
	}
	return count
}

// DuplicateFQNs returns every FQN that occurs more than once, in first-seen
// order. A built arena must return none; the rename engine rechecks after
// each batch.
func (a *Arena) DuplicateFQNs() []string {
	seen := make(map[string]int, len(a.nodes))
	var dups []string
	for _, n := range a.nodes {
		seen[n.FQN]++
		if seen[n.FQN] == 2 {
			dups = append(dups, n.FQN)
		}
	}
	return dups
}

// fqnSegment returns the node's own contribution to its FQN.
func (n *Node) fqnSegment() string {
	if n.Synthetic {
		return n.syntheticSeg
	}
	return n.PartialName
}

// joinFQN appends a segment to a parent FQN, skipping empty segments.
func joinFQN(parent, seg string) string {
	if parent == "" {
		return seg
	}
	if seg == "" {
		return parent
	}
	return parent + "." + seg
}

// RecomputeFQN recomputes the FQN of a node and, transitively, of all its
// descendants. FQNs are parent-chain-derived, so renaming a node shifts the
// whole subtree.
func (a *Arena) RecomputeFQN(id NodeID) {
	n := a.Node(id)
	if n == nil {
		return
	}
	parentFQN := ""
	if p := a.Node(n.Parent); p != nil {
		parentFQN = p.FQN
	}
	n.FQN = joinFQN(parentFQN, n.fqnSegment())
	for _, c := range n.Children {
		a.RecomputeFQN(c)
	}
}

// Reindex rebuilds the FQN lookup table. Called after the walk and after
// every rename batch.
func (a *Arena) Reindex() {
	a.byFQN = make(map[string]NodeID, len(a.nodes))
	for _, n := range a.nodes {
		a.byFQN[n.FQN] = n.ID
	}
}

// ParentFQN returns the FQN of the node's parent, or "" for top-level
// nodes.
func (a *Arena) ParentFQN(n *Node) string {
	if p := a.Node(n.Parent); p != nil {
		return p.FQN
	}
	return ""
}

// LastSegment returns the trailing segment of a dotted FQN.
func LastSegment(fqn string) string {
	if i := strings.LastIndexByte(fqn, '.'); i >= 0 {
		return fqn[i+1:]
	}
	return fqn
}
