package fields

import (
	"fmt"
	"sort"

	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
)

// resolver is the slice of the pdfcpu object graph the walker needs.
// model.Context satisfies it through its embedded XRefTable.
type resolver interface {
	Dereference(o types.Object) (types.Object, error)
	DereferenceDict(o types.Object) (types.Dict, error)
	DereferenceArray(o types.Object) (types.Array, error)
}

// Walk traverses the AcroForm field tree of a parsed document and builds the
// node arena. A document without an AcroForm root fails with
// MalformedDocumentError; a root with zero fields yields an empty arena.
// Cycles in a Kids chain are recorded per subtree and never loop.
func Walk(ctx *model.Context) (*Arena, error) {
	catalog, err := ctx.Catalog()
	if err != nil {
		return nil, &MalformedDocumentError{Reason: "unreadable catalog", Err: err}
	}

	acroObj, found := catalog.Find("AcroForm")
	if !found {
		return nil, &MalformedDocumentError{Reason: "no AcroForm dictionary"}
	}

	acroDict, err := ctx.DereferenceDict(acroObj)
	if err != nil || acroDict == nil {
		return nil, &MalformedDocumentError{Reason: "unreadable AcroForm dictionary", Err: err}
	}

	fieldsObj, found := acroDict.Find("Fields")
	if !found {
		return nil, &MalformedDocumentError{Reason: "AcroForm has no Fields entry"}
	}

	fieldRefs, err := ctx.DereferenceArray(fieldsObj)
	if err != nil {
		return nil, &MalformedDocumentError{Reason: "unreadable Fields array", Err: err}
	}

	return walkFields(ctx, fieldRefs, annotationPageMap(ctx)), nil
}

// annotationPageMap maps annotation object numbers to 1-based page indices
// in one pass over the page tree. Widget page resolution is a lookup, not a
// per-widget scan.
func annotationPageMap(ctx *model.Context) map[int]int {
	pages := make(map[int]int)
	if err := ctx.EnsurePageCount(); err != nil {
		return pages
	}
	for p := 1; p <= ctx.PageCount; p++ {
		pageDict, _, _, err := ctx.PageDict(p, false)
		if err != nil || pageDict == nil {
			continue
		}
		annotsObj, found := pageDict.Find("Annots")
		if !found {
			continue
		}
		annots, err := ctx.DereferenceArray(annotsObj)
		if err != nil {
			continue
		}
		for _, a := range annots {
			if ir, ok := a.(types.IndirectRef); ok {
				pages[ir.ObjectNumber.Value()] = p
			}
		}
	}
	return pages
}

// walkFields builds the arena from the top-level field references. Split
// from Walk so the traversal is testable against a fake resolver.
func walkFields(res resolver, fieldRefs types.Array, pages map[int]int) *Arena {
	w := &walker{
		res:     res,
		pages:   pages,
		arena:   NewArena(),
		visited: make(map[int]bool),
	}
	for _, ref := range fieldRefs {
		w.walkField(ref, NoParent, "", inherited{})
	}
	w.classifyAll()
	w.normalizeRadioGroups()
	w.dedupeFQNs()
	w.arena.Reindex()
	return w.arena
}

// inherited carries attributes a field dictionary may omit and take from its
// parent instead.
type inherited struct {
	ft    string
	flags uint32
}

type walker struct {
	res     resolver
	pages   map[int]int
	arena   *Arena
	visited map[int]bool
}

// walkField processes one Kids entry that is a field dictionary. It creates
// the node, merges pure widget kids into it, promotes radio widget kids to
// RadioButton child nodes, and recurses into field-typed kids. Returns the
// new node's ID, or NoParent when the entry could not be resolved.
func (w *walker) walkField(obj types.Object, parent NodeID, parentFQN string, inh inherited) NodeID {
	objNum := -1
	if ir, ok := obj.(types.IndirectRef); ok {
		objNum = ir.ObjectNumber.Value()
		if w.visited[objNum] {
			v := &StructuralViolationError{FQN: parentFQN, ObjectNum: objNum, Reason: "Kids chain revisits object"}
			w.recordViolation(parent, v)
			return NoParent
		}
		w.visited[objNum] = true
	}

	dict, err := w.res.DereferenceDict(obj)
	if err != nil || dict == nil {
		v := &StructuralViolationError{FQN: parentFQN, ObjectNum: objNum, Reason: "unresolvable field reference"}
		w.recordViolation(parent, v)
		return NoParent
	}

	flags := inh.flags
	if f, ok := w.intEntry(dict, "Ff"); ok {
		flags = uint32(f)
	}
	ft := inh.ft
	if v, ok := w.nameEntry(dict, "FT"); ok {
		ft = v
	}

	n := w.arena.Add(&Node{
		Parent:       parent,
		PartialName:  w.stringEntry(dict, "T"),
		Flags:        flags,
		FT:           ft,
		Tooltip:      w.stringEntry(dict, "TU"),
		formatScript: w.formatAction(dict),
		Dict:         dict,
	})
	n.FQN = joinFQN(parentFQN, n.PartialName)
	if n.PartialName == "" && parent != NoParent {
		n.Diagnostics = append(n.Diagnostics, "field dictionary has no T entry")
	}

	// A field dict carrying its own Rect is a merged widget annotation.
	if _, found := dict.Find("Rect"); found {
		n.Widgets = append(n.Widgets, w.widgetOf(dict, objNum, n))
	}

	kidsObj, found := dict.Find("Kids")
	if !found {
		return n.ID
	}
	kids, err := w.res.DereferenceArray(kidsObj)
	if err != nil {
		n.Diagnostics = append(n.Diagnostics,
			(&StructuralViolationError{FQN: n.FQN, ObjectNum: objNum, Reason: "unreadable Kids array"}).Error())
		return n.ID
	}

	radioParent := ft == "Btn" && flags&FlagRadio != 0
	exportSeen := make(map[string]int)

	for _, kid := range kids {
		kidNum := -1
		if ir, ok := kid.(types.IndirectRef); ok {
			kidNum = ir.ObjectNumber.Value()
			if w.visited[kidNum] {
				v := &StructuralViolationError{FQN: n.FQN, ObjectNum: kidNum, Reason: "Kids chain revisits object"}
				n.Diagnostics = append(n.Diagnostics, v.Error())
				continue
			}
		}

		kidDict, err := w.res.DereferenceDict(kid)
		if err != nil || kidDict == nil {
			v := &StructuralViolationError{FQN: n.FQN, ObjectNum: kidNum, Reason: "unresolvable Kids entry"}
			n.Diagnostics = append(n.Diagnostics, v.Error())
			continue
		}

		_, hasT := kidDict.Find("T")
		_, hasFT := kidDict.Find("FT")
		_, hasRect := kidDict.Find("Rect")

		switch {
		case hasT || hasFT:
			if id := w.walkField(kid, n.ID, n.FQN, inherited{ft: ft, flags: flags}); id != NoParent {
				n.Children = append(n.Children, id)
			}
		case radioParent && hasRect:
			w.promoteRadioKid(kidDict, kidNum, n, exportSeen)
		case hasRect:
			if kidNum >= 0 {
				w.visited[kidNum] = true
			}
			n.Widgets = append(n.Widgets, w.widgetOf(kidDict, kidNum, n))
		default:
			n.Diagnostics = append(n.Diagnostics,
				fmt.Sprintf("Kids entry (obj %d) is neither field nor widget", kidNum))
		}
	}
	return n.ID
}

// promoteRadioKid turns a widget-bearing kid of a radio-flagged Btn field
// into a RadioButton child node. Unnamed kids get a synthetic FQN from their
// export value; such nodes have no T entry and are refused as rename
// sources.
func (w *walker) promoteRadioKid(kidDict types.Dict, kidNum int, parent *Node, exportSeen map[string]int) {
	if kidNum >= 0 {
		w.visited[kidNum] = true
	}

	widget := w.widgetOf(kidDict, kidNum, parent)
	seg := widget.ExportValue
	if seg == "" {
		seg = "kid"
	}
	exportSeen[seg]++
	if ord := exportSeen[seg]; ord > 1 {
		seg = fmt.Sprintf("%s#%d", seg, ord)
	}

	c := w.arena.Add(&Node{
		Parent:       parent.ID,
		Flags:        parent.Flags,
		FT:           parent.FT,
		Synthetic:    true,
		syntheticSeg: seg,
		Dict:         kidDict,
	})
	c.FQN = joinFQN(parent.FQN, seg)
	c.Widgets = []Widget{widget}
	parent.Children = append(parent.Children, c.ID)
}

// widgetOf builds a Widget from an annotation dictionary. A missing Rect is
// non-fatal: the widget is kept with nil geometry and a diagnostic on the
// owning node.
func (w *walker) widgetOf(dict types.Dict, objNum int, owner *Node) Widget {
	widget := Widget{
		Page:        w.pages[objNum],
		ExportValue: w.exportValue(dict),
	}
	rectObj, found := dict.Find("Rect")
	if !found {
		owner.Diagnostics = append(owner.Diagnostics,
			(&MissingGeometryError{FQN: owner.FQN, Page: widget.Page}).Error())
		return widget
	}
	rect, ok := w.rectValue(rectObj)
	if !ok {
		owner.Diagnostics = append(owner.Diagnostics,
			(&MissingGeometryError{FQN: owner.FQN, Page: widget.Page}).Error())
		return widget
	}
	widget.Rect = rect
	return widget
}

// exportValue resolves the selectable value of a checkbox/radio widget: the
// AS name when set, otherwise the first non-Off key of the normal
// appearance dictionary.
func (w *walker) exportValue(dict types.Dict) string {
	if as, ok := w.nameEntry(dict, "AS"); ok && as != "Off" {
		return as
	}
	apObj, found := dict.Find("AP")
	if !found {
		return ""
	}
	apDict, err := w.res.DereferenceDict(apObj)
	if err != nil || apDict == nil {
		return ""
	}
	nObj, found := apDict.Find("N")
	if !found {
		return ""
	}
	nDict, err := w.res.DereferenceDict(nObj)
	if err != nil || nDict == nil {
		return ""
	}
	keys := make([]string, 0, len(nDict))
	for k := range nDict {
		if k != "Off" {
			keys = append(keys, k)
		}
	}
	if len(keys) == 0 {
		return ""
	}
	sort.Strings(keys)
	return keys[0]
}

// formatAction pulls the JavaScript of an AA/F (format) action, consumed
// only by the date heuristic.
func (w *walker) formatAction(dict types.Dict) string {
	aaObj, found := dict.Find("AA")
	if !found {
		return ""
	}
	aaDict, err := w.res.DereferenceDict(aaObj)
	if err != nil || aaDict == nil {
		return ""
	}
	fObj, found := aaDict.Find("F")
	if !found {
		return ""
	}
	fDict, err := w.res.DereferenceDict(fObj)
	if err != nil || fDict == nil {
		return ""
	}
	return w.stringEntry(fDict, "JS")
}

func (w *walker) recordViolation(parent NodeID, v *StructuralViolationError) {
	if p := w.arena.Node(parent); p != nil {
		p.Diagnostics = append(p.Diagnostics, v.Error())
		return
	}
	w.arena.Violations = append(w.arena.Violations, v.Error())
}

// classifyAll assigns kinds once the whole tree is known; rule 2 depends on
// child presence.
func (w *walker) classifyAll() {
	for _, n := range w.arena.Nodes() {
		n.Kind = Classify(n)
		if n.Kind == KindUnknown {
			n.Diagnostics = append(n.Diagnostics,
				fmt.Sprintf("unclassifiable field (FT=%q, Ff=%d)", n.FT, n.Flags))
		}
	}
}

// normalizeRadioGroups moves any widget merged onto a RadioGroup node down
// into a synthetic RadioButton child. A group node never carries geometry of
// its own.
func (w *walker) normalizeRadioGroups() {
	for _, n := range w.arena.Nodes() {
		if n.Kind != KindRadioGroup || len(n.Widgets) == 0 {
			continue
		}
		exportSeen := make(map[string]int)
		for _, c := range n.Children {
			if child := w.arena.Node(c); child != nil && len(child.Widgets) == 1 {
				exportSeen[child.Widgets[0].ExportValue]++
			}
		}
		for _, widget := range n.Widgets {
			seg := widget.ExportValue
			if seg == "" {
				seg = "kid"
			}
			exportSeen[seg]++
			if ord := exportSeen[seg]; ord > 1 {
				seg = fmt.Sprintf("%s#%d", seg, ord)
			}
			c := w.arena.Add(&Node{
				Parent:       n.ID,
				Kind:         KindRadioButton,
				Flags:        n.Flags,
				FT:           n.FT,
				Synthetic:    true,
				syntheticSeg: seg,
				Dict:         n.Dict,
			})
			c.FQN = joinFQN(n.FQN, seg)
			c.Widgets = []Widget{widget}
			n.Children = append(n.Children, c.ID)
		}
		n.Widgets = nil
	}
}

// dedupeFQNs enforces global FQN uniqueness over the built arena. Later
// duplicates get an ordinal suffix, a diagnostic, and the synthetic mark so
// they cannot be used as rename sources (their T entry is shared).
func (w *walker) dedupeFQNs() {
	seen := make(map[string]int, w.arena.Len())
	for _, n := range w.arena.Nodes() {
		seen[n.FQN]++
		if ord := seen[n.FQN]; ord > 1 {
			n.Diagnostics = append(n.Diagnostics,
				fmt.Sprintf("duplicate fully qualified name %q", n.FQN))
			n.Synthetic = true
			n.syntheticSeg = fmt.Sprintf("%s#%d", n.fqnSegment(), ord)
			w.arena.RecomputeFQN(n.ID)
		}
	}
}
