package fields

import "fmt"

// MalformedDocumentError indicates the document has no usable form root or an
// unreadable object graph. It is fatal for the extraction pass.
type MalformedDocumentError struct {
	Reason string
	Err    error
}

func (e *MalformedDocumentError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("malformed document: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("malformed document: %s", e.Reason)
}

func (e *MalformedDocumentError) Unwrap() error {
	return e.Err
}

// StructuralViolationError indicates a cycle or broken link in the field
// tree. It is fatal for the affected subtree only; extraction continues for
// siblings and the violation is recorded on the nearest reachable node.
type StructuralViolationError struct {
	FQN       string
	ObjectNum int
	Reason    string
}

func (e *StructuralViolationError) Error() string {
	if e.FQN != "" {
		return fmt.Sprintf("structural violation at %q (obj %d): %s", e.FQN, e.ObjectNum, e.Reason)
	}
	return fmt.Sprintf("structural violation (obj %d): %s", e.ObjectNum, e.Reason)
}

// MissingGeometryError indicates a widget annotation without a Rect entry.
// Non-fatal: the widget is kept with nil geometry and the error is recorded
// as a node diagnostic.
type MissingGeometryError struct {
	FQN  string
	Page int
}

func (e *MissingGeometryError) Error() string {
	return fmt.Sprintf("widget of %q has no Rect (page %d)", e.FQN, e.Page)
}
