// Package layout abstracts positioned-text access for label and context
// resolution. The production provider wraps ledongthuc/pdf; tests supply a
// stub.
package layout

// Run is one horizontal run of text on a page, with its bounding box in
// default user space (lower-left origin).
type Run struct {
	Text string
	X    float64
	Y    float64
	W    float64
	H    float64
}

// Provider yields the text runs of a page. Page indices are 1-based;
// page 0 (unknown page) always yields no runs.
type Provider interface {
	PageRuns(page int) ([]Run, error)
}
