package fields

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wsekete/PDFParseV2/internal/pdf/layout"
)

type stubProvider struct {
	runs map[int][]layout.Run
	err  error
}

func (p *stubProvider) PageRuns(page int) ([]layout.Run, error) {
	if p.err != nil {
		return nil, p.err
	}
	return p.runs[page], nil
}

func widgetNode(a *Arena, fqn string, page int, r Rect) *Node {
	n := a.Add(&Node{Parent: NoParent, PartialName: fqn, Kind: KindTextField})
	n.FQN = fqn
	n.Widgets = []Widget{{Page: page, Rect: &r}}
	return n
}

func TestEnrichPicksNearestPrecedingRunAsLabel(t *testing.T) {
	a := NewArena()
	n := widgetNode(a, "first", 1, Rect{X: 100, Y: 700, W: 150, H: 20})

	provider := &stubProvider{runs: map[int][]layout.Run{
		1: {
			{Text: "Applicant Information", X: 100, Y: 745, W: 200, H: 12},
			{Text: "First Name", X: 100, Y: 722, W: 80, H: 10},
			{Text: "(required)", X: 100, Y: 690, W: 60, H: 8},
		},
	}}

	Enrich(a, provider, 50)

	assert.Equal(t, "First Name", n.Label)
	assert.Equal(t, "Applicant Information First Name", n.ContextBefore)
	assert.Equal(t, "(required)", n.ContextAfter)
	assert.Empty(t, n.Diagnostics)
}

func TestEnrichSameBandLeftIsLabel(t *testing.T) {
	a := NewArena()
	n := widgetNode(a, "city", 1, Rect{X: 200, Y: 500, W: 100, H: 18})

	provider := &stubProvider{runs: map[int][]layout.Run{
		1: {
			{Text: "City:", X: 150, Y: 502, W: 40, H: 12},
			{Text: "State:", X: 320, Y: 502, W: 40, H: 12},
		},
	}}

	Enrich(a, provider, 50)

	assert.Equal(t, "City:", n.Label)
	assert.Equal(t, "State:", n.ContextAfter)
}

func TestEnrichRespectsRadius(t *testing.T) {
	a := NewArena()
	n := widgetNode(a, "note", 1, Rect{X: 100, Y: 100, W: 100, H: 20})

	provider := &stubProvider{runs: map[int][]layout.Run{
		1: {
			{Text: "far away header", X: 100, Y: 400, W: 100, H: 12},
		},
	}}

	Enrich(a, provider, 50)

	assert.Empty(t, n.Label)
	assert.Empty(t, n.ContextBefore)
}

func TestEnrichSkipsWidgetsWithoutGeometry(t *testing.T) {
	a := NewArena()
	n := a.Add(&Node{Parent: NoParent, PartialName: "ghost", Kind: KindTextField})
	n.FQN = "ghost"
	n.Widgets = []Widget{{Page: 1}, {Page: 0, Rect: &Rect{X: 1, Y: 1, W: 1, H: 1}}}

	provider := &stubProvider{err: errors.New("should not be called for page 0")}
	// A nil-rect widget and a page-0 widget both skip the provider, so the
	// stub error never surfaces.
	Enrich(a, provider, 50)

	assert.Empty(t, n.Label)
	assert.Empty(t, n.Diagnostics)
}

func TestEnrichProviderErrorBecomesDiagnostic(t *testing.T) {
	a := NewArena()
	n := widgetNode(a, "first", 3, Rect{X: 0, Y: 0, W: 10, H: 10})

	provider := &stubProvider{err: errors.New("page tree truncated")}
	Enrich(a, provider, 50)

	require.Len(t, n.Diagnostics, 1)
	assert.Contains(t, n.Diagnostics[0], "text layout unavailable for page 3")
	assert.Contains(t, n.Diagnostics[0], "page tree truncated")
}

func TestEnrichNilProviderIsNoOp(t *testing.T) {
	a := NewArena()
	n := widgetNode(a, "x", 1, Rect{X: 0, Y: 0, W: 10, H: 10})

	Enrich(a, nil, 50)

	assert.Empty(t, n.Label)
}

func TestEnrichClampsLongContext(t *testing.T) {
	a := NewArena()
	n := widgetNode(a, "long", 1, Rect{X: 100, Y: 100, W: 50, H: 10})

	provider := &stubProvider{runs: map[int][]layout.Run{
		1: {
			{Text: strings.Repeat("x", 500), X: 100, Y: 120, W: 50, H: 10},
		},
	}}

	Enrich(a, provider, 50)

	assert.Len(t, n.ContextBefore, contextClamp+len("..."))
	assert.True(t, strings.HasSuffix(n.ContextBefore, "..."))
}
