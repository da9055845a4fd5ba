package fields

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/wsekete/PDFParseV2/internal/pdf/layout"
)

// DefaultContextRadius is the label/context search radius in layout units.
const DefaultContextRadius = 50.0

// contextClamp bounds derived context strings.
const contextClamp = 200

// Enrich resolves label and text-context strings for every widget-bearing
// node, querying the provider for runs within radius of each widget rect.
// Purely additive: it never changes kinds, structure, or counts. A widget
// without geometry is skipped (its MissingGeometry diagnostic was recorded
// by the walker); provider failures become node diagnostics.
func Enrich(arena *Arena, provider layout.Provider, radius float64) {
	if provider == nil {
		return
	}
	if radius <= 0 {
		radius = DefaultContextRadius
	}
	for _, n := range arena.Nodes() {
		enrichNode(n, provider, radius)
	}
}

func enrichNode(n *Node, provider layout.Provider, radius float64) {
	for _, widget := range n.Widgets {
		if widget.Rect == nil || widget.Page == 0 {
			continue
		}
		runs, err := provider.PageRuns(widget.Page)
		if err != nil {
			n.Diagnostics = append(n.Diagnostics,
				fmt.Sprintf("text layout unavailable for page %d: %v", widget.Page, err))
			continue
		}
		before, after := contextRuns(runs, *widget.Rect, radius)
		if n.Label == "" && len(before) > 0 {
			n.Label = before[len(before)-1].Text // nearest preceding run
		}
		if n.ContextBefore == "" {
			n.ContextBefore = clampContext(joinRuns(before))
		}
		if n.ContextAfter == "" {
			n.ContextAfter = clampContext(joinRuns(after))
		}
		if n.Label != "" && n.ContextBefore != "" && n.ContextAfter != "" {
			break
		}
	}
}

// contextRuns splits the runs within radius of rect into preceding (above
// or left of the widget) and following (below or right), each ordered
// farthest-first so the nearest run sits last.
func contextRuns(runs []layout.Run, rect Rect, radius float64) (before, after []layout.Run) {
	type scored struct {
		run  layout.Run
		dist float64
	}
	var pre, post []scored

	for _, r := range runs {
		if !withinRadius(r, rect, radius) {
			continue
		}
		d := runDistance(r, rect)
		if precedes(r, rect) {
			pre = append(pre, scored{r, d})
		} else {
			post = append(post, scored{r, d})
		}
	}

	sort.SliceStable(pre, func(i, j int) bool { return pre[i].dist > pre[j].dist })
	sort.SliceStable(post, func(i, j int) bool { return post[i].dist > post[j].dist })

	for _, s := range pre {
		before = append(before, s.run)
	}
	for _, s := range post {
		after = append(after, s.run)
	}
	return before, after
}

// precedes reports whether a run reads before the widget: above it, or on
// the same band and to its left.
func precedes(r layout.Run, rect Rect) bool {
	if r.Y >= rect.Y+rect.H {
		return true
	}
	if r.Y+r.H <= rect.Y {
		return false
	}
	return r.X+r.W <= rect.X+rect.W/2
}

// withinRadius checks run/rect box proximity on both axes.
func withinRadius(r layout.Run, rect Rect, radius float64) bool {
	dx := axisGap(r.X, r.X+r.W, rect.X, rect.X+rect.W)
	dy := axisGap(r.Y, r.Y+r.H, rect.Y, rect.Y+rect.H)
	return dx <= radius && dy <= radius
}

// axisGap is the distance between two intervals, 0 when they overlap.
func axisGap(a0, a1, b0, b1 float64) float64 {
	if a1 < b0 {
		return b0 - a1
	}
	if b1 < a0 {
		return a0 - b1
	}
	return 0
}

func runDistance(r layout.Run, rect Rect) float64 {
	dx := axisGap(r.X, r.X+r.W, rect.X, rect.X+rect.W)
	dy := axisGap(r.Y, r.Y+r.H, rect.Y, rect.Y+rect.H)
	return math.Hypot(dx, dy)
}

func joinRuns(runs []layout.Run) string {
	if len(runs) == 0 {
		return ""
	}
	parts := make([]string, 0, len(runs))
	for _, r := range runs {
		parts = append(parts, r.Text)
	}
	return strings.TrimSpace(strings.Join(parts, " "))
}

func clampContext(s string) string {
	if len(s) > contextClamp {
		return s[:contextClamp] + "..."
	}
	return s
}
