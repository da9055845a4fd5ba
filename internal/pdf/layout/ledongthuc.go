package layout

import (
	"fmt"
	"math"
	"os"
	"sort"
	"strings"

	"github.com/ledongthuc/pdf"
)

// defaultTextHeight approximates run height when the font size is missing.
const defaultTextHeight = 12.0

// lineTolerance is the vertical slack within which two text fragments are
// considered part of the same line.
const lineTolerance = 2.0

// FileProvider reads positioned text from a PDF file via ledongthuc/pdf.
// Pages are parsed lazily and cached for the provider's lifetime.
type FileProvider struct {
	file   *os.File
	reader *pdf.Reader
	cache  map[int][]Run
}

// OpenFile opens a PDF for positioned-text extraction. The caller owns the
// provider and must Close it.
func OpenFile(path string) (*FileProvider, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF for text layout: %w", err)
	}
	return &FileProvider{file: f, reader: r, cache: make(map[int][]Run)}, nil
}

// Close releases the underlying file handle.
func (p *FileProvider) Close() error {
	if p.file != nil {
		return p.file.Close()
	}
	return nil
}

// PageRuns returns the text runs of a 1-based page, grouped into lines.
func (p *FileProvider) PageRuns(page int) ([]Run, error) {
	if page < 1 || page > p.reader.NumPage() {
		return nil, nil
	}
	if runs, ok := p.cache[page]; ok {
		return runs, nil
	}

	pg := p.reader.Page(page)
	if pg.V.IsNull() {
		p.cache[page] = nil
		return nil, nil
	}

	var fragments []Run
	for _, t := range pg.Content().Text {
		h := t.FontSize
		if h == 0 {
			h = defaultTextHeight
		}
		fragments = append(fragments, Run{Text: t.S, X: t.X, Y: t.Y, W: t.W, H: h})
	}

	runs := groupIntoLines(fragments)
	p.cache[page] = runs
	return runs, nil
}

// groupIntoLines merges character/word fragments that share a baseline into
// single runs, in reading order. ledongthuc/pdf emits fragments at roughly
// glyph granularity, too fine for label matching.
func groupIntoLines(fragments []Run) []Run {
	if len(fragments) == 0 {
		return nil
	}

	sorted := make([]Run, len(fragments))
	copy(sorted, fragments)
	sort.SliceStable(sorted, func(i, j int) bool {
		if math.Abs(sorted[i].Y-sorted[j].Y) > lineTolerance {
			return sorted[i].Y > sorted[j].Y // top of page first
		}
		return sorted[i].X < sorted[j].X
	})

	var runs []Run
	var sb strings.Builder
	cur := sorted[0]
	sb.WriteString(cur.Text)

	flush := func() {
		cur.Text = strings.TrimSpace(sb.String())
		if cur.Text != "" {
			runs = append(runs, cur)
		}
		sb.Reset()
	}

	for _, f := range sorted[1:] {
		sameLine := math.Abs(f.Y-cur.Y) <= lineTolerance
		if sameLine {
			// Gap wider than a character height starts a new run on
			// the same line (label columns).
			if f.X-(cur.X+cur.W) > cur.H {
				flush()
				cur = f
				sb.WriteString(f.Text)
				continue
			}
			sb.WriteString(f.Text)
			right := f.X + f.W
			if right > cur.X+cur.W {
				cur.W = right - cur.X
			}
			if f.H > cur.H {
				cur.H = f.H
			}
			continue
		}
		flush()
		cur = f
		sb.WriteString(f.Text)
	}
	flush()

	return runs
}
