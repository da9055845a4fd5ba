package fields

import (
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
)

// stringEntry resolves a dictionary entry to a decoded string. Handles
// literal strings, hex strings, and names; anything else yields "".
func (w *walker) stringEntry(dict types.Dict, key string) string {
	obj, found := dict.Find(key)
	if !found {
		return ""
	}
	resolved, err := w.res.Dereference(obj)
	if err != nil {
		return ""
	}
	switch v := resolved.(type) {
	case types.StringLiteral:
		s, err := types.StringLiteralToString(v)
		if err != nil {
			return ""
		}
		return s
	case types.HexLiteral:
		s, err := types.HexLiteralToString(v)
		if err != nil {
			return ""
		}
		return s
	case types.Name:
		return v.Value()
	default:
		return ""
	}
}

// nameEntry resolves a dictionary entry to a PDF name value.
func (w *walker) nameEntry(dict types.Dict, key string) (string, bool) {
	obj, found := dict.Find(key)
	if !found {
		return "", false
	}
	resolved, err := w.res.Dereference(obj)
	if err != nil {
		return "", false
	}
	if n, ok := resolved.(types.Name); ok {
		return n.Value(), true
	}
	return "", false
}

// intEntry resolves a dictionary entry to an integer value.
func (w *walker) intEntry(dict types.Dict, key string) (int64, bool) {
	obj, found := dict.Find(key)
	if !found {
		return 0, false
	}
	resolved, err := w.res.Dereference(obj)
	if err != nil {
		return 0, false
	}
	if i, ok := resolved.(types.Integer); ok {
		return int64(i.Value()), true
	}
	return 0, false
}

// rectValue parses a 4-element Rect array into a lower-left-origin box.
// Coordinate pairs are normalized so width and height come out positive.
func (w *walker) rectValue(obj types.Object) (*Rect, bool) {
	arr, err := w.res.DereferenceArray(obj)
	if err != nil || len(arr) != 4 {
		return nil, false
	}
	coords := make([]float64, 4)
	for i, c := range arr {
		resolved, err := w.res.Dereference(c)
		if err != nil {
			return nil, false
		}
		switch v := resolved.(type) {
		case types.Integer:
			coords[i] = float64(v.Value())
		case types.Float:
			coords[i] = v.Value()
		default:
			return nil, false
		}
	}
	x0, y0, x1, y1 := coords[0], coords[1], coords[2], coords[3]
	if x1 < x0 {
		x0, x1 = x1, x0
	}
	if y1 < y0 {
		y0, y1 = y1, y0
	}
	return &Rect{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}, true
}
