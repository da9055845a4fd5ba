// Package export writes extracted field models to CSV and JSON reports.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/wsekete/PDFParseV2/internal/pdf"
)

// csvHeader is the fixed column set consumed by downstream form tooling.
// Column order is part of the contract; do not reorder.
var csvHeader = []string{
	"UUID", "ID", "Api name", "Type", "Label",
	"Section ID", "Parent ID", "X", "Y", "Width", "Height",
}

// WriteCSV writes one row per field in document order. ID is the 1-based
// row ordinal and is what Section ID and Parent ID refer to; UUIDs come
// from the extraction pass and are fresh per run.
func WriteCSV(w io.Writer, records []pdf.FieldRecord) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("writing CSV header: %w", err)
	}

	rowByFQN := make(map[string]int, len(records))
	for i, rec := range records {
		rowByFQN[rec.FQN] = i + 1
	}

	for i, rec := range records {
		row := []string{
			rec.UUID,
			strconv.Itoa(i + 1),
			rec.FQN,
			rec.Kind,
			rec.Label,
			sectionID(records, rowByFQN, rec),
			refID(rowByFQN, rec.ParentFQN),
			"", "", "", "",
		}
		if rec.Rect != nil {
			row[7] = formatCoord(rec.Rect.X)
			row[8] = formatCoord(rec.Rect.Y)
			row[9] = formatCoord(rec.Rect.W)
			row[10] = formatCoord(rec.Rect.H)
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing CSV row %d: %w", i+1, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// refID resolves an FQN to its row ordinal, empty when absent
func refID(rowByFQN map[string]int, fqn string) string {
	if fqn == "" {
		return ""
	}
	if id, ok := rowByFQN[fqn]; ok {
		return strconv.Itoa(id)
	}
	return ""
}

// sectionID returns the row of the field's top-level ancestor. Top-level
// fields are their own section.
func sectionID(records []pdf.FieldRecord, rowByFQN map[string]int, rec pdf.FieldRecord) string {
	byFQN := rec
	for byFQN.ParentFQN != "" {
		parentRow, ok := rowByFQN[byFQN.ParentFQN]
		if !ok {
			break
		}
		byFQN = records[parentRow-1]
	}
	return refID(rowByFQN, byFQN.FQN)
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
