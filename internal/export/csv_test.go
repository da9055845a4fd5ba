package export

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wsekete/PDFParseV2/internal/pdf"
	"github.com/wsekete/PDFParseV2/internal/pdf/fields"
)

func parseCSV(t *testing.T, data string) [][]string {
	t.Helper()
	rows, err := csv.NewReader(strings.NewReader(data)).ReadAll()
	require.NoError(t, err)
	return rows
}

func TestWriteCSVHeader(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, nil))

	rows := parseCSV(t, buf.String())
	require.Len(t, rows, 1)
	assert.Equal(t, []string{
		"UUID", "ID", "Api name", "Type", "Label",
		"Section ID", "Parent ID", "X", "Y", "Width", "Height",
	}, rows[0])
}

func TestWriteCSVRows(t *testing.T) {
	records := []pdf.FieldRecord{
		{
			UUID: "u-1",
			FQN:  "owner",
			Kind: "Unknown",
		},
		{
			UUID:      "u-2",
			FQN:       "owner.first",
			Kind:      "TextField",
			ParentFQN: "owner",
			Label:     "First Name",
			Rect:      &fields.Rect{X: 100, Y: 700.5, W: 150, H: 20},
		},
		{
			UUID:      "u-3",
			FQN:       "owner.name.deep",
			Kind:      "TextField",
			ParentFQN: "owner.name",
		},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, records))

	rows := parseCSV(t, buf.String())
	require.Len(t, rows, 4)

	// Row ordinals are 1-based document order.
	assert.Equal(t, "1", rows[1][1])
	assert.Equal(t, "2", rows[2][1])

	// Top-level fields are their own section and have no parent.
	assert.Equal(t, "1", rows[1][5])
	assert.Equal(t, "", rows[1][6])

	// Children resolve section to the top-level ancestor, parent to the
	// immediate parent row.
	assert.Equal(t, "1", rows[2][5])
	assert.Equal(t, "1", rows[2][6])
	assert.Equal(t, "First Name", rows[2][4])

	// A parent absent from the record set stops the ancestor walk at the
	// field itself and leaves the parent reference empty.
	assert.Equal(t, "3", rows[3][5])
	assert.Equal(t, "", rows[3][6])

	// Coordinates print with two decimals; missing geometry stays blank.
	assert.Equal(t, []string{"100.00", "700.50", "150.00", "20.00"}, rows[2][7:11])
	assert.Equal(t, []string{"", "", "", ""}, rows[1][7:11])
}

func TestWriteCSVQuotesCommasInLabels(t *testing.T) {
	records := []pdf.FieldRecord{
		{UUID: "u-1", FQN: "f1", Kind: "TextField", Label: `City, State "ZIP"`},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, records))

	rows := parseCSV(t, buf.String())
	assert.Equal(t, `City, State "ZIP"`, rows[1][4])
}
