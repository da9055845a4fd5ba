package export

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wsekete/PDFParseV2/internal/pdf"
)

func TestWriteJSONRoundTrip(t *testing.T) {
	result := &pdf.ExtractFieldsResult{
		Path:       "/forms/app.pdf",
		PageCount:  2,
		FieldCount: 1,
		LeafCount:  1,
		Fields: []pdf.FieldRecord{
			{UUID: "u-1", FQN: "owner.first", Kind: "TextField", Page: 1},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, result))

	var decoded pdf.ExtractFieldsResult
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, *result, decoded)

	assert.True(t, strings.HasPrefix(buf.String(), "{\n  "), "output is indented")
}
