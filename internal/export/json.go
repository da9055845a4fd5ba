package export

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/wsekete/PDFParseV2/internal/pdf"
)

// WriteJSON writes the extraction result as indented JSON, mirroring the
// boundary field records exactly.
func WriteJSON(w io.Writer, result *pdf.ExtractFieldsResult) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(result); err != nil {
		return fmt.Errorf("encoding field model: %w", err)
	}
	return nil
}
