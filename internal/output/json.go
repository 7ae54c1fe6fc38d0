package output

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/dshills/promptgate/internal/providers"
)

// JSONWriter outputs the result as indented JSON followed by a newline.
type JSONWriter struct{}

func (j *JSONWriter) Write(w io.Writer, result providers.Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(result); err != nil {
		return fmt.Errorf("writing JSON: %w", err)
	}
	return nil
}
