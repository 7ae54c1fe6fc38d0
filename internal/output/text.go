package output

import (
	"fmt"
	"io"

	"github.com/dshills/promptgate/internal/providers"
)

// TextWriter prints the response text, or the error prefixed with "error:".
type TextWriter struct{}

func (t *TextWriter) Write(w io.Writer, result providers.Result) error {
	var err error
	switch {
	case !result.Success:
		_, err = fmt.Fprintf(w, "error: %s\n", result.Error)
	case result.Response != nil:
		_, err = fmt.Fprintln(w, *result.Response)
	}
	if err != nil {
		return fmt.Errorf("writing text: %w", err)
	}
	return nil
}
