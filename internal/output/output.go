package output

import (
	"fmt"
	"io"

	"github.com/dshills/promptgate/internal/providers"
)

// Writer writes a result in a specific format.
type Writer interface {
	Write(w io.Writer, result providers.Result) error
}

// Formats lists the accepted --format values.
var Formats = []string{"json", "text"}

// GetWriter returns a writer for the specified format.
func GetWriter(format string) (Writer, error) {
	switch format {
	case "", "json":
		return &JSONWriter{}, nil
	case "text":
		return &TextWriter{}, nil
	default:
		return nil, fmt.Errorf("unsupported output format: %s", format)
	}
}
