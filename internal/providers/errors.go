package providers

import (
	"fmt"
	"strings"

	"github.com/dshills/promptgate/internal/config"
)

// maxErrorBody bounds how much of a non-2xx body is kept in a TransportError.
const maxErrorBody = 512

// TransportError reports a failed round trip: the request could not be sent,
// timed out, or came back with a non-2xx status.
type TransportError struct {
	Provider   config.Provider
	StatusCode int
	Body       string
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s API request error: status %d: %s", e.Provider, e.StatusCode, e.Body)
	}
	return fmt.Sprintf("%s API request error: %v", e.Provider, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// MissingFieldError reports a response that parsed as JSON but lacked a
// field the adapter needs.
type MissingFieldError struct {
	Provider config.Provider
	Field    string
	Detail   string
}

func (e *MissingFieldError) Error() string {
	msg := fmt.Sprintf("%s response parse error: missing field %s", e.Provider, e.Field)
	if e.Detail != "" {
		msg += " (" + e.Detail + ")"
	}
	return msg
}

func missing(p config.Provider, field string) error {
	return &MissingFieldError{Provider: p, Field: field}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return strings.ToValidUTF8(s[:n], "") + "..."
}
