package backend

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUnavailable indicates the backend could not be reached.
	ErrUnavailable = errors.New("backend unavailable")

	// ErrTimeout indicates the request exceeded its configured timeout.
	ErrTimeout = errors.New("backend request timed out")

	// ErrInvalidResponse indicates a 2xx body that could not be interpreted.
	ErrInvalidResponse = errors.New("invalid backend response")

	// ErrRetryExhausted indicates all retry attempts have been exhausted.
	ErrRetryExhausted = errors.New("backend retry attempts exhausted")
)

// APIError is a non-2xx response. Message is the backend's own message when
// one could be extracted from the body.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("backend returned status %d", e.Status)
	}
	return fmt.Sprintf("backend returned status %d: %s", e.Status, e.Message)
}

// Retryable reports whether the status is worth another attempt.
func (e *APIError) Retryable() bool {
	return e.Status >= 500 || e.Status == 429
}

const maxMessageLen = 300

// messageKeys are checked in order when the error body is a JSON object.
var messageKeys = []string{"message", "Message", "error", "title", "detail"}

// extractMessage pulls a human-readable message out of an error body:
// a JSON object field, a JSON string, or the trimmed plain text.
func extractMessage(body []byte) string {
	trimmed := strings.TrimSpace(string(body))
	if trimmed == "" {
		return ""
	}

	var obj map[string]json.RawMessage
	if err := json.Unmarshal([]byte(trimmed), &obj); err == nil {
		for _, k := range messageKeys {
			raw, ok := obj[k]
			if !ok {
				continue
			}
			var s string
			if err := json.Unmarshal(raw, &s); err == nil && strings.TrimSpace(s) != "" {
				return truncate(strings.TrimSpace(s))
			}
		}
		return ""
	}

	var s string
	if err := json.Unmarshal([]byte(trimmed), &s); err == nil {
		return truncate(strings.TrimSpace(s))
	}
	return truncate(trimmed)
}

func truncate(s string) string {
	if len(s) <= maxMessageLen {
		return s
	}
	return s[:maxMessageLen] + "…"
}

// UserMessage returns the text shown to the user for a failed call.
// Backend-provided messages win; everything else gets a generic line.
func UserMessage(err error) string {
	var apiErr *APIError
	switch {
	case err == nil:
		return ""
	case errors.As(err, &apiErr) && apiErr.Message != "":
		return apiErr.Message
	case errors.Is(err, ErrTimeout):
		return "The server took too long to respond. Please try again."
	case errors.Is(err, ErrUnavailable):
		return "The server could not be reached. Please try again."
	default:
		return "Something went wrong while saving. Please try again."
	}
}
