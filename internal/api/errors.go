package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrSessionExpired indicates the backend returned 401 for an authenticated
// request. The stored token has already been cleared when this is returned;
// the caller should send the user back to login.
var ErrSessionExpired = errors.New("session expired")

// RequestError is a backend rejection or a network failure. Message carries
// a human-readable explanation, extracted from the backend response when one
// was supplied.
type RequestError struct {
	Err     error
	Message string
	Status  int
}

func (e *RequestError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s (status %d)", e.Message, e.Status)
	}
	return e.Message
}

func (e *RequestError) Unwrap() error {
	return e.Err
}

// extractMessage pulls a human-readable message out of an error response
// body. Priority: "message", then "error", then flattened field errors under
// "errors", then the fallback.
func extractMessage(body []byte, fallback string) string {
	var payload struct {
		Message string          `json:"message"`
		Error   string          `json:"error"`
		Errors  json.RawMessage `json:"errors"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return fallback
	}
	if payload.Message != "" {
		return payload.Message
	}
	if payload.Error != "" {
		return payload.Error
	}
	if msg := flattenFieldErrors(payload.Errors); msg != "" {
		return msg
	}
	return fallback
}

// flattenFieldErrors joins a {"field": ["msg", ...]} validation payload into
// a single comma-separated string, field order sorted for stable output.
func flattenFieldErrors(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var fields map[string][]string
	if err := json.Unmarshal(raw, &fields); err != nil {
		return ""
	}
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var msgs []string
	for _, k := range keys {
		msgs = append(msgs, fields[k]...)
	}
	return strings.Join(msgs, ", ")
}
