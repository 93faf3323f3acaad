package api

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// The backend wraps payloads in several envelope shapes depending on the
// endpoint and version: a bare array, or an object nesting the records under
// "data", "items", or "transactions". All shape sniffing lives here; call
// sites work with the normalized result only.

// PageMeta carries the pagination totals a list envelope may include. Zero
// values mean the envelope did not supply them and the caller must fall back
// to deriving them from the item count.
type PageMeta struct {
	TotalItems int
	TotalPages int
}

// listEnvelope matches every object-shaped list response the backend emits.
// Count fields mirror the keys tolerated for totals: totalItems, total,
// count.
type listEnvelope struct {
	Data         []json.RawMessage `json:"data"`
	Items        []json.RawMessage `json:"items"`
	Transactions []json.RawMessage `json:"transactions"`
	TotalItems   int               `json:"totalItems"`
	Total        int               `json:"total"`
	Count        int               `json:"count"`
	TotalPages   int               `json:"totalPages"`
}

// DecodeList extracts the record array from a list response, trying the
// tolerated envelope shapes in a fixed order: bare array, then "data",
// "items", "transactions".
func DecodeList(raw json.RawMessage) ([]json.RawMessage, PageMeta, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, PageMeta{}, nil
	}

	if trimmed[0] == '[' {
		var items []json.RawMessage
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return nil, PageMeta{}, fmt.Errorf("failed to decode list response: %w", err)
		}
		return items, PageMeta{}, nil
	}

	var env listEnvelope
	if err := json.Unmarshal(trimmed, &env); err != nil {
		return nil, PageMeta{}, fmt.Errorf("failed to decode list envelope: %w", err)
	}

	meta := PageMeta{TotalPages: env.TotalPages}
	switch {
	case env.TotalItems > 0:
		meta.TotalItems = env.TotalItems
	case env.Total > 0:
		meta.TotalItems = env.Total
	case env.Count > 0:
		meta.TotalItems = env.Count
	}

	for _, items := range [][]json.RawMessage{env.Data, env.Items, env.Transactions} {
		if items != nil {
			return items, meta, nil
		}
	}
	return nil, meta, nil
}

// DecodeObject unwraps a single-record response: either the record itself or
// the record nested under "data".
func DecodeObject(raw json.RawMessage) (json.RawMessage, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, fmt.Errorf("empty response from server")
	}

	var env struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(trimmed, &env); err == nil && len(bytes.TrimSpace(env.Data)) > 0 {
		inner := bytes.TrimSpace(env.Data)
		if !bytes.Equal(inner, []byte("null")) {
			return inner, nil
		}
	}
	return trimmed, nil
}
