package api

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Envelope is the response shape shared by the content endpoints.
type Envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data,omitempty"`
	Message string          `json:"message,omitempty"`
	Errors  json.RawMessage `json:"errors,omitempty"`
}

// FieldErrors flattens the errors member into field -> message. Non-string
// values are formatted; a list of messages is joined.
func (e Envelope) FieldErrors() map[string]string {
	return decodeFieldErrors(e.Errors)
}

func decodeFieldErrors(raw json.RawMessage) map[string]string {
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}
	var flat map[string]string
	if err := json.Unmarshal(raw, &flat); err == nil {
		if len(flat) == 0 {
			return nil
		}
		return flat
	}
	var loose map[string]any
	if err := json.Unmarshal(raw, &loose); err != nil || len(loose) == 0 {
		return nil
	}
	out := make(map[string]string, len(loose))
	for k, v := range loose {
		switch t := v.(type) {
		case []any:
			parts := make([]string, 0, len(t))
			for _, p := range t {
				parts = append(parts, strings.TrimSpace(fmt.Sprint(p)))
			}
			out[k] = strings.Join(parts, "; ")
		default:
			out[k] = strings.TrimSpace(fmt.Sprint(t))
		}
	}
	return out
}
