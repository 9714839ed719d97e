package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// FallbackMessage is shown when neither the server nor the operation
// supplies anything better.
const FallbackMessage = "An unexpected error occurred"

// ErrUnsuccessful is matched by every *EnvelopeError.
var ErrUnsuccessful = errors.New("request unsuccessful")

// HTTPError is a non-2xx response.
type HTTPError struct {
	StatusCode int
	Message    string
	Fields     map[string]string
	Body       string
}

func (e *HTTPError) Error() string {
	if e == nil {
		return "http error"
	}
	msg := strings.TrimSpace(e.Message)
	if msg == "" {
		msg = http.StatusText(e.StatusCode)
	}
	if msg == "" {
		msg = "http error"
	}
	return fmt.Sprintf("http error: status=%d message=%s", e.StatusCode, msg)
}

func (e *HTTPError) HTTPStatusCode() int {
	if e == nil {
		return 0
	}
	return e.StatusCode
}

// EnvelopeError is a 2xx response that carried success=false.
type EnvelopeError struct {
	Message string
	Fields  map[string]string
}

func (e *EnvelopeError) Error() string {
	if e == nil || strings.TrimSpace(e.Message) == "" {
		return "request unsuccessful"
	}
	return e.Message
}

func (e *EnvelopeError) Unwrap() error { return ErrUnsuccessful }

func parseHTTPError(status int, raw []byte) *HTTPError {
	body := strings.TrimSpace(string(raw))

	var env struct {
		Message string          `json:"message"`
		Detail  json.RawMessage `json:"detail"`
		Errors  json.RawMessage `json:"errors"`
	}
	if err := json.Unmarshal(raw, &env); err != nil {
		return &HTTPError{StatusCode: status, Body: body}
	}

	msg := strings.TrimSpace(env.Message)
	if msg == "" && len(env.Detail) > 0 {
		var s string
		if json.Unmarshal(env.Detail, &s) == nil {
			msg = strings.TrimSpace(s)
		}
	}
	return &HTTPError{
		StatusCode: status,
		Message:    msg,
		Fields:     decodeFieldErrors(env.Errors),
		Body:       body,
	}
}

// ServerMessage returns the message the server attached to err, if any.
func ServerMessage(err error) string {
	var herr *HTTPError
	if errors.As(err, &herr) {
		return strings.TrimSpace(herr.Message)
	}
	var eerr *EnvelopeError
	if errors.As(err, &eerr) {
		return strings.TrimSpace(eerr.Message)
	}
	return ""
}

// MessageOf picks the user-facing text for err: the server message when
// present, otherwise fallback, otherwise FallbackMessage.
func MessageOf(err error, fallback string) string {
	if err == nil {
		return ""
	}
	if msg := ServerMessage(err); msg != "" {
		return msg
	}
	if strings.TrimSpace(fallback) != "" {
		return fallback
	}
	return FallbackMessage
}

// FieldsOf returns the field-keyed validation errors carried by err.
func FieldsOf(err error) map[string]string {
	var herr *HTTPError
	if errors.As(err, &herr) && len(herr.Fields) > 0 {
		return herr.Fields
	}
	var eerr *EnvelopeError
	if errors.As(err, &eerr) && len(eerr.Fields) > 0 {
		return eerr.Fields
	}
	return nil
}

// StatusOf returns the HTTP status behind err, or 0.
func StatusOf(err error) int {
	var herr *HTTPError
	if errors.As(err, &herr) {
		return herr.StatusCode
	}
	return 0
}
