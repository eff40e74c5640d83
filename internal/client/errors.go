package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sort"
)

// NetworkError means no response was obtained at all: DNS failure, refused
// connection, cancelled context. The request may or may not have reached the
// server.
type NetworkError struct {
	Method string
	URL    string
	Err    error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("failed to perform %s request to %s: %v", e.Method, e.URL, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// DecodeError means a response arrived but its body could not be parsed as
// the declared content type. Raised even on a 2xx status: an undecodable
// success body cannot be trusted as confirmation.
type DecodeError struct {
	Method string
	URL    string
	Err    error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("undecodable response body from %s %s: %v", e.Method, e.URL, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// APIError represents a non-2xx response that is neither a 422 validation
// rejection nor a transport failure. Detail carries the decoded body's
// detail field when present.
type APIError struct {
	Method     string
	URL        string
	StatusCode int
	Detail     string
}

func (e *APIError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s request to %s returned status code %d — %s",
			e.Method, e.URL, e.StatusCode, e.Detail)
	}
	return fmt.Sprintf("%s request to %s returned status code %d",
		e.Method, e.URL, e.StatusCode)
}

// IsApiError reports whether err is (or wraps) an *APIError.
func IsApiError(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr)
}

// IsNotFound reports whether err is an *APIError with a 404 status.
func IsNotFound(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == http.StatusNotFound
	}
	return false
}

// IgnoreStatusCodes returns nil if err is an *APIError whose status code is
// in codes, and err unchanged otherwise.
func IgnoreStatusCodes(err error, codes ...int) error {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return err
	}
	for _, code := range codes {
		if apiErr.StatusCode == code {
			return nil
		}
	}
	return err
}

// FieldError is one server-side field rejection, normalized from whichever
// shape the server used.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError is a 422 response: the server rejected individual fields.
type ValidationError struct {
	Method string
	URL    string
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return fmt.Sprintf("%s request to %s rejected by server validation", e.Method, e.URL)
	}
	msg := fmt.Sprintf("%s request to %s rejected by server validation:", e.Method, e.URL)
	for _, f := range e.Fields {
		msg += fmt.Sprintf(" %s: %s;", f.Field, f.Message)
	}
	return msg
}

// Messages returns one display line per rejected field, in the order the
// server reported them.
func (e *ValidationError) Messages() []string {
	msgs := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		if f.Field != "" {
			msgs = append(msgs, fmt.Sprintf("%s: %s", f.Field, f.Message))
		} else {
			msgs = append(msgs, f.Message)
		}
	}
	return msgs
}

// IsValidationError reports whether err is (or wraps) a *ValidationError.
func IsValidationError(err error) bool {
	var vErr *ValidationError
	return errors.As(err, &vErr)
}

// VerifyError means the write itself succeeded but the read-after-write
// confirmation could not be obtained. It must never be presented as a write
// failure.
type VerifyError struct {
	ID  string
	Err error
}

func (e *VerifyError) Error() string {
	return fmt.Sprintf("record %s was written but could not be read back for confirmation: %v", e.ID, e.Err)
}

func (e *VerifyError) Unwrap() error { return e.Err }

// IsVerifyError reports whether err is (or wraps) a *VerifyError.
func IsVerifyError(err error) bool {
	var vErr *VerifyError
	return errors.As(err, &vErr)
}

// detailEntry is one element of the structured 422 shape:
// {"detail": [{"loc": ["body", "persona", "email"], "msg": "invalid"}]}.
type detailEntry struct {
	Loc []json.RawMessage `json:"loc"`
	Msg string            `json:"msg"`
}

// normalizeFieldErrors converts either 422 wire shape into a flat, ordered
// (field, message) list so downstream code never branches on wire format.
// List entries keep their wire order; a field-to-message mapping is sorted by
// field name to stay deterministic.
func normalizeFieldErrors(body []byte) []FieldError {
	var envelope struct {
		Detail json.RawMessage `json:"detail"`
	}
	payload := body
	if err := json.Unmarshal(body, &envelope); err == nil && len(envelope.Detail) > 0 {
		payload = envelope.Detail
	}

	var entries []detailEntry
	if err := json.Unmarshal(payload, &entries); err == nil {
		var fields []FieldError
		for _, entry := range entries {
			fields = append(fields, FieldError{
				Field:   lastLocSegment(entry.Loc),
				Message: entry.Msg,
			})
		}
		return fields
	}

	var mapping map[string]string
	if err := json.Unmarshal(payload, &mapping); err == nil {
		keys := make([]string, 0, len(mapping))
		for k := range mapping {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		var fields []FieldError
		for _, k := range keys {
			fields = append(fields, FieldError{Field: k, Message: mapping[k]})
		}
		return fields
	}

	return nil
}

// lastLocSegment extracts the field name from a loc path, skipping trailing
// numeric segments (array indexes).
func lastLocSegment(loc []json.RawMessage) string {
	for i := len(loc) - 1; i >= 0; i-- {
		var s string
		if err := json.Unmarshal(loc[i], &s); err == nil {
			return s
		}
	}
	return "unknown"
}

// detailMessage extracts the detail string from a decoded error body, or ""
// if the body carries no string detail.
func detailMessage(body []byte) string {
	var envelope struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(body, &envelope); err == nil {
		return envelope.Detail
	}
	return ""
}
