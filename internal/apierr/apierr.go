package apierr

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// ValidationError carries field-level rejection messages, keyed by field
// name. Both locally detected problems and backend 400 responses use this
// shape so callers render them identically.
type ValidationError struct {
	Fields map[string][]string
}

// NewValidation builds a ValidationError with a single field message.
func NewValidation(field, message string) *ValidationError {
	return &ValidationError{Fields: map[string][]string{field: {message}}}
}

// Add appends a message for a field.
func (e *ValidationError) Add(field, message string) {
	if e.Fields == nil {
		e.Fields = make(map[string][]string)
	}
	e.Fields[field] = append(e.Fields[field], message)
}

// Empty reports whether no field has any message.
func (e *ValidationError) Empty() bool {
	return len(e.Fields) == 0
}

func (e *ValidationError) Error() string {
	if e.Empty() {
		return "validation failed"
	}
	fields := make([]string, 0, len(e.Fields))
	for f := range e.Fields {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, fmt.Sprintf("%s: %s", f, strings.Join(e.Fields[f], "; ")))
	}
	return "validation failed: " + strings.Join(parts, " | ")
}

// AuthenticationError means the backend rejected the caller's identity:
// missing, expired, or invalid credentials (401/403).
type AuthenticationError struct {
	Status int
	Detail string
}

func (e *AuthenticationError) Error() string {
	if e.Detail == "" {
		return "authentication failed"
	}
	return "authentication failed: " + e.Detail
}

// NotFoundError means the target resource no longer exists (404).
type NotFoundError struct {
	Detail string
}

func (e *NotFoundError) Error() string {
	if e.Detail == "" {
		return "not found"
	}
	return "not found: " + e.Detail
}

// UnknownError covers transport failures and any response outside the
// recognized taxonomy, keeping status and raw body for diagnostics.
type UnknownError struct {
	Status int
	Body   string
	Err    error
}

func (e *UnknownError) Error() string {
	if e.Err != nil {
		return "request failed: " + e.Err.Error()
	}
	body := e.Body
	if len(body) > 200 {
		body = body[:200] + "..."
	}
	return fmt.Sprintf("request failed with status %d: %s", e.Status, body)
}

func (e *UnknownError) Unwrap() error { return e.Err }

// FromResponse normalizes a non-2xx backend response into the error
// taxonomy. The backend is DRF-shaped: 400 bodies map field names to
// message lists (or carry "detail"/"non_field_errors"), 401/403/404
// bodies carry a "detail" string.
func FromResponse(status int, body []byte) error {
	switch {
	case status == 400:
		if ve := parseValidationBody(body); ve != nil {
			return ve
		}
		return &UnknownError{Status: status, Body: string(body)}
	case status == 401 || status == 403:
		return &AuthenticationError{Status: status, Detail: parseDetail(body)}
	case status == 404:
		return &NotFoundError{Detail: parseDetail(body)}
	default:
		return &UnknownError{Status: status, Body: string(body)}
	}
}

func parseDetail(body []byte) string {
	var payload struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && payload.Detail != "" {
		return payload.Detail
	}
	return strings.TrimSpace(string(body))
}

// parseValidationBody accepts both message lists and bare strings per
// field, e.g. {"amount": ["must be positive"], "detail": "bad input"}.
func parseValidationBody(body []byte) *ValidationError {
	var raw map[string]any
	if err := json.Unmarshal(body, &raw); err != nil || len(raw) == 0 {
		return nil
	}
	ve := &ValidationError{Fields: make(map[string][]string)}
	for field, value := range raw {
		switch v := value.(type) {
		case string:
			ve.Add(field, v)
		case []any:
			for _, item := range v {
				if s, ok := item.(string); ok {
					ve.Add(field, s)
				}
			}
		}
	}
	if ve.Empty() {
		return nil
	}
	return ve
}
