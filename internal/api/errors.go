package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// ErrorKind classifies API failures for callers.
type ErrorKind string

const (
	KindNetwork        ErrorKind = "network"        // transport failure, no HTTP status
	KindAuthentication ErrorKind = "authentication" // 401 after refresh, or no usable token
	KindPermission     ErrorKind = "permission"     // 403
	KindNotFound       ErrorKind = "not_found"      // 404
	KindValidation     ErrorKind = "validation"     // 400, field-keyed
	KindServer         ErrorKind = "server"         // 5xx
	KindRateLimited    ErrorKind = "rate_limited"   // rejected locally, no request sent
)

// APIError is the typed error surfaced for every failed call.
type APIError struct {
	Kind    ErrorKind
	Status  int                 // HTTP status, 0 for local/network failures
	Message string              // server "error" message or status text
	Fields  map[string][]string // field-keyed validation errors on 400
	Body    string              // raw response body for diagnostics
	cause   error
}

func (e *APIError) Error() string {
	if e.Status > 0 {
		return fmt.Sprintf("%s (%d): %s", e.Kind, e.Status, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *APIError) Unwrap() error { return e.cause }

// UserMessage maps the error kind to a human-readable message.
func (e *APIError) UserMessage() string {
	switch e.Kind {
	case KindAuthentication:
		return "please log in"
	case KindPermission:
		return "access denied"
	case KindNotFound:
		return "not found"
	case KindServer:
		return "try again later"
	case KindNetwork:
		return "check connection"
	case KindRateLimited:
		return "too many requests, slow down"
	default:
		return e.Message
	}
}

// KindOf extracts the kind from an error chain, or "" for non-API errors.
func KindOf(err error) ErrorKind {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Kind
	}
	return ""
}

func kindForStatus(status int) ErrorKind {
	switch {
	case status == http.StatusUnauthorized:
		return KindAuthentication
	case status == http.StatusForbidden:
		return KindPermission
	case status == http.StatusNotFound:
		return KindNotFound
	case status == http.StatusBadRequest:
		return KindValidation
	case status >= 500:
		return KindServer
	default:
		return KindServer
	}
}

// statusError builds an APIError from a non-2xx response. The body is either
// {"error": "..."} or a field-keyed map of validation messages.
func statusError(status int, body []byte) *APIError {
	apiErr := &APIError{
		Kind:   kindForStatus(status),
		Status: status,
		Body:   string(body),
	}

	var envelope struct {
		Error  string `json:"error"`
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(body, &envelope); err == nil {
		if envelope.Error != "" {
			apiErr.Message = envelope.Error
		} else if envelope.Detail != "" {
			apiErr.Message = envelope.Detail
		}
	}

	if apiErr.Kind == KindValidation && apiErr.Message == "" {
		var fields map[string][]string
		if err := json.Unmarshal(body, &fields); err == nil && len(fields) > 0 {
			apiErr.Fields = fields
			for field, msgs := range fields {
				if len(msgs) > 0 {
					apiErr.Message = fmt.Sprintf("%s: %s", field, msgs[0])
					break
				}
			}
		}
	}

	if apiErr.Message == "" {
		apiErr.Message = http.StatusText(status)
	}
	return apiErr
}

// networkError wraps a transport failure. No retry is attempted for these.
func networkError(err error) *APIError {
	return &APIError{
		Kind:    KindNetwork,
		Message: err.Error(),
		cause:   err,
	}
}

// validationError builds a client-side validation failure without a request.
func validationError(format string, a ...interface{}) *APIError {
	return &APIError{
		Kind:    KindValidation,
		Message: fmt.Sprintf(format, a...),
	}
}

// permissionError builds a client-side role precheck failure.
func permissionError(format string, a ...interface{}) *APIError {
	return &APIError{
		Kind:    KindPermission,
		Message: fmt.Sprintf(format, a...),
	}
}

// authenticationError builds a local authentication failure (e.g. missing
// refresh token).
func authenticationError(format string, a ...interface{}) *APIError {
	return &APIError{
		Kind:    KindAuthentication,
		Message: fmt.Sprintf(format, a...),
	}
}
