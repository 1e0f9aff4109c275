// Package apierr defines the single error shape every gateway operation
// returns on failure. Callers never see raw transport errors; they see an
// *Error carrying a classification kind, a human-readable message, and the
// raw response body when the server supplied one.
package apierr

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies a failed gateway call.
type Kind string

const (
	// KindAuth marks authentication failures (HTTP 401).
	KindAuth Kind = "auth"
	// KindServer marks server-side failures (HTTP 5xx).
	KindServer Kind = "server"
	// KindNetwork marks transport failures where no response arrived,
	// including client-side timeouts.
	KindNetwork Kind = "network"
	// KindValidation marks 4xx business/validation rejections, and
	// client-side payload validation failures.
	KindValidation Kind = "validation"
	// KindUnknown marks everything else.
	KindUnknown Kind = "unknown"
)

// Error is the normalized failure value for all gateway operations.
type Error struct {
	Kind    Kind
	Status  int
	Message string
	Details json.RawMessage
}

func (e *Error) Error() string {
	if e.Status > 0 {
		return fmt.Sprintf("%s (%d): %s", e.Kind, e.Status, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// New builds an Error with no HTTP status attached.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// serverBody is the structured error body the gateway returns on failures.
type serverBody struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

// FromResponse classifies a non-2xx response. The server-supplied message is
// preferred when the body carries one; the raw body is kept in Details.
func FromResponse(status int, statusText string, body []byte) *Error {
	e := &Error{Status: status}
	if len(body) > 0 {
		e.Details = json.RawMessage(body)
	}

	var parsed serverBody
	if len(body) > 0 {
		_ = json.Unmarshal(body, &parsed)
	}
	message := parsed.Message
	if message == "" {
		message = parsed.Error
	}

	switch {
	case status == http.StatusUnauthorized:
		e.Kind = KindAuth
		if message == "" {
			message = "authentication required"
		}
	case status >= http.StatusInternalServerError:
		e.Kind = KindServer
		if message == "" {
			message = "the server failed to process the request"
		}
	case status >= http.StatusBadRequest && message != "":
		e.Kind = KindValidation
	default:
		e.Kind = KindUnknown
		if message == "" {
			message = statusText
		}
	}

	e.Message = message
	return e
}

// FromTransport classifies an error from the HTTP client where no response
// was received. Timeouts and connection failures all count as network errors.
func FromTransport(err error) *Error {
	return &Error{Kind: KindNetwork, Message: fmt.Sprintf("request failed: %v", err)}
}

// FromErr returns err as an *Error, wrapping it as KindUnknown when it is
// anything else. A nil err returns nil.
func FromErr(err error) *Error {
	if err == nil {
		return nil
	}
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr
	}
	return &Error{Kind: KindUnknown, Message: err.Error()}
}

// IsKind reports whether err is an *Error of the given kind.
func IsKind(err error, kind Kind) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Kind == kind
}
