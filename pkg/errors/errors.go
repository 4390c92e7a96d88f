// Package errors defines the error types returned by the Graph API wrapper.
//
// Callers distinguish failure kinds with errors.As:
//
//   - PreconditionError: a required argument or client property is missing. Raised before any I/O.
//   - ConfigError: the client configuration is invalid.
//   - RequestError: the transport failed to deliver the request or read the response.
//   - ParseError: the response body could not be turned into the expected value.
//   - APIError: Graph answered with an error envelope or a non-2xx status.
package errors

import (
	"fmt"
	"strings"
)

// PreconditionError reports a missing or empty required input. It is a programming
// error on the caller's side and is never worth retrying unchanged.
type PreconditionError struct {
	// Operation is the call that refused to run, e.g. "BuildAuthorizationURL".
	Operation string
	// Property names the missing argument or client property.
	Property string
	// Message optionally adds detail.
	Message string
}

func (e *PreconditionError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = "is required"
	}

	var sb strings.Builder
	sb.WriteString("precondition failed")
	if e.Operation != "" {
		fmt.Fprintf(&sb, " in %s", e.Operation)
	}
	if e.Property != "" {
		fmt.Fprintf(&sb, ": %s %s", e.Property, msg)
	} else {
		fmt.Fprintf(&sb, ": %s", msg)
	}
	return sb.String()
}

// ConfigError indicates a problem with the client configuration.
type ConfigError struct {
	// Field contains the name of the configuration field that caused the error
	Field string
	// Message contains the detailed error message
	Message string
}

func (e *ConfigError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("config error in field %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("config error: %s", e.Message)
}

// RequestError indicates a problem with making an API request.
type RequestError struct {
	// Operation is the name of the API operation that failed
	Operation string
	// URL is the URL that was being accessed, with credentials redacted
	URL string
	// Message contains the detailed error message
	Message string
	// Err contains the underlying error if available
	Err error
}

func (e *RequestError) Error() string {
	msg := e.Message
	if msg == "" && e.Err != nil {
		msg = e.Err.Error()
	}

	if e.Operation != "" && e.URL != "" {
		return fmt.Sprintf("request error during %s to %s: %s", e.Operation, e.URL, msg)
	} else if e.Operation != "" {
		return fmt.Sprintf("request error during %s: %s", e.Operation, msg)
	}
	return fmt.Sprintf("request error: %s", msg)
}

func (e *RequestError) Unwrap() error {
	return e.Err
}

// ParseError indicates a problem parsing the API response.
type ParseError struct {
	// Operation is the name of the API operation where parsing failed
	Operation string
	// Message contains the detailed error message
	Message string
	// Err contains the underlying error if available
	Err error
}

func (e *ParseError) Error() string {
	msg := e.Message
	if msg == "" && e.Err != nil {
		msg = e.Err.Error()
	}

	if e.Operation != "" {
		return fmt.Sprintf("parse error during %s: %s", e.Operation, msg)
	}
	return fmt.Sprintf("parse error: %s", msg)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// APIError is a Graph API error envelope:
//
//	{"error": {"message": "...", "type": "OAuthException", "code": 190, "error_subcode": 460, "fbtrace_id": "..."}}
//
// https://developers.facebook.com/docs/graph-api/guides/error-handling
type APIError struct {
	// StatusCode is the HTTP status code of the response
	StatusCode int
	// Code is the Graph error code, e.g. 190 for an invalid access token
	Code int
	// SubCode refines Code
	SubCode int
	// Type is the error class, e.g. "OAuthException"
	Type string
	// Message is the developer-facing description
	Message string
	// UserTitle and UserMessage are localized texts meant for end users
	UserTitle   string
	UserMessage string
	// FBTraceID identifies the request in Facebook support reports
	FBTraceID string
}

func (e *APIError) Error() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "graph API error (status %d", e.StatusCode)
	if e.Code != 0 {
		fmt.Fprintf(&sb, ", code %d", e.Code)
	}
	if e.SubCode != 0 {
		fmt.Fprintf(&sb, ", subcode %d", e.SubCode)
	}
	if e.Type != "" {
		fmt.Fprintf(&sb, ", type %s", e.Type)
	}
	sb.WriteString(")")
	if e.Message != "" {
		sb.WriteString(": ")
		sb.WriteString(e.Message)
	}
	return sb.String()
}

// Graph error codes that callers commonly branch on.
const (
	CodeAPIUnknown        = 1
	CodeAPIService        = 2
	CodeTooManyCalls      = 4
	CodeUserTooManyCalls  = 17
	CodePermissionDenied  = 10
	CodeInvalidParameter  = 100
	CodeAccessTokenExpiry = 190
)

// IsTokenError reports whether the error means the access token must be replaced.
func (e *APIError) IsTokenError() bool {
	return e.Code == CodeAccessTokenExpiry || e.Type == "OAuthException" && e.Code == 102
}

// IsRateLimited reports whether the error is an application or user level throttle.
func (e *APIError) IsRateLimited() bool {
	switch e.Code {
	case CodeTooManyCalls, CodeUserTooManyCalls, 32, 613:
		return true
	}
	return false
}
