package errors

import (
	"context"
	stderrors "errors"
	"fmt"
	"net/http"
)

// HTTPError represents an error with an associated HTTP status code.
// Upstream marks errors reported by the condominium backend; Detail keeps
// the server-provided text when there was one. Body is the raw upstream
// answer, kept for logs only.
type HTTPError struct {
	Code     int
	Message  string
	Detail   string
	Body     string
	Upstream bool
}

func (e *HTTPError) Error() string {
	switch {
	case e.Detail != "":
		return fmt.Sprintf("%s: %s", e.Message, e.Detail)
	case e.Body != "":
		return fmt.Sprintf("%s (%d): %s", e.Message, e.Code, e.Body)
	}
	return e.Message
}

// UserMessage is the text shown to the user: the server detail when present.
func (e *HTTPError) UserMessage() string {
	if e.Detail != "" {
		return e.Detail
	}
	return e.Message
}

// NewHTTPError creates a new HTTPError with the given code and message.
func NewHTTPError(code int, message string) *HTTPError {
	return &HTTPError{
		Code:    code,
		Message: message,
	}
}

// NewUpstreamError wraps a non-2xx backend answer.
func NewUpstreamError(code int, message, detail string) *HTTPError {
	return &HTTPError{
		Code:     code,
		Message:  message,
		Detail:   detail,
		Upstream: true,
	}
}

// WithBody attaches the raw upstream answer, trimmed to maxBodyInError bytes.
func (e *HTTPError) WithBody(body string) *HTTPError {
	if len(body) > maxBodyInError {
		body = body[:maxBodyInError] + "..."
	}
	e.Body = body
	return e
}

const maxBodyInError = 512

// Helper for common errors
var (
	ErrUnauthorized = func(msg string) *HTTPError { return NewHTTPError(http.StatusUnauthorized, msg) }
	ErrForbidden    = func(msg string) *HTTPError { return NewHTTPError(http.StatusForbidden, msg) }
	ErrNotFound     = func(msg string) *HTTPError { return NewHTTPError(http.StatusNotFound, msg) }
	ErrConflict     = func(msg string) *HTTPError { return NewHTTPError(http.StatusConflict, msg) }
	ErrUnavailable  = func(msg string) *HTTPError { return NewHTTPError(http.StatusServiceUnavailable, msg) }
)

// ValidationError is raised before any network call when local input is
// incomplete or out of place.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func Validation(msg string) error {
	return &ValidationError{Message: msg}
}

func IsValidation(err error) bool {
	var v *ValidationError
	return stderrors.As(err, &v)
}

// IsCanceled reports a superseded or abandoned request. It is an expected
// outcome, never a failure to show.
func IsCanceled(err error) bool {
	return stderrors.Is(err, context.Canceled)
}

// StatusCode maps an error to the status the console answers with. Upstream
// failures, including the backend refusing our credentials, surface as 502 so
// they never look like the console rejecting its own session.
func StatusCode(err error) int {
	var httpErr *HTTPError
	switch {
	case err == nil:
		return http.StatusOK
	case IsValidation(err):
		return http.StatusBadRequest
	case stderrors.As(err, &httpErr):
		if httpErr.Upstream && (httpErr.Code >= 500 ||
			httpErr.Code == http.StatusUnauthorized || httpErr.Code == http.StatusForbidden) {
			return http.StatusBadGateway
		}
		return httpErr.Code
	case stderrors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

// UserMessage picks the localized text for err, falling back when the error
// carries nothing meant for users.
func UserMessage(err error, fallback string) string {
	var httpErr *HTTPError
	if stderrors.As(err, &httpErr) {
		if httpErr.Upstream && httpErr.Detail == "" {
			return fallback
		}
		return httpErr.UserMessage()
	}
	var v *ValidationError
	if stderrors.As(err, &v) {
		return v.Message
	}
	return fallback
}
