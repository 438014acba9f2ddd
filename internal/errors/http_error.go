package errors

import (
	"encoding/json"
	stderrors "errors"
	"net/http"
)

// HTTPError represents an error with an associated HTTP status code.
type HTTPError struct {
	Status  int    `json:"-"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTPError with the given status, code and message.
func NewHTTPError(status int, code, message string) *HTTPError {
	return &HTTPError{
		Status:  status,
		Code:    code,
		Message: message,
	}
}

// Helpers for common errors
var (
	ErrBadRequest      = func(msg string) *HTTPError { return NewHTTPError(http.StatusBadRequest, "invalid_input", msg) }
	ErrUnauthorized    = func(msg string) *HTTPError { return NewHTTPError(http.StatusUnauthorized, "unauthorized", msg) }
	ErrForbidden       = func(msg string) *HTTPError { return NewHTTPError(http.StatusForbidden, "forbidden", msg) }
	ErrNotFound        = func(msg string) *HTTPError { return NewHTTPError(http.StatusNotFound, "not_found", msg) }
	ErrConflict        = func(msg string) *HTTPError { return NewHTTPError(http.StatusConflict, "conflict", msg) }
	ErrTooManyRequests = func(msg string) *HTTPError { return NewHTTPError(http.StatusTooManyRequests, "rate_limited", msg) }
	ErrInternal        = func(msg string) *HTTPError { return NewHTTPError(http.StatusInternalServerError, "internal", msg) }
)

// WriteJSON writes err as a {code, message} body. Anything that is not an
// HTTPError is reported as a bare 500 so internals do not leak.
func WriteJSON(w http.ResponseWriter, err error) {
	var he *HTTPError
	if !stderrors.As(err, &he) {
		he = ErrInternal("internal server error")
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(he.Status)
	json.NewEncoder(w).Encode(he)
}
