package common

import (
	"fmt"
	"net/http"
)

type APIError struct {
	Status  int            `json:"-"`
	Message string         `json:"error"`
	Fields  map[string]any `json:"fields,omitempty"`
}

func (e APIError) Error() string {
	return e.Message
}

func Errf(status int, format string, args ...any) APIError {
	return APIError{Status: status, Message: fmt.Sprintf(format, args...)}
}

// NewAPIError creates an APIError with status, message, and optional fields
func NewAPIError(status int, message string, fields map[string]any) APIError {
	return APIError{
		Status:  status,
		Message: message,
		Fields:  fields,
	}
}

// Validationf rejects bad input shape before any state is touched.
func Validationf(format string, args ...any) APIError {
	return Errf(http.StatusBadRequest, format, args...)
}

// NotFoundf signals that the referenced job/offer/payment is absent.
func NotFoundf(format string, args ...any) APIError {
	return Errf(http.StatusNotFound, format, args...)
}

// Forbiddenf signals that the actor is not a party to the resource.
func Forbiddenf(format string, args ...any) APIError {
	return Errf(http.StatusForbidden, format, args...)
}

// Conflictf signals a failed precondition on current status or
// ownership: job not open, offer not pending, code already used.
func Conflictf(format string, args ...any) APIError {
	return Errf(http.StatusConflict, format, args...)
}
