package services

import "net/http"

// ServiceError is a typed error with an HTTP status code. Fields is set
// only for validation failures and maps field names to messages.
type ServiceError struct {
	StatusCode int
	Message    string
	Fields     map[string]string
}

func (e *ServiceError) Error() string { return e.Message }

// NewValidationError builds a 422 error for a single offending field.
func NewValidationError(field, message string) *ServiceError {
	return &ServiceError{
		StatusCode: http.StatusUnprocessableEntity,
		Message:    "Validation failed",
		Fields:     map[string]string{field: message},
	}
}

// NewNotFoundError builds a 404 error.
func NewNotFoundError(message string) *ServiceError {
	return &ServiceError{StatusCode: http.StatusNotFound, Message: message}
}

// NewInternalError builds a 500 error with a stable message. The cause
// is expected to be logged by the caller, never echoed.
func NewInternalError(message string) *ServiceError {
	return &ServiceError{StatusCode: http.StatusInternalServerError, Message: message}
}
