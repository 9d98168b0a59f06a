package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// AppError carries the HTTP status an error should surface as. Handlers map any
// error through Status/Message; errors without an AppError in their chain are
// reported as 500 with the underlying message.
type AppError struct {
	Code    int
	Message string
}

func (e *AppError) Error() string {
	return e.Message
}

var (
	ErrUnauthenticated = &AppError{Code: http.StatusUnauthorized, Message: "authentication required"}
	ErrForbidden       = &AppError{Code: http.StatusForbidden, Message: "you do not have permission to perform this action"}
	ErrNotFound        = &AppError{Code: http.StatusNotFound, Message: "resource not found"}
)

// NotFound builds a 404 with a specific message.
func NotFound(format string, args ...any) error {
	return &AppError{Code: http.StatusNotFound, Message: fmt.Sprintf(format, args...)}
}

// Validation builds a 400 for malformed or semantically invalid input.
func Validation(format string, args ...any) error {
	return &AppError{Code: http.StatusBadRequest, Message: fmt.Sprintf(format, args...)}
}

// Forbidden builds a 403 with a specific message.
func Forbidden(format string, args ...any) error {
	return &AppError{Code: http.StatusForbidden, Message: fmt.Sprintf(format, args...)}
}

// PolicyDenied marks an insert rejected by the store's access rule, e.g. taking
// a private quiz without an invitation. Surfaced as 403 with the store detail.
func PolicyDenied(format string, args ...any) error {
	return &AppError{Code: http.StatusForbidden, Message: fmt.Sprintf(format, args...)}
}

// Status resolves the HTTP status for err.
func Status(err error) int {
	var ae *AppError
	if errors.As(err, &ae) {
		return ae.Code
	}
	return http.StatusInternalServerError
}

// Message resolves the user-visible error message for err. The underlying
// message is surfaced for diagnosability; stack traces are never included.
func Message(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
