package failure

import (
	"errors"
	"net/http"
)

// Failure is a wrapper for error messages and codes using standard HTTP response codes.
// Las capas de servicio devuelven Failure para toda precondición fallida;
// los handlers traducen el código a la respuesta HTTP.
type Failure struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// Error returns the failure message.
func (e *Failure) Error() string {
	return e.Message
}

// BadRequest returns a new Failure for caller-fixable validation problems.
func BadRequest(msg string) error {
	return &Failure{
		Code:    http.StatusBadRequest,
		Message: msg,
	}
}

// NotFound returns a new Failure for a missing referenced entity.
func NotFound(msg string) error {
	return &Failure{
		Code:    http.StatusNotFound,
		Message: msg,
	}
}

// Conflict returns a new Failure for availability clashes and illegal
// status transitions. Un conflicto de reserva es un resultado de negocio
// esperado, no una falla transitoria: nunca se reintenta.
func Conflict(msg string) error {
	return &Failure{
		Code:    http.StatusConflict,
		Message: msg,
	}
}

// Unauthorized returns a new Failure for missing or invalid credentials.
func Unauthorized(msg string) error {
	return &Failure{
		Code:    http.StatusUnauthorized,
		Message: msg,
	}
}

// Forbidden returns a new Failure for role violations.
func Forbidden(msg string) error {
	return &Failure{
		Code:    http.StatusForbidden,
		Message: msg,
	}
}

// InternalError wraps an underlying persistence/infrastructure error.
func InternalError(err error) error {
	if err != nil {
		return &Failure{
			Code:    http.StatusInternalServerError,
			Message: err.Error(),
		}
	}

	return nil
}

// GetCode returns the HTTP code of an error interface. Errors that are not
// a Failure map to 500.
func GetCode(err error) int {
	var fail *Failure
	if errors.As(err, &fail) {
		return fail.Code
	}

	return http.StatusInternalServerError
}

// IsConflict reports whether the error is a 409 Failure.
func IsConflict(err error) bool {
	return GetCode(err) == http.StatusConflict
}

// IsNotFound reports whether the error is a 404 Failure.
func IsNotFound(err error) bool {
	return GetCode(err) == http.StatusNotFound
}
