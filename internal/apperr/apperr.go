// Package apperr содержит доменную таксономию ошибок сервиса и их
// отображение в HTTP-статусы и JSON-конверт ответа.
package apperr

import (
	"errors"
	"net/http"
)

// Error — операционная ошибка домена с привязанным HTTP-статусом.
type Error struct {
	Status  int
	Message string
	Code    string
	Path    string
	Value   any
}

func (e *Error) Error() string { return e.Message }

// BadRequest — malformed/missing/invalid-format input. Never retried.
func BadRequest(message string) *Error {
	return &Error{Status: http.StatusBadRequest, Message: message}
}

// BadRequestValue attaches the offending value to a BadRequest error.
func BadRequestValue(message string, value any) *Error {
	return &Error{Status: http.StatusBadRequest, Message: message, Value: value}
}

// NotFound — referenced user/movie absent.
func NotFound(message string) *Error {
	return &Error{Status: http.StatusNotFound, Message: message}
}

// Conflict — duplicate title for the same user.
func Conflict(message string) *Error {
	return &Error{Status: http.StatusConflict, Message: message}
}

// BadGateway — external metadata provider unreachable or erroring.
func BadGateway(message string) *Error {
	return &Error{Status: http.StatusBadGateway, Message: message}
}

// Internal — unexpected persistence failure. Logged server-side,
// surfaced generically.
func Internal(message string) *Error {
	return &Error{Status: http.StatusInternalServerError, Message: message}
}

// From извлекает *Error из цепочки err. Любая другая ошибка считается
// внутренней и наружу не протекает.
func From(err error) *Error {
	var ae *Error
	if errors.As(err, &ae) {
		return ae
	}
	return Internal("Internal Server Error")
}

// Envelope — JSON-тело всех ошибочных ответов API.
type Envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
	Path    string `json:"path,omitempty"`
	Value   any    `json:"value,omitempty"`
}

// ToEnvelope строит тело ответа для ошибки.
func ToEnvelope(e *Error) Envelope {
	return Envelope{
		Success: false,
		Message: e.Message,
		Code:    e.Code,
		Path:    e.Path,
		Value:   e.Value,
	}
}
