// Package apperror — классификация ошибок сервиса и их отображение
// в HTTP-статусы. Сообщения validation/authentication/authorization
// намеренно различимы между собой (сервис существует, чтобы такие
// различия можно было проверять снаружи). Storage-ошибки наружу
// уходят с одним generic-текстом, подробности остаются в логе.
package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

type Kind int

const (
	KindValidation Kind = iota
	KindAuthentication
	KindAuthorization
	KindNotFound
	KindConflict
	KindStorage
)

// HTTPStatus : отображение вида ошибки в код ответа
func (k Kind) HTTPStatus() int {
	switch k {
	case KindValidation:
		return http.StatusBadRequest
	case KindAuthentication:
		return http.StatusUnauthorized
	case KindAuthorization:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

type Error struct {
	Kind    Kind
	Message string // текст для клиента
	Err     error  // внутренняя причина, наружу не уходит
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// ClientMessage : текст, который увидит клиент.
// Для Storage всегда generic, какой бы ни была причина.
func (e *Error) ClientMessage() string {
	if e.Kind == KindStorage {
		return "Internal server error"
	}
	return e.Message
}

func Validationf(format string, args ...interface{}) *Error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

func Authenticationf(format string, args ...interface{}) *Error {
	return &Error{Kind: KindAuthentication, Message: fmt.Sprintf(format, args...)}
}

func Authorizationf(format string, args ...interface{}) *Error {
	return &Error{Kind: KindAuthorization, Message: fmt.Sprintf(format, args...)}
}

func NotFoundf(format string, args ...interface{}) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

func Conflictf(format string, args ...interface{}) *Error {
	return &Error{Kind: KindConflict, Message: fmt.Sprintf(format, args...)}
}

// Storage оборачивает ошибку слоя хранения. Message попадает только в лог.
func Storage(message string, err error) *Error {
	return &Error{Kind: KindStorage, Message: message, Err: err}
}

// From извлекает *Error; всё неклассифицированное считается Storage
func From(err error) *Error {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}
	return &Error{Kind: KindStorage, Message: "internal error", Err: err}
}
