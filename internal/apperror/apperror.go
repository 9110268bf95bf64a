// Package apperror содержит ошибки, которые резолверы отдают клиенту.
// Код попадает в extensions.code ответа GraphQL, текст - в message.
package apperror

import "errors"

type Code string

const (
	CodeUnauthenticated Code = "UNAUTHENTICATED"
	CodeForbidden       Code = "FORBIDDEN"
	CodeNotFound        Code = "NOT_FOUND"
	CodeBadUserInput    Code = "BAD_USER_INPUT"
	CodeConflict        Code = "CONFLICT"
	CodeInternal        Code = "INTERNAL"
)

type Error struct {
	Code    Code
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// Extensions реализует graphql-go ResolverError
func (e *Error) Extensions() map[string]interface{} {
	return map[string]interface{}{
		"code": string(e.Code),
	}
}

func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

func Unauthenticated() *Error {
	return New(CodeUnauthenticated, "User not authenticated")
}

func Forbidden(message string) *Error {
	return New(CodeForbidden, message)
}

func NotFound(message string) *Error {
	return New(CodeNotFound, message)
}

func BadUserInput(message string) *Error {
	return New(CodeBadUserInput, message)
}

func Conflict(message string) *Error {
	return New(CodeConflict, message)
}

func Internal(message string) *Error {
	return New(CodeInternal, message)
}

// CodeOf возвращает код ошибки или CodeInternal для всех остальных
func CodeOf(err error) Code {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return CodeInternal
}
