// Package apperr define a taxonomia de erros do console: cada erro carrega um
// código estável consumido pelos handlers para mapear status HTTP e renderizar
// a mensagem do servidor sem modificação.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

type Code string

const (
	CodeUnauthenticated    Code = "UNAUTHENTICATED"
	CodeAccessDenied       Code = "ACCESS_DENIED"
	CodeValidation         Code = "VALIDATION_ERROR"
	CodeNotFound           Code = "NOT_FOUND"
	CodeInvalidDestination Code = "INVALID_DESTINATION"
	CodeConflict           Code = "CONFLICT"
	CodeInternal           Code = "INTERNAL_ERROR"
)

type Error struct {
	Code    Code
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New cria um erro de aplicação com o código informado
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Newf cria um erro de aplicação com mensagem formatada
func Newf(code Code, format string, args ...interface{}) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap embrulha err preservando a causa para errors.Is/As
func Wrap(code Code, message string, err error) *Error {
	return &Error{Code: code, Message: message, Err: err}
}

// CodeOf extrai o código de um erro; INTERNAL_ERROR quando não é um *Error
func CodeOf(err error) Code {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return CodeInternal
}

// MessageOf extrai a mensagem de um erro de aplicação; para erros
// desconhecidos devolve o texto do próprio erro (mensagem do servidor,
// sem modificação).
func MessageOf(err error) string {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return err.Error()
}

// HTTPStatus mapeia um código da taxonomia para o status HTTP correspondente
func HTTPStatus(code Code) int {
	switch code {
	case CodeUnauthenticated:
		return http.StatusUnauthorized
	case CodeAccessDenied:
		return http.StatusForbidden
	case CodeValidation:
		return http.StatusBadRequest
	case CodeNotFound:
		return http.StatusNotFound
	case CodeInvalidDestination:
		return http.StatusUnprocessableEntity
	case CodeConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
