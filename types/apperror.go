package types

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
)

// ErrorKind classifies service-layer failures so controllers can map them
// to HTTP status codes without inspecting error strings.
type ErrorKind int

const (
	KindInternal ErrorKind = iota
	KindNotFound
	KindForbidden
	KindInvalidArgument
	KindConflict
)

type AppError struct {
	Kind ErrorKind
	Msg  string
	Err  error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.Err)
	}
	return e.Msg
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NotFound(msg string) *AppError {
	return &AppError{Kind: KindNotFound, Msg: msg}
}

func Forbidden(msg string) *AppError {
	return &AppError{Kind: KindForbidden, Msg: msg}
}

func InvalidArgument(msg string) *AppError {
	return &AppError{Kind: KindInvalidArgument, Msg: msg}
}

func Conflict(msg string) *AppError {
	return &AppError{Kind: KindConflict, Msg: msg}
}

func Internal(msg string, err error) *AppError {
	return &AppError{Kind: KindInternal, Msg: msg, Err: err}
}

// KindOf reports the ErrorKind of err, or KindInternal when err is not
// an AppError.
func KindOf(err error) ErrorKind {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

// HTTPStatus maps a service error to the fiber status code controllers
// should respond with.
func HTTPStatus(err error) int {
	switch KindOf(err) {
	case KindNotFound:
		return fiber.StatusNotFound
	case KindForbidden:
		return fiber.StatusForbidden
	case KindInvalidArgument:
		return fiber.StatusBadRequest
	case KindConflict:
		return fiber.StatusConflict
	default:
		return fiber.StatusInternalServerError
	}
}
