package contract

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
)

type ErrorCode string

const (
	InternalError          ErrorCode = "INTERNAL_ERROR"
	BadRequest             ErrorCode = "BAD_REQUEST"
	InvalidParameterValue  ErrorCode = "INVALID_PARAMETER_VALUE"
	EndpointNotFound       ErrorCode = "ENDPOINT_NOT_FOUND"
	ResourceDoesNotExist   ErrorCode = "RESOURCE_DOES_NOT_EXIST"
	ResourceAlreadyExists  ErrorCode = "RESOURCE_ALREADY_EXISTS"
	PermissionDenied       ErrorCode = "PERMISSION_DENIED"
	NotImplemented         ErrorCode = "NOT_IMPLEMENTED"
	TemporarilyUnavailable ErrorCode = "TEMPORARILY_UNAVAILABLE"
)

// Error is the error surfaced to tracking clients. It renders as the
// {"error_code": ..., "message": ...} body of the MLflow REST API.
type Error struct {
	Code    ErrorCode `json:"error_code"`
	Message string    `json:"message"`
	Inner   error     `json:"-"`
}

func NewError(code ErrorCode, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
	}
}

func NewErrorWith(code ErrorCode, message string, err error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Inner:   err,
	}
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("[%s] %s", e.Code, e.Message)
	if e.Inner != nil {
		return fmt.Sprintf("%s: %s", msg, e.Inner)
	}

	return msg
}

func (e *Error) Unwrap() error {
	return e.Inner
}

//nolint:cyclop
func (e *Error) StatusCode() int {
	switch e.Code {
	case BadRequest, InvalidParameterValue:
		return fiber.StatusBadRequest
	case EndpointNotFound, ResourceDoesNotExist:
		return fiber.StatusNotFound
	case ResourceAlreadyExists:
		return fiber.StatusConflict
	case PermissionDenied:
		return fiber.StatusForbidden
	case NotImplemented:
		return fiber.StatusNotImplemented
	case TemporarilyUnavailable:
		return fiber.StatusServiceUnavailable
	case InternalError:
		return fiber.StatusInternalServerError
	default:
		return fiber.StatusInternalServerError
	}
}
