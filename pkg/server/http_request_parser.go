package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/tidwall/gjson"

	"github.com/facultyai/mlflow-faculty/pkg/contract"
)

// HTTPRequestParser decodes MLflow requests into contract types and validates
// them, reporting problems with MLflow's parameter error messages.
type HTTPRequestParser struct {
	validator *validator.Validate
}

func NewHTTPRequestParser() (*HTTPRequestParser, error) {
	v, err := NewValidator()
	if err != nil {
		return nil, err
	}

	return &HTTPRequestParser{validator: v}, nil
}

// ParseBody decodes a JSON body. An empty body leaves input zero valued so
// that required fields are reported by validation.
func (p *HTTPRequestParser) ParseBody(ctx *fiber.Ctx, input interface{}) *contract.Error {
	body := ctx.Body()
	if len(body) == 0 {
		return p.validate(input)
	}

	if err := ctx.BodyParser(input); err != nil {
		return newErrorFromDecodeError(body, err)
	}

	return p.validate(input)
}

func (p *HTTPRequestParser) ParseQuery(ctx *fiber.Ctx, input interface{}) *contract.Error {
	if err := ctx.QueryParser(input); err != nil {
		return contract.NewError(contract.BadRequest, err.Error())
	}

	return p.validate(input)
}

func (p *HTTPRequestParser) validate(input interface{}) *contract.Error {
	err := p.validator.Struct(input)
	if err == nil {
		return nil
	}

	var errs validator.ValidationErrors
	if !errors.As(err, &errs) {
		return contract.NewError(contract.InternalError, err.Error())
	}

	messages := make([]string, 0, len(errs))
	for _, fieldErr := range errs {
		messages = append(messages, validationMessage(fieldErr))
	}

	return contract.NewError(contract.InvalidParameterValue, strings.Join(messages, ", "))
}

func newErrorFromDecodeError(body []byte, err error) *contract.Error {
	var typeErr *json.UnmarshalTypeError
	if !errors.As(err, &typeErr) {
		return contract.NewError(contract.BadRequest, err.Error())
	}

	// Report the value as the client sent it.
	result := gjson.GetBytes(body, typeErr.Field)

	value := result.Str
	if value == "" {
		value = result.Raw
	}

	return contract.NewError(
		contract.InvalidParameterValue,
		fmt.Sprintf("Invalid value %s for parameter '%s' supplied", value, typeErr.Field),
	)
}

func validationMessage(fieldErr validator.FieldError) string {
	field := fieldErr.Field()

	switch fieldErr.Tag() {
	case "required":
		return fmt.Sprintf("Missing value for required parameter '%s'", field)
	case "oneof":
		return fmt.Sprintf(
			"Invalid value %v for parameter '%s' supplied, expected one of [%s]",
			dereference(fieldErr.Value()), field, strings.ReplaceAll(fieldErr.Param(), " ", ", "),
		)
	default:
		return fmt.Sprintf("Invalid value %v for parameter '%s' supplied", dereference(fieldErr.Value()), field)
	}
}

func dereference(value interface{}) interface{} {
	v := reflect.ValueOf(value)
	if v.Kind() == reflect.Ptr && !v.IsNil() {
		return v.Elem().Interface()
	}

	return value
}
