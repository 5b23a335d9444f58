package server

import (
	"net/url"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/iancoleman/strcase"
)

// fieldName reports fields under their wire name so validation messages match
// the parameter the client sent.
func fieldName(field reflect.StructField) string {
	for _, tag := range []string{"json", "query"} {
		name := strings.SplitN(field.Tag.Get(tag), ",", 2)[0]
		if name != "" && name != "-" {
			return name
		}
	}

	return strcase.ToSnake(field.Name)
}

func NewValidator() (*validator.Validate, error) {
	validate := validator.New()

	validate.RegisterTagNameFunc(fieldName)

	// Verify that the input string is a positive integer.
	if err := validate.RegisterValidation(
		"stringAsPositiveInteger",
		func(fl validator.FieldLevel) bool {
			value, err := strconv.ParseInt(fl.Field().String(), 10, 64)
			if err != nil {
				return false
			}

			return value > -1
		},
	); err != nil {
		return nil, err
	}

	// Verify that the input string, if present, is a URL without fragment or
	// query parameter.
	if err := validate.RegisterValidation(
		"uriWithoutFragmentsOrParamsOrDotDotInQuery",
		func(fl validator.FieldLevel) bool {
			valueStr := fl.Field().String()
			if valueStr == "" {
				return true
			}

			u, err := url.Parse(valueStr)
			if err != nil {
				return false
			}

			return u.Fragment == "" && u.RawQuery == ""
		},
	); err != nil {
		return nil, err
	}

	return validate, nil
}
