// Package query compiles MLflow search filter strings into Faculty run
// filters.
package query

import (
	"fmt"
	"strings"

	"github.com/facultyai/mlflow-faculty/pkg/faculty"
	"github.com/facultyai/mlflow-faculty/pkg/query/lexer"
	"github.com/facultyai/mlflow-faculty/pkg/query/parser"
)

// ParseFilter returns a nil filter for an empty input.
//
//nolint:ireturn
func ParseFilter(input string) (faculty.Filter, error) {
	if strings.TrimSpace(input) == "" {
		return nil, nil
	}

	tokens, err := lexer.Tokenize(input)
	if err != nil {
		return nil, fmt.Errorf("error while lexing %s: %w", input, err)
	}

	ast, err := parser.Parse(tokens)
	if err != nil {
		return nil, fmt.Errorf("error while parsing %s: %w", input, err)
	}

	filter, err := parser.ValidateExpression(ast)
	if err != nil {
		return nil, fmt.Errorf("error while validating %s: %w", input, err)
	}

	return filter, nil
}
