package parser

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/facultyai/mlflow-faculty/pkg/faculty"
)

/*

This is the equivalent of type-checking the untyped tree and lowering it to
the filter understood by the Faculty experiment service.

Grammar rule: identifier.key operator value

For identifiers:

identifier.key

Or if only key is passed, the identifier is "attribute".

Identifiers can have aliases. Attributes only support the run id (id, run_id
or runId) and status keys.

*/

type ValidIdentifier int

const (
	Metric ValidIdentifier = iota
	Parameter
	Tag
	Attribute
)

func (v ValidIdentifier) String() string {
	switch v {
	case Metric:
		return "metric"
	case Parameter:
		return "parameter"
	case Tag:
		return "tag"
	case Attribute:
		return "attribute"
	default:
		return "unknown"
	}
}

// keyType is what a validated identifier filters on.
type keyType int

const (
	runIDKey keyType = iota
	statusKey
	paramKey
	metricKey
	tagKey
)

func (k keyType) String() string {
	switch k {
	case runIDKey:
		return "Run ID"
	case statusKey:
		return "Status"
	case paramKey:
		return "Param"
	case metricKey:
		return "Metric"
	case tagKey:
		return "Tag"
	default:
		return "Unknown"
	}
}

type ValidationError struct {
	message string
}

func (e *ValidationError) Error() string {
	return e.message
}

func NewValidationError(format string, a ...interface{}) *ValidationError {
	return &ValidationError{message: fmt.Sprintf(format, a...)}
}

func parseValidIdentifier(identifier string) (ValidIdentifier, error) {
	switch identifier {
	case "metric", "metrics":
		return Metric, nil
	case "parameter", "parameters", "param", "params":
		return Parameter, nil
	case "tag", "tags":
		return Tag, nil
	case "", "attribute", "attr", "attributes", "run":
		return Attribute, nil
	default:
		return -1, NewValidationError("unsupported filter identifier %q", identifier)
	}
}

var runIDAttributes = []string{"id", "run_id", "runId"}

func parseKeyType(identifier ValidIdentifier, key string) (keyType, error) {
	switch identifier {
	case Metric:
		return metricKey, nil
	case Parameter:
		return paramKey, nil
	case Tag:
		return tagKey, nil
	case Attribute:
		switch key {
		case "id", "run_id", "runId":
			return runIDKey, nil
		case "status":
			return statusKey, nil
		default:
			return -1, NewValidationError(
				"unsupported filter attribute %q. Allowed values are %s and status",
				key,
				strings.Join(runIDAttributes, ", "),
			)
		}
	default:
		return -1, NewValidationError("unsupported filter identifier %s", identifier)
	}
}

//nolint:gochecknoglobals
var comparisonOperators = map[OperatorKind]faculty.ComparisonOperator{
	Equals:        faculty.EqualTo,
	NotEquals:     faculty.NotEqualTo,
	Less:          faculty.LessThan,
	LessEquals:    faculty.LessThanOrEqualTo,
	Greater:       faculty.GreaterThan,
	GreaterEquals: faculty.GreaterThanOrEqualTo,
	IsNull:        faculty.Defined,
	IsNotNull:     faculty.Defined,
}

func isDiscrete(operator faculty.ComparisonOperator) bool {
	return operator == faculty.Defined || operator == faculty.EqualTo || operator == faculty.NotEqualTo
}

/*

The value part is determined by the key type

"run id" takes a quoted UUID
"status" takes a quoted run status, in any case
"metric" takes numbers
"tag" takes strings
"parameter" takes either

IS NULL and IS NOT NULL take no value.

*/

func validateValue(key keyType, value Value) (interface{}, error) {
	switch key {
	case runIDKey:
		str, ok := value.(StringExpr)
		if !ok {
			return nil, NewValidationError("expected a quoted run id. Found %v", value.value())
		}

		runID, err := uuid.Parse(str.Value)
		if err != nil {
			return nil, NewValidationError("%q is not a valid UUID", str.Value)
		}

		return runID, nil
	case statusKey:
		str, ok := value.(StringExpr)
		if !ok {
			return nil, NewValidationError("expected a quoted run status. Found %v", value.value())
		}

		status, err := faculty.ParseRunStatus(str.Value)
		if err != nil {
			return nil, NewValidationError("%s", err)
		}

		return status, nil
	case metricKey:
		if _, ok := value.(NumberExpr); !ok {
			return nil, NewValidationError(
				"expected numeric value type for metric. Found %v",
				value.value(),
			)
		}

		return value.value(), nil
	case tagKey:
		if _, ok := value.(StringExpr); !ok {
			return nil, NewValidationError(
				"expected a quoted string value for tag. Found %v",
				value.value(),
			)
		}

		return value.value(), nil
	case paramKey:
		return value.value(), nil
	default:
		return nil, NewValidationError("unexpected key type %s", key)
	}
}

func validateOperator(key keyType, operator faculty.ComparisonOperator, value interface{}) error {
	if isDiscrete(operator) {
		return nil
	}

	switch key {
	case runIDKey, statusKey, tagKey:
		return NewValidationError(
			"%s filters can only be used with operators '=', '!=' and 'IS NULL'",
			key,
		)
	case paramKey:
		if _, ok := value.(string); ok {
			return NewValidationError(
				"Param filters with string values can only be used with operators '=', '!=' and 'IS NULL'",
			)
		}
	case metricKey:
	}

	return nil
}

func newFilter(key keyType, name string, operator faculty.ComparisonOperator, value interface{}) faculty.Filter {
	switch key {
	case runIDKey:
		return faculty.RunIDFilter{Operator: operator, Value: value}
	case statusKey:
		return faculty.RunStatusFilter{Operator: operator, Value: value}
	case paramKey:
		return faculty.ParamFilter{Key: name, Operator: operator, Value: value}
	case metricKey:
		return faculty.MetricFilter{Key: name, Operator: operator, Value: value}
	default:
		return faculty.TagFilter{Key: name, Operator: operator, Value: value}
	}
}

func validateComparison(expression *CompareExpr) (faculty.Filter, error) {
	identifier, err := parseValidIdentifier(expression.Left.Identifier)
	if err != nil {
		return nil, err
	}

	key, err := parseKeyType(identifier, expression.Left.Key)
	if err != nil {
		return nil, err
	}

	operator := comparisonOperators[expression.Operator]

	var value interface{}

	switch expression.Operator {
	case IsNull:
		value = false
	case IsNotNull:
		value = true
	case Equals, NotEquals, Less, LessEquals, Greater, GreaterEquals:
		value, err = validateValue(key, expression.Right)
		if err != nil {
			return nil, err
		}
	}

	if err := validateOperator(key, operator, value); err != nil {
		return nil, err
	}

	return newFilter(key, expression.Left.Key, operator, value), nil
}

func validateConditions(operator faculty.LogicalOperator, exprs []Expr) (faculty.Filter, error) {
	conditions := make([]faculty.Filter, 0, len(exprs))

	for _, expr := range exprs {
		condition, err := validate(expr)
		if err != nil {
			return nil, err
		}

		conditions = append(conditions, condition)
	}

	return faculty.CompoundFilter{Operator: operator, Conditions: conditions}, nil
}

func validate(expression Expr) (faculty.Filter, error) {
	switch expr := expression.(type) {
	case *CompareExpr:
		return validateComparison(expr)
	case *AndExpr:
		return validateConditions(faculty.And, expr.Exprs)
	case *OrExpr:
		return validateConditions(faculty.Or, expr.Exprs)
	default:
		return nil, NewValidationError("unexpected expression %T", expression)
	}
}

// ValidateExpression type-checks a parsed filter and converts it to a Faculty
// run filter.
func ValidateExpression(expression Expr) (faculty.Filter, error) {
	filter, err := validate(expression)
	if err != nil {
		return nil, fmt.Errorf("Error on parsing filter expression: %w", err)
	}

	return filter, nil
}
