package faculty

import "encoding/json"

type ComparisonOperator string

const (
	Defined              ComparisonOperator = "defined"
	EqualTo              ComparisonOperator = "eq"
	NotEqualTo           ComparisonOperator = "ne"
	LessThan             ComparisonOperator = "lt"
	LessThanOrEqualTo    ComparisonOperator = "le"
	GreaterThan          ComparisonOperator = "gt"
	GreaterThanOrEqualTo ComparisonOperator = "ge"
)

type LogicalOperator string

const (
	And LogicalOperator = "and"
	Or  LogicalOperator = "or"
)

// Filter is a condition on experiment runs understood by the experiment
// service.
//
// For every single-key filter the Value is a bool when the Operator is
// Defined (true for IS NOT NULL), and otherwise:
//
//	RunIDFilter     uuid.UUID
//	RunStatusFilter RunStatus
//	ParamFilter     string or float64
//	MetricFilter    float64
//	TagFilter       string
type Filter interface {
	filter()
}

type RunIDFilter struct {
	Operator ComparisonOperator
	Value    interface{}
}

type RunStatusFilter struct {
	Operator ComparisonOperator
	Value    interface{}
}

type ParamFilter struct {
	Key      string
	Operator ComparisonOperator
	Value    interface{}
}

type MetricFilter struct {
	Key      string
	Operator ComparisonOperator
	Value    interface{}
}

type TagFilter struct {
	Key      string
	Operator ComparisonOperator
	Value    interface{}
}

type CompoundFilter struct {
	Operator   LogicalOperator
	Conditions []Filter
}

func (RunIDFilter) filter()     {}
func (RunStatusFilter) filter() {}
func (ParamFilter) filter()     {}
func (MetricFilter) filter()    {}
func (TagFilter) filter()       {}
func (CompoundFilter) filter()  {}

// Filters are sent to the experiment service as
// {"by": ..., "key": ..., "operator": ..., "value": ...} for a single
// condition and {"operator": ..., "conditions": [...]} for a compound one.
type singleFilterJSON struct {
	By       string             `json:"by"`
	Key      string             `json:"key,omitempty"`
	Operator ComparisonOperator `json:"operator"`
	Value    interface{}        `json:"value"`
}

func (f RunIDFilter) MarshalJSON() ([]byte, error) {
	return json.Marshal(singleFilterJSON{By: "runId", Operator: f.Operator, Value: f.Value})
}

func (f RunStatusFilter) MarshalJSON() ([]byte, error) {
	return json.Marshal(singleFilterJSON{By: "status", Operator: f.Operator, Value: f.Value})
}

func (f ParamFilter) MarshalJSON() ([]byte, error) {
	return json.Marshal(singleFilterJSON{By: "param", Key: f.Key, Operator: f.Operator, Value: f.Value})
}

func (f MetricFilter) MarshalJSON() ([]byte, error) {
	return json.Marshal(singleFilterJSON{By: "metric", Key: f.Key, Operator: f.Operator, Value: f.Value})
}

func (f TagFilter) MarshalJSON() ([]byte, error) {
	return json.Marshal(singleFilterJSON{By: "tag", Key: f.Key, Operator: f.Operator, Value: f.Value})
}

func (f CompoundFilter) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Operator   LogicalOperator `json:"operator"`
		Conditions []Filter        `json:"conditions"`
	}{f.Operator, f.Conditions})
}
