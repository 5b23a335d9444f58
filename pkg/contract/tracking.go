package contract

import "github.com/facultyai/mlflow-faculty/pkg/entities"

// Requests mirror the MLflow REST API 2.0. Experiment ids travel as strings.

type Empty struct{}

type CreateExperiment struct {
	Name             string `json:"name"              validate:"required,max=500"`
	ArtifactLocation string `json:"artifact_location" validate:"omitempty,uriWithoutFragmentsOrParamsOrDotDotInQuery"`
}

type CreateExperimentResponse struct {
	ExperimentID string `json:"experiment_id"`
}

type GetExperiment struct {
	ExperimentID string `query:"experiment_id" validate:"required,stringAsPositiveInteger"`
}

type GetExperimentResponse struct {
	Experiment entities.Experiment `json:"experiment"`
}

type GetExperimentByName struct {
	ExperimentName string `query:"experiment_name" validate:"required"`
}

type ListExperiments struct {
	ViewType entities.ViewType `query:"view_type" validate:"omitempty,oneof=ACTIVE_ONLY DELETED_ONLY ALL"`
}

type ListExperimentsResponse struct {
	Experiments []entities.Experiment `json:"experiments"`
}

type DeleteExperiment struct {
	ExperimentID string `json:"experiment_id" validate:"required,stringAsPositiveInteger"`
}

type RestoreExperiment struct {
	ExperimentID string `json:"experiment_id" validate:"required,stringAsPositiveInteger"`
}

type UpdateExperiment struct {
	ExperimentID string `json:"experiment_id" validate:"required,stringAsPositiveInteger"`
	NewName      string `json:"new_name"      validate:"required,max=500"`
}

type CreateRun struct {
	ExperimentID   string            `json:"experiment_id"    validate:"required,stringAsPositiveInteger"`
	UserID         string            `json:"user_id"`
	RunName        string            `json:"run_name"`
	SourceType     string            `json:"source_type"`
	SourceName     string            `json:"source_name"`
	EntryPointName string            `json:"entry_point_name"`
	StartTime      int64             `json:"start_time"       validate:"gte=0"`
	SourceVersion  string            `json:"source_version"`
	Tags           []entities.RunTag `json:"tags"`
	ParentRunID    string            `json:"parent_run_id"`
}

type RunResponse struct {
	Run entities.Run `json:"run"`
}

type GetRun struct {
	RunID string `query:"run_id" validate:"required"`
}

type UpdateRun struct {
	RunID   string             `json:"run_id"   validate:"required"`
	Status  entities.RunStatus `json:"status"   validate:"required,oneof=RUNNING SCHEDULED FINISHED FAILED KILLED"`
	EndTime int64              `json:"end_time" validate:"gte=0"`
}

type UpdateRunResponse struct {
	RunInfo entities.RunInfo `json:"run_info"`
}

type DeleteRun struct {
	RunID string `json:"run_id" validate:"required"`
}

type RestoreRun struct {
	RunID string `json:"run_id" validate:"required"`
}

type LogMetric struct {
	RunID     string   `json:"run_id"    validate:"required"`
	Key       string   `json:"key"       validate:"required,max=250"`
	Value     *float64 `json:"value"     validate:"required"`
	Timestamp *int64   `json:"timestamp" validate:"required"`
	Step      int64    `json:"step"`
}

type LogParam struct {
	RunID string `json:"run_id" validate:"required"`
	Key   string `json:"key"    validate:"required,max=250"`
	Value string `json:"value"  validate:"max=6000"`
}

type SetTag struct {
	RunID string `json:"run_id" validate:"required"`
	Key   string `json:"key"    validate:"required,max=250"`
	Value string `json:"value"  validate:"max=8000"`
}

type GetMetricHistory struct {
	RunID     string `query:"run_id"     validate:"required"`
	MetricKey string `query:"metric_key" validate:"required"`
}

type GetMetricHistoryResponse struct {
	Metrics []entities.Metric `json:"metrics"`
}

type SearchRuns struct {
	ExperimentIDs []string          `json:"experiment_ids" validate:"required,dive,stringAsPositiveInteger"`
	Filter        string            `json:"filter"`
	RunViewType   entities.ViewType `json:"run_view_type"  validate:"omitempty,oneof=ACTIVE_ONLY DELETED_ONLY ALL"`
}

type SearchRunsResponse struct {
	Runs []entities.Run `json:"runs"`
}
