package store

import (
	"context"
	"errors"

	"github.com/facultyai/mlflow-faculty/pkg/entities"
	"github.com/facultyai/mlflow-faculty/pkg/faculty"
)

var ErrNotImplemented = errors.New("not implemented")

type CreateRunInput struct {
	ExperimentID   int64
	UserID         string
	RunName        string
	SourceType     string
	SourceName     string
	EntryPointName string
	StartTime      int64
	SourceVersion  string
	Tags           []entities.RunTag
	ParentRunID    string
}

type TrackingStore interface {
	ListExperiments(ctx context.Context, viewType entities.ViewType) ([]entities.Experiment, error)

	// CreateExperiment returns a nil id when the backend refused to create the
	// experiment.
	CreateExperiment(ctx context.Context, name, artifactLocation string) (*int64, error)

	GetExperiment(ctx context.Context, id int64) (entities.Experiment, error)
	GetExperimentByName(ctx context.Context, name string) (*entities.Experiment, error)
	DeleteExperiment(ctx context.Context, id int64) error
	RestoreExperiment(ctx context.Context, id int64) error
	RenameExperiment(ctx context.Context, id int64, newName string) error

	GetRun(ctx context.Context, runID string) (entities.Run, error)
	UpdateRunInfo(
		ctx context.Context,
		runID string,
		status entities.RunStatus,
		endTime int64,
	) (entities.RunInfo, error)
	CreateRun(ctx context.Context, input CreateRunInput) (entities.Run, error)
	DeleteRun(ctx context.Context, runID string) error
	RestoreRun(ctx context.Context, runID string) error

	LogMetric(ctx context.Context, runID string, metric entities.Metric) error
	LogParam(ctx context.Context, runID string, param entities.Param) error
	SetTag(ctx context.Context, runID string, tag entities.RunTag) error
	GetMetricHistory(ctx context.Context, runID, metricKey string) ([]entities.Metric, error)

	SearchRuns(
		ctx context.Context,
		experimentIDs []int64,
		filter faculty.Filter,
		runViewType entities.ViewType,
	) ([]entities.Run, error)
}
