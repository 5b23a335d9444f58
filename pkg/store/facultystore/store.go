// Package facultystore implements the tracking store on top of the Faculty
// experiment service. Experiments are scoped to the project named in the
// store URI.
package facultystore

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/facultyai/mlflow-faculty/pkg/converters"
	"github.com/facultyai/mlflow-faculty/pkg/entities"
	"github.com/facultyai/mlflow-faculty/pkg/faculty"
	"github.com/facultyai/mlflow-faculty/pkg/store"
)

type Store struct {
	projectID uuid.UUID
	client    faculty.ExperimentClient
	logger    *logrus.Logger
}

var _ store.TrackingStore = (*Store)(nil)

// NewStore logs to the standard logger when logger is nil.
func NewStore(uri string, client faculty.ExperimentClient, logger *logrus.Logger) (*Store, error) {
	projectID, err := ParseURI(uri)
	if err != nil {
		return nil, err
	}

	if logger == nil {
		logger = logrus.StandardLogger()
	}

	logger.Debugf("Using Faculty tracking store for project %s", projectID)

	return &Store{
		projectID: projectID,
		client:    client,
		logger:    logger,
	}, nil
}

func (s *Store) ProjectID() uuid.UUID {
	return s.projectID
}

func (s *Store) CreateExperiment(ctx context.Context, name, artifactLocation string) (*int64, error) {
	experiment, err := s.client.Create(ctx, s.projectID, name, "", artifactLocation)
	if err != nil {
		var httpErr *faculty.HTTPError
		if errors.As(err, &httpErr) {
			s.logger.WithError(err).Warnf("Faculty refused to create experiment %q", name)

			return nil, nil
		}

		return nil, fmt.Errorf("failed to create experiment %q: %w", name, err)
	}

	return &experiment.ID, nil
}

func (s *Store) GetExperiment(ctx context.Context, id int64) (entities.Experiment, error) {
	experiment, err := s.client.Get(ctx, s.projectID, id)
	if err != nil {
		var httpErr *faculty.HTTPError
		if errors.As(err, &httpErr) {
			return entities.Experiment{}, converters.HTTPErrorToContractError(httpErr)
		}

		return entities.Experiment{}, fmt.Errorf("failed to get experiment %d: %w", id, err)
	}

	return converters.ExperimentToMLflow(experiment), nil
}

func notImplemented(operation string) error {
	return fmt.Errorf("%s: %w", operation, store.ErrNotImplemented)
}

func (s *Store) ListExperiments(context.Context, entities.ViewType) ([]entities.Experiment, error) {
	return nil, notImplemented("ListExperiments")
}

func (s *Store) GetExperimentByName(context.Context, string) (*entities.Experiment, error) {
	return nil, notImplemented("GetExperimentByName")
}

func (s *Store) DeleteExperiment(context.Context, int64) error {
	return notImplemented("DeleteExperiment")
}

func (s *Store) RestoreExperiment(context.Context, int64) error {
	return notImplemented("RestoreExperiment")
}

func (s *Store) RenameExperiment(context.Context, int64, string) error {
	return notImplemented("RenameExperiment")
}

func (s *Store) GetRun(context.Context, string) (entities.Run, error) {
	return entities.Run{}, notImplemented("GetRun")
}

func (s *Store) UpdateRunInfo(context.Context, string, entities.RunStatus, int64) (entities.RunInfo, error) {
	return entities.RunInfo{}, notImplemented("UpdateRunInfo")
}

func (s *Store) CreateRun(context.Context, store.CreateRunInput) (entities.Run, error) {
	return entities.Run{}, notImplemented("CreateRun")
}

func (s *Store) DeleteRun(context.Context, string) error {
	return notImplemented("DeleteRun")
}

func (s *Store) RestoreRun(context.Context, string) error {
	return notImplemented("RestoreRun")
}

func (s *Store) LogMetric(context.Context, string, entities.Metric) error {
	return notImplemented("LogMetric")
}

func (s *Store) LogParam(context.Context, string, entities.Param) error {
	return notImplemented("LogParam")
}

func (s *Store) SetTag(context.Context, string, entities.RunTag) error {
	return notImplemented("SetTag")
}

func (s *Store) GetMetricHistory(context.Context, string, string) ([]entities.Metric, error) {
	return nil, notImplemented("GetMetricHistory")
}

func (s *Store) SearchRuns(context.Context, []int64, faculty.Filter, entities.ViewType) ([]entities.Run, error) {
	return nil, notImplemented("SearchRuns")
}
