// Package converters maps Faculty platform entities to MLflow entities and
// back.
package converters

import (
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/facultyai/mlflow-faculty/pkg/contract"
	"github.com/facultyai/mlflow-faculty/pkg/entities"
	"github.com/facultyai/mlflow-faculty/pkg/faculty"
	"github.com/facultyai/mlflow-faculty/pkg/utils"
)

var ErrUnknownRunStatus = errors.New("unknown run status")

//nolint:gochecknoglobals
var runStatuses = map[faculty.RunStatus]entities.RunStatus{
	faculty.RunStatusRunning:   entities.RunStatusRunning,
	faculty.RunStatusFinished:  entities.RunStatusFinished,
	faculty.RunStatusFailed:    entities.RunStatusFailed,
	faculty.RunStatusScheduled: entities.RunStatusScheduled,
}

func RunStatusToMLflow(status faculty.RunStatus) (entities.RunStatus, error) {
	converted, ok := runStatuses[status]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownRunStatus, status)
	}

	return converted, nil
}

func ExperimentToMLflow(experiment faculty.Experiment) entities.Experiment {
	return entities.Experiment{
		ExperimentID:     experiment.ID,
		Name:             experiment.Name,
		ArtifactLocation: experiment.ArtifactLocation,
		LifecycleStage:   entities.LifecycleStageOf(experiment.DeletedAt != nil),
	}
}

// RunToMLflow converts a run. Faculty does not track the run name, source or
// user, so those fields are left empty.
func RunToMLflow(run faculty.ExperimentRun) (entities.Run, error) {
	status, err := RunStatusToMLflow(run.Status)
	if err != nil {
		return entities.Run{}, fmt.Errorf("failed to convert run %s: %w", run.ID, err)
	}

	info := entities.RunInfo{
		RunUUID:        hex.EncodeToString(run.ID[:]),
		ExperimentID:   run.ExperimentID,
		Status:         status,
		StartTime:      TimeToTimestamp(run.StartedAt),
		EndTime:        utils.MapTime(run.EndedAt, TimeToTimestamp),
		LifecycleStage: entities.LifecycleStageOf(run.DeletedAt != nil),
	}

	return entities.Run{
		Info: info,
		Data: entities.RunData{Tags: TagsToMLflow(run.Tags)},
	}, nil
}

func MetricsToFaculty(metrics []entities.Metric) []faculty.Metric {
	converted := make([]faculty.Metric, 0, len(metrics))
	for _, metric := range metrics {
		converted = append(converted, faculty.Metric{
			Key:       metric.Key,
			Value:     metric.Value,
			Timestamp: TimestampToTimeMilliseconds(metric.Timestamp),
		})
	}

	return converted
}

func ParamsToFaculty(params []entities.Param) []faculty.Param {
	converted := make([]faculty.Param, 0, len(params))
	for _, param := range params {
		converted = append(converted, faculty.Param{Key: param.Key, Value: param.Value})
	}

	return converted
}

func TagsToFaculty(tags []entities.RunTag) []faculty.Tag {
	converted := make([]faculty.Tag, 0, len(tags))
	for _, tag := range tags {
		converted = append(converted, faculty.Tag{Key: tag.Key, Value: tag.Value})
	}

	return converted
}

func TagsToMLflow(tags []faculty.Tag) []entities.RunTag {
	converted := make([]entities.RunTag, 0, len(tags))
	for _, tag := range tags {
		converted = append(converted, entities.RunTag{Key: tag.Key, Value: tag.Value})
	}

	return converted
}

// TimeToTimestamp returns milliseconds since the Unix epoch.
func TimeToTimestamp(t time.Time) int64 {
	return t.UnixMilli()
}

// TimestampToTimeMilliseconds interprets timestamp as milliseconds since the
// Unix epoch.
func TimestampToTimeMilliseconds(timestamp int64) time.Time {
	return time.UnixMilli(timestamp).UTC()
}

// TimestampToTimeSeconds interprets timestamp as seconds since the Unix epoch.
func TimestampToTimeSeconds(timestamp int64) time.Time {
	return time.Unix(timestamp, 0).UTC()
}

// HTTPErrorToContractError turns a failed Faculty response into the error
// reported to tracking clients.
func HTTPErrorToContractError(httpErr *faculty.HTTPError) *contract.Error {
	var code contract.ErrorCode

	switch httpErr.StatusCode {
	case http.StatusBadRequest:
		code = contract.InvalidParameterValue
	case http.StatusUnauthorized, http.StatusForbidden:
		code = contract.PermissionDenied
	case http.StatusNotFound:
		code = contract.ResourceDoesNotExist
	case http.StatusConflict:
		code = contract.ResourceAlreadyExists
	default:
		code = contract.InternalError
	}

	return contract.NewError(code, fmt.Sprintf(
		"%s. Received response %s with status code %d",
		httpErr.Message,
		httpErr.ErrorCode,
		httpErr.StatusCode,
	))
}
