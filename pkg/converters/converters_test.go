package converters_test

import (
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/facultyai/mlflow-faculty/pkg/contract"
	"github.com/facultyai/mlflow-faculty/pkg/converters"
	"github.com/facultyai/mlflow-faculty/pkg/entities"
	"github.com/facultyai/mlflow-faculty/pkg/faculty"
	"github.com/facultyai/mlflow-faculty/pkg/utils"
)

const (
	experimentID     = 12
	experimentName   = "experiment name"
	artifactLocation = "scheme://artifact-location"
)

var (
	runID          = uuid.MustParse("d6e5a1b4-55c6-4a8a-8c43-c4b4f7e2a9d1")
	runIDHex       = "d6e5a1b455c64a8a8c43c4b4f7e2a9d1"
	runStartedAt   = time.Date(2018, 3, 10, 11, 39, 12, 110000000, time.UTC)
	runStartedAtMs = int64(1520681952110)
)

func facultyExperiment() faculty.Experiment {
	return faculty.Experiment{
		ID:               experimentID,
		Name:             experimentName,
		Description:      "not used",
		ArtifactLocation: artifactLocation,
		CreatedAt:        time.Now().UTC(),
		LastUpdatedAt:    time.Now().UTC(),
	}
}

func facultyRun() faculty.ExperimentRun {
	return faculty.ExperimentRun{
		ID:               runID,
		ExperimentID:     experimentID,
		ArtifactLocation: "faculty:",
		Status:           faculty.RunStatusRunning,
		StartedAt:        runStartedAt,
		Tags:             []faculty.Tag{{Key: "tag-key", Value: "tag-value"}},
	}
}

func mlflowRun(status entities.RunStatus, endTime *int64, stage entities.LifecycleStage) entities.Run {
	return entities.Run{
		Info: entities.RunInfo{
			RunUUID:        runIDHex,
			ExperimentID:   experimentID,
			Status:         status,
			StartTime:      runStartedAtMs,
			EndTime:        endTime,
			LifecycleStage: stage,
		},
		Data: entities.RunData{
			Tags: []entities.RunTag{{Key: "tag-key", Value: "tag-value"}},
		},
	}
}

func TestExperimentToMLflow(t *testing.T) {
	assert.Equal(t, entities.Experiment{
		ExperimentID:     experimentID,
		Name:             experimentName,
		ArtifactLocation: artifactLocation,
		LifecycleStage:   entities.LifecycleStageActive,
	}, converters.ExperimentToMLflow(facultyExperiment()))
}

func TestExperimentToMLflowDeleted(t *testing.T) {
	experiment := facultyExperiment()
	experiment.DeletedAt = utils.PtrTo(time.Now())

	assert.Equal(t, entities.LifecycleStageDeleted, converters.ExperimentToMLflow(experiment).LifecycleStage)
}

func TestRunToMLflow(t *testing.T) {
	run, err := converters.RunToMLflow(facultyRun())
	require.NoError(t, err)

	assert.Equal(t, mlflowRun(entities.RunStatusRunning, nil, entities.LifecycleStageActive), run)
}

func TestRunToMLflowStatus(t *testing.T) {
	scenarios := []struct {
		faculty faculty.RunStatus
		mlflow  entities.RunStatus
	}{
		{faculty.RunStatusRunning, entities.RunStatusRunning},
		{faculty.RunStatusFinished, entities.RunStatusFinished},
		{faculty.RunStatusFailed, entities.RunStatusFailed},
		{faculty.RunStatusScheduled, entities.RunStatusScheduled},
	}

	for _, scenario := range scenarios {
		t.Run(string(scenario.faculty), func(t *testing.T) {
			input := facultyRun()
			input.Status = scenario.faculty

			run, err := converters.RunToMLflow(input)
			require.NoError(t, err)
			assert.Equal(t, mlflowRun(scenario.mlflow, nil, entities.LifecycleStageActive), run)
		})
	}
}

func TestRunToMLflowUnknownStatus(t *testing.T) {
	for _, status := range []faculty.RunStatus{faculty.RunStatusKilled, "paused", ""} {
		t.Run(string(status), func(t *testing.T) {
			input := facultyRun()
			input.Status = status

			_, err := converters.RunToMLflow(input)
			require.ErrorIs(t, err, converters.ErrUnknownRunStatus)
		})
	}
}

func TestRunToMLflowDeleted(t *testing.T) {
	input := facultyRun()
	input.DeletedAt = utils.PtrTo(time.Now())

	run, err := converters.RunToMLflow(input)
	require.NoError(t, err)
	assert.Equal(t, mlflowRun(entities.RunStatusRunning, nil, entities.LifecycleStageDeleted), run)
}

func TestRunToMLflowEndTime(t *testing.T) {
	endedAt := time.Date(2018, 3, 10, 12, 1, 2, 345000000, time.UTC)
	input := facultyRun()
	input.EndedAt = &endedAt

	run, err := converters.RunToMLflow(input)
	require.NoError(t, err)
	assert.Equal(t, mlflowRun(entities.RunStatusRunning, utils.PtrTo(endedAt.UnixMilli()), entities.LifecycleStageActive), run)
}

func TestRunToMLflowNonUTCStart(t *testing.T) {
	input := facultyRun()
	input.StartedAt = runStartedAt.In(time.FixedZone("CET", 3600))

	run, err := converters.RunToMLflow(input)
	require.NoError(t, err)
	assert.Equal(t, runStartedAtMs, run.Info.StartTime)
}

func TestMetricsToFaculty(t *testing.T) {
	metrics := converters.MetricsToFaculty([]entities.Metric{
		{Key: "loss", Value: 0.5, Timestamp: 1551884271987},
		{Key: "accuracy", Value: 0.9, Timestamp: 0},
	})

	require.Len(t, metrics, 2)
	assert.Equal(t, "loss", metrics[0].Key)
	assert.InDelta(t, 0.5, metrics[0].Value, 1e-9)
	assert.True(t, metrics[0].Timestamp.Equal(time.Date(2019, 3, 6, 14, 57, 51, 987000000, time.UTC)))
	assert.Equal(t, "accuracy", metrics[1].Key)
	assert.True(t, metrics[1].Timestamp.Equal(time.Unix(0, 0)))
}

func TestParamsToFaculty(t *testing.T) {
	assert.Equal(t,
		[]faculty.Param{{Key: "param-key", Value: "param-value"}, {Key: "param-key", Value: "other"}},
		converters.ParamsToFaculty([]entities.Param{{Key: "param-key", Value: "param-value"}, {Key: "param-key", Value: "other"}}),
	)
}

func TestTagsRoundTrip(t *testing.T) {
	tags := []faculty.Tag{
		{Key: "b", Value: "1"},
		{Key: "a", Value: "2"},
		{Key: "b", Value: "3"},
	}

	assert.Equal(t, tags, converters.TagsToFaculty(converters.TagsToMLflow(tags)))
	assert.Empty(t, converters.TagsToFaculty(converters.TagsToMLflow(nil)))
}

func TestTimestampConversions(t *testing.T) {
	scenarios := []struct {
		name      string
		convert   func(int64) time.Time
		timestamp int64
		expected  time.Time
	}{
		{"milliseconds epoch", converters.TimestampToTimeMilliseconds, 0, time.Date(1970, 1, 1, 0, 0, 0, 0, time.UTC)},
		{"milliseconds", converters.TimestampToTimeMilliseconds, 1551884271987, time.Date(2019, 3, 6, 14, 57, 51, 987000000, time.UTC)},
		{"seconds epoch", converters.TimestampToTimeSeconds, 0, time.Date(1970, 1, 1, 0, 0, 0, 0, time.UTC)},
		{"seconds", converters.TimestampToTimeSeconds, 1552484641, time.Date(2019, 3, 13, 13, 44, 1, 0, time.UTC)},
	}

	for _, scenario := range scenarios {
		t.Run(scenario.name, func(t *testing.T) {
			converted := scenario.convert(scenario.timestamp)
			assert.Equal(t, time.UTC, converted.Location())
			assert.True(t, converted.Equal(scenario.expected), "expected %s, got %s", scenario.expected, converted)
		})
	}

	assert.Equal(t, runStartedAtMs, converters.TimeToTimestamp(runStartedAt))
}

func TestHTTPErrorToContractError(t *testing.T) {
	scenarios := []struct {
		status int
		code   contract.ErrorCode
	}{
		{http.StatusBadRequest, contract.InvalidParameterValue},
		{http.StatusUnauthorized, contract.PermissionDenied},
		{http.StatusForbidden, contract.PermissionDenied},
		{http.StatusNotFound, contract.ResourceDoesNotExist},
		{http.StatusConflict, contract.ResourceAlreadyExists},
		{http.StatusTeapot, contract.InternalError},
		{http.StatusInternalServerError, contract.InternalError},
	}

	for _, scenario := range scenarios {
		t.Run(http.StatusText(scenario.status), func(t *testing.T) {
			err := converters.HTTPErrorToContractError(&faculty.HTTPError{
				StatusCode: scenario.status,
				Message:    "error",
				ErrorCode:  "error_code",
			})

			assert.Equal(t, scenario.code, err.Code)
			assert.Equal(t, "error. Received response error_code with status code "+itoa(scenario.status), err.Message)

			var target *contract.Error
			assert.True(t, errors.As(error(err), &target))
		})
	}
}
