package service

import (
	"context"
	"encoding/json"

	"github.com/sirupsen/logrus"

	"github.com/facultyai/mlflow-faculty/pkg/contract"
	"github.com/facultyai/mlflow-faculty/pkg/entities"
	"github.com/facultyai/mlflow-faculty/pkg/query"
	"github.com/facultyai/mlflow-faculty/pkg/store"
	"github.com/facultyai/mlflow-faculty/pkg/utils"
)

func (s TrackingService) CreateRun(
	ctx context.Context,
	input *contract.CreateRun,
) (*contract.RunResponse, *contract.Error) {
	experimentID, cErr := parseExperimentID(input.ExperimentID)
	if cErr != nil {
		return nil, cErr
	}

	run, err := s.Store.CreateRun(ctx, store.CreateRunInput{
		ExperimentID:   experimentID,
		UserID:         input.UserID,
		RunName:        input.RunName,
		SourceType:     input.SourceType,
		SourceName:     input.SourceName,
		EntryPointName: input.EntryPointName,
		StartTime:      input.StartTime,
		SourceVersion:  input.SourceVersion,
		Tags:           input.Tags,
		ParentRunID:    input.ParentRunID,
	})
	if err != nil {
		return nil, toContractError("create run", err)
	}

	return &contract.RunResponse{Run: run}, nil
}

func (s TrackingService) GetRun(ctx context.Context, input *contract.GetRun) (*contract.RunResponse, *contract.Error) {
	run, err := s.Store.GetRun(ctx, input.RunID)
	if err != nil {
		return nil, toContractError("get run", err)
	}

	return &contract.RunResponse{Run: run}, nil
}

func (s TrackingService) UpdateRun(
	ctx context.Context,
	input *contract.UpdateRun,
) (*contract.UpdateRunResponse, *contract.Error) {
	info, err := s.Store.UpdateRunInfo(ctx, input.RunID, input.Status, input.EndTime)
	if err != nil {
		return nil, toContractError("update run", err)
	}

	return &contract.UpdateRunResponse{RunInfo: info}, nil
}

func (s TrackingService) DeleteRun(ctx context.Context, input *contract.DeleteRun) (*contract.Empty, *contract.Error) {
	if err := s.Store.DeleteRun(ctx, input.RunID); err != nil {
		return nil, toContractError("delete run", err)
	}

	return &contract.Empty{}, nil
}

func (s TrackingService) RestoreRun(ctx context.Context, input *contract.RestoreRun) (*contract.Empty, *contract.Error) {
	if err := s.Store.RestoreRun(ctx, input.RunID); err != nil {
		return nil, toContractError("restore run", err)
	}

	return &contract.Empty{}, nil
}

func (s TrackingService) LogMetric(ctx context.Context, input *contract.LogMetric) (*contract.Empty, *contract.Error) {
	metric := entities.Metric{
		Key:       input.Key,
		Value:     utils.ValueOrZero(input.Value),
		Timestamp: utils.ValueOrZero(input.Timestamp),
		Step:      input.Step,
	}

	if err := s.Store.LogMetric(ctx, input.RunID, metric); err != nil {
		return nil, toContractError("log metric", err)
	}

	return &contract.Empty{}, nil
}

func (s TrackingService) LogParam(ctx context.Context, input *contract.LogParam) (*contract.Empty, *contract.Error) {
	param := entities.Param{Key: input.Key, Value: input.Value}

	if err := s.Store.LogParam(ctx, input.RunID, param); err != nil {
		return nil, toContractError("log param", err)
	}

	return &contract.Empty{}, nil
}

func (s TrackingService) SetTag(ctx context.Context, input *contract.SetTag) (*contract.Empty, *contract.Error) {
	tag := entities.RunTag{Key: input.Key, Value: input.Value}

	if err := s.Store.SetTag(ctx, input.RunID, tag); err != nil {
		return nil, toContractError("set tag", err)
	}

	return &contract.Empty{}, nil
}

func (s TrackingService) GetMetricHistory(
	ctx context.Context,
	input *contract.GetMetricHistory,
) (*contract.GetMetricHistoryResponse, *contract.Error) {
	metrics, err := s.Store.GetMetricHistory(ctx, input.RunID, input.MetricKey)
	if err != nil {
		return nil, toContractError("get metric history", err)
	}

	return &contract.GetMetricHistoryResponse{Metrics: metrics}, nil
}

// SearchRuns rejects filters the Faculty experiment service cannot express
// before reaching the store.
func (s TrackingService) SearchRuns(
	ctx context.Context,
	input *contract.SearchRuns,
) (*contract.SearchRunsResponse, *contract.Error) {
	experimentIDs := make([]int64, 0, len(input.ExperimentIDs))

	for _, id := range input.ExperimentIDs {
		experimentID, cErr := parseExperimentID(id)
		if cErr != nil {
			return nil, cErr
		}

		experimentIDs = append(experimentIDs, experimentID)
	}

	filter, err := query.ParseFilter(input.Filter)
	if err != nil {
		return nil, contract.NewErrorWith(contract.InvalidParameterValue, "invalid filter", err)
	}

	if s.logger.IsLevelEnabled(logrus.DebugLevel) {
		encoded, _ := json.Marshal(filter)
		s.logger.Debugf("Searching runs in experiments %v with filter %s", experimentIDs, encoded)
	}

	runs, err := s.Store.SearchRuns(ctx, experimentIDs, filter, viewTypeOrDefault(input.RunViewType))
	if err != nil {
		return nil, toContractError("search runs", err)
	}

	return &contract.SearchRunsResponse{Runs: runs}, nil
}
