// Package service implements the MLflow tracking API on top of a tracking
// store.
package service

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/facultyai/mlflow-faculty/pkg/contract"
	"github.com/facultyai/mlflow-faculty/pkg/converters"
	"github.com/facultyai/mlflow-faculty/pkg/entities"
	"github.com/facultyai/mlflow-faculty/pkg/store"
)

type TrackingService struct {
	logger *logrus.Logger
	Store  store.TrackingStore
}

func NewTrackingService(logger *logrus.Logger, trackingStore store.TrackingStore) *TrackingService {
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	return &TrackingService{
		logger: logger,
		Store:  trackingStore,
	}
}

// toContractError reports store failures to tracking clients.
func toContractError(operation string, err error) *contract.Error {
	var contractErr *contract.Error
	if errors.As(err, &contractErr) {
		return contractErr
	}

	if errors.Is(err, store.ErrNotImplemented) {
		return contract.NewErrorWith(
			contract.NotImplemented,
			operation+" is not supported by the Faculty tracking store",
			err,
		)
	}

	if errors.Is(err, converters.ErrUnknownRunStatus) {
		return contract.NewErrorWith(contract.InternalError, "received a run with an unsupported status", err)
	}

	return contract.NewErrorWith(contract.InternalError, fmt.Sprintf("failed to %s", operation), err)
}

func parseExperimentID(id string) (int64, *contract.Error) {
	parsed, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		return 0, contract.NewErrorWith(
			contract.InvalidParameterValue,
			fmt.Sprintf("failed to convert experiment id %q to int", id),
			err,
		)
	}

	return parsed, nil
}

func viewTypeOrDefault(viewType entities.ViewType) entities.ViewType {
	if viewType == "" {
		return entities.ViewTypeActiveOnly
	}

	return viewType
}

// normalizeArtifactLocation turns relative and file: locations into absolute
// file URIs. Other schemes are left untouched.
func normalizeArtifactLocation(location string) (string, *contract.Error) {
	if location == "" {
		return "", nil
	}

	artifactLocation := strings.TrimRight(location, "/")

	// The validator already rejected unparsable locations.
	parsed, _ := url.Parse(artifactLocation)
	switch parsed.Scheme {
	case "file", "":
		path, err := filepath.Abs(parsed.Path)
		if err != nil {
			return "", contract.NewError(
				contract.InvalidParameterValue,
				fmt.Sprintf("error getting absolute path: %v", err),
			)
		}

		if runtime.GOOS == "windows" {
			path = "/" + strings.ReplaceAll(path, "\\", "/")
		}

		parsed.Scheme = "file"
		parsed.OmitHost = false
		parsed.Path = path
		artifactLocation = parsed.String()
	}

	return artifactLocation, nil
}

func (s TrackingService) CreateExperiment(
	ctx context.Context,
	input *contract.CreateExperiment,
) (*contract.CreateExperimentResponse, *contract.Error) {
	artifactLocation, cErr := normalizeArtifactLocation(input.ArtifactLocation)
	if cErr != nil {
		return nil, cErr
	}

	experimentID, err := s.Store.CreateExperiment(ctx, input.Name, artifactLocation)
	if err != nil {
		return nil, toContractError("create experiment", err)
	}

	if experimentID == nil {
		return nil, contract.NewError(
			contract.InternalError,
			fmt.Sprintf("experiment %q could not be created", input.Name),
		)
	}

	return &contract.CreateExperimentResponse{
		ExperimentID: strconv.FormatInt(*experimentID, 10),
	}, nil
}

func (s TrackingService) GetExperiment(
	ctx context.Context,
	input *contract.GetExperiment,
) (*contract.GetExperimentResponse, *contract.Error) {
	id, cErr := parseExperimentID(input.ExperimentID)
	if cErr != nil {
		return nil, cErr
	}

	experiment, err := s.Store.GetExperiment(ctx, id)
	if err != nil {
		return nil, toContractError("get experiment", err)
	}

	return &contract.GetExperimentResponse{Experiment: experiment}, nil
}

func (s TrackingService) GetExperimentByName(
	ctx context.Context,
	input *contract.GetExperimentByName,
) (*contract.GetExperimentResponse, *contract.Error) {
	experiment, err := s.Store.GetExperimentByName(ctx, input.ExperimentName)
	if err != nil {
		return nil, toContractError("get experiment by name", err)
	}

	if experiment == nil {
		return nil, contract.NewError(
			contract.ResourceDoesNotExist,
			fmt.Sprintf("Could not find experiment with name '%s'", input.ExperimentName),
		)
	}

	return &contract.GetExperimentResponse{Experiment: *experiment}, nil
}

func (s TrackingService) ListExperiments(
	ctx context.Context,
	input *contract.ListExperiments,
) (*contract.ListExperimentsResponse, *contract.Error) {
	experiments, err := s.Store.ListExperiments(ctx, viewTypeOrDefault(input.ViewType))
	if err != nil {
		return nil, toContractError("list experiments", err)
	}

	return &contract.ListExperimentsResponse{Experiments: experiments}, nil
}

func (s TrackingService) DeleteExperiment(
	ctx context.Context,
	input *contract.DeleteExperiment,
) (*contract.Empty, *contract.Error) {
	id, cErr := parseExperimentID(input.ExperimentID)
	if cErr != nil {
		return nil, cErr
	}

	if err := s.Store.DeleteExperiment(ctx, id); err != nil {
		return nil, toContractError("delete experiment", err)
	}

	return &contract.Empty{}, nil
}

func (s TrackingService) RestoreExperiment(
	ctx context.Context,
	input *contract.RestoreExperiment,
) (*contract.Empty, *contract.Error) {
	id, cErr := parseExperimentID(input.ExperimentID)
	if cErr != nil {
		return nil, cErr
	}

	if err := s.Store.RestoreExperiment(ctx, id); err != nil {
		return nil, toContractError("restore experiment", err)
	}

	return &contract.Empty{}, nil
}

func (s TrackingService) UpdateExperiment(
	ctx context.Context,
	input *contract.UpdateExperiment,
) (*contract.Empty, *contract.Error) {
	id, cErr := parseExperimentID(input.ExperimentID)
	if cErr != nil {
		return nil, cErr
	}

	if err := s.Store.RenameExperiment(ctx, id, input.NewName); err != nil {
		return nil, toContractError("rename experiment", err)
	}

	return &contract.Empty{}, nil
}
