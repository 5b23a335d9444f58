package faculty

import (
	"context"
	"net/http"
	"strconv"

	"github.com/google/uuid"
)

type ExperimentClient interface {
	Create(
		ctx context.Context,
		projectID uuid.UUID,
		name string,
		description string,
		artifactLocation string,
	) (Experiment, error)
	Get(ctx context.Context, projectID uuid.UUID, experimentID int64) (Experiment, error)
}

type HTTPExperimentClient struct {
	service serviceClient
}

var _ ExperimentClient = (*HTTPExperimentClient)(nil)

type createExperimentRequest struct {
	Name             string `json:"name"`
	Description      string `json:"description"`
	ArtifactLocation string `json:"artifactLocation,omitempty"`
}

func (c *HTTPExperimentClient) Create(
	ctx context.Context,
	projectID uuid.UUID,
	name string,
	description string,
	artifactLocation string,
) (Experiment, error) {
	target, err := c.service.url("project", projectID.String(), "experiment")
	if err != nil {
		return Experiment{}, err
	}

	var experiment Experiment
	if err := c.service.doJSON(ctx, http.MethodPost, target, createExperimentRequest{
		Name:             name,
		Description:      description,
		ArtifactLocation: artifactLocation,
	}, &experiment); err != nil {
		return Experiment{}, err
	}

	return experiment, nil
}

func (c *HTTPExperimentClient) Get(ctx context.Context, projectID uuid.UUID, experimentID int64) (Experiment, error) {
	target, err := c.service.url("project", projectID.String(), "experiment", strconv.FormatInt(experimentID, 10))
	if err != nil {
		return Experiment{}, err
	}

	var experiment Experiment
	if err := c.service.doJSON(ctx, http.MethodGet, target, nil, &experiment); err != nil {
		return Experiment{}, err
	}

	return experiment, nil
}
