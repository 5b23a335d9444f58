package entities_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/facultyai/mlflow-faculty/pkg/entities"
)

func TestLifecycleStageOf(t *testing.T) {
	assert.Equal(t, entities.LifecycleStageActive, entities.LifecycleStageOf(false))
	assert.Equal(t, entities.LifecycleStageDeleted, entities.LifecycleStageOf(true))
}

func TestViewTypeLifecycleStages(t *testing.T) {
	assert.Equal(t, []entities.LifecycleStage{entities.LifecycleStageActive}, entities.ViewTypeActiveOnly.LifecycleStages())
	assert.Equal(t, []entities.LifecycleStage{entities.LifecycleStageDeleted}, entities.ViewTypeDeletedOnly.LifecycleStages())
	assert.Len(t, entities.ViewTypeAll.LifecycleStages(), 2)
	assert.Len(t, entities.ViewType("").LifecycleStages(), 2)
}

func TestExperimentIDIsRenderedAsString(t *testing.T) {
	body, err := json.Marshal(entities.Experiment{
		ExperimentID:     12,
		Name:             "experiment name",
		ArtifactLocation: "scheme://artifact-location",
		LifecycleStage:   entities.LifecycleStageActive,
	})
	require.NoError(t, err)

	assert.JSONEq(t, `{
		"experiment_id": "12",
		"name": "experiment name",
		"artifact_location": "scheme://artifact-location",
		"lifecycle_stage": "active"
	}`, string(body))
}
