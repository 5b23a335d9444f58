// Package entities holds the MLflow-side representation of tracking data.
package entities

type LifecycleStage string

const (
	LifecycleStageActive  LifecycleStage = "active"
	LifecycleStageDeleted LifecycleStage = "deleted"
)

// LifecycleStageOf returns the stage for an entity that is soft-deleted when
// deleted is true.
func LifecycleStageOf(deleted bool) LifecycleStage {
	if deleted {
		return LifecycleStageDeleted
	}

	return LifecycleStageActive
}

type ViewType string

const (
	ViewTypeActiveOnly  ViewType = "ACTIVE_ONLY"
	ViewTypeDeletedOnly ViewType = "DELETED_ONLY"
	ViewTypeAll         ViewType = "ALL"
)

// LifecycleStages lists the stages visible through the view.
func (v ViewType) LifecycleStages() []LifecycleStage {
	switch v {
	case ViewTypeActiveOnly:
		return []LifecycleStage{LifecycleStageActive}
	case ViewTypeDeletedOnly:
		return []LifecycleStage{LifecycleStageDeleted}
	case ViewTypeAll:
		return []LifecycleStage{LifecycleStageActive, LifecycleStageDeleted}
	}

	return []LifecycleStage{LifecycleStageActive, LifecycleStageDeleted}
}

type Experiment struct {
	ExperimentID     int64          `json:"experiment_id,string"`
	Name             string         `json:"name"`
	ArtifactLocation string         `json:"artifact_location"`
	LifecycleStage   LifecycleStage `json:"lifecycle_stage"`
}
