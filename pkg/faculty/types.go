// Package faculty is a typed client for the Faculty platform services used by
// the MLflow plugin: the experiment service and the account service.
package faculty

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

type RunStatus string

const (
	RunStatusRunning   RunStatus = "running"
	RunStatusFinished  RunStatus = "finished"
	RunStatusFailed    RunStatus = "failed"
	RunStatusScheduled RunStatus = "scheduled"
	RunStatusKilled    RunStatus = "killed"
)

var runStatuses = []RunStatus{
	RunStatusRunning,
	RunStatusFinished,
	RunStatusFailed,
	RunStatusScheduled,
	RunStatusKilled,
}

// ParseRunStatus parses a run status case-insensitively.
func ParseRunStatus(s string) (RunStatus, error) {
	lowered := RunStatus(strings.ToLower(s))
	for _, status := range runStatuses {
		if status == lowered {
			return status, nil
		}
	}

	return "", fmt.Errorf("%q is not a valid run status", s)
}

type Experiment struct {
	ID               int64      `json:"experimentId"`
	Name             string     `json:"name"`
	Description      string     `json:"description"`
	ArtifactLocation string     `json:"artifactLocation"`
	CreatedAt        time.Time  `json:"createdAt"`
	LastUpdatedAt    time.Time  `json:"lastUpdatedAt"`
	DeletedAt        *time.Time `json:"deletedAt"`
}

type ExperimentRun struct {
	ID               uuid.UUID  `json:"runId"`
	ExperimentID     int64      `json:"experimentId"`
	ArtifactLocation string     `json:"artifactLocation"`
	Status           RunStatus  `json:"status"`
	StartedAt        time.Time  `json:"startedAt"`
	EndedAt          *time.Time `json:"endedAt"`
	DeletedAt        *time.Time `json:"deletedAt"`
	Tags             []Tag      `json:"tags"`
	Params           []Param    `json:"params"`
	Metrics          []Metric   `json:"metrics"`
}

type Metric struct {
	Key       string    `json:"key"`
	Value     float64   `json:"value"`
	Timestamp time.Time `json:"timestamp"`
}

type Param struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

type Tag struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}
