package entities

type RunStatus string

const (
	RunStatusRunning   RunStatus = "RUNNING"
	RunStatusScheduled RunStatus = "SCHEDULED"
	RunStatusFinished  RunStatus = "FINISHED"
	RunStatusFailed    RunStatus = "FAILED"
	RunStatusKilled    RunStatus = "KILLED"
)

// RunInfo carries run metadata. StartTime and EndTime are milliseconds since
// the Unix epoch; EndTime is nil while the run has not ended.
type RunInfo struct {
	RunUUID        string         `json:"run_uuid"`
	ExperimentID   int64          `json:"experiment_id,string"`
	Name           string         `json:"run_name"`
	SourceType     string         `json:"source_type"`
	SourceName     string         `json:"source_name"`
	EntryPointName string         `json:"entry_point_name"`
	UserID         string         `json:"user_id"`
	Status         RunStatus      `json:"status"`
	StartTime      int64          `json:"start_time"`
	EndTime        *int64         `json:"end_time,omitempty"`
	SourceVersion  string         `json:"source_version"`
	LifecycleStage LifecycleStage `json:"lifecycle_stage"`
}

type RunData struct {
	Metrics []Metric `json:"metrics"`
	Params  []Param  `json:"params"`
	Tags    []RunTag `json:"tags"`
}

type Run struct {
	Info RunInfo `json:"info"`
	Data RunData `json:"data"`
}

// Metric timestamps are milliseconds since the Unix epoch.
type Metric struct {
	Key       string  `json:"key"`
	Value     float64 `json:"value"`
	Timestamp int64   `json:"timestamp"`
	Step      int64   `json:"step"`
}

type Param struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

type RunTag struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}
