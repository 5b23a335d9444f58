// Package runcontext derives MLflow run tags from the Faculty environment a
// run is started in.
package runcontext

import (
	"context"
	"os"
	"sync"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/facultyai/mlflow-faculty/pkg/faculty"
)

const (
	ProjectIDVariable = "FACULTY_PROJECT_ID"
	UserIDTag         = "mlflow.faculty.user.userId"
)

type envTag struct {
	variable string
	tag      string
}

//nolint:gochecknoglobals
var environmentTags = []envTag{
	{ProjectIDVariable, "mlflow.faculty.project.projectId"},
	{"FACULTY_SERVER_ID", "mlflow.faculty.server.serverId"},
	{"FACULTY_SERVER_NAME", "mlflow.faculty.server.name"},
	{"NUM_CPUS", "mlflow.faculty.server.cpus"},
	{"AVAILABLE_MEMORY_MB", "mlflow.faculty.server.memoryMb"},
	{"NUM_GPUS", "mlflow.faculty.server.gpus"},
	{"FACULTY_JOB_ID", "mlflow.faculty.job.jobId"},
	{"FACULTY_JOB_NAME", "mlflow.faculty.job.name"},
	{"FACULTY_RUN_ID", "mlflow.faculty.job.runId"},
	{"FACULTY_RUN_NUMBER", "mlflow.faculty.job.runNumber"},
	{"FACULTY_SUBRUN_ID", "mlflow.faculty.job.subrunId"},
	{"FACULTY_SUBRUN_NUMBER", "mlflow.faculty.job.subrunNumber"},
}

// Provider is consulted when a run starts: if InContext reports true, the
// returned tags are attached to the new run.
type Provider interface {
	InContext() bool
	Tags(ctx context.Context) map[string]string
}

type LookupEnvFunc func(key string) (string, bool)

type FacultyProvider struct {
	account   faculty.AccountClient
	logger    *logrus.Logger
	lookupEnv LookupEnvFunc

	mutex  sync.Mutex
	userID *uuid.UUID
}

var _ Provider = (*FacultyProvider)(nil)

// NewFacultyProvider reads the process environment when lookupEnv is nil and
// logs to the standard logger when logger is nil.
func NewFacultyProvider(
	account faculty.AccountClient,
	logger *logrus.Logger,
	lookupEnv LookupEnvFunc,
) *FacultyProvider {
	if lookupEnv == nil {
		lookupEnv = os.LookupEnv
	}

	if logger == nil {
		logger = logrus.StandardLogger()
	}

	return &FacultyProvider{
		account:   account,
		logger:    logger,
		lookupEnv: lookupEnv,
	}
}

func (p *FacultyProvider) InContext() bool {
	value, ok := p.lookupEnv(ProjectIDVariable)

	return ok && value != ""
}

// Tags never fails: unset variables and an unavailable user id are left out.
// Variables set to an empty value are reported as empty tags.
func (p *FacultyProvider) Tags(ctx context.Context) map[string]string {
	tags := make(map[string]string, len(environmentTags)+1)

	for _, mapping := range environmentTags {
		if value, ok := p.lookupEnv(mapping.variable); ok {
			tags[mapping.tag] = value
		}
	}

	userID, err := p.authenticatedUserID(ctx)
	if err != nil {
		p.logger.Debugf("Omitting %s tag: %v", UserIDTag, err)
	} else {
		tags[UserIDTag] = userID.String()
	}

	return tags
}

func (p *FacultyProvider) authenticatedUserID(ctx context.Context) (uuid.UUID, error) {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	if p.userID != nil {
		return *p.userID, nil
	}

	userID, err := p.account.AuthenticatedUserID(ctx)
	if err != nil {
		return uuid.Nil, err
	}

	p.userID = &userID

	return userID, nil
}
