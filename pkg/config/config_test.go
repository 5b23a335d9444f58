package config_test

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/facultyai/mlflow-faculty/pkg/config"
	"github.com/facultyai/mlflow-faculty/pkg/faculty"
)

const projectID = "6f8a2b52-4d0f-4c3a-9b6e-2f6d3e9c1a7b"

func newViper() *viper.Viper {
	v := viper.New()
	config.SetDefaults(v)

	return v
}

func TestDefaults(t *testing.T) {
	t.Setenv("FACULTY_PROJECT_ID", "")

	cfg := config.New(newViper(), "1.2.3")

	assert.Equal(t, "localhost:5000", cfg.Address)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, time.Minute, cfg.ShutdownTimeout)
	assert.Equal(t, "1.2.3", cfg.Version)
	assert.Empty(t, cfg.StoreURI)
	assert.Equal(t, faculty.DefaultDomain, cfg.Faculty.Domain)
	assert.Equal(t, faculty.DefaultProtocol, cfg.Faculty.Protocol)
	assert.Equal(t, 30*time.Second, cfg.Faculty.Timeout)

	require.ErrorContains(t, cfg.Validate(), "store URI is required")
}

func TestEnvironment(t *testing.T) {
	t.Setenv("FACULTY_PROJECT_ID", projectID)
	t.Setenv("MLFLOW_FACULTY_ADDRESS", ":8080")
	t.Setenv("MLFLOW_FACULTY_LOG_LEVEL", "debug")
	t.Setenv("MLFLOW_FACULTY_SHUTDOWN_TIMEOUT", "5s")
	t.Setenv("FACULTY_DOMAIN", "example.test")
	t.Setenv("MLFLOW_FACULTY_CLIENT_ID", "client-id")
	t.Setenv("FACULTY_CLIENT_SECRET", "client-secret")

	cfg := config.New(newViper(), "dev")

	assert.Equal(t, ":8080", cfg.Address)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 5*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, "faculty:"+projectID, cfg.StoreURI)
	assert.Equal(t, "example.test", cfg.Faculty.Domain)
	assert.Equal(t, "client-id", cfg.Faculty.ClientID)
	assert.Equal(t, "client-secret", cfg.Faculty.ClientSecret)
	require.NoError(t, cfg.Validate())
}

func TestExplicitStoreURIWins(t *testing.T) {
	t.Setenv("FACULTY_PROJECT_ID", projectID)

	v := newViper()
	v.Set(config.KeyStoreURI, "faculty:/other")

	assert.Equal(t, "faculty:/other", config.New(v, "dev").StoreURI)
}

func TestValidate(t *testing.T) {
	cfg := &config.Config{StoreURI: "faculty:" + projectID, LogLevel: "loud"}
	require.ErrorContains(t, cfg.Validate(), "invalid log level")

	cfg = &config.Config{StoreURI: "faculty:" + projectID, LogLevel: "info", ShutdownTimeout: -time.Second}
	require.ErrorContains(t, cfg.Validate(), "invalid shutdown timeout")
}
