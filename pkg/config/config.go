// Package config loads the gateway configuration from flags, environment and
// an optional config file.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"github.com/facultyai/mlflow-faculty/pkg/faculty"
)

const EnvPrefix = "MLFLOW_FACULTY"

const (
	KeyAddress         = "address"
	KeyLogLevel        = "log_level"
	KeyShutdownTimeout = "shutdown_timeout"
	KeyStoreURI        = "store_uri"
	KeyProjectID       = "project_id"
	KeyDomain          = "faculty.domain"
	KeyProtocol        = "faculty.protocol"
	KeyClientID        = "faculty.client_id"
	KeyClientSecret    = "faculty.client_secret"
	KeyTimeout         = "faculty.timeout"
)

type Config struct {
	Address         string
	LogLevel        string
	ShutdownTimeout time.Duration
	StoreURI        string
	Version         string
	Faculty         faculty.Config
}

// SetDefaults registers defaults and environment bindings on v. Platform
// variables set inside Faculty servers and jobs are read without the prefix.
func SetDefaults(v *viper.Viper) {
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	_ = v.BindEnv(KeyProjectID, "FACULTY_PROJECT_ID")
	_ = v.BindEnv(KeyDomain, EnvPrefix+"_DOMAIN", "FACULTY_DOMAIN")
	_ = v.BindEnv(KeyProtocol, EnvPrefix+"_PROTOCOL", "FACULTY_PROTOCOL")
	_ = v.BindEnv(KeyClientID, EnvPrefix+"_CLIENT_ID", "FACULTY_CLIENT_ID")
	_ = v.BindEnv(KeyClientSecret, EnvPrefix+"_CLIENT_SECRET", "FACULTY_CLIENT_SECRET")
	_ = v.BindEnv(KeyTimeout, EnvPrefix+"_TIMEOUT")

	v.SetDefault(KeyAddress, "localhost:5000")
	v.SetDefault(KeyLogLevel, logrus.InfoLevel.String())
	v.SetDefault(KeyShutdownTimeout, time.Minute)
	v.SetDefault(KeyDomain, faculty.DefaultDomain)
	v.SetDefault(KeyProtocol, faculty.DefaultProtocol)
	v.SetDefault(KeyTimeout, 30*time.Second)
}

// New reads the configuration from v. Without an explicit store URI, the store
// is scoped to the project the process runs in.
func New(v *viper.Viper, version string) *Config {
	storeURI := v.GetString(KeyStoreURI)
	if storeURI == "" && v.GetString(KeyProjectID) != "" {
		storeURI = "faculty:" + v.GetString(KeyProjectID)
	}

	return &Config{
		Address:         v.GetString(KeyAddress),
		LogLevel:        v.GetString(KeyLogLevel),
		ShutdownTimeout: v.GetDuration(KeyShutdownTimeout),
		StoreURI:        storeURI,
		Version:         version,
		Faculty: faculty.Config{
			Domain:       v.GetString(KeyDomain),
			Protocol:     v.GetString(KeyProtocol),
			ClientID:     v.GetString(KeyClientID),
			ClientSecret: v.GetString(KeyClientSecret),
			Timeout:      v.GetDuration(KeyTimeout),
		},
	}
}

func (c *Config) Validate() error {
	if c.StoreURI == "" {
		return errors.New("store URI is required (set --store-uri or FACULTY_PROJECT_ID)")
	}

	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}

	if c.ShutdownTimeout < 0 {
		return fmt.Errorf("invalid shutdown timeout: %s", c.ShutdownTimeout)
	}

	return nil
}
