package cmd

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/facultyai/mlflow-faculty/pkg/config"
)

// Version is set at build time with -ldflags.
var Version = "dev"

var configFile string

var rootCmd = &cobra.Command{
	Use:   "mlflow-faculty",
	Short: "MLflow tracking on the Faculty platform",
	Long: `Serves the MLflow tracking REST API backed by Faculty experiments and
reports the run context tags MLflow attaches to runs started inside Faculty.`,
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (yaml, toml or json)")
	rootCmd.PersistentFlags().String("log-level", "", "log level (overrides MLFLOW_FACULTY_LOG_LEVEL)")
	rootCmd.PersistentFlags().String("faculty-domain", "", "Faculty platform domain (overrides FACULTY_DOMAIN)")
	rootCmd.PersistentFlags().String("faculty-protocol", "", "Faculty platform protocol (overrides FACULTY_PROTOCOL)")
	_ = viper.BindPFlag(config.KeyLogLevel, rootCmd.PersistentFlags().Lookup("log-level"))
	_ = viper.BindPFlag(config.KeyDomain, rootCmd.PersistentFlags().Lookup("faculty-domain"))
	_ = viper.BindPFlag(config.KeyProtocol, rootCmd.PersistentFlags().Lookup("faculty-protocol"))
}

func initConfig() {
	config.SetDefaults(viper.GetViper())

	if configFile != "" {
		viper.SetConfigFile(configFile)
		if err := viper.ReadInConfig(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: reading config file: %v\n", err)
			os.Exit(1)
		}
	}
}

func newLogger(level string) (*logrus.Logger, error) {
	logger := logrus.New()

	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level: %w", err)
	}
	logger.SetLevel(parsed)

	return logger, nil
}
