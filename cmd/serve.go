package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/facultyai/mlflow-faculty/pkg/config"
	"github.com/facultyai/mlflow-faculty/pkg/faculty"
	"github.com/facultyai/mlflow-faculty/pkg/server"
	"github.com/facultyai/mlflow-faculty/pkg/service"
	"github.com/facultyai/mlflow-faculty/pkg/store/facultystore"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the MLflow tracking API backed by a Faculty project",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg := config.New(viper.GetViper(), Version)
		if err := cfg.Validate(); err != nil {
			return err
		}

		logger, err := newLogger(cfg.LogLevel)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		session, err := faculty.NewSession(ctx, logger, cfg.Faculty)
		if err != nil {
			return fmt.Errorf("failed to create Faculty session: %w", err)
		}

		trackingStore, err := facultystore.NewStore(cfg.StoreURI, session.Experiment(), logger)
		if err != nil {
			return err
		}

		logger.Infof("Tracking experiments of Faculty project %s", trackingStore.ProjectID())

		return server.Launch(ctx, logger, cfg, service.NewTrackingService(logger, trackingStore))
	},
}

func init() {
	serveCmd.Flags().String("address", "", "listen address (overrides MLFLOW_FACULTY_ADDRESS)")
	serveCmd.Flags().String("store-uri", "", "tracking store URI, e.g. faculty:<project-id>")
	serveCmd.Flags().Duration("shutdown-timeout", 0, "graceful shutdown timeout")
	_ = viper.BindPFlag(config.KeyAddress, serveCmd.Flags().Lookup("address"))
	_ = viper.BindPFlag(config.KeyStoreURI, serveCmd.Flags().Lookup("store-uri"))
	_ = viper.BindPFlag(config.KeyShutdownTimeout, serveCmd.Flags().Lookup("shutdown-timeout"))

	rootCmd.AddCommand(serveCmd)
}
