package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/facultyai/mlflow-faculty/pkg/config"
	"github.com/facultyai/mlflow-faculty/pkg/faculty"
	"github.com/facultyai/mlflow-faculty/pkg/runcontext"
)

type runContext struct {
	InContext bool              `yaml:"in_context"`
	Tags      map[string]string `yaml:"tags,omitempty"`
}

var contextCmd = &cobra.Command{
	Use:   "context",
	Short: "Print the run context tags for the current Faculty environment",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg := config.New(viper.GetViper(), Version)

		logger, err := newLogger(cfg.LogLevel)
		if err != nil {
			return err
		}

		session, err := faculty.NewSession(cmd.Context(), logger, cfg.Faculty)
		if err != nil {
			return fmt.Errorf("failed to create Faculty session: %w", err)
		}

		provider := runcontext.NewFacultyProvider(session.Account(), logger, nil)

		return writeRunContext(cmd.Context(), cmd.OutOrStdout(), provider)
	},
}

func init() {
	rootCmd.AddCommand(contextCmd)
}

func writeRunContext(ctx context.Context, w io.Writer, provider runcontext.Provider) error {
	output := runContext{InContext: provider.InContext()}
	if output.InContext {
		output.Tags = provider.Tags(ctx)
	}

	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)

	if err := encoder.Encode(output); err != nil {
		return fmt.Errorf("failed to encode run context: %w", err)
	}

	return encoder.Close()
}
