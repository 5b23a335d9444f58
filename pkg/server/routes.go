package server

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/facultyai/mlflow-faculty/pkg/contract"
)

type TrackingService interface {
	CreateExperiment(context.Context, *contract.CreateExperiment) (*contract.CreateExperimentResponse, *contract.Error)
	GetExperiment(context.Context, *contract.GetExperiment) (*contract.GetExperimentResponse, *contract.Error)
	GetExperimentByName(context.Context, *contract.GetExperimentByName) (*contract.GetExperimentResponse, *contract.Error)
	ListExperiments(context.Context, *contract.ListExperiments) (*contract.ListExperimentsResponse, *contract.Error)
	DeleteExperiment(context.Context, *contract.DeleteExperiment) (*contract.Empty, *contract.Error)
	RestoreExperiment(context.Context, *contract.RestoreExperiment) (*contract.Empty, *contract.Error)
	UpdateExperiment(context.Context, *contract.UpdateExperiment) (*contract.Empty, *contract.Error)

	CreateRun(context.Context, *contract.CreateRun) (*contract.RunResponse, *contract.Error)
	GetRun(context.Context, *contract.GetRun) (*contract.RunResponse, *contract.Error)
	UpdateRun(context.Context, *contract.UpdateRun) (*contract.UpdateRunResponse, *contract.Error)
	DeleteRun(context.Context, *contract.DeleteRun) (*contract.Empty, *contract.Error)
	RestoreRun(context.Context, *contract.RestoreRun) (*contract.Empty, *contract.Error)
	LogMetric(context.Context, *contract.LogMetric) (*contract.Empty, *contract.Error)
	LogParam(context.Context, *contract.LogParam) (*contract.Empty, *contract.Error)
	SetTag(context.Context, *contract.SetTag) (*contract.Empty, *contract.Error)
	GetMetricHistory(context.Context, *contract.GetMetricHistory) (*contract.GetMetricHistoryResponse, *contract.Error)
	SearchRuns(context.Context, *contract.SearchRuns) (*contract.SearchRunsResponse, *contract.Error)
}

func handleQuery[Input, Output any](
	parser *HTTPRequestParser,
	call func(context.Context, *Input) (*Output, *contract.Error),
) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		input := new(Input)
		if err := parser.ParseQuery(ctx, input); err != nil {
			return err
		}

		output, err := call(ctx.UserContext(), input)
		if err != nil {
			return err
		}

		return ctx.JSON(output)
	}
}

func handleBody[Input, Output any](
	parser *HTTPRequestParser,
	call func(context.Context, *Input) (*Output, *contract.Error),
) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		input := new(Input)
		if err := parser.ParseBody(ctx, input); err != nil {
			return err
		}

		output, err := call(ctx.UserContext(), input)
		if err != nil {
			return err
		}

		return ctx.JSON(output)
	}
}

func registerTrackingServiceRoutes(service TrackingService, parser *HTTPRequestParser, app *fiber.App) {
	experiments := app.Group("/mlflow/experiments")
	experiments.Post("/create", handleBody(parser, service.CreateExperiment))
	experiments.Get("/get", handleQuery(parser, service.GetExperiment))
	experiments.Get("/get-by-name", handleQuery(parser, service.GetExperimentByName))
	experiments.Get("/list", handleQuery(parser, service.ListExperiments))
	experiments.Post("/delete", handleBody(parser, service.DeleteExperiment))
	experiments.Post("/restore", handleBody(parser, service.RestoreExperiment))
	experiments.Post("/update", handleBody(parser, service.UpdateExperiment))

	runs := app.Group("/mlflow/runs")
	runs.Post("/create", handleBody(parser, service.CreateRun))
	runs.Get("/get", handleQuery(parser, service.GetRun))
	runs.Post("/update", handleBody(parser, service.UpdateRun))
	runs.Post("/delete", handleBody(parser, service.DeleteRun))
	runs.Post("/restore", handleBody(parser, service.RestoreRun))
	runs.Post("/log-metric", handleBody(parser, service.LogMetric))
	runs.Post("/log-parameter", handleBody(parser, service.LogParam))
	runs.Post("/set-tag", handleBody(parser, service.SetTag))
	runs.Post("/search", handleBody(parser, service.SearchRuns))

	app.Get("/mlflow/metrics/get-history", handleQuery(parser, service.GetMetricHistory))
}
