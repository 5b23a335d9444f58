// Package server exposes the tracking service over the MLflow REST API.
package server

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/sirupsen/logrus"

	"github.com/facultyai/mlflow-faculty/pkg/config"
	"github.com/facultyai/mlflow-faculty/pkg/contract"
)

func Launch(ctx context.Context, logger *logrus.Logger, cfg *config.Config, service TrackingService) error {
	app, err := NewApp(logger, cfg, service)
	if err != nil {
		return err
	}

	go func() {
		<-ctx.Done()

		if err := app.ShutdownWithTimeout(cfg.ShutdownTimeout); err != nil {
			logger.Errorf("Failed to gracefully shutdown MLflow Faculty server: %v", err)
		}
	}()

	logger.Infof("Serving MLflow tracking API for %s on %s", cfg.StoreURI, cfg.Address)

	if err := app.Listen(cfg.Address); err != nil {
		return fmt.Errorf("failed to start MLflow Faculty server: %w", err)
	}

	return nil
}

func NewApp(logger *logrus.Logger, cfg *config.Config, service TrackingService) (*fiber.App, error) {
	app := fiber.New(fiber.Config{
		BodyLimit:             16 * 1024 * 1024,
		ReadBufferSize:        16384,
		ReadTimeout:           5 * time.Second,
		WriteTimeout:          600 * time.Second,
		IdleTimeout:           120 * time.Second,
		ServerHeader:          "mlflow-faculty/" + cfg.Version,
		DisableStartupMessage: true,
	})

	app.Use(compress.New())
	app.Use(recover.New(recover.Config{EnableStackTrace: true}))
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format: "${status} - ${latency} ${method} ${path}\n",
		Output: logger.Writer(),
	}))

	apiApp, err := newAPIApp(logger, service)
	if err != nil {
		return nil, err
	}

	app.Mount("/api/2.0", apiApp)
	app.Mount("/ajax-api/2.0", apiApp)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.SendString("OK")
	})
	app.Get("/version", func(c *fiber.Ctx) error {
		return c.SendString(cfg.Version)
	})

	return app, nil
}

func newAPIApp(logger *logrus.Logger, service TrackingService) (*fiber.App, error) {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			var e *contract.Error
			if !errors.As(err, &e) {
				code := contract.InternalError

				var f *fiber.Error
				if errors.As(err, &f) {
					switch f.Code {
					case fiber.StatusBadRequest:
						code = contract.BadRequest
					case fiber.StatusServiceUnavailable:
						code = contract.TemporarilyUnavailable
					case fiber.StatusNotFound, fiber.StatusMethodNotAllowed:
						code = contract.EndpointNotFound
					}
				}

				e = contract.NewError(code, err.Error())
			}

			var fn func(format string, args ...any)

			switch e.StatusCode() {
			case fiber.StatusBadRequest, fiber.StatusNotImplemented:
				fn = logger.Infof
			case fiber.StatusServiceUnavailable:
				fn = logger.Warnf
			case fiber.StatusNotFound:
				fn = logger.Debugf
			default:
				fn = logger.Errorf
			}

			fn("Error encountered in %s %s: %s", c.Method(), c.Path(), err)

			return c.Status(e.StatusCode()).JSON(e)
		},
	})

	parser, err := NewHTTPRequestParser()
	if err != nil {
		return nil, err
	}

	registerTrackingServiceRoutes(service, parser, app)

	return app, nil
}
