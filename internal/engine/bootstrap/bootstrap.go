package bootstrap

import (
	"context"
	"time"

	"github.com/go-arcade/platform-settings/pkg/http"
	"github.com/go-arcade/platform-settings/pkg/log"
	"github.com/go-arcade/platform-settings/pkg/metrics"
	"github.com/gofiber/fiber/v2"
)

type App struct {
	HttpApp *fiber.App
	Http    *http.Http
	Logger  *log.Logger
	Metrics *metrics.Server
}

// InitAppFunc init app function type
type InitAppFunc func(configPath string) (*App, func(), error)

func NewApp(httpApp *fiber.App, httpConf *http.Http, logger *log.Logger, metricsServer *metrics.Server) *App {
	return &App{
		HttpApp: httpApp,
		Http:    httpConf,
		Logger:  logger,
		Metrics: metricsServer,
	}
}

// Bootstrap init app, return App instance and cleanup function
func Bootstrap(configFile string, initApp InitAppFunc) (*App, func(), error) {
	// Wire build App (所有依赖都由 wire 自动注入)
	app, cleanup, err := initApp(configFile)
	if err != nil {
		return nil, nil, err
	}
	return app, cleanup, nil
}

// Run start app and wait for exit signal, then gracefully shutdown
func Run(app *App, cleanup func()) {
	logger := app.Logger.Log

	// standalone metrics listener, only when enabled
	if app.Metrics != nil {
		if err := app.Metrics.Start(); err != nil {
			logger.Errorw("metrics server failed to start", "error", err)
		}
	}

	// start HTTP server and block until a termination signal
	wait := http.NewHttp(app.Http, app.HttpApp)
	wait()

	if app.Metrics != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := app.Metrics.Stop(ctx); err != nil {
			logger.Errorw("metrics server shutdown error", "error", err)
		}
	}

	// close database and cache connections
	if cleanup != nil {
		cleanup()
	}

	logger.Info("Server shutdown complete")
	_ = log.Sync()
}
