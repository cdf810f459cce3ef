package main

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/sandevgo/recallbox/internal/config"
	"github.com/sandevgo/recallbox/internal/providers/memoryapi"
	"github.com/sandevgo/recallbox/internal/service/viewstate"
	"github.com/sandevgo/recallbox/internal/service/watch"
	"github.com/sandevgo/recallbox/internal/transport/tui"
	"github.com/sandevgo/recallbox/pkg/log"
	"github.com/sandevgo/recallbox/pkg/srv"
)

type app struct {
	cfg    *config.AppConfig
	client *memoryapi.Client
}

// newApp loads the runtime .env, parses configuration and builds the
// backend client.
func newApp(ctx context.Context) *app {
	logger := log.FromCtx(ctx)

	if err := initEnv(ctx, config.GetRuntimePath()); err != nil {
		logger.Fatal().Err(err).Msg("failed to init env")
	}

	cfg := config.NewAppConfig(ctx)
	if apiURL != "" {
		cfg.APIURL = strings.TrimRight(apiURL, "/")
	}

	client := memoryapi.NewClient(memoryapi.Config{
		BaseURL: cfg.APIURL,
		Timeout: cfg.RequestTimeout,
		Retries: cfg.HTTPRetries,
	})
	logger.Debug().Str("api_url", cfg.APIURL).Msg("backend configured")

	return &app{cfg: cfg, client: client}
}

func (a *app) runner() *viewstate.Runner {
	return viewstate.NewRunner(a.client, a.cfg.RequestTimeout)
}

func (a *app) controller() *viewstate.Controller {
	return viewstate.NewController(a.runner(), a.cfg.PageSize)
}

// NewServices wires the browsing window. stop ends the whole group and is
// called when the window quits.
func NewServices(ctx context.Context, stop context.CancelFunc, a *app) []srv.Service {
	logger := log.FromCtx(ctx)
	services := make([]srv.Service, 0, 3)

	services = append(services, srv.NewCleanup(a.client.Close))

	var opts []tui.Option
	opts = append(opts, tui.WithCallTimeout(a.cfg.RequestTimeout))
	if a.cfg.WatchDrive {
		watcher, err := watch.New(a.cfg.WatchDebounce)
		if err != nil {
			logger.Warn().Err(err).Msg("drive watcher disabled")
		} else {
			services = append(services, watcher)
			opts = append(opts, tui.WithWatcher(watcher))
		}
	}

	model := tui.New(ctx, a.runner(), a.client, a.cfg.PageSize, opts...)
	services = append(services, tui.NewProgram(ctx, model, stop))

	return services
}

func initEnv(ctx context.Context, runtimePath string) error {
	logger := log.FromCtx(ctx)
	envFile := filepath.Join(runtimePath, ".env")

	if _, err := os.Stat(envFile); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	if err := godotenv.Load(envFile); err != nil {
		logger.Warn().Err(err).Str("path", envFile).Msg("failed to load .env file")
		return err
	}

	logger.Debug().Str("path", envFile).Msg("loaded .env file")
	return nil
}
