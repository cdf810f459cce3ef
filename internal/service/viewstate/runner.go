package viewstate

import (
	"context"
	"fmt"
	"time"

	"github.com/sandevgo/recallbox/internal/core"
	"github.com/sandevgo/recallbox/pkg/log"
)

type backend interface {
	Health(ctx context.Context) (core.Health, error)
	Mount(ctx context.Context, path string) (core.MountResult, error)
	RecentMemories(ctx context.Context, limit, offset int) ([]core.Memory, error)
	SearchMemories(ctx context.Context, query string, limit int, filter core.DateFilter) ([]core.Memory, error)
}

// Runner executes effects against the backend. Every effect yields exactly
// one event, failures included, so pending flags are always released.
type Runner struct {
	api     backend
	timeout time.Duration
}

func NewRunner(api backend, timeout time.Duration) *Runner {
	return &Runner{
		api:     api,
		timeout: timeout,
	}
}

func (r *Runner) Run(ctx context.Context, eff Effect) Event {
	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}
	logger := log.FromCtx(ctx)

	switch eff := eff.(type) {
	case ProbeHealth:
		h, err := r.api.Health(ctx)
		if err != nil {
			logger.Warn().Err(err).Msg("health probe failed")
			return HealthFailed{Err: err}
		}
		logger.Debug().Str("mounted_path", h.MountedPath).Msg("health probe")
		return HealthProbed{MountedPath: h.MountedPath}

	case MountDrive:
		res, err := r.api.Mount(ctx, eff.Path)
		if err != nil {
			err = fmt.Errorf("%w: %w", core.ErrMountFailed, err)
			logger.Error().Err(err).Str("path", eff.Path).Msg("mount failed")
			return MountFailed{Ticket: eff.Ticket, Path: eff.Path, Err: err}
		}
		logger.Info().Str("path", eff.Path).Int("count", res.Count).Msg("drive mounted")
		return MountSucceeded{Ticket: eff.Ticket, Path: eff.Path, Count: res.Count}

	case LoadRecent:
		items, err := r.api.RecentMemories(ctx, eff.Limit, 0)
		if err != nil {
			err = fmt.Errorf("%w: %w", core.ErrLoadFailed, err)
			logger.Error().Err(err).Msg("recent load failed")
			return RecentFailed{Ticket: eff.Ticket, Err: err}
		}
		logger.Debug().Int("count", len(items)).Msg("recent loaded")
		return RecentLoaded{Ticket: eff.Ticket, Items: items}

	case RunSearch:
		items, err := r.api.SearchMemories(ctx, eff.Query, eff.Limit, eff.Filter)
		if err != nil {
			err = fmt.Errorf("%w: %w", core.ErrSearchFailed, err)
			logger.Error().Err(err).Str("query", eff.Query).Msg("search failed")
			return SearchFailed{Ticket: eff.Ticket, Err: err}
		}
		logger.Debug().Str("query", eff.Query).Int("count", len(items)).Msg("search done")
		return SearchLoaded{Ticket: eff.Ticket, Items: items}
	}

	panic(fmt.Sprintf("viewstate: unknown effect %T", eff))
}
