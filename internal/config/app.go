package config

import (
	"context"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/sandevgo/recallbox/pkg/log"
)

type AppConfig struct {
	RuntimePath string `env:"RECALL_RUNTIME_PATH" envDefault:".recallbox"`

	// Backend
	APIURL         string        `env:"RECALL_API_URL" envDefault:"http://127.0.0.1:8000"`
	RequestTimeout time.Duration `env:"RECALL_REQUEST_TIMEOUT" envDefault:"30s"`
	HTTPRetries    int           `env:"RECALL_HTTP_RETRIES" envDefault:"2"`

	// Browsing
	PageSize int `env:"RECALL_PAGE_SIZE" envDefault:"50"`

	// Drive watcher
	WatchDrive    bool          `env:"RECALL_WATCH_DRIVE" envDefault:"true"`
	WatchDebounce time.Duration `env:"RECALL_WATCH_DEBOUNCE" envDefault:"2s"`
}

func NewAppConfig(ctx context.Context) *AppConfig {
	c := &AppConfig{}
	if err := env.Parse(c); err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse App config")
	}
	c.RuntimePath = ExpandPath(c.RuntimePath)
	c.APIURL = strings.TrimRight(c.APIURL, "/")
	if c.PageSize <= 0 {
		c.PageSize = 50
	}
	return c
}

func (c AppConfig) GetRuntimePath() string {
	return c.RuntimePath
}

func (c AppConfig) GetEnvPath() string {
	return filepath.Join(c.RuntimePath, ".env")
}

func (c AppConfig) GetLogPath() string {
	return filepath.Join(c.RuntimePath, "recall.log")
}
