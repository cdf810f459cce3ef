package memoryapi

import (
	"context"

	"github.com/sandevgo/recallbox/internal/core"
)

func (c *Client) VisionConfig(ctx context.Context) (core.VisionConfig, error) {
	var cfg core.VisionConfig
	if err := c.get(ctx, "/config/vision", &cfg); err != nil {
		return core.VisionConfig{}, err
	}
	return cfg, nil
}

func (c *Client) SaveVisionConfig(ctx context.Context, cfg core.VisionConfig) error {
	return c.post(ctx, "/config/vision", cfg, nil)
}

// TestVisionConfig asks the backend to probe the endpoint. A failed probe is
// reported in the returned check, not as an error.
func (c *Client) TestVisionConfig(ctx context.Context, cfg core.VisionConfig) (core.VisionCheck, error) {
	var check core.VisionCheck
	if err := c.post(ctx, "/config/vision/test", cfg, &check); err != nil {
		return core.VisionCheck{}, err
	}
	return check, nil
}
