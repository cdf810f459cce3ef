package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/sandevgo/recallbox/internal/core"
	"github.com/sandevgo/recallbox/internal/transport/cli"
	"github.com/spf13/cobra"
)

var visionFlags core.VisionConfig

var visionCmd = &cobra.Command{
	Use:          "vision",
	Short:        "Show the vision model the backend uses to describe photos",
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, flushLog := setupLogger(cmd.Context())
		defer flushLog()

		cfg, err := newApp(ctx).client.VisionConfig(ctx)
		if err != nil {
			return err
		}
		cli.NewPrinter(cmd.OutOrStdout()).Vision(cfg)
		return nil
	},
}

var visionSetCmd = &cobra.Command{
	Use:          "set",
	Short:        "Test and save a vision endpoint",
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, flushLog := setupLogger(cmd.Context())
		defer flushLog()

		a := newApp(ctx)
		cfg, err := mergeVision(ctx, a)
		if err != nil {
			return err
		}

		check, err := a.client.TestVisionConfig(ctx, cfg)
		if err != nil {
			return err
		}
		if !check.OK() {
			return fmt.Errorf("vision endpoint rejected: %s", check.Details)
		}
		if err := a.client.SaveVisionConfig(ctx, cfg); err != nil {
			return err
		}

		_, _ = fmt.Fprintln(cmd.OutOrStdout(), "vision settings saved")
		cli.NewPrinter(cmd.OutOrStdout()).Vision(cfg)
		return nil
	},
}

var visionTestCmd = &cobra.Command{
	Use:          "test",
	Short:        "Check a vision endpoint without saving it",
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, flushLog := setupLogger(cmd.Context())
		defer flushLog()

		a := newApp(ctx)
		cfg, err := mergeVision(ctx, a)
		if err != nil {
			return err
		}

		check, err := a.client.TestVisionConfig(ctx, cfg)
		if err != nil {
			return err
		}
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", check.Status, check.Details)
		if !check.OK() {
			return errors.New("vision endpoint check failed")
		}
		return nil
	},
}

// mergeVision overlays the flags on the saved settings.
func mergeVision(ctx context.Context, a *app) (core.VisionConfig, error) {
	cfg, err := a.client.VisionConfig(ctx)
	if err != nil {
		return core.VisionConfig{}, err
	}
	if visionFlags.EndpointURL != "" {
		cfg.EndpointURL = visionFlags.EndpointURL
	}
	if visionFlags.ModelName != "" {
		cfg.ModelName = visionFlags.ModelName
	}
	if visionFlags.APIKey != "" {
		cfg.APIKey = visionFlags.APIKey
	}
	if cfg.EndpointURL == "" {
		return core.VisionConfig{}, errors.New("no vision endpoint, pass --endpoint")
	}
	return cfg, nil
}

func init() {
	for _, c := range []*cobra.Command{visionSetCmd, visionTestCmd} {
		c.Flags().StringVar(&visionFlags.EndpointURL, "endpoint", "", "OpenAI-compatible endpoint, e.g. http://localhost:1234/v1")
		c.Flags().StringVar(&visionFlags.ModelName, "model", "", "vision model name")
		c.Flags().StringVar(&visionFlags.APIKey, "api-key", "", "API key for the endpoint")
	}
	visionCmd.AddCommand(visionSetCmd, visionTestCmd)
	rootCmd.AddCommand(visionCmd)
}
