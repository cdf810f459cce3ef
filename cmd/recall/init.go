package main

import (
	"context"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/sandevgo/recallbox/internal/config"
	"github.com/sandevgo/recallbox/internal/core"
	"github.com/sandevgo/recallbox/internal/providers/memoryapi"
	"github.com/sandevgo/recallbox/internal/service/installer"
	"github.com/sandevgo/recallbox/pkg/log"
	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:           "init",
	Short:         "Configure RecallBox and write the runtime .env",
	SilenceUsage:  true,
	SilenceErrors: false,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		var flushLog func()
		ctx, flushLog = setupLogger(ctx)
		defer flushLog()

		logger := log.FromCtx(ctx)
		logger.Info().Msg("starting setup")

		// run wizard (includes save step)
		_, err := installer.RunWizard(probeBackend)
		if err != nil {
			return err
		}

		runtimePath := config.GetRuntimePath()
		envPath := filepath.Join(runtimePath, ".env")
		if err := godotenv.Load(envPath); err != nil {
			logger.Warn().Err(err).Str("path", envPath).Msg("failed to load .env file")
		}

		logger.Info().Msgf("initialized runtime directory at: %s", runtimePath)
		logger.Info().Msg("Setup complete! Run 'recall mount PATH' to index a photo folder.")
		return nil
	},
}

func probeBackend(ctx context.Context, baseURL string) (core.Health, error) {
	client := memoryapi.NewClient(memoryapi.Config{BaseURL: baseURL})
	defer client.Close()
	return client.Health(ctx)
}

func init() {
	rootCmd.AddCommand(initCmd)
}
