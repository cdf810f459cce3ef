package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/sandevgo/recallbox/internal/config"
	"github.com/sandevgo/recallbox/pkg/log"
	"github.com/sandevgo/recallbox/pkg/srv"
	"github.com/spf13/cobra"
)

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Open the memory browser",
	Long:  `Opens the interactive browser: grid, timeline and chronicle views over the mounted drive, with search and date filters.`,
	RunE:  runBrowse,
}

func runBrowse(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	var flushLog func()
	ctx, flushLog = setupLogger(ctx)
	defer flushLog()

	a := newApp(ctx)

	// the window owns the terminal, so logs go to a file
	ctx, flushFile, err := log.NewFileLogger(ctx, a.cfg.GetLogPath(), debug || config.IsDebug())
	if err != nil {
		return err
	}
	defer flushFile()

	logger := log.FromCtx(ctx)
	logger.Info().Str("api_url", a.cfg.APIURL).Msg("starting recallbox")

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	services := NewServices(ctx, cancel, a)
	srv.StartServices(ctx, cancel, services)
	srv.ShutdownServices(ctx, services)

	logger.Info().Msg("recallbox closed")
	return nil
}

func init() {
	rootCmd.AddCommand(browseCmd)
}
