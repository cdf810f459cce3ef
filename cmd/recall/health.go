package main

import (
	"fmt"

	"github.com/sandevgo/recallbox/internal/transport/cli"
	"github.com/spf13/cobra"
)

var healthCmd = &cobra.Command{
	Use:          "health",
	Short:        "Check that the backend is up and which drive it has mounted",
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, flushLog := setupLogger(cmd.Context())
		defer flushLog()

		a := newApp(ctx)
		h, err := a.client.Health(ctx)
		if err != nil {
			return fmt.Errorf("backend at %s: %w", a.cfg.APIURL, err)
		}

		mounted := h.MountedPath
		if mounted == "" {
			mounted = "(none)"
		}
		cli.NewPrinter(cmd.OutOrStdout()).Fields(
			"backend", a.cfg.APIURL,
			"status", h.Status,
			"mounted", mounted,
		)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(healthCmd)
}
