package main

import (
	"fmt"

	"github.com/sandevgo/recallbox/pkg/env"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:          "config",
	Short:        "Print the effective configuration in .env form",
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, flushLog := setupLogger(cmd.Context())
		defer flushLog()

		a := newApp(ctx)
		out, err := env.MarshalEnv(a.cfg)
		if err != nil {
			return err
		}
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "# %s\n%s", a.cfg.GetEnvPath(), out)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
}
