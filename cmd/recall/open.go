package main

import (
	"github.com/spf13/cobra"
)

var openCmd = &cobra.Command{
	Use:          "open FILE_ID",
	Short:        "Open the original photo with the backend host's viewer",
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, flushLog := setupLogger(cmd.Context())
		defer flushLog()

		return newApp(ctx).client.Open(ctx, args[0])
	},
}

func init() {
	rootCmd.AddCommand(openCmd)
}
