package main

import (
	"fmt"

	"github.com/sandevgo/recallbox/internal/config"
	"github.com/spf13/cobra"
)

var rescan bool

var scanCmd = &cobra.Command{
	Use:          "scan [PATH]",
	Short:        "Index new photos on the mounted drive",
	Long:         `Asks the backend to index new photos. Without PATH the mounted drive is scanned.`,
	Args:         cobra.MaximumNArgs(1),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, flushLog := setupLogger(cmd.Context())
		defer flushLog()

		a := newApp(ctx)
		var path string
		if len(args) == 1 {
			path = config.ExpandMountPath(args[0])
		}

		res, err := a.client.Scan(ctx, path, rescan)
		if err != nil {
			return fmt.Errorf("scan failed: %w", err)
		}

		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "scanned %s: %d new, %d skipped\n", res.ScannedPath, res.New, res.Skipped)
		return nil
	},
}

func init() {
	scanCmd.Flags().BoolVar(&rescan, "rescan", false, "re-index photos that are already known")
	rootCmd.AddCommand(scanCmd)
}
