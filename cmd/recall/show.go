package main

import (
	"fmt"
	"os"

	"github.com/sandevgo/recallbox/internal/transport/cli"
	"github.com/spf13/cobra"
)

var thumbOut string

var showCmd = &cobra.Command{
	Use:          "show FILE_ID",
	Short:        "Show everything the index knows about one memory",
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, flushLog := setupLogger(cmd.Context())
		defer flushLog()

		a := newApp(ctx)
		d, err := a.client.Memory(ctx, args[0])
		if err != nil {
			return err
		}
		cli.NewPrinter(cmd.OutOrStdout()).Detail(d)

		if thumbOut == "" {
			return nil
		}
		data, err := a.client.Thumbnail(ctx, args[0])
		if err != nil {
			return err
		}
		if err := os.WriteFile(thumbOut, data, 0644); err != nil {
			return fmt.Errorf("failed to write thumbnail: %w", err)
		}
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "thumbnail written to %s\n", thumbOut)
		return nil
	},
}

func init() {
	showCmd.Flags().StringVar(&thumbOut, "thumbnail", "", "write the preview JPEG to this file")
	rootCmd.AddCommand(showCmd)
}
