package main

import (
	"fmt"

	"github.com/sandevgo/recallbox/internal/config"
	"github.com/sandevgo/recallbox/internal/core"
	"github.com/sandevgo/recallbox/internal/service/viewstate"
	"github.com/sandevgo/recallbox/internal/transport/cli"
	"github.com/spf13/cobra"
)

var mountCmd = &cobra.Command{
	Use:          "mount PATH",
	Short:        "Mount a photo drive and list its recent memories",
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, flushLog := setupLogger(cmd.Context())
		defer flushLog()

		a := newApp(ctx)
		path := config.ExpandMountPath(args[0])

		s := a.controller().Dispatch(ctx, viewstate.MountRequested{Path: path})
		if s.Session != path {
			return fmt.Errorf("%w: %s", core.ErrMountFailed, path)
		}

		p := cli.NewPrinter(cmd.OutOrStdout())
		p.Title("Mounted %s", s.Session)
		p.Memories(s.Main(), false)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(mountCmd)
}
