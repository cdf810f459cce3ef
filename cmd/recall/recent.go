package main

import (
	"errors"
	"fmt"

	"github.com/sandevgo/recallbox/internal/core"
	"github.com/sandevgo/recallbox/internal/service/viewstate"
	"github.com/sandevgo/recallbox/internal/transport/cli"
	"github.com/spf13/cobra"
)

var errNotMounted = errors.New("no drive mounted, run 'recall mount PATH' first")

var (
	recentView  string
	recentLimit int
)

var recentCmd = &cobra.Command{
	Use:          "recent",
	Short:        "List the most recent memories on the mounted drive",
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, flushLog := setupLogger(cmd.Context())
		defer flushLog()

		mode, err := viewstate.ParseViewMode(recentView)
		if err != nil {
			return err
		}

		a := newApp(ctx)
		if recentLimit > 0 {
			a.cfg.PageSize = recentLimit
		}

		s := a.controller().Dispatch(ctx, viewstate.Started{})
		if !s.Mounted() {
			if s.Notice != "" {
				return fmt.Errorf("%s at %s", s.Notice, a.cfg.APIURL)
			}
			return errNotMounted
		}
		if s.Notice != "" {
			return fmt.Errorf("%w: %s", core.ErrLoadFailed, s.Notice)
		}

		s = applyView(s, mode)
		p := cli.NewPrinter(cmd.OutOrStdout())
		p.Title("%s, %d memories", s.Session, len(s.Main()))
		printView(p, s, false)
		return nil
	},
}

func applyView(s viewstate.State, mode viewstate.ViewMode) viewstate.State {
	s, _ = viewstate.Reduce(s, viewstate.ViewModeChanged{Mode: mode})
	return s
}

// printView renders the active set the way the window would for s.Mode.
func printView(p *cli.Printer, s viewstate.State, withScore bool) {
	switch s.Mode {
	case viewstate.Timeline:
		p.Timeline(viewstate.GroupByDay(s.Active()))
	case viewstate.Chronicle:
		p.Chronicle(s.Chronicle())
	default:
		p.Memories(s.Active(), withScore)
	}
}

func addViewFlags(cmd *cobra.Command, view *string, limit *int) {
	cmd.Flags().StringVar(view, "view", "grid", "output layout: grid, timeline or chronicle")
	cmd.Flags().IntVarP(limit, "limit", "n", 0, "number of memories (default RECALL_PAGE_SIZE)")
}

func init() {
	addViewFlags(recentCmd, &recentView, &recentLimit)
	rootCmd.AddCommand(recentCmd)
}
