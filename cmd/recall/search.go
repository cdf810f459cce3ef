package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/sandevgo/recallbox/internal/core"
	"github.com/sandevgo/recallbox/internal/service/viewstate"
	"github.com/sandevgo/recallbox/internal/transport/cli"
	"github.com/sandevgo/recallbox/internal/transport/tui"
	"github.com/spf13/cobra"
)

var (
	searchView  string
	searchLimit int
	searchFrom  string
	searchTo    string
	searchRange string
)

var searchCmd = &cobra.Command{
	Use:          "search [QUERY...]",
	Short:        "Search memories by meaning, optionally within a date range",
	Example:      `  recall search dog on the beach --from 2024-06-01
  recall search --range 2023-12-24..2023-12-26 --view chronicle`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, flushLog := setupLogger(cmd.Context())
		defer flushLog()

		mode, err := viewstate.ParseViewMode(searchView)
		if err != nil {
			return err
		}
		filter, err := searchFilter()
		if err != nil {
			return err
		}
		query := strings.TrimSpace(strings.Join(args, " "))
		if query == "" && filter.IsZero() {
			return errors.New("give a query or a date range")
		}

		a := newApp(ctx)
		if searchLimit > 0 {
			a.cfg.PageSize = searchLimit
		}

		ctrl := a.controller()
		s := ctrl.Dispatch(ctx, viewstate.Started{})
		if !s.Mounted() {
			return errNotMounted
		}

		if query != "" {
			s = ctrl.Dispatch(ctx, viewstate.SearchRequested{Query: query, Filter: filter})
		} else {
			s = ctrl.Dispatch(ctx, viewstate.FilterChanged{Filter: filter})
		}
		if s.Alert != "" {
			return fmt.Errorf("%w: %s", core.ErrSearchFailed, s.Alert)
		}

		s = applyView(s, mode)
		p := cli.NewPrinter(cmd.OutOrStdout())
		if len(s.SearchItems()) == 0 {
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "No results found matching your query.")
			return nil
		}
		p.Title("%d matches", len(s.SearchItems()))
		printView(p, s, true)
		return nil
	},
}

func searchFilter() (core.DateFilter, error) {
	if searchRange != "" {
		if searchFrom != "" || searchTo != "" {
			return core.DateFilter{}, errors.New("--range cannot be combined with --from/--to")
		}
		return tui.ParseRange(searchRange)
	}
	return core.DateFilter{From: searchFrom, To: searchTo}, nil
}

func init() {
	addViewFlags(searchCmd, &searchView, &searchLimit)
	searchCmd.Flags().StringVar(&searchFrom, "from", "", "earliest capture date")
	searchCmd.Flags().StringVar(&searchTo, "to", "", "latest capture date")
	searchCmd.Flags().StringVar(&searchRange, "range", "", "date range as FROM..TO")
	rootCmd.AddCommand(searchCmd)
}
