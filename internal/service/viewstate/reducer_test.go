package viewstate

import (
	"errors"
	"testing"

	"github.com/sandevgo/recallbox/internal/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	memA = core.Memory{FileID: "A", Summary: "harbor", Thumbnail: []byte("thumb-a")}
	memB = core.Memory{FileID: "B", Summary: "sunset", Thumbnail: []byte("thumb-b")}
	memC = core.Memory{FileID: "C", Summary: "forest"}
)

// apply reduces a sequence of events, discarding effects.
func apply(s State, events ...Event) State {
	for _, ev := range events {
		s, _ = Reduce(s, ev)
	}
	return s
}

func onlyEffect[T Effect](t *testing.T, effects []Effect) T {
	t.Helper()
	require.Len(t, effects, 1)
	eff, ok := effects[0].(T)
	require.True(t, ok, "unexpected effect %T", effects[0])
	return eff
}

// mounted returns a state with path mounted and recent items loaded.
func mounted(t *testing.T, path string, recent ...core.Memory) State {
	t.Helper()
	s, effects := Reduce(New(50), Mounted{Path: path})
	load := onlyEffect[LoadRecent](t, effects)
	s, _ = Reduce(s, RecentLoaded{Ticket: load.Ticket, Items: recent})
	return s
}

// searched runs a search to completion.
func searched(t *testing.T, s State, query string, filter core.DateFilter, results ...core.Memory) State {
	t.Helper()
	s, effects := Reduce(s, SearchRequested{Query: query, Filter: filter})
	run := onlyEffect[RunSearch](t, effects)
	s, _ = Reduce(s, SearchLoaded{Ticket: run.Ticket, Items: results})
	return s
}

func ids(items []core.Memory) []string {
	out := make([]string, 0, len(items))
	for _, m := range items {
		out = append(out, m.FileID)
	}
	return out
}

func TestReduce_MountResetsEverything(t *testing.T) {
	tests := []struct {
		name  string
		setup func(t *testing.T) State
	}{
		{
			name: "fresh session",
			setup: func(t *testing.T) State {
				return mounted(t, "/m1", memA)
			},
		},
		{
			name: "search, selection and chronicle",
			setup: func(t *testing.T) State {
				s := mounted(t, "/m1", memA, memB, memC)
				s = searched(t, s, "sunset", core.DateFilter{}, memB)
				s = apply(s, SelectionModeToggled{}, ItemActivated{Memory: memA}, ViewModeChanged{Mode: Timeline})
				return s
			},
		},
		{
			name: "selection mode on and detail open",
			setup: func(t *testing.T) State {
				s := mounted(t, "/m1", memA, memB)
				s = apply(s, ItemActivated{Memory: memB}, SelectionModeToggled{}, ItemActivated{Memory: memA})
				return s
			},
		},
		{
			name: "chronicle view with alert",
			setup: func(t *testing.T) State {
				s := mounted(t, "/m1", memA)
				s, effects := Reduce(s, SearchRequested{Query: "x"})
				run := onlyEffect[RunSearch](t, effects)
				s = apply(s, SearchFailed{Ticket: run.Ticket, Err: errors.New("down")}, ViewModeChanged{Mode: Chronicle})
				return s
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prev := tt.setup(t)

			s, effects := Reduce(prev, Mounted{Path: "/m2"})

			assert.Equal(t, "/m2", s.Session)
			assert.Empty(t, s.Selection)
			assert.False(t, s.SearchActive)
			assert.Empty(t, s.Search)
			assert.Empty(t, s.Recent)
			assert.Empty(t, s.LastQuery)
			assert.Equal(t, Grid, s.Mode)
			assert.False(t, s.Selecting)
			assert.Empty(t, s.DetailID)
			assert.Empty(t, s.Alert)
			assert.Greater(t, s.Epoch(), prev.Epoch())

			load := onlyEffect[LoadRecent](t, effects)
			assert.Equal(t, 50, load.Limit)
			assert.True(t, s.Loading())
		})
	}
}

func TestReduce_RecentLoadFailureLeavesEmptySet(t *testing.T) {
	s, effects := Reduce(New(50), Mounted{Path: "/photos"})
	load := onlyEffect[LoadRecent](t, effects)

	s, effects = Reduce(s, RecentFailed{Ticket: load.Ticket, Err: core.ErrLoadFailed})

	assert.Empty(t, effects)
	assert.Empty(t, s.Recent)
	assert.False(t, s.Loading())
	assert.Empty(t, s.Alert, "load failures raise no modal")
	assert.NotEmpty(t, s.Notice)
}

func TestReduce_HealthProbe(t *testing.T) {
	t.Run("first run adopts mounted drive", func(t *testing.T) {
		s, effects := Reduce(New(20), Started{})
		onlyEffect[ProbeHealth](t, effects)

		s, effects = Reduce(s, HealthProbed{MountedPath: "/photos"})
		assert.Equal(t, "/photos", s.Session)
		assert.Equal(t, uint64(0), s.Epoch())
		load := onlyEffect[LoadRecent](t, effects)
		assert.Equal(t, 20, load.Limit)
	})

	t.Run("no drive mounted", func(t *testing.T) {
		s, effects := Reduce(New(20), HealthProbed{})
		assert.False(t, s.Mounted())
		assert.Empty(t, effects)
	})

	t.Run("does not clear or replace an existing session", func(t *testing.T) {
		s := mounted(t, "/mine", memA)
		s = apply(s, SelectionModeToggled{}, ItemActivated{Memory: memA})

		next, effects := Reduce(s, HealthProbed{MountedPath: "/other"})
		assert.Empty(t, effects)
		assert.Equal(t, "/mine", next.Session)
		assert.Equal(t, []string{"A"}, ids(next.Selection))
		assert.Equal(t, []string{"A"}, ids(next.Recent))
	})

	t.Run("failure is a notice only", func(t *testing.T) {
		s := apply(New(20), HealthFailed{Err: errors.New("refused")})
		assert.False(t, s.Mounted())
		assert.Empty(t, s.Alert)
		assert.NotEmpty(t, s.Notice)
	})
}

func TestReduce_MountRequest(t *testing.T) {
	t.Run("success mounts", func(t *testing.T) {
		s, effects := Reduce(New(50), MountRequested{Path: " /photos "})
		mount := onlyEffect[MountDrive](t, effects)
		assert.Equal(t, "/photos", mount.Path)
		path, pending := s.Mounting()
		assert.True(t, pending)
		assert.Equal(t, "/photos", path)

		s, effects = Reduce(s, MountSucceeded{Ticket: mount.Ticket, Path: mount.Path})
		assert.Equal(t, "/photos", s.Session)
		onlyEffect[LoadRecent](t, effects)
		_, pending = s.Mounting()
		assert.False(t, pending)
	})

	t.Run("failure keeps last known good state", func(t *testing.T) {
		s := mounted(t, "/photos", memA, memB)
		s, effects := Reduce(s, MountRequested{Path: "/missing"})
		mount := onlyEffect[MountDrive](t, effects)

		s, effects = Reduce(s, MountFailed{Ticket: mount.Ticket, Path: mount.Path, Err: core.ErrMountFailed})
		assert.Empty(t, effects)
		assert.Equal(t, "/photos", s.Session)
		assert.Equal(t, []string{"A", "B"}, ids(s.Recent))
		assert.Empty(t, s.Alert)
	})

	t.Run("older mount answer is discarded", func(t *testing.T) {
		s, first := Reduce(New(50), MountRequested{Path: "/one"})
		s, second := Reduce(s, MountRequested{Path: "/two"})
		m1 := onlyEffect[MountDrive](t, first)
		m2 := onlyEffect[MountDrive](t, second)

		s, _ = Reduce(s, MountSucceeded{Ticket: m2.Ticket, Path: m2.Path})
		s, effects := Reduce(s, MountSucceeded{Ticket: m1.Ticket, Path: m1.Path})
		assert.Empty(t, effects)
		assert.Equal(t, "/two", s.Session)
	})

	t.Run("blank path ignored", func(t *testing.T) {
		_, effects := Reduce(New(50), MountRequested{Path: "  "})
		assert.Empty(t, effects)
	})
}

func TestReduce_SearchAndClear(t *testing.T) {
	base := mounted(t, "/photos", memA, memB, memC)

	t.Run("search supersedes display without dropping recent", func(t *testing.T) {
		s, effects := Reduce(base, SearchRequested{Query: "sunset"})
		run := onlyEffect[RunSearch](t, effects)
		assert.Equal(t, "sunset", run.Query)
		assert.Equal(t, 50, run.Limit)
		assert.True(t, s.Loading())
		assert.Equal(t, "sunset", s.LastQuery)
		assert.False(t, s.SearchActive, "active only once results arrive")

		s, _ = Reduce(s, SearchLoaded{Ticket: run.Ticket, Items: []core.Memory{memB}})
		assert.False(t, s.Loading())
		assert.True(t, s.SearchActive)
		assert.Equal(t, []string{"B"}, ids(s.SearchItems()))
		assert.Equal(t, []string{"B"}, ids(s.Active()))
		assert.Equal(t, []string{"A", "B", "C"}, ids(s.Main()))

		s, _ = Reduce(s, SearchCleared{})
		assert.False(t, s.SearchActive)
		assert.Equal(t, []string{"A", "B", "C"}, ids(s.Main()))
		assert.Equal(t, []string{"A", "B", "C"}, ids(s.Active()))
	})

	t.Run("clear is idempotent", func(t *testing.T) {
		s := searched(t, base, "sunset", core.DateFilter{}, memB)
		once, _ := Reduce(s, SearchCleared{})
		twice, _ := Reduce(once, SearchCleared{})
		assert.Equal(t, once, twice)
	})

	t.Run("empty search equals clear", func(t *testing.T) {
		s := searched(t, base, "sunset", core.DateFilter{}, memB)
		cleared, _ := Reduce(s, SearchCleared{})
		empty, effects := Reduce(s, SearchRequested{})
		assert.Empty(t, effects)
		assert.Equal(t, cleared, empty)
	})

	t.Run("failure alerts and keeps prior results", func(t *testing.T) {
		s := searched(t, base, "sunset", core.DateFilter{}, memB)
		s, effects := Reduce(s, SearchRequested{Query: "dog"})
		run := onlyEffect[RunSearch](t, effects)

		s, _ = Reduce(s, SearchFailed{Ticket: run.Ticket, Err: core.ErrSearchFailed})
		assert.False(t, s.Loading())
		assert.Equal(t, searchFailedAlert, s.Alert)
		assert.True(t, s.SearchActive)
		assert.Equal(t, []string{"B"}, ids(s.Search))

		s, _ = Reduce(s, AlertDismissed{})
		assert.Empty(t, s.Alert)
	})

	t.Run("last issued search wins", func(t *testing.T) {
		s, e1 := Reduce(base, SearchRequested{Query: "first"})
		s, e2 := Reduce(s, SearchRequested{Query: "second"})
		r1 := onlyEffect[RunSearch](t, e1)
		r2 := onlyEffect[RunSearch](t, e2)

		s, _ = Reduce(s, SearchLoaded{Ticket: r2.Ticket, Items: []core.Memory{memC}})
		s, _ = Reduce(s, SearchLoaded{Ticket: r1.Ticket, Items: []core.Memory{memA}})
		assert.Equal(t, []string{"C"}, ids(s.Search))
		assert.False(t, s.Loading())
	})

	t.Run("late answer after clear is dropped", func(t *testing.T) {
		s, effects := Reduce(base, SearchRequested{Query: "sunset"})
		run := onlyEffect[RunSearch](t, effects)
		s, _ = Reduce(s, SearchCleared{})
		assert.False(t, s.Loading())

		s, _ = Reduce(s, SearchLoaded{Ticket: run.Ticket, Items: []core.Memory{memB}})
		assert.False(t, s.SearchActive)
		assert.Empty(t, s.Search)
	})

	t.Run("answer from previous session is dropped", func(t *testing.T) {
		s, effects := Reduce(base, SearchRequested{Query: "sunset"})
		run := onlyEffect[RunSearch](t, effects)
		s, effects = Reduce(s, Mounted{Path: "/other"})
		load := onlyEffect[LoadRecent](t, effects)

		s, _ = Reduce(s, SearchLoaded{Ticket: run.Ticket, Items: []core.Memory{memB}})
		assert.False(t, s.SearchActive)
		assert.Empty(t, s.Search)

		s, _ = Reduce(s, RecentLoaded{Ticket: Ticket{Epoch: load.Ticket.Epoch - 1, Seq: load.Ticket.Seq}, Items: []core.Memory{memA}})
		assert.Empty(t, s.Recent)
		assert.True(t, s.Loading())
	})

	t.Run("unmounted search is ignored", func(t *testing.T) {
		s, effects := Reduce(New(50), SearchRequested{Query: "sunset"})
		assert.Empty(t, effects)
		assert.Empty(t, s.LastQuery)
	})
}

func TestReduce_FilterChanged(t *testing.T) {
	base := mounted(t, "/photos", memA, memB, memC)
	jan := core.DateFilter{From: "2024-01-01"}

	t.Run("date-only search without a query", func(t *testing.T) {
		s, effects := Reduce(base, FilterChanged{Filter: jan})
		run := onlyEffect[RunSearch](t, effects)
		assert.Empty(t, run.Query)
		assert.Equal(t, jan, run.Filter)
		assert.Equal(t, jan, s.Filter)
	})

	t.Run("composes with the last query", func(t *testing.T) {
		s := searched(t, base, "sunset", core.DateFilter{}, memB)
		s, effects := Reduce(s, FilterChanged{Filter: core.DateFilter{To: "2024-12-31"}})
		run := onlyEffect[RunSearch](t, effects)
		assert.Equal(t, "sunset", run.Query)
		assert.Equal(t, "2024-12-31", run.Filter.To)
		assert.Equal(t, "sunset", s.LastQuery)
	})

	t.Run("empty filter without query clears", func(t *testing.T) {
		s := searched(t, base, "", jan, memA)
		require.True(t, s.SearchActive)

		s, effects := Reduce(s, FilterChanged{})
		assert.Empty(t, effects)
		assert.False(t, s.SearchActive)
		assert.Empty(t, s.Search)
		assert.True(t, s.Filter.IsZero())
	})

	t.Run("empty filter with query re-runs text search", func(t *testing.T) {
		s := searched(t, base, "sunset", jan, memB)
		s, effects := Reduce(s, FilterChanged{})
		run := onlyEffect[RunSearch](t, effects)
		assert.Equal(t, "sunset", run.Query)
		assert.True(t, run.Filter.IsZero())
		assert.Equal(t, "sunset", s.LastQuery)
	})
}

func TestReduce_Selection(t *testing.T) {
	base := mounted(t, "/photos", memA, memB, memC)

	t.Run("toggle is its own inverse", func(t *testing.T) {
		s := apply(base, SelectionModeToggled{}, ItemActivated{Memory: memA}, ItemActivated{Memory: memC})
		before := ids(s.Selection)

		s = apply(s, ItemActivated{Memory: memB}, ItemActivated{Memory: memB})
		assert.Equal(t, before, ids(s.Selection))

		s = apply(s, ItemActivated{Memory: memA}, ItemActivated{Memory: memA})
		assert.Equal(t, []string{"C", "A"}, ids(s.Selection))
	})

	t.Run("identity is file id only", func(t *testing.T) {
		renamed := memA
		renamed.Summary = "different"
		s := apply(base, SelectionModeToggled{}, ItemActivated{Memory: memA}, ItemActivated{Memory: renamed})
		assert.Empty(t, s.Selection)
	})

	t.Run("turning selection off empties it", func(t *testing.T) {
		s := apply(base, SelectionModeToggled{}, ItemActivated{Memory: memA}, ItemActivated{Memory: memB})
		require.Len(t, s.Selection, 2)

		s = apply(s, SelectionModeToggled{})
		assert.False(t, s.Selecting)
		assert.Empty(t, s.Selection)
	})

	t.Run("activation in selection mode does not open detail", func(t *testing.T) {
		s := apply(base, SelectionModeToggled{}, ItemActivated{Memory: memA})
		assert.Empty(t, s.DetailID)
	})

	t.Run("activation opens detail", func(t *testing.T) {
		s := apply(base, ItemActivated{Memory: memB})
		assert.Equal(t, "B", s.DetailID)
		s = apply(s, DetailClosed{})
		assert.Empty(t, s.DetailID)
	})

	t.Run("chronicle view is not a detail source", func(t *testing.T) {
		s := apply(base, ViewModeChanged{Mode: Chronicle}, ItemActivated{Memory: memB})
		assert.Empty(t, s.DetailID)
	})

	t.Run("search overlay always opens detail", func(t *testing.T) {
		s := searched(t, base, "sunset", core.DateFilter{}, memB)
		s = apply(s, SelectionModeToggled{}, ItemActivated{Memory: memB, Source: SourceSearch})
		assert.Equal(t, "B", s.DetailID)
		assert.Empty(t, s.Selection)
	})

	t.Run("earlier states are not mutated", func(t *testing.T) {
		s1 := apply(base, SelectionModeToggled{}, ItemActivated{Memory: memA})
		s2 := apply(s1, ItemActivated{Memory: memB})
		_ = apply(s2, ItemActivated{Memory: memA})
		assert.Equal(t, []string{"A"}, ids(s1.Selection))
		assert.Equal(t, []string{"A", "B"}, ids(s2.Selection))
	})
}

func TestReduce_ChronicleScenario(t *testing.T) {
	s := mounted(t, "/photos", memA, memB, memC)
	s = apply(s, SelectionModeToggled{}, ItemActivated{Memory: memA}, ItemActivated{Memory: memB})
	assert.Equal(t, []string{"A", "B"}, ids(s.Selection))

	s = apply(s, ItemActivated{Memory: memA})
	assert.Equal(t, []string{"B"}, ids(s.Selection))

	s = apply(s, ViewModeChanged{Mode: Chronicle})
	assert.Equal(t, Chronicle, s.Mode)
	assert.False(t, s.Selecting)
	assert.Equal(t, []string{"B"}, ids(s.Selection))
	assert.Equal(t, []string{"B"}, ids(s.Chronicle()))
	assert.True(t, s.ChronicleFromSelection())

	s = apply(s, ChronicleCleared{})
	assert.Empty(t, s.Selection)
	assert.Equal(t, []string{"A", "B", "C"}, ids(s.Chronicle()))
}

func TestReduce_ChronicleKeepsSelectionAndSearch(t *testing.T) {
	for _, mode := range []ViewMode{Grid, Timeline, Chronicle} {
		t.Run(mode.String(), func(t *testing.T) {
			s := mounted(t, "/photos", memA, memB, memC)
			s = searched(t, s, "sunset", core.DateFilter{}, memB)
			s = apply(s, ViewModeChanged{Mode: mode}, SelectionModeToggled{}, ItemActivated{Memory: memC})
			before := ids(s.Selection)

			s = apply(s, ViewModeChanged{Mode: Chronicle})
			assert.Equal(t, before, ids(s.Selection))
			assert.True(t, s.SearchActive)
			assert.Equal(t, "sunset", s.LastQuery)
		})
	}
}

func TestReduce_ChronicleFallback(t *testing.T) {
	t.Run("recent set when nothing selected", func(t *testing.T) {
		s := mounted(t, "/photos", memA, memB, memC)
		s = apply(s, ViewModeChanged{Mode: Chronicle})
		assert.Equal(t, []string{"A", "B", "C"}, ids(s.Chronicle()))
		assert.False(t, s.ChronicleFromSelection())
	})

	t.Run("active search set when searching", func(t *testing.T) {
		s := mounted(t, "/photos", memA, memB, memC)
		s = searched(t, s, "sunset", core.DateFilter{}, memB)
		s = apply(s, ViewModeChanged{Mode: Chronicle})
		assert.Equal(t, []string{"B"}, ids(s.Chronicle()))

		s = apply(s, SearchCleared{})
		assert.Equal(t, []string{"A", "B", "C"}, ids(s.Chronicle()), "fallback is computed, not cached")
	})
}

func TestReduce_Refresh(t *testing.T) {
	s := mounted(t, "/photos", memA)
	s = apply(s, SelectionModeToggled{}, ItemActivated{Memory: memA})

	s, effects := Reduce(s, RefreshRequested{})
	load := onlyEffect[LoadRecent](t, effects)
	s, _ = Reduce(s, RecentLoaded{Ticket: load.Ticket, Items: []core.Memory{memA, memB}})

	assert.Equal(t, []string{"A", "B"}, ids(s.Recent))
	assert.Equal(t, []string{"A"}, ids(s.Selection), "refresh keeps the selection")

	_, effects = Reduce(New(50), RefreshRequested{})
	assert.Empty(t, effects)
}

func TestParseViewMode(t *testing.T) {
	for _, mode := range []ViewMode{Grid, Timeline, Chronicle} {
		got, err := ParseViewMode(mode.String())
		require.NoError(t, err)
		assert.Equal(t, mode, got)
	}
	_, err := ParseViewMode("mosaic")
	assert.Error(t, err)
}
