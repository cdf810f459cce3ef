package viewstate

import (
	"strings"

	"github.com/sandevgo/recallbox/internal/core"
)

const searchFailedAlert = "Search failed. Ensure backend is running."

// Reduce applies one event to s and returns the next state plus the effects
// to run. It never blocks and never performs I/O.
func Reduce(s State, ev Event) (State, []Effect) {
	switch ev := ev.(type) {
	case Started:
		return s, []Effect{ProbeHealth{}}

	case HealthProbed:
		return s.probed(ev.MountedPath)
	case HealthFailed:
		s.Notice = "backend unreachable"
		return s, nil

	case MountRequested:
		return s.requestMount(ev.Path)
	case MountSucceeded:
		if !current(ev.Ticket, s.mountTicket) {
			return s, nil
		}
		s.mountTicket, s.mountPath = Ticket{}, ""
		return s.mount(ev.Path)
	case MountFailed:
		if !current(ev.Ticket, s.mountTicket) {
			return s, nil
		}
		s.mountTicket, s.mountPath = Ticket{}, ""
		s.Notice = "mount failed: " + ev.Path
		return s, nil
	case Mounted:
		return s.mount(ev.Path)

	case RefreshRequested:
		if !s.Mounted() {
			return s, nil
		}
		return s.loadRecent()
	case RecentLoaded:
		if !current(ev.Ticket, s.recentTicket) {
			return s, nil
		}
		s.recentTicket = Ticket{}
		s.Recent = ev.Items
		s.Notice = ""
		return s, nil
	case RecentFailed:
		if !current(ev.Ticket, s.recentTicket) {
			return s, nil
		}
		s.recentTicket = Ticket{}
		s.Notice = "could not load recent memories"
		return s, nil

	case SearchRequested:
		return s.search(ev.Query, ev.Filter)
	case SearchLoaded:
		if !current(ev.Ticket, s.searchTicket) {
			return s, nil
		}
		s.searchTicket = Ticket{}
		s.Search = ev.Items
		s.SearchActive = true
		return s, nil
	case SearchFailed:
		if !current(ev.Ticket, s.searchTicket) {
			return s, nil
		}
		s.searchTicket = Ticket{}
		s.Alert = searchFailedAlert
		return s, nil
	case SearchCleared:
		return s.clearSearch(), nil
	case FilterChanged:
		return s.changeFilter(ev.Filter)

	case SelectionModeToggled:
		s.Selecting = !s.Selecting
		if !s.Selecting {
			s.Selection = nil
		}
		return s, nil
	case ItemActivated:
		return s.activate(ev.Memory, ev.Source), nil
	case ChronicleCleared:
		s.Selection = nil
		return s, nil
	case ViewModeChanged:
		s.Mode = ev.Mode
		if ev.Mode == Chronicle {
			s.Selecting = false
		}
		return s, nil

	case DetailClosed:
		s.DetailID = ""
		return s, nil
	case AlertDismissed:
		s.Alert = ""
		return s, nil
	}
	return s, nil
}

// current reports whether t answers the latest request of its kind.
func current(t, latest Ticket) bool {
	return !t.IsZero() && t == latest
}

// probed adopts the backend's mounted drive on first run. There is no prior
// state to clear, so nothing is reset.
func (s State) probed(path string) (State, []Effect) {
	s.Notice = ""
	if s.Mounted() || path == "" {
		return s, nil
	}
	s.Session = path
	if len(s.Recent) > 0 || s.RecentLoading() {
		return s, nil
	}
	return s.loadRecent()
}

func (s State) requestMount(path string) (State, []Effect) {
	path = strings.TrimSpace(path)
	if path == "" {
		return s, nil
	}
	t := s.issue()
	s.mountTicket, s.mountPath = t, path
	return s, []Effect{MountDrive{Ticket: t, Path: path}}
}

// mount starts a new session. Everything that belonged to the previous
// session is dropped in this one transition and in-flight requests of the
// old epoch are fenced off.
func (s State) mount(path string) (State, []Effect) {
	s.epoch++
	s.Session = path

	s.Recent = nil
	s.Search = nil
	s.SearchActive = false
	s.LastQuery = ""
	s.searchTicket = Ticket{}
	s.recentTicket = Ticket{}

	s.Selection = nil
	s.Selecting = false
	s.Mode = Grid
	s.DetailID = ""
	s.Alert = ""
	s.Notice = ""

	return s.loadRecent()
}

func (s State) loadRecent() (State, []Effect) {
	t := s.issue()
	s.recentTicket = t
	return s, []Effect{LoadRecent{Ticket: t, Limit: s.PageSize}}
}

func (s State) search(query string, filter core.DateFilter) (State, []Effect) {
	if query == "" && filter.IsZero() {
		return s.clearSearch(), nil
	}
	if !s.Mounted() {
		return s, nil
	}
	t := s.issue()
	s.searchTicket = t
	s.LastQuery = query
	return s, []Effect{RunSearch{Ticket: t, Query: query, Filter: filter, Limit: s.PageSize}}
}

// clearSearch also fences an in-flight search so a late answer cannot
// reopen the overlay.
func (s State) clearSearch() State {
	s.searchTicket = Ticket{}
	s.SearchActive = false
	s.Search = nil
	s.LastQuery = ""
	return s
}

// changeFilter composes the new bounds with the active text query instead
// of replacing it.
func (s State) changeFilter(filter core.DateFilter) (State, []Effect) {
	s.Filter = filter
	switch {
	case s.LastQuery != "":
		return s.search(s.LastQuery, filter)
	case !filter.IsZero():
		return s.search("", filter)
	default:
		return s.clearSearch(), nil
	}
}

func (s State) activate(m core.Memory, src Source) State {
	if src == SourceSearch {
		s.DetailID = m.FileID
		return s
	}
	if s.Selecting {
		s.Selection = toggle(s.Selection, m)
		return s
	}
	if s.Mode == Chronicle {
		return s
	}
	s.DetailID = m.FileID
	return s
}

// toggle returns a new slice with m added, or removed when already present.
// Order of the remaining entries is kept.
func toggle(sel []core.Memory, m core.Memory) []core.Memory {
	out := make([]core.Memory, 0, len(sel)+1)
	found := false
	for _, it := range sel {
		if it.FileID == m.FileID {
			found = true
			continue
		}
		out = append(out, it)
	}
	if !found {
		out = append(out, m)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
