package viewstate

import (
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/sandevgo/recallbox/internal/core"
)

// The accessors below are computed on every call and never cached, so they
// cannot drift from the state they are derived from. Returned slices are
// shared with the state and must not be modified.

// Main is the grid/timeline content. It always holds the recent set; search
// results live in the overlay on top of it.
func (s State) Main() []core.Memory {
	return s.Recent
}

func (s State) SearchItems() []core.Memory {
	return s.Search
}

// Active is the result set currently in focus.
func (s State) Active() []core.Memory {
	if s.SearchActive {
		return s.Search
	}
	return s.Recent
}

// Chronicle is the selection, or the active set when nothing is selected.
func (s State) Chronicle() []core.Memory {
	if len(s.Selection) > 0 {
		return s.Selection
	}
	return s.Active()
}

// ChronicleFromSelection reports whether Chronicle renders the selection.
func (s State) ChronicleFromSelection() bool {
	return len(s.Selection) > 0
}

func (s State) IsSelected(fileID string) bool {
	for _, m := range s.Selection {
		if m.FileID == fileID {
			return true
		}
	}
	return false
}

// Lookup resolves a memory by id, probing search results before the recent
// set. First match wins.
func (s State) Lookup(fileID string) (core.Memory, bool) {
	for _, set := range [][]core.Memory{s.Search, s.Recent} {
		for _, m := range set {
			if m.FileID == fileID {
				return m, true
			}
		}
	}
	return core.Memory{}, false
}

// Thumbnail resolves the preview bytes for the detail overlay.
func (s State) Thumbnail(fileID string) ([]byte, bool) {
	m, ok := s.Lookup(fileID)
	if !ok || len(m.Thumbnail) == 0 {
		return nil, false
	}
	return m.Thumbnail, true
}

// Detail is the memory shown in the detail overlay, if any.
func (s State) Detail() (core.Memory, bool) {
	if s.DetailID == "" {
		return core.Memory{}, false
	}
	m, ok := s.Lookup(s.DetailID)
	if !ok {
		// still show the overlay for the id alone
		return core.Memory{FileID: s.DetailID}, true
	}
	return m, true
}

const Undated = "undated"

type DayGroup struct {
	Day   string
	Items []core.Memory
}

// Timeline groups the main set by capture day.
func (s State) Timeline() []DayGroup {
	return GroupByDay(s.Main())
}

// GroupByDay groups items by capture day, newest day first. Items keep their
// order within a day; undated items come last.
func GroupByDay(items []core.Memory) []DayGroup {
	idx := make(map[string]int)
	var groups []DayGroup
	for _, m := range items {
		day := DayOf(m.Date())
		i, ok := idx[day]
		if !ok {
			i = len(groups)
			idx[day] = i
			groups = append(groups, DayGroup{Day: day})
		}
		groups[i].Items = append(groups[i].Items, m)
	}

	sort.SliceStable(groups, func(i, j int) bool {
		a, b := groups[i].Day, groups[j].Day
		if a == Undated || b == Undated {
			return b == Undated && a != Undated
		}
		return a > b
	})
	return groups
}

// DayOf normalizes the date formats the indexer produces into YYYY-MM-DD:
// EXIF "2024:01:31 10:00:00", ISO strings and unix seconds.
func DayOf(token string) string {
	token = strings.TrimSpace(token)
	if token == "" {
		return Undated
	}
	if secs, err := strconv.ParseFloat(token, 64); err == nil && !strings.ContainsAny(token, ":-") {
		return time.Unix(int64(secs), 0).UTC().Format(time.DateOnly)
	}
	if len(token) < len("2006-01-02") {
		return Undated
	}
	day := strings.ReplaceAll(token[:10], ":", "-")
	if _, err := time.Parse(time.DateOnly, day); err != nil {
		return Undated
	}
	return day
}
