package viewstate

import (
	"fmt"
	"strings"

	"github.com/sandevgo/recallbox/internal/core"
)

// ViewMode selects how the main area is rendered. Exactly one is active.
type ViewMode int

const (
	Grid ViewMode = iota
	Timeline
	Chronicle
)

func (m ViewMode) String() string {
	switch m {
	case Grid:
		return "grid"
	case Timeline:
		return "timeline"
	case Chronicle:
		return "chronicle"
	default:
		return fmt.Sprintf("ViewMode(%d)", int(m))
	}
}

func ParseViewMode(s string) (ViewMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "grid":
		return Grid, nil
	case "timeline":
		return Timeline, nil
	case "chronicle":
		return Chronicle, nil
	}
	return Grid, fmt.Errorf("unknown view mode %q", s)
}

// Source tells which list an activated item came from.
type Source int

const (
	SourceMain Source = iota
	SourceSearch
)

// Ticket identifies one issued request. Epoch changes with every mount, Seq
// grows with every request. Only the latest ticket of each kind is accepted.
type Ticket struct {
	Epoch uint64
	Seq   uint64
}

func (t Ticket) IsZero() bool {
	return t.Seq == 0
}

// State is the whole view state of one browsing window. It is a value: the
// reducer never mutates slices it has handed out.
type State struct {
	// Session is the mounted drive path, "" while unmounted.
	Session  string
	PageSize int

	Recent       []core.Memory
	Search       []core.Memory
	SearchActive bool
	LastQuery    string
	Filter       core.DateFilter

	Mode      ViewMode
	Selecting bool
	Selection []core.Memory

	// DetailID is the memory shown in the detail overlay, "" when closed.
	DetailID string
	// Alert is a blocking message the user has to dismiss.
	Alert string
	// Notice is a non-blocking status line.
	Notice string

	epoch        uint64
	seq          uint64
	mountTicket  Ticket
	mountPath    string
	recentTicket Ticket
	searchTicket Ticket
}

func New(pageSize int) State {
	if pageSize <= 0 {
		pageSize = core.DefaultPageSize
	}
	return State{PageSize: pageSize}
}

func (s State) Mounted() bool {
	return s.Session != ""
}

// Loading is true while any current recent load or search is in flight.
func (s State) Loading() bool {
	return s.RecentLoading() || s.SearchLoading()
}

func (s State) RecentLoading() bool {
	return !s.recentTicket.IsZero()
}

func (s State) SearchLoading() bool {
	return !s.searchTicket.IsZero()
}

// Mounting reports the path of an in-flight mount request.
func (s State) Mounting() (string, bool) {
	return s.mountPath, !s.mountTicket.IsZero()
}

func (s State) Epoch() uint64 {
	return s.epoch
}

func (s *State) issue() Ticket {
	s.seq++
	return Ticket{Epoch: s.epoch, Seq: s.seq}
}
