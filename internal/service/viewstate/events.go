package viewstate

import "github.com/sandevgo/recallbox/internal/core"

// Event is an input to Reduce. Events double as bubbletea messages.
type Event interface {
	event()
}

// Effect is asynchronous work requested by Reduce. A Runner turns every
// Effect into exactly one Event.
type Effect interface {
	effect()
}

type (
	// Started is dispatched once when the window opens.
	Started struct{}

	HealthProbed struct {
		MountedPath string
	}
	HealthFailed struct {
		Err error
	}

	MountRequested struct {
		Path string
	}
	MountSucceeded struct {
		Ticket Ticket
		Path   string
		Count  int
	}
	MountFailed struct {
		Ticket Ticket
		Path   string
		Err    error
	}
	// Mounted switches to a session mounted by someone else.
	Mounted struct {
		Path string
	}

	RefreshRequested struct{}
	RecentLoaded     struct {
		Ticket Ticket
		Items  []core.Memory
	}
	RecentFailed struct {
		Ticket Ticket
		Err    error
	}

	SearchRequested struct {
		Query  string
		Filter core.DateFilter
	}
	SearchLoaded struct {
		Ticket Ticket
		Items  []core.Memory
	}
	SearchFailed struct {
		Ticket Ticket
		Err    error
	}
	SearchCleared struct{}
	FilterChanged struct {
		Filter core.DateFilter
	}

	SelectionModeToggled struct{}
	ItemActivated        struct {
		Memory core.Memory
		Source Source
	}
	ChronicleCleared struct{}
	ViewModeChanged  struct {
		Mode ViewMode
	}

	DetailClosed   struct{}
	AlertDismissed struct{}
)

func (Started) event()              {}
func (HealthProbed) event()         {}
func (HealthFailed) event()         {}
func (MountRequested) event()       {}
func (MountSucceeded) event()       {}
func (MountFailed) event()          {}
func (Mounted) event()              {}
func (RefreshRequested) event()     {}
func (RecentLoaded) event()         {}
func (RecentFailed) event()         {}
func (SearchRequested) event()      {}
func (SearchLoaded) event()         {}
func (SearchFailed) event()         {}
func (SearchCleared) event()        {}
func (FilterChanged) event()        {}
func (SelectionModeToggled) event() {}
func (ItemActivated) event()        {}
func (ChronicleCleared) event()     {}
func (ViewModeChanged) event()      {}
func (DetailClosed) event()         {}
func (AlertDismissed) event()       {}

type (
	ProbeHealth struct{}
	MountDrive  struct {
		Ticket Ticket
		Path   string
	}
	LoadRecent struct {
		Ticket Ticket
		Limit  int
	}
	RunSearch struct {
		Ticket Ticket
		Query  string
		Filter core.DateFilter
		Limit  int
	}
)

func (ProbeHealth) effect() {}
func (MountDrive) effect()  {}
func (LoadRecent) effect()  {}
func (RunSearch) effect()   {}
