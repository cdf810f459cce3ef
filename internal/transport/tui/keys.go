package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up       key.Binding
	Down     key.Binding
	Activate key.Binding
	Back     key.Binding

	Search      key.Binding
	Filter      key.Binding
	ClearFilter key.Binding
	Mount       key.Binding
	Scan        key.Binding
	Rescan      key.Binding
	Refresh     key.Binding

	Grid      key.Binding
	Timeline  key.Binding
	Chronicle key.Binding
	Select    key.Binding
	ClearPick key.Binding

	Open key.Binding
	Help key.Binding
	Quit key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Activate: key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "open/select")),
		Back:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "close")),

		Search:      key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		Filter:      key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "date filter")),
		ClearFilter: key.NewBinding(key.WithKeys("F"), key.WithHelp("F", "clear filter")),
		Mount:       key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "mount drive")),
		Scan:        key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "scan")),
		Rescan:      key.NewBinding(key.WithKeys("S"), key.WithHelp("S", "full rescan")),
		Refresh:     key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),

		Grid:      key.NewBinding(key.WithKeys("g"), key.WithHelp("g", "grid")),
		Timeline:  key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "timeline")),
		Chronicle: key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "chronicle")),
		Select:    key.NewBinding(key.WithKeys("v"), key.WithHelp("v", "select memories")),
		ClearPick: key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "clear chronicle")),

		Open: key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "open file")),
		Help: key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit: key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Search, k.Mount, k.Select, k.Chronicle, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Activate, k.Back},
		{k.Search, k.Filter, k.ClearFilter, k.Refresh},
		{k.Grid, k.Timeline, k.Chronicle, k.Select, k.ClearPick},
		{k.Mount, k.Scan, k.Rescan, k.Open, k.Help, k.Quit},
	}
}
