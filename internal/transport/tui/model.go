package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandevgo/recallbox/internal/config"
	"github.com/sandevgo/recallbox/internal/core"
	"github.com/sandevgo/recallbox/internal/service/viewstate"
	"github.com/sandevgo/recallbox/internal/service/watch"
	"github.com/sandevgo/recallbox/pkg/log"
)

const defaultCallTimeout = 30 * time.Second

type effectRunner interface {
	Run(ctx context.Context, eff viewstate.Effect) viewstate.Event
}

// backend covers the calls the window makes outside the reducer.
type backend interface {
	Scan(ctx context.Context, path string, rescan bool) (core.ScanResult, error)
	Memory(ctx context.Context, fileID string) (core.MemoryDetail, error)
	Open(ctx context.Context, fileID string) error
}

type driveWatcher interface {
	Watch(root string) error
	Changes() <-chan watch.Change
}

type inputMode int

const (
	inputNone inputMode = iota
	inputSearch
	inputMount
	inputFilter
)

type (
	detailMsg struct {
		id     string
		detail core.MemoryDetail
		err    error
	}
	scanDoneMsg struct {
		res core.ScanResult
		err error
	}
	openDoneMsg struct {
		path string
		err  error
	}
	watchMsg struct {
		root string
		err  error
	}
)

type Option func(*Model)

// WithWatcher reports changes on the mounted drive as a rescan hint.
func WithWatcher(w driveWatcher) Option {
	return func(m *Model) {
		m.watcher = w
	}
}

// WithCallTimeout bounds detail and open calls.
func WithCallTimeout(d time.Duration) Option {
	return func(m *Model) {
		if d > 0 {
			m.callTimeout = d
		}
	}
}

// Model is the browsing window. All view state lives in viewstate.State;
// the model only adds cursors, text input and rendering caches.
type Model struct {
	ctx         context.Context
	state       viewstate.State
	runner      effectRunner
	api         backend
	watcher     driveWatcher
	callTimeout time.Duration

	keys    keyMap
	help    help.Model
	input   textinput.Model
	spinner spinner.Model
	mode    inputMode

	cursor       int
	searchCursor int

	detail    *core.MemoryDetail
	detailErr error
	summaries map[string]string

	status     string
	driveDirty bool
	scanning   bool
	ticking    bool
	quitting   bool

	width  int
	height int
}

func New(ctx context.Context, runner effectRunner, api backend, pageSize int, opts ...Option) *Model {
	ti := textinput.New()
	ti.CharLimit = 256
	ti.Width = 48
	ti.Cursor.SetMode(cursor.CursorStatic)

	m := &Model{
		ctx:         ctx,
		state:       viewstate.New(pageSize),
		runner:      runner,
		api:         api,
		callTimeout: defaultCallTimeout,
		keys:        defaultKeyMap(),
		help:        help.New(),
		input:       ti,
		spinner:     spinner.New(spinner.WithSpinner(spinner.Dot)),
		summaries:   make(map[string]string),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// State exposes the current view state.
func (m *Model) State() viewstate.State {
	return m.state
}

func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.dispatch(viewstate.Started{}), m.waitChange())
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		return m, m.handleKey(msg)

	case spinner.TickMsg:
		if !m.busy() {
			m.ticking = false
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case detailMsg:
		// the overlay may have moved on while the call was in flight
		if msg.id != m.state.DetailID {
			return m, nil
		}
		if msg.err != nil {
			m.detailErr = msg.err
			return m, nil
		}
		m.detail = &msg.detail
		return m, nil

	case scanDoneMsg:
		m.scanning = false
		if msg.err != nil {
			m.status = "Scan failed: " + msg.err.Error()
			return m, nil
		}
		m.driveDirty = false
		m.status = fmt.Sprintf("Scan complete: %d new, %d skipped", msg.res.New, msg.res.Skipped)
		return m, m.dispatch(viewstate.RefreshRequested{})

	case openDoneMsg:
		if msg.err != nil {
			m.status = "Open failed: " + msg.err.Error()
		} else {
			m.status = "Opened " + msg.path
		}
		return m, nil

	case watchMsg:
		if msg.err != nil {
			log.FromCtx(m.ctx).Debug().Err(msg.err).Str("root", msg.root).Msg("drive not watched")
		}
		return m, nil

	case watch.Change:
		if msg.Root != "" && msg.Root == m.state.Session {
			m.driveDirty = true
		}
		return m, m.waitChange()

	case viewstate.Event:
		return m, m.dispatch(msg)
	}

	return m, nil
}

// dispatch feeds one event through the reducer and turns the resulting
// effects into commands.
func (m *Model) dispatch(ev viewstate.Event) tea.Cmd {
	prev := m.state
	next, effects := viewstate.Reduce(m.state, ev)
	m.state = next

	cmds := make([]tea.Cmd, 0, len(effects)+3)
	for _, eff := range effects {
		cmds = append(cmds, m.run(eff))
	}

	if next.Session != prev.Session {
		m.cursor, m.searchCursor = 0, 0
		m.driveDirty = false
		m.summaries = make(map[string]string)
		cmds = append(cmds, m.watchDrive(next.Session))
	}
	if next.Mode != prev.Mode {
		m.cursor = 0
	}
	switch ev.(type) {
	case viewstate.SearchLoaded:
		m.searchCursor = 0
		m.summaries = make(map[string]string)
	case viewstate.RecentLoaded:
		// summaries change once the vision pass catches up
		m.summaries = make(map[string]string)
	}
	if next.DetailID != prev.DetailID {
		m.detail, m.detailErr = nil, nil
		if next.DetailID != "" {
			cmds = append(cmds, m.fetchDetail(next.DetailID))
		}
	}
	if next.Notice != "" && next.Notice != prev.Notice {
		m.status = ""
	}

	m.clampCursors()
	cmds = append(cmds, m.startSpinner())
	return tea.Batch(cmds...)
}

func (m *Model) run(eff viewstate.Effect) tea.Cmd {
	ctx, runner := m.ctx, m.runner
	return func() tea.Msg {
		return runner.Run(ctx, eff)
	}
}

func (m *Model) fetchDetail(id string) tea.Cmd {
	ctx, api, timeout := m.ctx, m.api, m.callTimeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()
		d, err := api.Memory(ctx, id)
		return detailMsg{id: id, detail: d, err: err}
	}
}

func (m *Model) openFile(id string) tea.Cmd {
	ctx, api, timeout := m.ctx, m.api, m.callTimeout
	path := id
	if mem, ok := m.state.Lookup(id); ok && mem.Path != "" {
		path = mem.Path
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()
		return openDoneMsg{path: path, err: api.Open(ctx, id)}
	}
}

func (m *Model) scan(rescan bool) tea.Cmd {
	if !m.state.Mounted() || m.scanning {
		return nil
	}
	m.scanning = true
	m.status = "Scanning " + m.state.Session + "..."

	ctx, api, path := m.ctx, m.api, m.state.Session
	return tea.Batch(func() tea.Msg {
		res, err := api.Scan(ctx, path, rescan)
		return scanDoneMsg{res: res, err: err}
	}, m.startSpinner())
}

func (m *Model) watchDrive(root string) tea.Cmd {
	if m.watcher == nil {
		return nil
	}
	w := m.watcher
	return func() tea.Msg {
		return watchMsg{root: root, err: w.Watch(root)}
	}
}

func (m *Model) waitChange() tea.Cmd {
	if m.watcher == nil {
		return nil
	}
	ch := m.watcher.Changes()
	return func() tea.Msg {
		c, ok := <-ch
		if !ok {
			return nil
		}
		return c
	}
}

func (m *Model) busy() bool {
	_, mounting := m.state.Mounting()
	return mounting || m.state.Loading() || m.scanning
}

func (m *Model) startSpinner() tea.Cmd {
	if m.ticking || !m.busy() {
		return nil
	}
	m.ticking = true
	return m.spinner.Tick
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	if msg.String() == "ctrl+c" {
		m.quitting = true
		return tea.Quit
	}
	if m.mode != inputNone {
		return m.handleInput(msg)
	}

	// the alert is modal
	if m.state.Alert != "" {
		switch msg.String() {
		case "enter", "esc", " ":
			return m.dispatch(viewstate.AlertDismissed{})
		}
		return nil
	}

	if m.state.DetailID != "" {
		switch {
		case key.Matches(msg, m.keys.Back), key.Matches(msg, m.keys.Quit):
			return m.dispatch(viewstate.DetailClosed{})
		case key.Matches(msg, m.keys.Open):
			return m.openFile(m.state.DetailID)
		}
		return nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	case key.Matches(msg, m.keys.Up):
		m.move(-1)
	case key.Matches(msg, m.keys.Down):
		m.move(1)
	case key.Matches(msg, m.keys.Back):
		if m.state.SearchActive {
			return m.dispatch(viewstate.SearchCleared{})
		}
		if m.state.Selecting {
			return m.dispatch(viewstate.SelectionModeToggled{})
		}
	case key.Matches(msg, m.keys.Activate):
		return m.activate()

	case key.Matches(msg, m.keys.Search):
		return m.openInput(inputSearch, m.state.LastQuery)
	case key.Matches(msg, m.keys.Filter):
		return m.openInput(inputFilter, FormatRange(m.state.Filter))
	case key.Matches(msg, m.keys.ClearFilter):
		return m.dispatch(viewstate.FilterChanged{})
	case key.Matches(msg, m.keys.Mount):
		return m.openInput(inputMount, m.state.Session)
	case key.Matches(msg, m.keys.Scan):
		return m.scan(false)
	case key.Matches(msg, m.keys.Rescan):
		return m.scan(true)
	case key.Matches(msg, m.keys.Refresh):
		return m.dispatch(viewstate.RefreshRequested{})

	case key.Matches(msg, m.keys.Grid):
		return m.dispatch(viewstate.ViewModeChanged{Mode: viewstate.Grid})
	case key.Matches(msg, m.keys.Timeline):
		return m.dispatch(viewstate.ViewModeChanged{Mode: viewstate.Timeline})
	case key.Matches(msg, m.keys.Chronicle):
		return m.dispatch(viewstate.ViewModeChanged{Mode: viewstate.Chronicle})
	case key.Matches(msg, m.keys.Select):
		return m.dispatch(viewstate.SelectionModeToggled{})
	case key.Matches(msg, m.keys.ClearPick):
		return m.dispatch(viewstate.ChronicleCleared{})
	}
	return nil
}

func (m *Model) handleInput(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyEsc:
		m.closeInput()
		return nil
	case tea.KeyEnter:
		value := strings.TrimSpace(m.input.Value())
		mode := m.mode
		m.closeInput()
		return m.submit(mode, value)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return cmd
}

func (m *Model) submit(mode inputMode, value string) tea.Cmd {
	switch mode {
	case inputSearch:
		return m.dispatch(viewstate.SearchRequested{Query: value, Filter: m.state.Filter})
	case inputMount:
		if value == "" {
			return nil
		}
		return m.dispatch(viewstate.MountRequested{Path: config.ExpandMountPath(value)})
	case inputFilter:
		filter, err := ParseRange(value)
		if err != nil {
			m.status = err.Error()
			return nil
		}
		return m.dispatch(viewstate.FilterChanged{Filter: filter})
	}
	return nil
}

func (m *Model) openInput(mode inputMode, value string) tea.Cmd {
	m.mode = mode
	m.status = ""
	switch mode {
	case inputSearch:
		m.input.Prompt = "search: "
		m.input.Placeholder = "beach sunset with dog"
	case inputMount:
		m.input.Prompt = "drive: "
		m.input.Placeholder = "~/Pictures"
	case inputFilter:
		m.input.Prompt = "dates: "
		m.input.Placeholder = "2024-01-01..2024-12-31"
	}
	m.input.SetValue(value)
	m.input.CursorEnd()
	return m.input.Focus()
}

func (m *Model) closeInput() {
	m.mode = inputNone
	m.input.Blur()
	m.input.Reset()
}

func (m *Model) activate() tea.Cmd {
	if m.state.SearchActive {
		items := m.state.SearchItems()
		if m.searchCursor >= len(items) {
			return nil
		}
		return m.dispatch(viewstate.ItemActivated{Memory: items[m.searchCursor], Source: viewstate.SourceSearch})
	}

	items := m.visible()
	if m.cursor >= len(items) {
		return nil
	}
	return m.dispatch(viewstate.ItemActivated{Memory: items[m.cursor], Source: viewstate.SourceMain})
}

// visible is the main area content in display order.
func (m *Model) visible() []core.Memory {
	switch m.state.Mode {
	case viewstate.Timeline:
		var out []core.Memory
		for _, g := range m.state.Timeline() {
			out = append(out, g.Items...)
		}
		return out
	case viewstate.Chronicle:
		return m.state.Chronicle()
	default:
		return m.state.Main()
	}
}

func (m *Model) move(delta int) {
	if m.state.SearchActive {
		m.searchCursor += delta
	} else {
		m.cursor += delta
	}
	m.clampCursors()
}

func (m *Model) clampCursors() {
	m.cursor = clamp(m.cursor, len(m.visible()))
	m.searchCursor = clamp(m.searchCursor, len(m.state.SearchItems()))
}

func clamp(i, n int) int {
	if i >= n {
		i = n - 1
	}
	if i < 0 {
		i = 0
	}
	return i
}
