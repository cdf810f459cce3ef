package tui

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandevgo/recallbox/internal/core"
	"github.com/sandevgo/recallbox/internal/service/viewstate"
	"github.com/sandevgo/recallbox/internal/service/watch"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	memBeach  = core.Memory{FileID: "b1", Path: "/photos/beach.jpg", Summary: "A **sunny** beach", ExifDate: "2024:07:01 12:00:00", Thumbnail: []byte("jpeg")}
	memDog    = core.Memory{FileID: "d1", Path: "/photos/dog.jpg", Summary: "A dog in the park", ExifDate: "2024:05:03 09:00:00"}
	memHarbor = core.Memory{FileID: "h1", Path: "/photos/harbor.jpg", Summary: "Boats in the harbor", CreatedAt: "2023-11-20"}
)

type fakeAPI struct {
	mu sync.Mutex

	mountedPath string
	recent      map[string][]core.Memory
	results     map[string][]core.Memory
	details     map[string]core.MemoryDetail

	searchErr error

	recentCalls int
	searches    []core.DateFilter
	scans       []string
	opened      []string
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{
		recent:  make(map[string][]core.Memory),
		results: make(map[string][]core.Memory),
		details: make(map[string]core.MemoryDetail),
	}
}

func (f *fakeAPI) Health(ctx context.Context) (core.Health, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return core.Health{Status: "ok", MountedPath: f.mountedPath}, nil
}

func (f *fakeAPI) Mount(ctx context.Context, path string) (core.MountResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.mountedPath = path
	return core.MountResult{Status: "ok", Count: len(f.recent[path])}, nil
}

func (f *fakeAPI) RecentMemories(ctx context.Context, limit, offset int) ([]core.Memory, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.recentCalls++
	return f.recent[f.mountedPath], nil
}

func (f *fakeAPI) SearchMemories(ctx context.Context, query string, limit int, filter core.DateFilter) ([]core.Memory, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.searches = append(f.searches, filter)
	if f.searchErr != nil {
		return nil, f.searchErr
	}
	return f.results[query], nil
}

func (f *fakeAPI) Scan(ctx context.Context, path string, rescan bool) (core.ScanResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.scans = append(f.scans, path)
	return core.ScanResult{Status: "ok", ScannedPath: path, New: 2}, nil
}

func (f *fakeAPI) Memory(ctx context.Context, fileID string) (core.MemoryDetail, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	d, ok := f.details[fileID]
	if !ok {
		return core.MemoryDetail{}, &core.APIError{Method: "GET", Path: "/memory/" + fileID, Status: 404, Detail: "Memory not found"}
	}
	return d, nil
}

func (f *fakeAPI) Open(ctx context.Context, fileID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.opened = append(f.opened, fileID)
	return nil
}

func newTestModel(api *fakeAPI, opts ...Option) *Model {
	return New(context.Background(), viewstate.NewRunner(api, time.Second), api, 50, opts...)
}

// drain runs cmd and feeds every resulting message back into the model
// until no work is left. Spinner ticks are dropped.
func drain(t *testing.T, m *Model, cmd tea.Cmd) {
	t.Helper()
	queue := []tea.Cmd{cmd}
	for steps := 0; len(queue) > 0; steps++ {
		require.Less(t, steps, 1000, "command loop did not settle")
		c := queue[0]
		queue = queue[1:]
		if c == nil {
			continue
		}
		switch msg := c().(type) {
		case nil, spinner.TickMsg:
		case tea.BatchMsg:
			queue = append(queue, msg...)
		default:
			_, next := m.Update(msg)
			queue = append(queue, next)
		}
	}
}

func pressKey(t *testing.T, m *Model, keys ...string) {
	t.Helper()
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		case "up":
			msg = tea.KeyMsg{Type: tea.KeyUp}
		case "down":
			msg = tea.KeyMsg{Type: tea.KeyDown}
		case " ":
			msg = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		_, cmd := m.Update(msg)
		drain(t, m, cmd)
	}
}

func mountedModel(t *testing.T, api *fakeAPI, opts ...Option) *Model {
	t.Helper()
	api.recent["/photos"] = []core.Memory{memBeach, memDog, memHarbor}
	m := newTestModel(api, opts...)
	drain(t, m, m.Init())
	pressKey(t, m, "m", "/photos", "enter")
	require.Equal(t, "/photos", m.State().Session)
	return m
}

func ids(items []core.Memory) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, it.FileID)
	}
	return out
}

func TestModel_InitAdoptsMountedDrive(t *testing.T) {
	api := newFakeAPI()
	api.mountedPath = "/photos"
	api.recent["/photos"] = []core.Memory{memBeach, memDog}

	m := newTestModel(api)
	drain(t, m, m.Init())

	s := m.State()
	assert.Equal(t, "/photos", s.Session)
	assert.Equal(t, []string{"b1", "d1"}, ids(s.Main()))
	assert.False(t, s.Loading())

	view := m.View()
	assert.Contains(t, view, "/photos")
	assert.Contains(t, view, "A sunny beach")
}

func TestModel_InitWithoutDrive(t *testing.T) {
	api := newFakeAPI()
	m := newTestModel(api)
	drain(t, m, m.Init())

	assert.False(t, m.State().Mounted())
	assert.Contains(t, m.View(), "No drive mounted")
	assert.Zero(t, api.recentCalls)
}

func TestModel_MountThroughInput(t *testing.T) {
	api := newFakeAPI()
	m := mountedModel(t, api)

	assert.Equal(t, []string{"b1", "d1", "h1"}, ids(m.State().Main()))
	assert.Equal(t, inputNone, m.mode)
	assert.Equal(t, 1, api.recentCalls)
}

func TestModel_EscCancelsInput(t *testing.T) {
	api := newFakeAPI()
	m := mountedModel(t, api)

	pressKey(t, m, "/", "dog", "esc")
	assert.Equal(t, inputNone, m.mode)
	assert.False(t, m.State().SearchActive)
	assert.Empty(t, api.searches)
}

func TestModel_SearchOverlay(t *testing.T) {
	api := newFakeAPI()
	api.results["dog"] = []core.Memory{memDog}
	m := mountedModel(t, api)

	pressKey(t, m, "/", "dog", "enter")
	s := m.State()
	require.True(t, s.SearchActive)
	assert.Equal(t, []string{"d1"}, ids(s.SearchItems()))
	assert.Contains(t, m.View(), `1 matches for "dog"`)

	pressKey(t, m, "esc")
	s = m.State()
	assert.False(t, s.SearchActive)
	assert.Equal(t, []string{"b1", "d1", "h1"}, ids(s.Main()), "main grid untouched")
}

func TestModel_SearchWithoutMatches(t *testing.T) {
	api := newFakeAPI()
	m := mountedModel(t, api)

	pressKey(t, m, "/", "volcano", "enter")
	assert.True(t, m.State().SearchActive)
	assert.Contains(t, m.View(), "No results found matching your query.")
}

func TestModel_SearchFailureAlert(t *testing.T) {
	api := newFakeAPI()
	api.searchErr = errors.New("connection refused")
	m := mountedModel(t, api)

	pressKey(t, m, "/", "dog", "enter")
	require.NotEmpty(t, m.State().Alert)
	assert.Contains(t, m.View(), "Search failed")

	// alert swallows other keys
	pressKey(t, m, "g")
	assert.NotEmpty(t, m.State().Alert)

	pressKey(t, m, "enter")
	assert.Empty(t, m.State().Alert)
	assert.False(t, m.State().Loading())
}

func TestModel_FilterInput(t *testing.T) {
	api := newFakeAPI()
	m := mountedModel(t, api)

	pressKey(t, m, "f", "2024-01-01..2024-06-30", "enter")
	require.Len(t, api.searches, 1)
	assert.Equal(t, core.DateFilter{From: "2024-01-01", To: "2024-06-30"}, api.searches[0])
	assert.Equal(t, core.DateFilter{From: "2024-01-01", To: "2024-06-30"}, m.State().Filter)
	assert.Contains(t, m.View(), "2024-01-01..2024-06-30")

	pressKey(t, m, "esc", "F")
	assert.True(t, m.State().Filter.IsZero())
	assert.False(t, m.State().SearchActive)
}

func TestModel_FilterInputRejectsGarbage(t *testing.T) {
	api := newFakeAPI()
	m := mountedModel(t, api)

	pressKey(t, m, "f", "a..b..c", "enter")
	assert.Empty(t, api.searches)
	assert.Contains(t, m.status, "invalid date range")
}

func TestModel_SelectionAndChronicle(t *testing.T) {
	api := newFakeAPI()
	m := mountedModel(t, api)

	pressKey(t, m, "v", "enter", "down", "down", " ")
	s := m.State()
	assert.Equal(t, []string{"b1", "h1"}, ids(s.Selection))
	assert.Contains(t, m.View(), "[x]")

	pressKey(t, m, "c")
	s = m.State()
	assert.Equal(t, viewstate.Chronicle, s.Mode)
	assert.False(t, s.Selecting)
	assert.True(t, s.ChronicleFromSelection())
	view := m.View()
	assert.Contains(t, view, "Chronicle: 2 memories from selection")
	assert.Contains(t, view, "Boats in the harbor")

	pressKey(t, m, "x")
	s = m.State()
	assert.Empty(t, s.Selection)
	assert.Equal(t, []string{"b1", "d1", "h1"}, ids(s.Chronicle()))
}

func TestModel_DetailOverlay(t *testing.T) {
	api := newFakeAPI()
	api.details["d1"] = core.MemoryDetail{FileID: "d1", Caption: "a brown dog chasing a ball"}
	m := mountedModel(t, api)

	pressKey(t, m, "down", "enter")
	require.Equal(t, "d1", m.State().DetailID)
	require.NotNil(t, m.detail)
	view := m.View()
	assert.Contains(t, view, "dog.jpg")
	assert.Contains(t, view, "a brown dog chasing a ball")

	pressKey(t, m, "o")
	assert.Equal(t, []string{"d1"}, api.opened)
	assert.Contains(t, m.status, "Opened /photos/dog.jpg")

	pressKey(t, m, "esc")
	assert.Empty(t, m.State().DetailID)
	assert.Nil(t, m.detail)
}

func TestModel_DetailFromSearchKeepsOverlay(t *testing.T) {
	api := newFakeAPI()
	api.results["beach"] = []core.Memory{memBeach}
	m := mountedModel(t, api)

	pressKey(t, m, "/", "beach", "enter", "enter")
	s := m.State()
	assert.Equal(t, "b1", s.DetailID)
	assert.True(t, s.SearchActive)
	assert.Contains(t, m.View(), "jpeg, 0.0 KB")
	assert.Contains(t, m.View(), "details unavailable")

	pressKey(t, m, "esc")
	assert.True(t, m.State().SearchActive)
}

func TestModel_StaleDetailIgnored(t *testing.T) {
	api := newFakeAPI()
	m := mountedModel(t, api)

	m.Update(detailMsg{id: "other", detail: core.MemoryDetail{Caption: "late"}})
	assert.Nil(t, m.detail)
}

func TestModel_ScanRefreshesRecent(t *testing.T) {
	api := newFakeAPI()
	m := mountedModel(t, api)
	before := api.recentCalls

	pressKey(t, m, "s")
	assert.Equal(t, []string{"/photos"}, api.scans)
	assert.Equal(t, before+1, api.recentCalls)
	assert.False(t, m.scanning)
	assert.Contains(t, m.View(), "Scan complete: 2 new")
}

func TestModel_ViewModes(t *testing.T) {
	api := newFakeAPI()
	m := mountedModel(t, api)

	pressKey(t, m, "t")
	assert.Equal(t, viewstate.Timeline, m.State().Mode)
	view := m.View()
	assert.Contains(t, view, "2024-07-01")
	assert.Contains(t, view, "2023-11-20")

	// timeline order is newest day first
	pressKey(t, m, "down", "enter")
	assert.Equal(t, "d1", m.State().DetailID)

	pressKey(t, m, "esc", "g")
	assert.Equal(t, viewstate.Grid, m.State().Mode)
}

type fakeWatcher struct {
	roots   []string
	changes chan watch.Change
}

func (w *fakeWatcher) Watch(root string) error {
	w.roots = append(w.roots, root)
	return nil
}

func (w *fakeWatcher) Changes() <-chan watch.Change {
	return w.changes
}

func TestModel_DriveChangeHint(t *testing.T) {
	api := newFakeAPI()
	// closed so the pending receive in Init returns at once
	ch := make(chan watch.Change)
	close(ch)
	w := &fakeWatcher{changes: ch}
	m := mountedModel(t, api, WithWatcher(w))
	assert.Equal(t, []string{"/photos"}, w.roots)

	m.Update(watch.Change{Root: "/elsewhere", Paths: []string{"/elsewhere/a.jpg"}})
	assert.False(t, m.driveDirty)

	m.Update(watch.Change{Root: "/photos", Paths: []string{"/photos/new.jpg"}})
	assert.True(t, m.driveDirty)
	assert.Contains(t, m.View(), "New files on the drive")

	pressKey(t, m, "s")
	assert.False(t, m.driveDirty)
}

func TestParseRange(t *testing.T) {
	tests := []struct {
		in      string
		want    core.DateFilter
		wantErr bool
	}{
		{in: "", want: core.DateFilter{}},
		{in: "2024-01-01", want: core.DateFilter{From: "2024-01-01"}},
		{in: "2024-01-01..", want: core.DateFilter{From: "2024-01-01"}},
		{in: "..2024-12-31", want: core.DateFilter{To: "2024-12-31"}},
		{in: " 2024-01-01 .. 2024-12-31 ", want: core.DateFilter{From: "2024-01-01", To: "2024-12-31"}},
		{in: "1..2..3", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseRange(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			if !got.IsZero() {
				back, err := ParseRange(FormatRange(got))
				require.NoError(t, err)
				assert.Equal(t, got, back)
			}
		})
	}
}
