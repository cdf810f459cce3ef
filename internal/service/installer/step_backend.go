package installer

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandevgo/recallbox/internal/core"
)

const backendCheckTimeout = 5 * time.Second

// HealthCheck probes the backend at baseURL.
type HealthCheck func(ctx context.Context, baseURL string) (core.Health, error)

type healthMsg struct {
	health core.Health
	err    error
}

// BackendCheckStep probes the configured URL before anything is saved. An
// unreachable backend is reported but does not block the setup.
type BackendCheckStep struct {
	check   HealthCheck
	spinner spinner.Model
	started bool
	result  *healthMsg
}

func NewBackendCheckStep(check HealthCheck) Step {
	return &BackendCheckStep{
		check:   check,
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot)),
	}
}

func (s *BackendCheckStep) Init() tea.Cmd {
	return s.spinner.Tick
}

func (s *BackendCheckStep) probe(baseURL string) tea.Cmd {
	check := s.check
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), backendCheckTimeout)
		defer cancel()
		h, err := check(ctx, baseURL)
		return healthMsg{health: h, err: err}
	}
}

func (s *BackendCheckStep) Update(msg tea.Msg, state *InstallState, width, height int) (Step, tea.Cmd) {
	if s.check == nil {
		return nil, nil
	}

	var cmds []tea.Cmd
	if !s.started {
		s.started = true
		cmds = append(cmds, s.probe(state.EnvVars["RECALL_API_URL"]))
	}

	switch msg := msg.(type) {
	case healthMsg:
		s.result = &msg
		if msg.err == nil {
			return nil, nil
		}

	case spinner.TickMsg:
		if s.result == nil {
			var cmd tea.Cmd
			s.spinner, cmd = s.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}

	case tea.KeyMsg:
		if s.result != nil && msg.String() == "enter" {
			return nil, nil
		}
	}
	return s, tea.Batch(cmds...)
}

func (s *BackendCheckStep) View(state *InstallState) string {
	url := state.EnvVars["RECALL_API_URL"]
	if s.result == nil {
		return fmt.Sprintf("%s Checking backend at %s...\n", s.spinner.View(), url)
	}
	if s.result.err != nil {
		return errorStyle.Render(fmt.Sprintf("Backend not reachable: %v", s.result.err)) +
			"\n\nStart the backend later, settings are saved anyway.\n(press enter to continue, ctrl+c to quit)\n"
	}
	return "Backend is up.\n"
}
