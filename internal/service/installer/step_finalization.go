package installer

import (
	tea "github.com/charmbracelet/bubbletea"
)

// FinalizationStep fills in defaults for everything the user skipped
type FinalizationStep struct{}

func NewFinalizationStep() Step {
	return &FinalizationStep{}
}

func (s *FinalizationStep) Init() tea.Cmd {
	return func() tea.Msg { return nextMsg{} }
}

func (s *FinalizationStep) Update(msg tea.Msg, state *InstallState, width, height int) (Step, tea.Cmd) {
	if state.EnvVars["RECALL_API_URL"] == "" {
		state.EnvVars["RECALL_API_URL"] = defaultAPIURL
	}
	if state.EnvVars["RECALL_WATCH_DRIVE"] == "" {
		state.EnvVars["RECALL_WATCH_DRIVE"] = "true"
	}
	if state.EnvVars["RECALL_DEBUG"] == "" {
		state.EnvVars["RECALL_DEBUG"] = "0"
	}
	return nil, nil
}

func (s *FinalizationStep) View(state *InstallState) string {
	return "Finalizing configuration...\n"
}
