package installer

import (
	"net/url"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

const defaultAPIURL = "http://127.0.0.1:8000"

// APIURLStep asks where the RecallBox backend listens.
type APIURLStep struct {
	input textinput.Model
	err   string
}

func NewAPIURLStep() Step {
	ti := textinput.New()
	ti.Focus()
	ti.Placeholder = defaultAPIURL
	ti.Width = 50
	return &APIURLStep{input: ti}
}

func (s *APIURLStep) Init() tea.Cmd {
	return textinput.Blink
}

func (s *APIURLStep) Update(msg tea.Msg, state *InstallState, width, height int) (Step, tea.Cmd) {
	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)

	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "enter" {
		val := strings.TrimRight(strings.TrimSpace(s.input.Value()), "/")
		if val == "" {
			val = defaultAPIURL
		}
		u, err := url.Parse(val)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			s.err = "enter an http(s) URL such as " + defaultAPIURL
			return s, nil
		}
		state.EnvVars["RECALL_API_URL"] = val
		return nil, nil
	}
	return s, cmd
}

func (s *APIURLStep) View(state *InstallState) string {
	view := "Enter the RecallBox backend URL:\n\n" + s.input.View() + "\n\n(press enter to confirm, empty for the default)\n"
	if s.err != "" {
		view += "\n" + errorStyle.Render(s.err) + "\n"
	}
	return view
}
