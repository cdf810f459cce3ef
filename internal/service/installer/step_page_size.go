package installer

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandevgo/recallbox/internal/core"
)

const maxPageSize = 500

// PageSizeStep asks how many memories a recent load or search returns.
type PageSizeStep struct {
	input textinput.Model
	err   string
}

func NewPageSizeStep() Step {
	ti := textinput.New()
	ti.Focus()
	ti.CharLimit = 4
	ti.Width = 10
	ti.Placeholder = strconv.Itoa(core.DefaultPageSize)
	return &PageSizeStep{input: ti}
}

func (s *PageSizeStep) Init() tea.Cmd {
	return textinput.Blink
}

func (s *PageSizeStep) Update(msg tea.Msg, state *InstallState, width, height int) (Step, tea.Cmd) {
	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)

	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "enter" {
		val := strings.TrimSpace(s.input.Value())
		if val == "" {
			return nil, nil
		}
		n, err := strconv.Atoi(val)
		if err != nil || n <= 0 || n > maxPageSize {
			s.err = "enter a number between 1 and " + strconv.Itoa(maxPageSize)
			return s, nil
		}
		state.EnvVars["RECALL_PAGE_SIZE"] = strconv.Itoa(n)
		return nil, nil
	}
	return s, cmd
}

func (s *PageSizeStep) View(state *InstallState) string {
	view := "How many memories per page?\n\n" + s.input.View() + "\n\n(press enter to keep the default)\n"
	if s.err != "" {
		view += "\n" + errorStyle.Render(s.err) + "\n"
	}
	return view
}
