package installer

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// WatchStep toggles the drive watcher that suggests rescans.
type WatchStep struct {
	choices []string
	cursor  int
}

func NewWatchStep() Step {
	return &WatchStep{
		choices: []string{"Yes, hint me when new photos appear", "No"},
		cursor:  0,
	}
}

func (s *WatchStep) Init() tea.Cmd {
	return nil
}

func (s *WatchStep) Update(msg tea.Msg, state *InstallState, width, height int) (Step, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if s.cursor > 0 {
				s.cursor--
			}
		case "down", "j":
			if s.cursor < len(s.choices)-1 {
				s.cursor++
			}
		case "enter":
			state.EnvVars["RECALL_WATCH_DRIVE"] = fmt.Sprint(s.cursor == 0)
			return nil, nil
		}
	}
	return s, nil
}

func (s *WatchStep) View(state *InstallState) string {
	var b strings.Builder
	b.WriteString("Watch the mounted drive for new photos?\n\n")
	for i, choice := range s.choices {
		if s.cursor == i {
			b.WriteString(selStyle.Render("❯ "+choice) + "\n")
		} else {
			b.WriteString(itemStyle.Render("  "+choice) + "\n")
		}
	}
	b.WriteString("\n(press ctrl+c to quit)\n")
	return b.String()
}
