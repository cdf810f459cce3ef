package tui

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/sandevgo/recallbox/internal/core"
	"github.com/sandevgo/recallbox/internal/service/ui"
	"github.com/sandevgo/recallbox/internal/service/viewstate"
	"github.com/sandevgo/recallbox/pkg/conv"
)

var (
	headerStyle = ui.TitleStyle.MarginBottom(0)
	dimStyle    = ui.DescStyle
	focusStyle  = ui.AccentStyle
	dayStyle    = ui.UsageStyle.Bold(true)
	tabStyle    = lipgloss.NewStyle().Padding(0, 1)
	activeTab   = ui.AccentStyle.Padding(0, 1).Underline(true)
	hintStyle   = ui.FlagStyle

	overlayStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("6")).
			Padding(0, 1)
	alertStyle = overlayStyle.BorderForeground(lipgloss.Color("1"))
)

// chrome is the number of lines around the body.
const chrome = 9

func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n\n")

	switch {
	case m.state.Alert != "":
		b.WriteString(alertStyle.Render(ui.ErrorStyle.Render(m.state.Alert) + "\n\n" + dimStyle.Render("enter to dismiss")))
	case m.state.DetailID != "":
		b.WriteString(m.renderDetail())
	case m.state.SearchActive:
		b.WriteString(m.renderSearch())
	default:
		b.WriteString(m.renderMain())
	}
	b.WriteString("\n\n")

	if line := m.statusLine(); line != "" {
		b.WriteString(line + "\n")
	}
	if m.mode != inputNone {
		b.WriteString(m.input.View() + "\n")
	}
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m *Model) renderHeader() string {
	title := headerStyle.Render(core.RecallName)

	drive := dimStyle.Render("no drive mounted")
	if path, ok := m.state.Mounting(); ok {
		drive = "mounting " + path
	} else if m.state.Mounted() {
		drive = m.state.Session
	}
	if m.busy() {
		drive += " " + m.spinner.View()
	}

	tabs := make([]string, 0, 3)
	for _, mode := range []viewstate.ViewMode{viewstate.Grid, viewstate.Timeline, viewstate.Chronicle} {
		label := mode.String()
		if mode == viewstate.Chronicle && len(m.state.Selection) > 0 {
			label = fmt.Sprintf("%s (%d)", label, len(m.state.Selection))
		}
		if mode == m.state.Mode {
			tabs = append(tabs, activeTab.Render(label))
		} else {
			tabs = append(tabs, tabStyle.Render(label))
		}
	}

	var flags []string
	if m.state.Selecting {
		flags = append(flags, hintStyle.Render("selecting"))
	}
	if !m.state.Filter.IsZero() {
		flags = append(flags, hintStyle.Render("dates "+FormatRange(m.state.Filter)))
	}

	line := title + "  " + drive + "\n" + lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
	if len(flags) > 0 {
		line += "  " + strings.Join(flags, "  ")
	}
	return line
}

func (m *Model) statusLine() string {
	var parts []string
	if m.driveDirty && !m.scanning {
		parts = append(parts, hintStyle.Render("New files on the drive. Press s to scan."))
	}
	switch {
	case m.status != "":
		parts = append(parts, m.status)
	case m.state.Notice != "":
		parts = append(parts, ui.ErrorStyle.Render(m.state.Notice))
	}
	return strings.Join(parts, "  ")
}

func (m *Model) renderMain() string {
	if !m.state.Mounted() {
		if path, ok := m.state.Mounting(); ok {
			return dimStyle.Render("Mounting " + path + "...")
		}
		return "No drive mounted. Press m to mount a photo folder."
	}

	items := m.visible()
	if len(items) == 0 {
		if m.state.RecentLoading() {
			return dimStyle.Render("Loading memories...")
		}
		return "No memories indexed yet. Press s to scan the drive."
	}

	switch m.state.Mode {
	case viewstate.Timeline:
		return m.renderTimeline()
	case viewstate.Chronicle:
		return m.renderChronicle()
	default:
		lines := make([]string, 0, len(items))
		for i, mem := range items {
			lines = append(lines, m.row(mem, i == m.cursor, true))
		}
		return strings.Join(m.window(lines, m.cursor), "\n")
	}
}

func (m *Model) renderTimeline() string {
	var lines []string
	focus, idx := 0, 0
	for _, g := range m.state.Timeline() {
		lines = append(lines, dayStyle.Render(g.Day))
		for _, mem := range g.Items {
			if idx == m.cursor {
				focus = len(lines)
			}
			lines = append(lines, m.row(mem, idx == m.cursor, false))
			idx++
		}
	}
	return strings.Join(m.window(lines, focus), "\n")
}

func (m *Model) renderChronicle() string {
	items := m.state.Chronicle()
	source := "from results"
	if m.state.ChronicleFromSelection() {
		source = "from selection"
	}

	var lines []string
	lines = append(lines, dayStyle.Render(fmt.Sprintf("Chronicle: %d memories %s", len(items), source)), "")

	width := m.textWidth()
	focus := 0
	for i, mem := range items {
		marker := "  "
		if i == m.cursor {
			marker = focusStyle.Render("❯ ")
			focus = len(lines)
		}
		head := fmt.Sprintf("%s%d. %s  %s", marker, i+1, viewstate.DayOf(mem.Date()), filepath.Base(mem.Path))
		if m.state.Selecting && m.state.IsSelected(mem.FileID) {
			head += " " + hintStyle.Render("[x]")
		}
		lines = append(lines, head)

		text := m.summary(mem)
		if text == "" {
			text = dimStyle.Render("(no summary yet)")
		}
		body := lipgloss.NewStyle().Width(width).PaddingLeft(5).Render(text)
		lines = append(lines, strings.Split(body, "\n")...)
		if mem.Tags != "" {
			lines = append(lines, "     "+dimStyle.Render(mem.Tags))
		}
		lines = append(lines, "")
	}
	return strings.Join(m.window(lines, focus), "\n")
}

func (m *Model) renderSearch() string {
	items := m.state.SearchItems()

	query := m.state.LastQuery
	if query == "" {
		query = "any"
	}
	title := fmt.Sprintf("Search results: %d matches for %q", len(items), query)
	if !m.state.Filter.IsZero() {
		title += " within " + FormatRange(m.state.Filter)
	}

	var lines []string
	lines = append(lines, dayStyle.Render(title), "")

	switch {
	case len(items) == 0 && m.state.SearchLoading():
		lines = append(lines, dimStyle.Render("Searching..."))
	case len(items) == 0:
		lines = append(lines, "No results found matching your query.")
	default:
		for i, mem := range items {
			lines = append(lines, m.row(mem, i == m.searchCursor, true)+dimStyle.Render(fmt.Sprintf("  %.2f", mem.Score)))
		}
	}

	focus := m.searchCursor + 2
	return overlayStyle.Render(strings.Join(m.window(lines, focus), "\n"))
}

func (m *Model) renderDetail() string {
	mem, _ := m.state.Detail()

	var b strings.Builder
	name := filepath.Base(mem.Path)
	if mem.Path == "" {
		name = mem.FileID
	}
	b.WriteString(dayStyle.Render(name) + "\n")
	if mem.Path != "" {
		b.WriteString(dimStyle.Render(mem.Path) + "\n")
	}
	b.WriteString("\n")

	field := func(label, value string) {
		if value == "" {
			return
		}
		b.WriteString(fmt.Sprintf("%-8s %s\n", label, value))
	}
	field("date", viewstate.DayOf(mem.Date()))
	field("vision", mem.VisionStatus)
	field("tags", mem.Tags)
	if thumb, ok := m.state.Thumbnail(mem.FileID); ok {
		field("preview", fmt.Sprintf("jpeg, %.1f KB", float64(len(thumb))/1024))
	} else {
		field("preview", "none")
	}

	width := m.textWidth()
	if text := m.summary(mem); text != "" {
		b.WriteString("\n" + lipgloss.NewStyle().Width(width).Render(text) + "\n")
	}

	switch {
	case m.detailErr != nil:
		b.WriteString("\n" + ui.ErrorStyle.Render("details unavailable: "+m.detailErr.Error()) + "\n")
	case m.detail != nil:
		d := m.detail
		if d.Caption != "" {
			b.WriteString("\n" + lipgloss.NewStyle().Width(width).Render("caption: "+d.Caption) + "\n")
		}
		if d.OCRText != "" {
			b.WriteString("\n" + lipgloss.NewStyle().Width(width).Render("text: "+conv.OneLine(d.OCRText, 4*width)) + "\n")
		}
		if d.ModifiedAt != "" {
			b.WriteString(dimStyle.Render("modified "+d.ModifiedAt.String()) + "\n")
		}
	default:
		b.WriteString("\n" + dimStyle.Render("loading details...") + "\n")
	}

	b.WriteString("\n" + dimStyle.Render("o open file · esc close"))
	return overlayStyle.Render(b.String())
}

// row renders one memory on a single line.
func (m *Model) row(mem core.Memory, focused, withDay bool) string {
	prefix := "  "
	if focused {
		prefix = "❯ "
	}
	if m.state.Selecting {
		if m.state.IsSelected(mem.FileID) {
			prefix += "[x] "
		} else {
			prefix += "[ ] "
		}
	}
	day := ""
	if withDay {
		day = fmt.Sprintf("%-10s  ", viewstate.DayOf(mem.Date()))
	}

	text := m.summary(mem)
	if text == "" {
		text = filepath.Base(mem.Path)
	}
	text = conv.OneLine(text, m.textWidth()-len(day)-len(prefix))

	if focused {
		return focusStyle.Render(prefix+day) + text
	}
	return prefix + dimStyle.Render(day) + text
}

// summary caches the rendered summary text per memory.
func (m *Model) summary(mem core.Memory) string {
	if text, ok := m.summaries[mem.FileID]; ok {
		return text
	}
	text := conv.MarkdownToText(mem.Summary)
	m.summaries[mem.FileID] = text
	return text
}

func (m *Model) textWidth() int {
	if m.width <= 0 {
		return 80
	}
	if w := m.width - 8; w > 20 {
		return w
	}
	return 20
}

// window keeps the focused line in view when the list is taller than the
// terminal.
func (m *Model) window(lines []string, focus int) []string {
	rows := m.height - chrome
	if m.height <= 0 || rows <= 0 || len(lines) <= rows {
		return lines
	}
	start := focus - rows/2
	if start < 0 {
		start = 0
	}
	if start+rows > len(lines) {
		start = len(lines) - rows
	}
	return lines[start : start+rows]
}
