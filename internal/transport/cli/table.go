package cli

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/sandevgo/recallbox/internal/core"
	"github.com/sandevgo/recallbox/internal/service/viewstate"
	"github.com/sandevgo/recallbox/pkg/conv"
)

const summaryWidth = 60

var (
	titleColor = color.New(color.Bold, color.Underline)
	dayColor   = color.New(color.FgGreen, color.Bold)
	dimColor   = color.New(color.FgHiBlack)
)

// Printer writes memories as aligned plain-text tables for the one-shot
// commands.
type Printer struct {
	out io.Writer
}

func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

func (p *Printer) Title(format string, args ...any) {
	_, _ = fmt.Fprintln(p.out, titleColor.Sprintf(format, args...))
}

// Memories prints one row per memory. Scores are shown for search results.
func (p *Printer) Memories(items []core.Memory, withScore bool) {
	if len(items) == 0 {
		_, _ = fmt.Fprintln(p.out, dimColor.Sprint("no memories"))
		return
	}

	tbl := newTable()
	for _, m := range items {
		row := []any{m.FileID, viewstate.DayOf(m.Date()), filepath.Base(m.Path), summaryLine(m)}
		if withScore {
			row = append(row, fmt.Sprintf("%.3f", m.Score))
		}
		tbl.AddRow(row...)
	}
	_, _ = fmt.Fprintln(p.out, tbl)
}

// Timeline prints memories grouped by capture day.
func (p *Printer) Timeline(groups []viewstate.DayGroup) {
	if len(groups) == 0 {
		_, _ = fmt.Fprintln(p.out, dimColor.Sprint("no memories"))
		return
	}
	for _, g := range groups {
		_, _ = fmt.Fprintln(p.out, dayColor.Sprint(g.Day))
		tbl := newTable()
		for _, m := range g.Items {
			tbl.AddRow("", m.FileID, filepath.Base(m.Path), summaryLine(m))
		}
		_, _ = fmt.Fprintln(p.out, tbl)
	}
}

// Chronicle prints full summaries as a numbered story.
func (p *Printer) Chronicle(items []core.Memory) {
	for i, m := range items {
		_, _ = fmt.Fprintf(p.out, "%d. %s  %s\n", i+1, dayColor.Sprint(viewstate.DayOf(m.Date())), filepath.Base(m.Path))
		text := conv.MarkdownToText(m.Summary)
		if text == "" {
			text = dimColor.Sprint("(no summary yet)")
		}
		for _, line := range strings.Split(text, "\n") {
			_, _ = fmt.Fprintln(p.out, "   "+line)
		}
		_, _ = fmt.Fprintln(p.out)
	}
}

func (p *Printer) Detail(d core.MemoryDetail) {
	p.Fields(
		"file_id", d.FileID,
		"path", d.Path,
		"date", viewstate.DayOf(firstNonEmpty(d.ExifDate, d.CreatedAt.String())),
		"modified", d.ModifiedAt.String(),
		"hash", d.Hash,
		"vision", d.VisionStatus,
		"tags", d.Tags,
		"caption", d.Caption,
		"summary", conv.MarkdownToText(d.MemorySummary),
		"text", conv.OneLine(d.OCRText, 4*summaryWidth),
	)
}

func (p *Printer) Vision(cfg core.VisionConfig) {
	p.Fields(
		"endpoint", cfg.EndpointURL,
		"model", cfg.ModelName,
		"api_key", maskKey(cfg.APIKey),
	)
}

// Fields prints label/value pairs, skipping empty values.
func (p *Printer) Fields(pairs ...string) {
	tbl := newTable()
	tbl.Wrap = true
	tbl.MaxColWidth = 80
	for i := 0; i+1 < len(pairs); i += 2 {
		if pairs[i+1] == "" {
			continue
		}
		tbl.AddRow(pairs[i]+":", pairs[i+1])
	}
	_, _ = fmt.Fprintln(p.out, tbl)
}

func newTable() *uitable.Table {
	tbl := uitable.New()
	tbl.Separator = "  "
	return tbl
}

func summaryLine(m core.Memory) string {
	return conv.OneLine(conv.MarkdownToText(m.Summary), summaryWidth)
}

func maskKey(key string) string {
	if len(key) <= 8 {
		return strings.Repeat("*", len(key))
	}
	return key[:4] + strings.Repeat("*", len(key)-8) + key[len(key)-4:]
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
