package tui

import (
	"fmt"
	"strings"

	"github.com/sandevgo/recallbox/internal/core"
)

const rangeSep = ".."

// ParseRange reads "FROM..TO", "FROM..", "..TO" or a bare "FROM". Date tokens
// are passed to the backend as typed.
func ParseRange(s string) (core.DateFilter, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return core.DateFilter{}, nil
	}

	parts := strings.Split(s, rangeSep)
	switch len(parts) {
	case 1:
		return core.DateFilter{From: parts[0]}, nil
	case 2:
		return core.DateFilter{
			From: strings.TrimSpace(parts[0]),
			To:   strings.TrimSpace(parts[1]),
		}, nil
	}
	return core.DateFilter{}, fmt.Errorf("invalid date range %q, want FROM..TO", s)
}

func FormatRange(f core.DateFilter) string {
	if f.IsZero() {
		return ""
	}
	if f.To == "" {
		return f.From + rangeSep
	}
	return f.From + rangeSep + f.To
}
