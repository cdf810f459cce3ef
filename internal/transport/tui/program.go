package tui

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandevgo/recallbox/pkg/log"
)

// Program runs the browsing window as a service. Quitting the window stops
// the rest of the group.
type Program struct {
	program *tea.Program
	stop    context.CancelFunc
}

func NewProgram(ctx context.Context, m *Model, stop context.CancelFunc) *Program {
	return &Program{
		program: tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx)),
		stop:    stop,
	}
}

func (p *Program) Start(ctx context.Context) error {
	defer p.stop()

	_, err := p.program.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	if err != nil {
		return err
	}
	log.FromCtx(ctx).Debug().Msg("window closed")
	return nil
}

func (p *Program) Shutdown(ctx context.Context) error {
	p.program.Quit()
	return nil
}
