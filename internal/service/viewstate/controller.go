package viewstate

import (
	"context"
	"sync"
)

// Controller drives the reducer synchronously: effects run inline and their
// events are fed back until the state settles. The TUI runs effects
// asynchronously instead; the controller serves one-shot commands.
type Controller struct {
	mu     sync.Mutex
	state  State
	runner *Runner
}

func NewController(runner *Runner, pageSize int) *Controller {
	return &Controller{
		state:  New(pageSize),
		runner: runner,
	}
}

func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func (c *Controller) Dispatch(ctx context.Context, ev Event) State {
	c.mu.Lock()
	defer c.mu.Unlock()

	queue := []Event{ev}
	for len(queue) > 0 {
		next := queue[0]
		queue = queue[1:]

		var effects []Effect
		c.state, effects = Reduce(c.state, next)
		for _, eff := range effects {
			queue = append(queue, c.runner.Run(ctx, eff))
		}
	}
	return c.state
}
