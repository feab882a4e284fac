// Package command runs panel work off the update loop and traces each request.
package command

import (
	"context"
	"fmt"
	"time"

	"github.com/atomicstack/tabdeck/internal/logging/events"
	tea "github.com/charmbracelet/bubbletea"
)

// DefaultTimeout bounds a single request.
const DefaultTimeout = 5 * time.Second

// Request encapsulates one unit of panel work.
type Request struct {
	ID    string
	Label string
	Run   func(ctx context.Context) tea.Msg
}

// Bus wraps requests into Bubble Tea commands.
type Bus struct {
	ctx     context.Context
	timeout time.Duration
}

// New initialises a bus whose requests derive from ctx.
func New(ctx context.Context) *Bus {
	if ctx == nil {
		ctx = context.Background()
	}
	return &Bus{ctx: ctx, timeout: DefaultTimeout}
}

// WithTimeout returns a copy of the bus with a different per-request limit.
func (b *Bus) WithTimeout(d time.Duration) *Bus {
	dup := *b
	dup.timeout = d
	return &dup
}

// Execute wraps a request into a Bubble Tea command while emitting trace logs.
func (b *Bus) Execute(req Request) tea.Cmd {
	events.Command.Queue(req.ID, req.Label)
	return func() tea.Msg {
		if req.Run == nil {
			events.Command.Skip(req.ID, req.Label)
			return nil
		}
		ctx := b.ctx
		if b.timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, b.timeout)
			defer cancel()
		}
		msg := req.Run(ctx)
		events.Command.Result(req.ID, req.Label, fmt.Sprintf("%T", msg))
		return msg
	}
}
