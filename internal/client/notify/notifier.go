package notify

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/dmitrijs2005/dropvault/internal/logging"
)

// Notifier receives events. Implementations must not call back into the
// component that emitted the event while handling it synchronously.
type Notifier interface {
	Notify(ctx context.Context, e Event)
}

// NotifierFunc adapts a plain function to Notifier.
type NotifierFunc func(ctx context.Context, e Event)

func (f NotifierFunc) Notify(ctx context.Context, e Event) { f(ctx, e) }

// Nop drops every event.
var Nop Notifier = NotifierFunc(func(context.Context, Event) {})

// Multi fans each event out to all notifiers in order.
type Multi []Notifier

func (m Multi) Notify(ctx context.Context, e Event) {
	for _, n := range m {
		n.Notify(ctx, e)
	}
}

// Console prints toasts as single lines on w. Writes are serialized so
// events from timer goroutines never interleave.
type Console struct {
	mu sync.Mutex
	w  io.Writer
}

func NewConsole(w io.Writer) *Console {
	return &Console{w: w}
}

var levelMarks = map[Level]string{
	LevelSuccess: "[ok]",
	LevelInfo:    "[i]",
	LevelError:   "[!]",
}

func (c *Console) Notify(_ context.Context, e Event) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintf(c.w, "%s %s\n", levelMarks[e.Level()], e.Message())
}

// Log records every event as a structured log line.
type Log struct {
	logger logging.Logger
}

func NewLog(l logging.Logger) *Log {
	return &Log{logger: l.With("component", "notify")}
}

func (n *Log) Notify(ctx context.Context, e Event) {
	args := []any{"kind", string(e.Kind)}
	if e.Count != 0 {
		args = append(args, "count", e.Count)
	}
	if e.FileID != "" {
		args = append(args, "file_id", e.FileID)
	}
	if e.Recipient != "" {
		args = append(args, "recipient", e.Recipient)
	}

	if e.Level() == LevelError {
		n.logger.Warn(ctx, e.Message(), args...)
		return
	}
	n.logger.Debug(ctx, e.Message(), args...)
}
