// Package notify is the user-visible side channel: every remote-backed
// operation reports its outcome here exactly once.
package notify

import (
	"fmt"
	"io"
	"sync"
)

type Notifier interface {
	Success(msg string)
	Info(msg string)
	Error(msg string)
}

// Console writes notifications to a writer, one line each.
type Console struct {
	mu  sync.Mutex
	out io.Writer
}

func NewConsole(out io.Writer) *Console {
	return &Console{out: out}
}

func (c *Console) Success(msg string) { c.write("✓", msg) }
func (c *Console) Info(msg string)    { c.write("•", msg) }
func (c *Console) Error(msg string)   { c.write("✗", msg) }

func (c *Console) write(prefix, msg string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintf(c.out, "%s %s\n", prefix, msg)
}

// Multi fans a notification out to several notifiers.
type Multi []Notifier

func (m Multi) Success(msg string) {
	for _, n := range m {
		n.Success(msg)
	}
}

func (m Multi) Info(msg string) {
	for _, n := range m {
		n.Info(msg)
	}
}

func (m Multi) Error(msg string) {
	for _, n := range m {
		n.Error(msg)
	}
}
