// Package events carries host lifecycle notifications to the app.
package events

import (
	"context"
	"fmt"
	"sync"
)

type Event string

const (
	Show  Event = "show"
	Hide  Event = "hide"
	Sleep Event = "sleep"
	Wake  Event = "wake"

	// ToggleSleep flips between sleep and wake against the state the app
	// holds when the event is applied, not when it was published.
	ToggleSleep Event = "toggle-sleep"
)

// Parse accepts the event names used by the web API and the CLI.
func Parse(name string) (Event, error) {
	switch ev := Event(name); ev {
	case Show, Hide, Sleep, Wake, ToggleSleep:
		return ev, nil
	default:
		return "", fmt.Errorf("unknown lifecycle event %q", name)
	}
}

type Source interface {
	Start(ctx context.Context) error
	Stop() error
	Events() <-chan Event
}

// Channel is a Source fed by Publish. Publishing never blocks; when the
// buffer is full the event is dropped and Publish returns false.
type Channel struct {
	ch     chan Event
	mu     sync.Mutex
	closed bool
}

func NewChannel(buffer int) *Channel {
	if buffer <= 0 {
		buffer = 8
	}
	return &Channel{ch: make(chan Event, buffer)}
}

func (c *Channel) Start(ctx context.Context) error { return nil }

func (c *Channel) Stop() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.closed {
		c.closed = true
		close(c.ch)
	}
	return nil
}

func (c *Channel) Events() <-chan Event { return c.ch }

func (c *Channel) Publish(ev Event) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return false
	}
	select {
	case c.ch <- ev:
		return true
	default:
		return false
	}
}
