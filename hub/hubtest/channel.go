// Package hubtest provides an in-memory hub.Channel for tests.
package hubtest

import (
	"encoding/json"
	"sync"
)

type Frame struct {
	Type string            `json:"type"`
	Data []json.RawMessage `json:"data"`
}

// Channel records every delivered frame.
type Channel struct {
	mu          sync.Mutex
	frames      []Frame
	closed      bool
	closeReason string
	// Reject makes Deliver drop frames.
	Reject bool
}

func NewChannel() *Channel {
	return &Channel{}
}

func (c *Channel) Deliver(frame []byte) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.Reject || c.closed {
		return false
	}
	var f Frame
	if err := json.Unmarshal(frame, &f); err != nil {
		return false
	}
	c.frames = append(c.frames, f)
	return true
}

func (c *Channel) Close(reason string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	c.closeReason = reason
}

func (c *Channel) Closed() (bool, string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed, c.closeReason
}

func (c *Channel) Frames() []Frame {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Frame(nil), c.frames...)
}

// Types lists the event names received so far, in order.
func (c *Channel) Types() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	types := make([]string, 0, len(c.frames))
	for _, f := range c.frames {
		types = append(types, f.Type)
	}
	return types
}

// Last returns the most recent frame with the given type.
func (c *Channel) Last(eventType string) (Frame, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := len(c.frames) - 1; i >= 0; i-- {
		if c.frames[i].Type == eventType {
			return c.frames[i], true
		}
	}
	return Frame{}, false
}

// Arg decodes the i-th argument of the frame into v.
func (f Frame) Arg(i int, v any) error {
	return json.Unmarshal(f.Data[i], v)
}
