package hub

import (
	"errors"
	"sync"

	"github.com/labstack/gommon/log"
)

var ErrRegistryClosed = errors.New("connection registry closed")

// Channel is a live, authenticated transport bound to one user session.
// Implementations must be comparable (pointer types) because the registry
// matches channels by identity.
type Channel interface {
	// Deliver queues an encoded frame without blocking. It reports false if
	// the frame was dropped.
	Deliver(frame []byte) bool
	Close(reason string)
}

// Registry maps each user to at most one active channel. It is safe for
// concurrent use.
type Registry struct {
	mu       sync.RWMutex
	channels map[string]Channel
	closed   bool
}

func NewRegistry() *Registry {
	return &Registry{channels: make(map[string]Channel)}
}

// Register binds ch to userId, replacing any previous binding. The replaced
// channel, if any, is returned so the caller can retire it.
func (r *Registry) Register(userId string, ch Channel) (Channel, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return nil, ErrRegistryClosed
	}

	previous := r.channels[userId]
	r.channels[userId] = ch
	if previous == ch {
		previous = nil
	}
	log.Debugf("registry: registered channel for user %s (%d active)", userId, len(r.channels))
	return previous, nil
}

// Deregister removes the binding only if ch is the channel currently
// registered for userId, so a stale disconnect cannot evict a newer session.
func (r *Registry) Deregister(userId string, ch Channel) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.channels[userId]
	if !ok || current != ch {
		return false
	}
	delete(r.channels, userId)
	log.Debugf("registry: deregistered channel for user %s (%d active)", userId, len(r.channels))
	return true
}

func (r *Registry) Lookup(userId string) (Channel, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ch, ok := r.channels[userId]
	return ch, ok
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.channels)
}

// Range calls fn for every binding. fn runs outside the lock on a copy of
// the bindings.
func (r *Registry) Range(fn func(userId string, ch Channel)) {
	r.mu.RLock()
	bindings := make(map[string]Channel, len(r.channels))
	for userId, ch := range r.channels {
		bindings[userId] = ch
	}
	r.mu.RUnlock()

	for userId, ch := range bindings {
		fn(userId, ch)
	}
}

// Close closes every registered channel and rejects further registrations.
func (r *Registry) Close(reason string) {
	r.mu.Lock()
	channels := r.channels
	r.channels = make(map[string]Channel)
	r.closed = true
	r.mu.Unlock()

	for _, ch := range channels {
		ch.Close(reason)
	}
	log.Infof("registry: closed %d channels", len(channels))
}
