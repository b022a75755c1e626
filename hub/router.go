package hub

import (
	"errors"
	"slices"

	"github.com/labstack/gommon/log"
)

var ErrDeliveryDropped = errors.New("delivery dropped")

// Broadcaster fans events out to users. Delivery is best effort: users
// without a registered channel miss the event.
type Broadcaster interface {
	Send(audience []string, event string, args ...any)
	SendAll(event string, args ...any)
}

// Router is the Broadcaster backed by a Registry.
type Router struct {
	registry *Registry
}

var _ Broadcaster = (*Router)(nil)

func NewRouter(registry *Registry) *Router {
	return &Router{registry: registry}
}

func (r *Router) Send(audience []string, event string, args ...any) {
	frame, err := EncodeEvent(event, args...)
	if err != nil {
		log.Errorf("router: failed to encode %s: %v", event, err)
		return
	}

	sent := make([]string, 0, len(audience))
	for _, userId := range audience {
		if userId == "" || slices.Contains(sent, userId) {
			continue
		}
		sent = append(sent, userId)

		ch, ok := r.registry.Lookup(userId)
		if !ok {
			log.Debugf("router: %s not delivered to offline user %s", event, userId)
			continue
		}
		if !ch.Deliver(frame) {
			log.Warnf("router: %s dropped for user %s", event, userId)
		}
	}
}

func (r *Router) SendAll(event string, args ...any) {
	frame, err := EncodeEvent(event, args...)
	if err != nil {
		log.Errorf("router: failed to encode %s: %v", event, err)
		return
	}

	r.registry.Range(func(userId string, ch Channel) {
		if !ch.Deliver(frame) {
			log.Warnf("router: %s dropped for user %s", event, userId)
		}
	})
}
