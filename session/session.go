// Package session drives a connection from authentication to disconnect:
// verify the credential, register the channel, send the snapshot, and
// deregister on close.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/labstack/gommon/log"
	"github.com/syncnotes/syncnotes/auth"
	"github.com/syncnotes/syncnotes/hub"
	"github.com/syncnotes/syncnotes/models"
)

type State int

const (
	Connecting State = iota
	Authenticating
	Active
	Disconnected
)

func (s State) String() string {
	switch s {
	case Connecting:
		return "Connecting"
	case Authenticating:
		return "Authenticating"
	case Active:
		return "Active"
	case Disconnected:
		return "Disconnected"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// SupersededReason is the close reason sent to a channel replaced by a newer
// connection of the same user.
const SupersededReason = "Superseded"

var ErrUnauthorized = errors.New("unauthorized")

// Snapshotter loads everything a user may see.
type Snapshotter interface {
	Snapshot(ctx context.Context, userId string) (models.Snapshot, error)
}

type Controller struct {
	registry    *hub.Registry
	snapshotter Snapshotter
	verifier    auth.Verifier
}

func NewController(registry *hub.Registry, snapshotter Snapshotter, verifier auth.Verifier) *Controller {
	return &Controller{
		registry:    registry,
		snapshotter: snapshotter,
		verifier:    verifier,
	}
}

// Session is one lifecycle of one channel. A reconnect is a new Session.
type Session struct {
	controller *Controller
	channel    hub.Channel

	mu     sync.Mutex
	state  State
	userId string
}

// Open starts a session for a freshly opened channel.
func (c *Controller) Open(ch hub.Channel) *Session {
	return &Session{controller: c, channel: ch, state: Connecting}
}

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// UserId is empty until the session is active.
func (s *Session) UserId() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.userId
}

func (s *Session) setState(state State) {
	s.mu.Lock()
	s.state = state
	s.mu.Unlock()
}

// Authenticate verifies the credential, registers the channel and sends the
// initial snapshot to it. On failure the session ends Disconnected and the
// caller must close the channel.
func (s *Session) Authenticate(ctx context.Context, token string) error {
	if s.State() != Connecting {
		return fmt.Errorf("session: cannot authenticate from state %s", s.State())
	}
	s.setState(Authenticating)

	c := s.controller
	userId, err := c.verifier.Verify(token)
	if err != nil || userId == "" {
		s.setState(Disconnected)
		log.Debugf("session: rejected credential: %v", err)
		return ErrUnauthorized
	}

	previous, err := c.registry.Register(userId, s.channel)
	if err != nil {
		s.setState(Disconnected)
		return err
	}
	if previous != nil {
		log.Infof("session: user %s reconnected, closing previous channel", userId)
		previous.Close(SupersededReason)
	}

	s.mu.Lock()
	s.userId = userId
	s.state = Active
	s.mu.Unlock()
	log.Infof("session: user %s connected (%d online)", userId, c.registry.Len())

	snapshot, err := c.snapshotter.Snapshot(ctx, userId)
	if err != nil {
		log.Errorf("session: snapshot for %s failed: %v", userId, err)
		s.Close()
		return err
	}
	err = hub.SendTo(s.channel, hub.EventReceiveInitialState, snapshot.Notes, snapshot.Elements, snapshot.WhiteboardNames)
	if err != nil {
		log.Warnf("session: initial state for %s not delivered: %v", userId, err)
	}
	return nil
}

// Close ends the session. Only the session's own channel is deregistered, so
// a stale close never removes a newer connection of the same user.
func (s *Session) Close() {
	s.mu.Lock()
	if s.state == Disconnected {
		s.mu.Unlock()
		return
	}
	wasActive := s.state == Active
	s.state = Disconnected
	userId := s.userId
	s.mu.Unlock()

	if !wasActive {
		return
	}
	if s.controller.registry.Deregister(userId, s.channel) {
		log.Infof("session: user %s disconnected", userId)
	} else {
		log.Debugf("session: stale channel for %s closed", userId)
	}
}
