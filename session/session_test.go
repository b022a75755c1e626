package session

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/syncnotes/syncnotes/hub"
	"github.com/syncnotes/syncnotes/hub/hubtest"
	"github.com/syncnotes/syncnotes/models"
)

type fakeVerifier map[string]string

func (f fakeVerifier) Verify(token string) (string, error) {
	if id, ok := f[token]; ok {
		return id, nil
	}
	return "", errors.New("bad token")
}

type fakeSnapshotter struct {
	snapshot models.Snapshot
	err      error
}

func (f fakeSnapshotter) Snapshot(_ context.Context, _ string) (models.Snapshot, error) {
	return f.snapshot, f.err
}

func newController(snap fakeSnapshotter) (*Controller, *hub.Registry) {
	registry := hub.NewRegistry()
	verifier := fakeVerifier{"alice-token": "alice", "bob-token": "bob"}
	return NewController(registry, snap, verifier), registry
}

func TestAuthenticateSendsSnapshot(t *testing.T) {
	snap := fakeSnapshotter{snapshot: models.Snapshot{
		Notes:           []models.Note{{Id: "n1", OwnerId: "alice"}},
		Elements:        []models.WhiteboardElement{},
		WhiteboardNames: []string{"W"},
	}}
	controller, registry := newController(snap)
	ch := hubtest.NewChannel()

	s := controller.Open(ch)
	assert.Equal(t, Connecting, s.State())

	require.NoError(t, s.Authenticate(context.Background(), "alice-token"))
	assert.Equal(t, Active, s.State())
	assert.Equal(t, "alice", s.UserId())

	registered, ok := registry.Lookup("alice")
	require.True(t, ok)
	assert.Same(t, ch, registered)

	assert.Equal(t, []string{hub.EventReceiveInitialState}, ch.Types())
	frame, _ := ch.Last(hub.EventReceiveInitialState)
	require.Len(t, frame.Data, 3)
	var notes []models.Note
	require.NoError(t, frame.Arg(0, &notes))
	assert.Equal(t, "n1", notes[0].Id)
	var names []string
	require.NoError(t, frame.Arg(2, &names))
	assert.Equal(t, []string{"W"}, names)
}

func TestAuthenticateRejectsBadCredential(t *testing.T) {
	controller, registry := newController(fakeSnapshotter{})
	ch := hubtest.NewChannel()

	s := controller.Open(ch)
	err := s.Authenticate(context.Background(), "forged")

	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.Equal(t, Disconnected, s.State())
	assert.Equal(t, 0, registry.Len())
	assert.Empty(t, ch.Types())
}

func TestAuthenticateOnlyOnce(t *testing.T) {
	controller, _ := newController(fakeSnapshotter{})
	s := controller.Open(hubtest.NewChannel())

	require.NoError(t, s.Authenticate(context.Background(), "alice-token"))
	assert.Error(t, s.Authenticate(context.Background(), "bob-token"))
	assert.Equal(t, "alice", s.UserId())
}

func TestReconnectSupersedesPreviousChannel(t *testing.T) {
	controller, registry := newController(fakeSnapshotter{})
	first := hubtest.NewChannel()
	second := hubtest.NewChannel()

	old := controller.Open(first)
	require.NoError(t, old.Authenticate(context.Background(), "alice-token"))
	fresh := controller.Open(second)
	require.NoError(t, fresh.Authenticate(context.Background(), "alice-token"))

	closed, reason := first.Closed()
	assert.True(t, closed)
	assert.Equal(t, SupersededReason, reason)

	// the stale session closing must not remove the fresh registration
	old.Close()
	registered, ok := registry.Lookup("alice")
	require.True(t, ok)
	assert.Same(t, second, registered)

	fresh.Close()
	_, ok = registry.Lookup("alice")
	assert.False(t, ok)
	assert.Equal(t, Disconnected, fresh.State())
}

func TestSnapshotFailureEndsSession(t *testing.T) {
	controller, registry := newController(fakeSnapshotter{err: errors.New("db down")})
	s := controller.Open(hubtest.NewChannel())

	err := s.Authenticate(context.Background(), "alice-token")

	assert.Error(t, err)
	assert.Equal(t, Disconnected, s.State())
	assert.Equal(t, 0, registry.Len())
}

func TestCloseBeforeAuthenticate(t *testing.T) {
	controller, _ := newController(fakeSnapshotter{})
	s := controller.Open(hubtest.NewChannel())

	s.Close()
	s.Close()
	assert.Equal(t, Disconnected, s.State())
}

func TestRegistryClosedRejectsSession(t *testing.T) {
	controller, registry := newController(fakeSnapshotter{})
	registry.Close("shutdown")

	s := controller.Open(hubtest.NewChannel())
	err := s.Authenticate(context.Background(), "alice-token")

	assert.ErrorIs(t, err, hub.ErrRegistryClosed)
	assert.Equal(t, Disconnected, s.State())
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "Active", Active.String())
	assert.Equal(t, "State(9)", State(9).String())
}
