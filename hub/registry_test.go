package hub_test

import (
	"strconv"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/syncnotes/syncnotes/hub"
	"github.com/syncnotes/syncnotes/hub/hubtest"
)

func TestRegistryLifecycle(t *testing.T) {
	r := hub.NewRegistry()
	ch := hubtest.NewChannel()

	previous, err := r.Register("alice", ch)
	require.NoError(t, err)
	assert.Nil(t, previous)

	got, ok := r.Lookup("alice")
	assert.True(t, ok)
	assert.Same(t, ch, got)
	assert.Equal(t, 1, r.Len())

	assert.True(t, r.Deregister("alice", ch))
	_, ok = r.Lookup("alice")
	assert.False(t, ok)
	assert.Equal(t, 0, r.Len())
}

func TestRegistryRegisterReplacesPrevious(t *testing.T) {
	r := hub.NewRegistry()
	first := hubtest.NewChannel()
	second := hubtest.NewChannel()

	_, _ = r.Register("alice", first)
	previous, err := r.Register("alice", second)
	require.NoError(t, err)
	assert.Same(t, first, previous)

	got, _ := r.Lookup("alice")
	assert.Same(t, second, got)
}

func TestRegistryRegisterSameChannelTwice(t *testing.T) {
	r := hub.NewRegistry()
	ch := hubtest.NewChannel()

	_, _ = r.Register("alice", ch)
	previous, err := r.Register("alice", ch)
	require.NoError(t, err)
	assert.Nil(t, previous)
}

func TestRegistryStaleDeregisterIsIgnored(t *testing.T) {
	r := hub.NewRegistry()
	stale := hubtest.NewChannel()
	fresh := hubtest.NewChannel()

	_, _ = r.Register("alice", stale)
	_, _ = r.Register("alice", fresh)

	assert.False(t, r.Deregister("alice", stale))
	got, ok := r.Lookup("alice")
	assert.True(t, ok)
	assert.Same(t, fresh, got)

	assert.False(t, r.Deregister("bob", fresh))
}

func TestRegistryIsolatedInstances(t *testing.T) {
	a := hub.NewRegistry()
	b := hub.NewRegistry()

	_, _ = a.Register("alice", hubtest.NewChannel())

	_, ok := b.Lookup("alice")
	assert.False(t, ok)
}

func TestRegistryClose(t *testing.T) {
	r := hub.NewRegistry()
	alice := hubtest.NewChannel()
	bob := hubtest.NewChannel()
	_, _ = r.Register("alice", alice)
	_, _ = r.Register("bob", bob)

	r.Close("shutting down")

	closed, reason := alice.Closed()
	assert.True(t, closed)
	assert.Equal(t, "shutting down", reason)
	closed, _ = bob.Closed()
	assert.True(t, closed)
	assert.Equal(t, 0, r.Len())

	_, err := r.Register("carol", hubtest.NewChannel())
	assert.ErrorIs(t, err, hub.ErrRegistryClosed)
}

func TestRegistryConcurrentAccess(t *testing.T) {
	r := hub.NewRegistry()
	var wg sync.WaitGroup

	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			userId := "user-" + strconv.Itoa(i%10)
			ch := hubtest.NewChannel()
			_, _ = r.Register(userId, ch)
			r.Lookup(userId)
			r.Range(func(string, hub.Channel) {})
			r.Deregister(userId, ch)
		}(i)
	}
	wg.Wait()

	assert.LessOrEqual(t, r.Len(), 10)
}
