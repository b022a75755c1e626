package service_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	cachemocks "github.com/syncnotes/syncnotes/cache/mocks"
	hubmocks "github.com/syncnotes/syncnotes/hub/mocks"
	"github.com/syncnotes/syncnotes/service"
	storemocks "github.com/syncnotes/syncnotes/store/mocks"
)

// Helper to setup the service with mocks. Display names always resolve from
// the cache.
func setupService(t *testing.T) (*service.Service, *storemocks.MockStore, *cachemocks.MockCache, *hubmocks.MockBroadcaster) {
	mockStore := new(storemocks.MockStore)
	mockCache := new(cachemocks.MockCache)
	mockBroadcaster := new(hubmocks.MockBroadcaster)

	mockCache.On("GetDisplayName", mock.Anything, mock.Anything).Return("Display Name", true, nil).Maybe()

	svc, err := service.NewService(mockStore, mockCache, mockBroadcaster, false)
	require.NoError(t, err)

	return svc, mockStore, mockCache, mockBroadcaster
}

// expectSend registers a Send expectation for audience and event.
func expectSend(b *hubmocks.MockBroadcaster, audience []string, event string) *mock.Call {
	return b.On("Send", audience, event, mock.Anything).Return()
}

// sentArgs returns the arguments of the first Send of event.
func sentArgs(t *testing.T, b *hubmocks.MockBroadcaster, event string) []any {
	t.Helper()
	for _, call := range b.Calls {
		if call.Method == "Send" && call.Arguments.String(1) == event {
			return call.Arguments.Get(2).([]any)
		}
	}
	t.Fatalf("event %s was not sent", event)
	return nil
}

func assertFault(t *testing.T, err error, code service.Code) {
	t.Helper()
	require.Error(t, err)
	assert.Equal(t, code, service.CodeOf(err), err.Error())
}
