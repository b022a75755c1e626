package access_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/syncnotes/syncnotes/access"
	"github.com/syncnotes/syncnotes/models"
)

func TestCanRead(t *testing.T) {
	note := models.Note{OwnerId: "alice", SharedWith: []string{"bob"}}

	assert.True(t, access.CanRead(note, "alice"))
	assert.True(t, access.CanRead(note, "bob"))
	assert.False(t, access.CanRead(note, "carol"))
	assert.False(t, access.CanRead(note, ""))
}

func TestCanWriteMatchesCanRead(t *testing.T) {
	board := models.Whiteboard{OwnerId: "alice", SharedWith: []string{"bob"}}

	for _, user := range []string{"alice", "bob", "carol", ""} {
		assert.Equal(t, access.CanRead(board, user), access.CanWrite(board, user), user)
	}
}

func TestAudienceAlwaysContainsOwner(t *testing.T) {
	cases := [][]string{
		nil,
		{},
		{"bob"},
		{"bob", "bob", "carol"},
		{"alice", "bob"},
	}
	for _, shared := range cases {
		audience := access.Audience(models.Note{OwnerId: "alice", SharedWith: shared})
		assert.Contains(t, audience, "alice")
		assert.Equal(t, "alice", audience[0])
	}

	audience := access.Audience(models.Note{OwnerId: "alice", SharedWith: []string{"bob", "alice", "bob", ""}})
	assert.Equal(t, []string{"alice", "bob"}, audience)
}

func TestUnion(t *testing.T) {
	assert.Equal(t, []string{"a", "b", "c"}, access.Union([]string{"a", "b"}, []string{"b", "c", ""}))
	assert.Nil(t, access.Union())
}

func TestCanShare(t *testing.T) {
	friendships := []models.Friendship{{UserId: "bob", FriendId: "alice"}}

	assert.True(t, access.CanShare("alice", "bob", friendships))
	assert.True(t, access.CanShare("bob", "alice", friendships))
	assert.False(t, access.CanShare("alice", "carol", friendships))
	assert.False(t, access.CanShare("alice", "alice", friendships))
	assert.False(t, access.CanShare("alice", "bob", nil))
}

func TestIsOwner(t *testing.T) {
	note := models.Note{OwnerId: "alice", SharedWith: []string{"bob"}}

	assert.True(t, access.IsOwner(note, "alice"))
	assert.False(t, access.IsOwner(note, "bob"))
	assert.False(t, access.IsOwner(models.Note{}, ""))
}
