// Package access holds the authorization rules shared by every hub
// operation. All functions are pure.
package access

import (
	"slices"

	"github.com/syncnotes/syncnotes/models"
)

// Entity is anything with an owner and a shared-with set.
type Entity interface {
	GetOwnerId() string
	GetSharedWith() []string
}

func CanRead(entity Entity, userId string) bool {
	if userId == "" {
		return false
	}
	return entity.GetOwnerId() == userId || slices.Contains(entity.GetSharedWith(), userId)
}

// CanWrite is the same predicate as CanRead; the system does not
// distinguish read and write access.
func CanWrite(entity Entity, userId string) bool {
	return CanRead(entity, userId)
}

func IsOwner(entity Entity, userId string) bool {
	return userId != "" && entity.GetOwnerId() == userId
}

// Audience returns the owner followed by every distinct shared-with user.
func Audience(entity Entity) []string {
	audience := make([]string, 0, len(entity.GetSharedWith())+1)
	audience = append(audience, entity.GetOwnerId())
	for _, id := range entity.GetSharedWith() {
		if id != "" && !slices.Contains(audience, id) {
			audience = append(audience, id)
		}
	}
	return audience
}

// Union merges audiences keeping first-seen order and dropping duplicates.
func Union(audiences ...[]string) []string {
	var out []string
	for _, a := range audiences {
		for _, id := range a {
			if id != "" && !slices.Contains(out, id) {
				out = append(out, id)
			}
		}
	}
	return out
}

// CanShare reports whether any friendship in the given set links userId
// and friendId, in either direction.
func CanShare(userId, friendId string, friendships []models.Friendship) bool {
	if userId == "" || friendId == "" || userId == friendId {
		return false
	}
	for _, f := range friendships {
		if (f.UserId == userId && f.FriendId == friendId) || (f.UserId == friendId && f.FriendId == userId) {
			return true
		}
	}
	return false
}
