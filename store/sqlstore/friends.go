package sqlstore

import (
	"context"

	"github.com/syncnotes/syncnotes/models"
	"github.com/syncnotes/syncnotes/store"
	"gorm.io/gorm"
)

// GetFriendshipsBetween returns the rows linking the two users in either
// direction.
func (s *SQLNoteStore) GetFriendshipsBetween(ctx context.Context, userId string, friendId string) ([]models.Friendship, error) {
	var recs []friendshipRecord
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND friend_id = ?", userId, friendId).
		Or("user_id = ? AND friend_id = ?", friendId, userId).
		Find(&recs).Error
	if err != nil {
		return nil, translate(err)
	}

	friendships := make([]models.Friendship, 0, len(recs))
	for _, rec := range recs {
		friendships = append(friendships, models.Friendship{UserId: rec.UserId, FriendId: rec.FriendId})
	}
	return friendships, nil
}

// GetFriends lists users related to userId by a friendship in either
// direction.
func (s *SQLNoteStore) GetFriends(ctx context.Context, userId string) ([]models.User, error) {
	db := s.db.WithContext(ctx)
	outgoing := db.Model(&friendshipRecord{}).Select("friend_id").Where("user_id = ?", userId)
	incoming := db.Model(&friendshipRecord{}).Select("user_id").Where("friend_id = ?", userId)

	var recs []userRecord
	err := db.Where("id IN (?)", outgoing).
		Or("id IN (?)", incoming).
		Order("name, id").
		Find(&recs).Error
	if err != nil {
		return nil, translate(err)
	}

	users := make([]models.User, 0, len(recs))
	for _, rec := range recs {
		users = append(users, toUser(rec))
	}
	return users, nil
}

// CreateFriendship fails with store.ErrConditionFailed when the pair is
// already related in either direction.
func (s *SQLNoteStore) CreateFriendship(ctx context.Context, friendship models.Friendship) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		err := tx.Model(&friendshipRecord{}).
			Where("user_id = ? AND friend_id = ?", friendship.UserId, friendship.FriendId).
			Or("user_id = ? AND friend_id = ?", friendship.FriendId, friendship.UserId).
			Count(&count).Error
		if err != nil {
			return translate(err)
		}
		if count > 0 {
			return store.ErrConditionFailed
		}

		rec := friendshipRecord{UserId: friendship.UserId, FriendId: friendship.FriendId}
		return translate(tx.Create(&rec).Error)
	})
}

// DeleteFriendship removes the pair in both directions. Missing rows are not
// an error.
func (s *SQLNoteStore) DeleteFriendship(ctx context.Context, userId string, friendId string) error {
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND friend_id = ?", userId, friendId).
		Or("user_id = ? AND friend_id = ?", friendId, userId).
		Delete(&friendshipRecord{}).Error
	return translate(err)
}
