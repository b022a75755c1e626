package sqlstore

import (
	"context"

	"github.com/gofrs/uuid/v5"
	"github.com/syncnotes/syncnotes/models"
)

func (s *SQLNoteStore) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	if user.Id == "" {
		id, err := uuid.NewV7()
		if err != nil {
			return models.User{}, err
		}
		user.Id = id.String()
	}
	if user.Color == "" {
		user.Color = models.DefaultColor
	}

	rec := fromUser(user)
	if err := s.db.WithContext(ctx).Create(&rec).Error; err != nil {
		return models.User{}, translate(err)
	}
	return toUser(rec), nil
}

func (s *SQLNoteStore) GetUser(ctx context.Context, id string) (models.User, error) {
	var rec userRecord
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&rec).Error; err != nil {
		return models.User{}, translate(err)
	}
	return toUser(rec), nil
}

func (s *SQLNoteStore) GetUserByEmail(ctx context.Context, email string) (models.User, error) {
	var rec userRecord
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&rec).Error; err != nil {
		return models.User{}, translate(err)
	}
	return toUser(rec), nil
}

// UpdateUser changes the display name and color only.
func (s *SQLNoteStore) UpdateUser(ctx context.Context, user models.User) error {
	result := s.db.WithContext(ctx).
		Model(&userRecord{}).
		Where("id = ?", user.Id).
		Updates(map[string]any{"name": user.Name, "color": user.Color})
	return affected(result)
}
