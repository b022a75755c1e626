package sqlstore

import (
	"context"

	"github.com/syncnotes/syncnotes/models"
	"github.com/syncnotes/syncnotes/store"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func (s *SQLNoteStore) GetWhiteboard(ctx context.Context, name string) (models.Whiteboard, error) {
	var rec whiteboardRecord
	err := s.db.WithContext(ctx).Preload("Shares").Where("name = ?", name).First(&rec).Error
	if err != nil {
		return models.Whiteboard{}, translate(err)
	}
	return toWhiteboard(rec), nil
}

func (s *SQLNoteStore) GetWhiteboardsForUser(ctx context.Context, userId string) ([]models.Whiteboard, error) {
	recs, err := s.whiteboardsForUser(s.db.WithContext(ctx), userId)
	if err != nil {
		return nil, translate(err)
	}

	whiteboards := make([]models.Whiteboard, 0, len(recs))
	for _, rec := range recs {
		whiteboards = append(whiteboards, toWhiteboard(rec))
	}
	return whiteboards, nil
}

func (s *SQLNoteStore) whiteboardsForUser(db *gorm.DB, userId string) ([]whiteboardRecord, error) {
	shared := db.Model(&whiteboardShareRecord{}).Select("whiteboard_name").Where("user_id = ?", userId)

	var recs []whiteboardRecord
	err := db.Preload("Shares").
		Where("owner_id = ?", userId).
		Or("name IN (?)", shared).
		Order("name").
		Find(&recs).Error
	return recs, err
}

// CreateWhiteboard inserts a new whiteboard with its shares. An existing
// whiteboard of the same name is left untouched.
func (s *SQLNoteStore) CreateWhiteboard(ctx context.Context, whiteboard models.Whiteboard) error {
	return translate(s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		rec := fromWhiteboard(whiteboard)
		result := tx.Omit(clause.Associations).
			Clauses(clause.OnConflict{DoNothing: true}).
			Create(&rec)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return store.ErrConditionFailed
		}

		shares := make([]whiteboardShareRecord, 0, len(whiteboard.SharedWith))
		for _, userId := range distinct(whiteboard.SharedWith) {
			shares = append(shares, whiteboardShareRecord{WhiteboardName: whiteboard.Name, UserId: userId})
		}
		if len(shares) > 0 {
			return tx.Create(&shares).Error
		}
		return nil
	}))
}

// SaveWhiteboard upserts the whiteboard row and replaces its share set.
func (s *SQLNoteStore) SaveWhiteboard(ctx context.Context, whiteboard models.Whiteboard) error {
	return translate(s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		rec := fromWhiteboard(whiteboard)
		err := tx.Omit(clause.Associations).
			Clauses(clause.OnConflict{UpdateAll: true}).
			Create(&rec).Error
		if err != nil {
			return err
		}

		err = tx.Where("whiteboard_name = ?", whiteboard.Name).Delete(&whiteboardShareRecord{}).Error
		if err != nil {
			return err
		}
		shares := make([]whiteboardShareRecord, 0, len(whiteboard.SharedWith))
		for _, userId := range distinct(whiteboard.SharedWith) {
			shares = append(shares, whiteboardShareRecord{WhiteboardName: whiteboard.Name, UserId: userId})
		}
		if len(shares) > 0 {
			if err := tx.Create(&shares).Error; err != nil {
				return err
			}
		}

		// element rows mirror the whiteboard owner
		return tx.Model(&elementRecord{}).
			Where("whiteboard_name = ? AND owner_id <> ?", whiteboard.Name, whiteboard.OwnerId).
			Update("owner_id", whiteboard.OwnerId).Error
	}))
}

// DeleteWhiteboard removes the whiteboard with its elements and shares.
func (s *SQLNoteStore) DeleteWhiteboard(ctx context.Context, name string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("whiteboard_name = ?", name).Delete(&elementRecord{}).Error; err != nil {
			return translate(err)
		}
		if err := tx.Where("whiteboard_name = ?", name).Delete(&whiteboardShareRecord{}).Error; err != nil {
			return translate(err)
		}
		return affected(tx.Where("name = ?", name).Delete(&whiteboardRecord{}))
	})
}

// ClearWhiteboard removes every element and keeps the whiteboard itself.
func (s *SQLNoteStore) ClearWhiteboard(ctx context.Context, name string) error {
	return translate(s.db.WithContext(ctx).Where("whiteboard_name = ?", name).Delete(&elementRecord{}).Error)
}

func (s *SQLNoteStore) GetElement(ctx context.Context, id string) (models.WhiteboardElement, error) {
	db := s.db.WithContext(ctx)

	var rec elementRecord
	if err := db.Where("id = ?", id).First(&rec).Error; err != nil {
		return models.WhiteboardElement{}, translate(err)
	}

	elements, err := withWhiteboards(db, []elementRecord{rec})
	if err != nil {
		return models.WhiteboardElement{}, translate(err)
	}
	return elements[0], nil
}

func (s *SQLNoteStore) GetElements(ctx context.Context, whiteboardName string) ([]models.WhiteboardElement, error) {
	db := s.db.WithContext(ctx)

	var recs []elementRecord
	err := db.Where("whiteboard_name = ?", whiteboardName).Order("created_at, id").Find(&recs).Error
	if err != nil {
		return nil, translate(err)
	}

	elements, err := withWhiteboards(db, recs)
	return elements, translate(err)
}

// GetElementsForUser returns the elements of every whiteboard userId may read.
func (s *SQLNoteStore) GetElementsForUser(ctx context.Context, userId string) ([]models.WhiteboardElement, error) {
	db := s.db.WithContext(ctx)
	owned := db.Model(&whiteboardRecord{}).Select("name").Where("owner_id = ?", userId)
	shared := db.Model(&whiteboardShareRecord{}).Select("whiteboard_name").Where("user_id = ?", userId)

	var recs []elementRecord
	err := db.Where("whiteboard_name IN (?)", owned).
		Or("whiteboard_name IN (?)", shared).
		Order("whiteboard_name, created_at, id").
		Find(&recs).Error
	if err != nil {
		return nil, translate(err)
	}

	elements, err := withWhiteboards(db, recs)
	return elements, translate(err)
}

func (s *SQLNoteStore) SaveElement(ctx context.Context, element models.WhiteboardElement) error {
	rec := fromElement(element)
	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"whiteboard_name", "type", "color", "stroke_width", "points", "text",
				"owner_id", "last_modified", "last_modified_by",
			}),
		}).
		Create(&rec).Error
	return translate(err)
}

func (s *SQLNoteStore) DeleteElement(ctx context.Context, id string) error {
	return affected(s.db.WithContext(ctx).Where("id = ?", id).Delete(&elementRecord{}))
}

// withWhiteboards converts element rows and fills owner and shares from
// their whiteboard.
func withWhiteboards(db *gorm.DB, recs []elementRecord) ([]models.WhiteboardElement, error) {
	elements := make([]models.WhiteboardElement, 0, len(recs))
	if len(recs) == 0 {
		return elements, nil
	}

	names := make([]string, 0)
	for _, rec := range recs {
		names = append(names, rec.WhiteboardName)
	}

	var boards []whiteboardRecord
	if err := db.Preload("Shares").Where("name IN ?", distinct(names)).Find(&boards).Error; err != nil {
		return nil, err
	}
	byName := make(map[string]models.Whiteboard, len(boards))
	for _, b := range boards {
		byName[b.Name] = toWhiteboard(b)
	}

	for _, rec := range recs {
		element := toElement(rec)
		if board, ok := byName[rec.WhiteboardName]; ok {
			element.OwnerId = board.OwnerId
			element.SharedWith = append([]string{}, board.SharedWith...)
		}
		elements = append(elements, element)
	}
	return elements, nil
}
