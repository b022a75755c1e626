package sqlstore

import (
	"context"

	"github.com/syncnotes/syncnotes/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func (s *SQLNoteStore) GetNote(ctx context.Context, id string) (models.Note, error) {
	var rec noteRecord
	err := s.db.WithContext(ctx).Preload("Shares").Where("id = ?", id).First(&rec).Error
	if err != nil {
		return models.Note{}, translate(err)
	}
	return toNote(rec), nil
}

// GetNotesForUser returns notes owned by or shared with userId.
func (s *SQLNoteStore) GetNotesForUser(ctx context.Context, userId string) ([]models.Note, error) {
	db := s.db.WithContext(ctx)
	shared := db.Model(&noteShareRecord{}).Select("note_id").Where("user_id = ?", userId)

	var recs []noteRecord
	err := db.Preload("Shares").
		Where("owner_id = ?", userId).
		Or("id IN (?)", shared).
		Order("last_modified DESC, id").
		Find(&recs).Error
	if err != nil {
		return nil, translate(err)
	}

	notes := make([]models.Note, 0, len(recs))
	for _, rec := range recs {
		notes = append(notes, toNote(rec))
	}
	return notes, nil
}

// SaveNote upserts the note row and replaces its share set.
func (s *SQLNoteStore) SaveNote(ctx context.Context, note models.Note) error {
	return translate(s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		rec := fromNote(note)
		err := tx.Omit(clause.Associations).
			Clauses(clause.OnConflict{UpdateAll: true}).
			Create(&rec).Error
		if err != nil {
			return err
		}

		if err := tx.Where("note_id = ?", note.Id).Delete(&noteShareRecord{}).Error; err != nil {
			return err
		}
		shares := make([]noteShareRecord, 0, len(note.SharedWith))
		for _, userId := range distinct(note.SharedWith) {
			shares = append(shares, noteShareRecord{NoteId: note.Id, UserId: userId})
		}
		if len(shares) == 0 {
			return nil
		}
		return tx.Create(&shares).Error
	}))
}

func (s *SQLNoteStore) DeleteNote(ctx context.Context, id string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("note_id = ?", id).Delete(&noteShareRecord{}).Error; err != nil {
			return translate(err)
		}
		return affected(tx.Where("id = ?", id).Delete(&noteRecord{}))
	})
}

func distinct(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
