// Package sqlstore implements store.NoteStore on top of gorm, backed by
// PostgreSQL in production and SQLite for development and tests.
package sqlstore

import (
	"errors"
	"fmt"

	"github.com/glebarez/sqlite"
	"github.com/labstack/gommon/log"
	"github.com/syncnotes/syncnotes/store"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type SQLNoteStore struct {
	db *gorm.DB
}

var _ store.NoteStore = (*SQLNoteStore)(nil)

// Open connects to the database and migrates the schema. driver is
// "postgres" or "sqlite".
func Open(driver string, dsn string, maxOpenConns int) (*SQLNoteStore, error) {
	var dialector gorm.Dialector
	switch driver {
	case "postgres":
		dialector = postgres.Open(dsn)
	case "sqlite":
		dialector = sqlite.Open(dsn)
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	if driver == "sqlite" {
		// a single connection serialises writers and keeps :memory: databases alive
		maxOpenConns = 1
	}
	if maxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(maxOpenConns)
		sqlDB.SetMaxIdleConns(maxOpenConns)
	}

	if err := db.AutoMigrate(
		&userRecord{},
		&noteRecord{},
		&noteShareRecord{},
		&whiteboardRecord{},
		&whiteboardShareRecord{},
		&elementRecord{},
		&friendshipRecord{},
	); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	log.Infof("sqlstore: %s database ready", driver)

	return &SQLNoteStore{db: db}, nil
}

func (s *SQLNoteStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return store.ErrItemNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return store.ErrConditionFailed
	default:
		return err
	}
}

func affected(result *gorm.DB) error {
	if result.Error != nil {
		return translate(result.Error)
	}
	if result.RowsAffected == 0 {
		return store.ErrItemNotFound
	}
	return nil
}
