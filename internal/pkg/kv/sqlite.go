package kv

import (
	"errors"
	"fmt"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

type kvEntry struct {
	Key   string `gorm:"primaryKey;column:k"`
	Value string `gorm:"column:v"`
}

func (kvEntry) TableName() string { return "kv_entries" }

// SQLiteStore keeps the key space in a two-column table. The driver is pure
// Go, so the backend works without cgo.
type SQLiteStore struct {
	db *gorm.DB
}

// OpenSQLite opens (or creates) the database at path and ensures the schema.
func OpenSQLite(path string) (*SQLiteStore, error) {
	if path == "" {
		return nil, fmt.Errorf("sqlite store: path is required")
	}
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("sqlite store: open %s: %w", path, err)
	}
	if err := db.AutoMigrate(&kvEntry{}); err != nil {
		return nil, fmt.Errorf("sqlite store: migrate: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Get(key string) (string, bool, error) {
	var e kvEntry
	if err := s.db.First(&e, "k = ?", key).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", false, nil
		}
		return "", false, err
	}
	return e.Value, true, nil
}

func (s *SQLiteStore) Set(key, value string) error {
	return s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "k"}},
		DoUpdates: clause.AssignmentColumns([]string{"v"}),
	}).Create(&kvEntry{Key: key, Value: value}).Error
}

func (s *SQLiteStore) Remove(key string) error {
	return s.db.Delete(&kvEntry{}, "k = ?", key).Error
}

func (s *SQLiteStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
