package storage

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormlogger "gorm.io/gorm/logger"
)

// stateRecord is the key/value row backing SQLiteStore
type stateRecord struct {
	Key       string `gorm:"primaryKey;column:key;type:varchar(128)"`
	Value     []byte `gorm:"column:value"`
	UpdatedAt time.Time
}

// TableName returns the table name for GORM
func (stateRecord) TableName() string {
	return "client_state"
}

// SQLiteStore implements Store on a single SQLite database file. It is the
// durable single-terminal option: unlike the file backend there is only one
// artifact to back up, and writes are transactional. There is no external
// change feed; Watch registrations never fire.
type SQLiteStore struct {
	db *gorm.DB

	mu       sync.Mutex
	watchers []WatchFunc
}

// NewSQLiteStore opens (and migrates) the database at path
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open state db: %w", err)
	}
	if err := db.AutoMigrate(&stateRecord{}); err != nil {
		return nil, fmt.Errorf("migrate state db: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

// Get decodes the value under key into out
func (s *SQLiteStore) Get(key string, out any) bool {
	raw, ok := s.GetRaw(key)
	if !ok {
		return false
	}
	return decode(raw, out)
}

// GetRaw returns the stored bytes under key
func (s *SQLiteStore) GetRaw(key string) ([]byte, bool) {
	var rec stateRecord
	err := s.db.First(&rec, "key = ?", key).Error
	if err != nil {
		return nil, false
	}
	return rec.Value, true
}

// Set stores the JSON encoding of value under key
func (s *SQLiteStore) Set(key string, value any) error {
	raw, err := encode(value)
	if err != nil {
		return fmt.Errorf("encode %q: %w", key, err)
	}
	return s.SetRaw(key, raw)
}

// SetRaw upserts raw bytes under key
func (s *SQLiteStore) SetRaw(key string, raw []byte) error {
	rec := stateRecord{Key: key, Value: raw, UpdatedAt: time.Now()}
	err := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		UpdateAll: true,
	}).Create(&rec).Error
	if err != nil {
		return fmt.Errorf("write %q: %w", key, err)
	}
	return nil
}

// Remove deletes the key
func (s *SQLiteStore) Remove(key string) error {
	err := s.db.Delete(&stateRecord{}, "key = ?", key).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("remove %q: %w", key, err)
	}
	return nil
}

// Keys lists every stored key
func (s *SQLiteStore) Keys() []string {
	var keys []string
	if err := s.db.Model(&stateRecord{}).Pluck("key", &keys).Error; err != nil {
		return nil
	}
	return keys
}

// Watch registers fn; a SQLite store has no external change feed, so
// registrations are kept only so an embedding host can inspect them
func (s *SQLiteStore) Watch(fn WatchFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.watchers = append(s.watchers, fn)
}

// Close closes the underlying database
func (s *SQLiteStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Ensure SQLiteStore implements Store
var _ Store = (*SQLiteStore)(nil)
