package store

import (
	"context"
	"errors"
	"log/slog"

	"gorm.io/gorm"

	"github.com/r3p1n/scoring/internal/db"
)

func (s *Store) Users(ctx context.Context) []db.User {
	if !s.ready() {
		return []db.User{}
	}
	var records []db.User
	if err := s.conn(ctx).Order("id").Find(&records).Error; err != nil {
		s.fault("list_users", err)
		return []db.User{}
	}
	return records
}

func (s *Store) AddUser(ctx context.Context, name string) uint {
	if !s.ready() {
		return 0
	}
	record := db.User{Name: name}
	if err := s.conn(ctx).Create(&record).Error; err != nil {
		s.fault("add_user", err)
		return 0
	}
	return record.ID
}

func (s *Store) RenameUser(ctx context.Context, id uint, name string) int64 {
	if !s.ready() {
		return 0
	}
	result := s.conn(ctx).Model(&db.User{}).Where("id = ?", id).Update("name", name)
	if result.Error != nil {
		s.fault("rename_user", result.Error, slog.Uint64("user_id", uint64(id)))
		return 0
	}
	return result.RowsAffected
}

// UserByName returns the first user with the exact name, or nil.
func (s *Store) UserByName(ctx context.Context, name string) *db.User {
	if !s.ready() {
		return nil
	}
	var record db.User
	if err := s.conn(ctx).Where("name = ?", name).Order("id").First(&record).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			s.fault("find_user", err)
		}
		return nil
	}
	return &record
}
