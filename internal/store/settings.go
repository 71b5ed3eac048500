package store

import (
	"context"
	"log/slog"

	"github.com/r3p1n/scoring/internal/db"
)

// Setting returns the stored value for key, or nil when unset.
func (s *Store) Setting(ctx context.Context, key string) *string {
	if !s.ready() {
		return nil
	}
	var records []db.Setting
	if err := s.conn(ctx).Where("key = ?", key).Limit(1).Find(&records).Error; err != nil {
		s.fault("get_setting", err, slog.String("key", key))
		return nil
	}
	if len(records) == 0 {
		return nil
	}
	value := records[0].Value
	return &value
}

// SetSetting updates key, inserting it when no row was affected.
func (s *Store) SetSetting(ctx context.Context, key, value string) bool {
	if !s.ready() {
		return false
	}
	result := s.conn(ctx).Model(&db.Setting{}).Where("key = ?", key).Update("value", value)
	if result.Error != nil {
		s.fault("set_setting", result.Error, slog.String("key", key))
		return false
	}
	if result.RowsAffected > 0 {
		return true
	}
	if err := s.conn(ctx).Create(&db.Setting{Key: key, Value: value}).Error; err != nil {
		s.fault("set_setting", err, slog.String("key", key))
		return false
	}
	return true
}
