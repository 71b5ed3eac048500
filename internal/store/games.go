package store

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"gorm.io/gorm"

	"github.com/r3p1n/scoring/internal/db"
)

// CreateGame inserts an unfinished game. Non-positive goals are stored as
// NULL. Returns 0 on failure.
func (s *Store) CreateGame(ctx context.Context, goal *int) uint {
	if !s.ready() {
		return 0
	}
	record := db.Game{Goal: normalizeGoal(goal)}
	if err := s.conn(ctx).Create(&record).Error; err != nil {
		s.fault("create_game", err)
		return 0
	}
	return record.ID
}

// Game returns the game row or nil when it does not exist.
func (s *Store) Game(ctx context.Context, id uint) *db.Game {
	if !s.ready() {
		return nil
	}
	var record db.Game
	if err := s.conn(ctx).First(&record, id).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			s.fault("get_game", err, slog.Uint64("game_id", uint64(id)))
		}
		return nil
	}
	return &record
}

func (s *Store) GameGoal(ctx context.Context, id uint) *int {
	record := s.Game(ctx, id)
	if record == nil {
		return nil
	}
	return normalizeGoal(record.Goal)
}

func (s *Store) UpdateGameGoal(ctx context.Context, id uint, goal *int) int64 {
	if !s.ready() {
		return 0
	}
	result := s.conn(ctx).Model(&db.Game{}).Where("id = ?", id).Update("goal", normalizeGoal(goal))
	if result.Error != nil {
		s.fault("update_game_goal", result.Error, slog.Uint64("game_id", uint64(id)))
		return 0
	}
	return result.RowsAffected
}

func (s *Store) GameFinishedAt(ctx context.Context, id uint) *time.Time {
	record := s.Game(ctx, id)
	if record == nil {
		return nil
	}
	return record.FinishedAt
}

// MarkGameFinishedNow stamps finished_at on an unfinished game. A game that
// is already finished is left untouched and 0 is returned.
func (s *Store) MarkGameFinishedNow(ctx context.Context, id uint) int64 {
	if !s.ready() {
		return 0
	}
	result := s.conn(ctx).Model(&db.Game{}).
		Where("id = ? AND finished_at IS NULL", id).
		Update("finished_at", time.Now().UTC())
	if result.Error != nil {
		s.fault("finish_game", result.Error, slog.Uint64("game_id", uint64(id)))
		return 0
	}
	return result.RowsAffected
}

// UnfinishedGames lists open games, newest first.
func (s *Store) UnfinishedGames(ctx context.Context) []db.Game {
	return s.listGames(ctx, "list_unfinished_games", "finished_at IS NULL", "created_at DESC, id DESC")
}

// FinishedGames lists finished games, most recently finished first.
func (s *Store) FinishedGames(ctx context.Context) []db.Game {
	return s.listGames(ctx, "list_finished_games", "finished_at IS NOT NULL", "finished_at DESC, id DESC")
}

func (s *Store) listGames(ctx context.Context, op, where, order string) []db.Game {
	if !s.ready() {
		return []db.Game{}
	}
	var records []db.Game
	if err := s.conn(ctx).Where(where).Order(order).Find(&records).Error; err != nil {
		s.fault(op, err)
		return []db.Game{}
	}
	return records
}

func normalizeGoal(goal *int) *int {
	if goal == nil || *goal <= 0 {
		return nil
	}
	value := *goal
	return &value
}
