package store

import (
	"context"
	"log/slog"

	"github.com/r3p1n/scoring/internal/db"
)

// Players returns every participant of a game, active or not.
func (s *Store) Players(ctx context.Context, gameID uint) []db.Player {
	if !s.ready() {
		return []db.Player{}
	}
	var records []db.Player
	if err := s.conn(ctx).Where("game_id = ?", gameID).Order("id").Find(&records).Error; err != nil {
		s.fault("list_players", err, slog.Uint64("game_id", uint64(gameID)))
		return []db.Player{}
	}
	return records
}

func (s *Store) AddPlayer(ctx context.Context, gameID, userID uint) uint {
	if !s.ready() {
		return 0
	}
	record := db.Player{GameID: gameID, UserID: userID, Status: db.PlayerActive}
	if err := s.conn(ctx).Create(&record).Error; err != nil {
		s.fault("add_player", err,
			slog.Uint64("game_id", uint64(gameID)),
			slog.Uint64("user_id", uint64(userID)),
		)
		return 0
	}
	return record.ID
}

func (s *Store) SetPlayerActive(ctx context.Context, playerID uint, active bool) int64 {
	if !s.ready() {
		return 0
	}
	status := db.PlayerInactive
	if active {
		status = db.PlayerActive
	}
	result := s.conn(ctx).Model(&db.Player{}).Where("id = ?", playerID).Update("is_active", status)
	if result.Error != nil {
		s.fault("set_player_active", result.Error, slog.Uint64("player_id", uint64(playerID)))
		return 0
	}
	return result.RowsAffected
}
