package store

import (
	"context"
	"log/slog"

	"github.com/r3p1n/scoring/internal/db"
)

// LastRoundNumber returns the highest recorded round number, 0 if none.
func (s *Store) LastRoundNumber(ctx context.Context, gameID uint) int {
	if !s.ready() {
		return 0
	}
	var number int
	err := s.conn(ctx).Model(&db.Round{}).
		Where("game_id = ?", gameID).
		Select("COALESCE(MAX(number), 0)").
		Scan(&number).Error
	if err != nil {
		s.fault("last_round_number", err, slog.Uint64("game_id", uint64(gameID)))
		return 0
	}
	return number
}

func (s *Store) AddRound(ctx context.Context, gameID uint, number int) uint {
	if !s.ready() {
		return 0
	}
	record := db.Round{GameID: gameID, Number: number}
	if err := s.conn(ctx).Create(&record).Error; err != nil {
		s.fault("add_round", err,
			slog.Uint64("game_id", uint64(gameID)),
			slog.Int("round", number),
		)
		return 0
	}
	return record.ID
}

// Rounds lists the rounds of a game in number order.
func (s *Store) Rounds(ctx context.Context, gameID uint) []db.Round {
	if !s.ready() {
		return []db.Round{}
	}
	var records []db.Round
	if err := s.conn(ctx).Where("game_id = ?", gameID).Order("number").Find(&records).Error; err != nil {
		s.fault("list_rounds", err, slog.Uint64("game_id", uint64(gameID)))
		return []db.Round{}
	}
	return records
}

func (s *Store) AddScore(ctx context.Context, roundID, playerID uint, score int) uint {
	if !s.ready() {
		return 0
	}
	record := db.Score{RoundID: roundID, PlayerID: playerID, Score: score}
	if err := s.conn(ctx).Create(&record).Error; err != nil {
		s.fault("add_score", err,
			slog.Uint64("round_id", uint64(roundID)),
			slog.Uint64("player_id", uint64(playerID)),
		)
		return 0
	}
	return record.ID
}
