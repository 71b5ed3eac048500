package store

import (
	"context"
	"log/slog"
	"time"

	"github.com/r3p1n/scoring/internal/db"
)

// SnapshotRow is one active player as seen when a round view is opened.
type SnapshotRow struct {
	PlayerID           uint
	Name               string
	PreviousRoundScore int
	TotalScore         int
	FinishedAt         *time.Time
}

type PlayerTotal struct {
	PlayerID   uint
	Name       string
	TotalScore int
}

type RoundScore struct {
	RoundID     uint
	RoundNumber int
	Score       int
}

type UserTotal struct {
	UserID     uint
	Name       string
	TotalScore int
	Games      int
}

const activeTotalsQuery = `
SELECT p.id AS player_id, u.name AS name, CAST(COALESCE(SUM(s.score), 0) AS BIGINT) AS total_score
FROM players p
JOIN users u ON u.id = p.user_id
LEFT JOIN scores s ON s.player_id = p.id
WHERE p.game_id = ? AND p.is_active = ?
GROUP BY p.id, u.name
`

// RoundSnapshot returns one row per active player with the running total,
// the score of the most recent round, and the game's finished_at.
func (s *Store) RoundSnapshot(ctx context.Context, gameID uint) []SnapshotRow {
	if !s.ready() {
		return []SnapshotRow{}
	}
	var totals []PlayerTotal
	if err := s.conn(ctx).Raw(activeTotalsQuery+"ORDER BY p.id", gameID, int(db.PlayerActive)).Scan(&totals).Error; err != nil {
		s.fault("round_snapshot", err, slog.Uint64("game_id", uint64(gameID)))
		return []SnapshotRow{}
	}
	if len(totals) == 0 {
		return []SnapshotRow{}
	}

	var previous []struct {
		PlayerID uint
		Score    int
	}
	err := s.conn(ctx).Raw(`
SELECT s.player_id AS player_id, s.score AS score
FROM scores s
JOIN rounds r ON r.id = s.round_id
WHERE r.game_id = ? AND r.number = (SELECT MAX(number) FROM rounds WHERE game_id = ?)
`, gameID, gameID).Scan(&previous).Error
	if err != nil {
		s.fault("round_snapshot", err, slog.Uint64("game_id", uint64(gameID)))
		return []SnapshotRow{}
	}
	lastRound := make(map[uint]int, len(previous))
	for _, row := range previous {
		lastRound[row.PlayerID] = row.Score
	}

	finishedAt := s.GameFinishedAt(ctx, gameID)
	rows := make([]SnapshotRow, 0, len(totals))
	for _, total := range totals {
		rows = append(rows, SnapshotRow{
			PlayerID:           total.PlayerID,
			Name:               total.Name,
			PreviousRoundScore: lastRound[total.PlayerID],
			TotalScore:         total.TotalScore,
			FinishedAt:         finishedAt,
		})
	}
	return rows
}

// PlayerTotals returns active players ordered by total score descending,
// ties kept in player id order.
func (s *Store) PlayerTotals(ctx context.Context, gameID uint) []PlayerTotal {
	if !s.ready() {
		return []PlayerTotal{}
	}
	var totals []PlayerTotal
	if err := s.conn(ctx).Raw(activeTotalsQuery+"ORDER BY total_score DESC, p.id", gameID, int(db.PlayerActive)).Scan(&totals).Error; err != nil {
		s.fault("player_totals", err, slog.Uint64("game_id", uint64(gameID)))
		return []PlayerTotal{}
	}
	return totals
}

// PlayerRoundScores returns every round of the game with the player's score
// in it, 0 where the player has no score row.
func (s *Store) PlayerRoundScores(ctx context.Context, gameID, playerID uint) []RoundScore {
	if !s.ready() {
		return []RoundScore{}
	}
	var rows []RoundScore
	err := s.conn(ctx).Raw(`
SELECT r.id AS round_id, r.number AS round_number, CAST(COALESCE(s.score, 0) AS BIGINT) AS score
FROM rounds r
LEFT JOIN scores s ON s.round_id = r.id AND s.player_id = ?
WHERE r.game_id = ?
ORDER BY r.number
`, playerID, gameID).Scan(&rows).Error
	if err != nil {
		s.fault("player_round_scores", err,
			slog.Uint64("game_id", uint64(gameID)),
			slog.Uint64("player_id", uint64(playerID)),
		)
		return []RoundScore{}
	}
	return rows
}

// ScoreFor looks up a single (player, round) cell of a game.
func (s *Store) ScoreFor(ctx context.Context, gameID, playerID, roundID uint) (int, bool) {
	if !s.ready() {
		return 0, false
	}
	var scores []int
	err := s.conn(ctx).Raw(`
SELECT s.score
FROM scores s
JOIN rounds r ON r.id = s.round_id
WHERE r.game_id = ? AND r.id = ? AND s.player_id = ?
`, gameID, roundID, playerID).Scan(&scores).Error
	if err != nil {
		s.fault("score_for", err, slog.Uint64("game_id", uint64(gameID)))
		return 0, false
	}
	if len(scores) == 0 {
		return 0, false
	}
	return scores[0], true
}

// AllTimeTotals sums every score a user has earned across all games.
func (s *Store) AllTimeTotals(ctx context.Context) []UserTotal {
	if !s.ready() {
		return []UserTotal{}
	}
	var rows []UserTotal
	err := s.conn(ctx).Raw(`
SELECT u.id AS user_id, u.name AS name,
	CAST(COALESCE(SUM(s.score), 0) AS BIGINT) AS total_score,
	COUNT(DISTINCT p.game_id) AS games
FROM users u
LEFT JOIN players p ON p.user_id = u.id
LEFT JOIN scores s ON s.player_id = p.id
GROUP BY u.id, u.name
ORDER BY total_score DESC, u.id
`).Scan(&rows).Error
	if err != nil {
		s.fault("all_time_totals", err)
		return []UserTotal{}
	}
	return rows
}
