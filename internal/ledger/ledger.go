// Package ledger turns entered round scores into committed rounds.
//
// A round is committed atomically: the round row, one score per active
// player and the audit event land together or not at all. Round numbers
// of a game stay contiguous from 1.
package ledger

import (
	"context"
	"errors"
	"log/slog"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/r3p1n/scoring/internal/db"
	"github.com/r3p1n/scoring/internal/game"
	"github.com/r3p1n/scoring/internal/logging"
	"github.com/r3p1n/scoring/internal/store"
)

type Ledger struct {
	store  *store.Store
	logger *slog.Logger

	mu  sync.Mutex
	rng *rand.Rand
}

// New builds a ledger. rng breaks ties between leaders; nil seeds one from
// the clock.
func New(s *store.Store, logger *slog.Logger, rng *rand.Rand) *Ledger {
	if logger == nil {
		logger = logging.Discard()
	}
	if rng == nil {
		seed := uint64(time.Now().UnixNano())
		rng = rand.New(rand.NewPCG(seed, seed>>1|1))
	}
	return &Ledger{store: s, logger: logger, rng: rng}
}

// Outcome is the result of closing a round.
type Outcome struct {
	Finished bool     `json:"finished"`
	Next     *Session `json:"next,omitempty"`
}

// Start opens the round view for the next round of a game.
func (l *Ledger) Start(ctx context.Context, gameID uint) (*Session, error) {
	record := l.store.Game(ctx, gameID)
	if record == nil {
		return nil, game.ErrGameNotFound
	}
	if record.Finished() {
		return nil, game.ErrGameFinished
	}
	rows := l.store.RoundSnapshot(ctx, gameID)
	if len(rows) == 0 {
		return nil, game.ErrGameNotFound
	}
	if rows[0].FinishedAt != nil {
		return nil, game.ErrGameFinished
	}

	session := &Session{
		GameID:      gameID,
		RoundNumber: l.store.LastRoundNumber(ctx, gameID) + 1,
		Multiplier:  MinMultiplier,
		Entries:     make([]Entry, 0, len(rows)),
	}
	if record.Goal != nil && *record.Goal > 0 {
		goal := *record.Goal
		session.Goal = &goal
	}
	for _, row := range rows {
		session.Entries = append(session.Entries, Entry{
			PlayerID:           row.PlayerID,
			Name:               row.Name,
			PreviousRoundScore: row.PreviousRoundScore,
			LastRoundScore:     row.TotalScore,
			TotalScore:         row.TotalScore,
		})
	}
	if session.RoundNumber > 1 {
		l.markLeader(session)
	}
	return session, nil
}

// NextRound commits the entered round. When a total passes the goal the
// game is finished in the same transaction and no next session is opened.
func (l *Ledger) NextRound(ctx context.Context, session *Session) (Outcome, error) {
	if !session.HasRoundScore() {
		return Outcome{}, ErrEmptyScore
	}
	autoFinish := session.ReachedGoal()
	err := l.store.Transaction(ctx, func(tx *store.Store) error {
		if err := l.commit(ctx, tx, session); err != nil {
			return err
		}
		if autoFinish && !game.MarkFinished(ctx, tx, session.GameID, true) {
			return ErrNotSaved
		}
		return nil
	})
	if err != nil {
		return Outcome{}, commitError(err)
	}
	l.logger.Info("round saved",
		slog.Uint64("game_id", uint64(session.GameID)),
		slog.Int("round", session.RoundNumber),
		slog.Int("multiplier", session.Multiplier),
		slog.Bool("finished", autoFinish),
	)
	if autoFinish {
		return Outcome{Finished: true}, nil
	}
	next, err := l.Start(ctx, session.GameID)
	if err != nil {
		return Outcome{}, err
	}
	return Outcome{Next: next}, nil
}

// Finish commits a pending round, if any, and finishes the game. A game
// with no entered score and no points at all cannot be finished.
func (l *Ledger) Finish(ctx context.Context, session *Session) error {
	pending := session.HasRoundScore()
	if !pending && !session.HasTotals() {
		return ErrEmptyScore
	}
	err := l.store.Transaction(ctx, func(tx *store.Store) error {
		if pending {
			if err := l.commit(ctx, tx, session); err != nil {
				return err
			}
		} else if tx.GameFinishedAt(ctx, session.GameID) != nil {
			return game.ErrGameFinished
		}
		if !game.MarkFinished(ctx, tx, session.GameID, false) {
			return ErrNotSaved
		}
		return nil
	})
	if err != nil {
		return commitError(err)
	}
	l.logger.Info("game finished",
		slog.Uint64("game_id", uint64(session.GameID)),
		slog.Bool("saved_round", pending),
	)
	return nil
}

// commit writes the round and its scores through tx. The session must still
// match the stored game: same next round number and same active players.
func (l *Ledger) commit(ctx context.Context, tx *store.Store, session *Session) error {
	if tx.GameFinishedAt(ctx, session.GameID) != nil {
		return game.ErrGameFinished
	}
	if tx.LastRoundNumber(ctx, session.GameID)+1 != session.RoundNumber {
		return ErrStaleRound
	}
	if !sameRoster(tx.Players(ctx, session.GameID), session.Entries) {
		return ErrStaleRound
	}

	roundID := tx.AddRound(ctx, session.GameID, session.RoundNumber)
	if roundID == 0 {
		return ErrNotSaved
	}
	scores := session.committedScores()
	for i, entry := range session.Entries {
		if tx.AddScore(ctx, roundID, entry.PlayerID, scores[i]) == 0 {
			return ErrNotSaved
		}
	}
	payload := store.EventPayload{
		RoundNumber: session.RoundNumber,
		Multiplier:  session.Multiplier,
		Scores:      scores,
	}
	if tx.AddEvent(ctx, session.GameID, db.EventRoundSaved, payload) == 0 {
		return ErrNotSaved
	}
	return nil
}

func (l *Ledger) markLeader(session *Session) {
	best := 0
	var leaders []int
	for i, entry := range session.Entries {
		switch {
		case len(leaders) == 0 || entry.PreviousRoundScore > best:
			best = entry.PreviousRoundScore
			leaders = []int{i}
		case entry.PreviousRoundScore == best:
			leaders = append(leaders, i)
		}
	}
	if len(leaders) == 0 {
		return
	}
	l.mu.Lock()
	pick := leaders[l.rng.IntN(len(leaders))]
	l.mu.Unlock()
	session.Entries[pick].Leader = true
}

func sameRoster(players []db.Player, entries []Entry) bool {
	active := make(map[uint]bool, len(players))
	for _, player := range players {
		if player.Active() {
			active[player.ID] = true
		}
	}
	if len(active) != len(entries) {
		return false
	}
	for _, entry := range entries {
		if !active[entry.PlayerID] {
			return false
		}
	}
	return true
}

func commitError(err error) error {
	for _, known := range []error{game.ErrGameFinished, ErrStaleRound} {
		if errors.Is(err, known) {
			return known
		}
	}
	return ErrNotSaved
}
