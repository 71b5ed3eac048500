// Package game owns the lifecycle of a game: creation, participant
// reconciliation, goal updates and the open → in progress → finished
// state machine.
package game

import (
	"context"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/r3p1n/scoring/internal/db"
	"github.com/r3p1n/scoring/internal/logging"
	"github.com/r3p1n/scoring/internal/store"
)

// MinPlayers is the smallest roster a game can be played with.
const MinPlayers = 2

type State string

const (
	StateOpen       State = "open"
	StateInProgress State = "in_progress"
	StateFinished   State = "finished"
)

type Manager struct {
	store       *store.Store
	logger      *slog.Logger
	defaultGoal int
}

func NewManager(s *store.Store, logger *slog.Logger, defaultGoal int) *Manager {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Manager{store: s, logger: logger, defaultGoal: defaultGoal}
}

// Participant is a player row joined with its user name.
type Participant struct {
	PlayerID uint   `json:"player_id"`
	UserID   uint   `json:"user_id"`
	Name     string `json:"name"`
	Active   bool   `json:"active"`
}

type Detail struct {
	ID          uint          `json:"id"`
	State       State         `json:"state"`
	Goal        *int          `json:"goal"`
	CreatedAt   time.Time     `json:"created_at"`
	FinishedAt  *time.Time    `json:"finished_at"`
	RoundsSoFar int           `json:"rounds"`
	Players     []Participant `json:"players"`
}

// CreateGame persists a game and one active player per distinct user id.
// Nothing is written when fewer than MinPlayers users are selected.
func (m *Manager) CreateGame(ctx context.Context, userIDs []uint, goal *int) (uint, error) {
	selected := uniqueIDs(userIDs)
	if len(selected) < MinPlayers {
		return 0, ErrNotEnoughPlayers
	}
	if err := m.requireUsers(ctx, selected); err != nil {
		return 0, err
	}

	var gameID uint
	err := m.store.Transaction(ctx, func(tx *store.Store) error {
		gameID = tx.CreateGame(ctx, goal)
		if gameID == 0 {
			return ErrNotSaved
		}
		for _, userID := range selected {
			if tx.AddPlayer(ctx, gameID, userID) == 0 {
				return ErrNotSaved
			}
		}
		if tx.AddEvent(ctx, gameID, db.EventGameCreated, store.EventPayload{Goal: positive(goal), UserIDs: selected}) == 0 {
			return ErrNotSaved
		}
		return nil
	})
	if err != nil {
		return 0, ErrNotSaved
	}
	m.rememberGoal(ctx, goal)
	m.logger.Info("game created",
		slog.Uint64("game_id", uint64(gameID)),
		slog.Int("players", len(selected)),
	)
	return gameID, nil
}

// ApplySettings reconciles the game's roster to exactly desiredUserIDs and
// updates its goal. Players are never deleted: deselected players are
// deactivated and reselected ones reactivated. Applying the same settings
// twice changes nothing the second time.
func (m *Manager) ApplySettings(ctx context.Context, gameID uint, desiredUserIDs []uint, goal *int) error {
	selected := uniqueIDs(desiredUserIDs)
	if len(selected) < MinPlayers {
		return ErrNotEnoughPlayers
	}
	record := m.store.Game(ctx, gameID)
	if record == nil {
		return ErrGameNotFound
	}
	if record.Finished() {
		return ErrGameFinished
	}
	if err := m.requireUsers(ctx, selected); err != nil {
		return err
	}
	wanted := make(map[uint]bool, len(selected))
	for _, id := range selected {
		wanted[id] = true
	}

	changes := 0
	err := m.store.Transaction(ctx, func(tx *store.Store) error {
		byUser := make(map[uint]db.Player)
		for _, player := range tx.Players(ctx, gameID) {
			byUser[player.UserID] = player
		}
		for _, user := range tx.Users(ctx) {
			player, joined := byUser[user.ID]
			switch {
			case wanted[user.ID] && !joined:
				if tx.AddPlayer(ctx, gameID, user.ID) == 0 {
					return ErrNotSaved
				}
				changes++
			case wanted[user.ID] && !player.Active():
				if tx.SetPlayerActive(ctx, player.ID, true) == 0 {
					return ErrNotSaved
				}
				changes++
			case !wanted[user.ID] && joined && player.Active():
				if tx.SetPlayerActive(ctx, player.ID, false) == 0 {
					return ErrNotSaved
				}
				changes++
			}
		}
		if !sameGoal(record.Goal, goal) {
			if tx.UpdateGameGoal(ctx, gameID, goal) == 0 {
				return ErrNotSaved
			}
			changes++
		}
		if changes == 0 {
			return nil
		}
		if tx.AddEvent(ctx, gameID, db.EventSettingsApplied, store.EventPayload{Goal: positive(goal), UserIDs: selected}) == 0 {
			return ErrNotSaved
		}
		return nil
	})
	if err != nil {
		return ErrNotSaved
	}
	m.rememberGoal(ctx, goal)
	m.logger.Info("game settings applied",
		slog.Uint64("game_id", uint64(gameID)),
		slog.Int("changes", changes),
	)
	return nil
}

func (m *Manager) IsFinished(ctx context.Context, gameID uint) bool {
	return m.store.GameFinishedAt(ctx, gameID) != nil
}

// Finish marks the game finished. It reports whether this call finished it;
// a second call finds nothing to update and returns false.
func (m *Manager) Finish(ctx context.Context, gameID uint) bool {
	finished := false
	err := m.store.Transaction(ctx, func(tx *store.Store) error {
		finished = MarkFinished(ctx, tx, gameID, false)
		if !finished {
			return ErrNotSaved
		}
		return nil
	})
	return err == nil && finished
}

// MarkFinished stamps finished_at and records the audit event through s,
// which is normally a transaction-scoped store.
func MarkFinished(ctx context.Context, s *store.Store, gameID uint, auto bool) bool {
	if s.MarkGameFinishedNow(ctx, gameID) == 0 {
		return false
	}
	return s.AddEvent(ctx, gameID, db.EventGameFinished, store.EventPayload{AutoFinish: auto}) != 0
}

func (m *Manager) State(ctx context.Context, gameID uint) (State, error) {
	record := m.store.Game(ctx, gameID)
	if record == nil {
		return "", ErrGameNotFound
	}
	return m.stateOf(ctx, record), nil
}

func (m *Manager) stateOf(ctx context.Context, record *db.Game) State {
	if record.Finished() {
		return StateFinished
	}
	if m.store.LastRoundNumber(ctx, record.ID) > 0 {
		return StateInProgress
	}
	return StateOpen
}

// Detail describes a game together with its whole roster.
func (m *Manager) Detail(ctx context.Context, gameID uint) (*Detail, error) {
	record := m.store.Game(ctx, gameID)
	if record == nil {
		return nil, ErrGameNotFound
	}
	names := make(map[uint]string)
	for _, user := range m.store.Users(ctx) {
		names[user.ID] = user.Name
	}
	players := m.store.Players(ctx, gameID)
	participants := make([]Participant, 0, len(players))
	for _, player := range players {
		participants = append(participants, Participant{
			PlayerID: player.ID,
			UserID:   player.UserID,
			Name:     names[player.UserID],
			Active:   player.Active(),
		})
	}
	return &Detail{
		ID:          record.ID,
		State:       m.stateOf(ctx, record),
		Goal:        positive(record.Goal),
		CreatedAt:   record.CreatedAt,
		FinishedAt:  record.FinishedAt,
		RoundsSoFar: m.store.LastRoundNumber(ctx, gameID),
		Players:     participants,
	}, nil
}

// Games lists unfinished games newest first, or finished games by finish
// time.
func (m *Manager) Games(ctx context.Context, finished bool) []db.Game {
	if finished {
		return m.store.FinishedGames(ctx)
	}
	return m.store.UnfinishedGames(ctx)
}

// DefaultGoal is the goal prefilled for a new game: the last goal used, or
// the configured default.
func (m *Manager) DefaultGoal(ctx context.Context) int {
	if raw := m.store.Setting(ctx, db.SettingGoal); raw != nil {
		if value, err := strconv.Atoi(strings.TrimSpace(*raw)); err == nil && value > 0 {
			return value
		}
	}
	return m.defaultGoal
}

func (m *Manager) rememberGoal(ctx context.Context, goal *int) {
	if g := positive(goal); g != nil {
		m.store.SetSetting(ctx, db.SettingGoal, strconv.Itoa(*g))
	}
}

func (m *Manager) requireUsers(ctx context.Context, ids []uint) error {
	known := make(map[uint]bool)
	for _, user := range m.store.Users(ctx) {
		known[user.ID] = true
	}
	for _, id := range ids {
		if !known[id] {
			return ErrUnknownUser
		}
	}
	return nil
}

func uniqueIDs(ids []uint) []uint {
	seen := make(map[uint]bool, len(ids))
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if id == 0 || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}

func positive(goal *int) *int {
	if goal == nil || *goal <= 0 {
		return nil
	}
	value := *goal
	return &value
}

func sameGoal(a, b *int) bool {
	a, b = positive(a), positive(b)
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}
