// Package results pivots a game's committed rounds into the player-major
// and round-major tables shown once a game is over.
package results

import (
	"context"
	"errors"
	"log/slog"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/r3p1n/scoring/internal/db"
	"github.com/r3p1n/scoring/internal/logging"
	"github.com/r3p1n/scoring/internal/store"
)

var ErrNotFound = errors.New("no results for this game")

type Cell struct {
	RoundNumber int `json:"round"`
	Score       int `json:"score"`
}

// PlayerResult is one row of the player-major view.
type PlayerResult struct {
	ID         uint   `json:"id"`
	Name       string `json:"name"`
	TotalScore int    `json:"total_score"`
	Scores     []Cell `json:"scores"`
}

type Column struct {
	PlayerID uint   `json:"player_id"`
	Name     string `json:"name"`
	Color    string `json:"color"`
}

// Row is one line of the round-major view. The trailing row has Total set
// and RoundNumber 0.
type Row struct {
	RoundNumber int   `json:"round,omitempty"`
	Total       bool  `json:"total,omitempty"`
	Scores      []int `json:"scores"`
}

// RoundTable is the round-major view; every Row is parallel to Players.
type RoundTable struct {
	Players []Column `json:"players"`
	Rows    []Row    `json:"rows"`
}

// Report is a game's results in one view.
type Report struct {
	GameID  uint           `json:"game_id"`
	View    View           `json:"view"`
	Players []PlayerResult `json:"players,omitempty"`
	Table   *RoundTable    `json:"table,omitempty"`
}

type Aggregator struct {
	store  *store.Store
	logger *slog.Logger

	mu  sync.Mutex
	rng *rand.Rand
}

// New builds an aggregator; rng feeds the column colors and nil seeds one
// from the clock.
func New(s *store.Store, logger *slog.Logger, rng *rand.Rand) *Aggregator {
	if logger == nil {
		logger = logging.Discard()
	}
	if rng == nil {
		seed := uint64(time.Now().UnixNano())
		rng = rand.New(rand.NewPCG(seed, seed>>1|1))
	}
	return &Aggregator{store: s, logger: logger, rng: rng}
}

// Players returns active players by total descending with every round's
// score, 0 where a player has none.
func (a *Aggregator) Players(ctx context.Context, gameID uint) ([]PlayerResult, error) {
	totals := a.store.PlayerTotals(ctx, gameID)
	if len(totals) == 0 || len(a.store.Rounds(ctx, gameID)) == 0 {
		return nil, ErrNotFound
	}
	out := make([]PlayerResult, 0, len(totals))
	for _, total := range totals {
		rounds := a.store.PlayerRoundScores(ctx, gameID, total.PlayerID)
		cells := make([]Cell, 0, len(rounds))
		for _, round := range rounds {
			cells = append(cells, Cell{RoundNumber: round.RoundNumber, Score: round.Score})
		}
		out = append(out, PlayerResult{
			ID:         total.PlayerID,
			Name:       total.Name,
			TotalScore: total.TotalScore,
			Scores:     cells,
		})
	}
	return out, nil
}

// Rounds returns one row per round plus a closing total row, and a fresh
// color per player.
func (a *Aggregator) Rounds(ctx context.Context, gameID uint) (*RoundTable, error) {
	players, err := a.Players(ctx, gameID)
	if err != nil {
		return nil, err
	}
	return a.pivot(players), nil
}

func (a *Aggregator) pivot(players []PlayerResult) *RoundTable {
	table := &RoundTable{Players: make([]Column, 0, len(players))}
	a.mu.Lock()
	for _, player := range players {
		table.Players = append(table.Players, Column{
			PlayerID: player.ID,
			Name:     player.Name,
			Color:    randomColor(a.rng),
		})
	}
	a.mu.Unlock()

	byRound := make(map[int][]int)
	var order []int
	totals := make([]int, len(players))
	for i, player := range players {
		for _, cell := range player.Scores {
			scores, ok := byRound[cell.RoundNumber]
			if !ok {
				scores = make([]int, len(players))
				order = append(order, cell.RoundNumber)
			}
			scores[i] = cell.Score
			byRound[cell.RoundNumber] = scores
			totals[i] += cell.Score
		}
	}
	table.Rows = make([]Row, 0, len(order)+1)
	for _, number := range order {
		table.Rows = append(table.Rows, Row{RoundNumber: number, Scores: byRound[number]})
	}
	table.Rows = append(table.Rows, Row{Total: true, Scores: totals})
	return table
}

// ViewPreference is the stored view, or DefaultView.
func (a *Aggregator) ViewPreference(ctx context.Context) View {
	if raw := a.store.Setting(ctx, db.SettingResultView); raw != nil {
		if view, ok := ParseView(*raw); ok {
			return view
		}
	}
	return DefaultView
}

// Render builds the report in view, falling back to the stored preference
// when view is empty.
func (a *Aggregator) Render(ctx context.Context, gameID uint, view View) (*Report, error) {
	if _, ok := ParseView(string(view)); !ok {
		view = a.ViewPreference(ctx)
	}
	players, err := a.Players(ctx, gameID)
	if err != nil {
		return nil, err
	}
	report := &Report{GameID: gameID, View: view}
	if view == ViewPlayers {
		report.Players = players
	} else {
		report.Table = a.pivot(players)
	}
	return report, nil
}

// Switch renders the opposite of the stored view and stores it.
func (a *Aggregator) Switch(ctx context.Context, gameID uint) (*Report, error) {
	next := a.ViewPreference(ctx).Opposite()
	report, err := a.Render(ctx, gameID, next)
	if err != nil {
		return nil, err
	}
	if !a.store.SetSetting(ctx, db.SettingResultView, string(next)) {
		a.logger.Warn("result view not saved", slog.String("view", string(next)))
	}
	return report, nil
}
