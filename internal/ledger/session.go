package ledger

import "errors"

const (
	MinMultiplier = 1
	MaxMultiplier = 5
)

var (
	ErrEmptyScore    = errors.New("enter a score for at least one player")
	ErrUnknownPlayer = errors.New("player is not in this round")
	ErrStaleRound    = errors.New("round is out of date, reload it")
	ErrNotSaved      = errors.New("round was not saved")
)

// Entry is one active player's line in the round view.
//
// LastRoundScore is the cumulative score before this round. TotalScore is
// the projection LastRoundScore + CurrentRoundScore*Multiplier and is never
// written back to storage.
type Entry struct {
	PlayerID           uint   `json:"player_id"`
	Name               string `json:"name"`
	PreviousRoundScore int    `json:"previous_round_score"`
	LastRoundScore     int    `json:"last_round_score"`
	CurrentRoundScore  int    `json:"current_round_score"`
	TotalScore         int    `json:"total_score"`
	Leader             bool   `json:"leader"`
}

// Session is the in-memory state of the round being entered.
type Session struct {
	GameID      uint    `json:"game_id"`
	RoundNumber int     `json:"round"`
	Multiplier  int     `json:"multiplier"`
	Goal        *int    `json:"goal"`
	Entries     []Entry `json:"players"`
}

// SetScore records the raw score for a player and refreshes its total.
func (s *Session) SetScore(playerID uint, score int) error {
	for i := range s.Entries {
		if s.Entries[i].PlayerID == playerID {
			s.Entries[i].CurrentRoundScore = score
			s.Entries[i].project(s.Multiplier)
			return nil
		}
	}
	return ErrUnknownPlayer
}

// CycleMultiplier steps the multiplier 1 → 5 and back to 1, rescaling every
// total.
func (s *Session) CycleMultiplier() int {
	if s.Multiplier >= MaxMultiplier || s.Multiplier < MinMultiplier {
		s.Multiplier = MinMultiplier
	} else {
		s.Multiplier++
	}
	for i := range s.Entries {
		s.Entries[i].project(s.Multiplier)
	}
	return s.Multiplier
}

// HasRoundScore reports whether any player has a non-zero score this round.
func (s *Session) HasRoundScore() bool {
	for _, entry := range s.Entries {
		if entry.CurrentRoundScore != 0 {
			return true
		}
	}
	return false
}

// HasTotals reports whether any projected total is non-zero.
func (s *Session) HasTotals() bool {
	for _, entry := range s.Entries {
		if entry.TotalScore != 0 {
			return true
		}
	}
	return false
}

// ReachedGoal reports whether a projected total is strictly above the goal.
func (s *Session) ReachedGoal() bool {
	if s.Goal == nil || *s.Goal <= 0 {
		return false
	}
	for _, entry := range s.Entries {
		if entry.TotalScore > *s.Goal {
			return true
		}
	}
	return false
}

// LeaderID is the highlighted player, or 0 before the first round.
func (s *Session) LeaderID() uint {
	for _, entry := range s.Entries {
		if entry.Leader {
			return entry.PlayerID
		}
	}
	return 0
}

// Clone returns a copy that shares nothing with s.
func (s *Session) Clone() *Session {
	out := *s
	out.Entries = append([]Entry(nil), s.Entries...)
	if s.Goal != nil {
		goal := *s.Goal
		out.Goal = &goal
	}
	return &out
}

func (s *Session) committedScores() []int {
	scores := make([]int, len(s.Entries))
	for i, entry := range s.Entries {
		scores[i] = entry.CurrentRoundScore * s.Multiplier
	}
	return scores
}

func (e *Entry) project(multiplier int) {
	e.TotalScore = e.LastRoundScore + e.CurrentRoundScore*multiplier
}
