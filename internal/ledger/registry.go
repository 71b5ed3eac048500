package ledger

import (
	"context"
	"errors"
	"sync"

	"github.com/r3p1n/scoring/internal/game"
)

// Registry keeps one open round per game. Operations on the same game are
// serialized; different games proceed independently.
type Registry struct {
	ledger *Ledger

	mu    sync.Mutex
	slots map[uint]*slot
}

type slot struct {
	mu      sync.Mutex
	session *Session
}

func NewRegistry(l *Ledger) *Registry {
	return &Registry{ledger: l, slots: make(map[uint]*slot)}
}

func (r *Registry) slotFor(gameID uint) *slot {
	r.mu.Lock()
	defer r.mu.Unlock()
	current, ok := r.slots[gameID]
	if !ok {
		current = &slot{}
		r.slots[gameID] = current
	}
	return current
}

// with runs fn on the game's session, opening it first when needed. The
// session is dropped when fn reports that the game moved on.
func (r *Registry) with(ctx context.Context, gameID uint, fn func(*Session) (*Session, error)) (*Session, error) {
	current := r.slotFor(gameID)
	current.mu.Lock()
	defer current.mu.Unlock()

	if current.session == nil {
		session, err := r.ledger.Start(ctx, gameID)
		if err != nil {
			return nil, err
		}
		current.session = session
	}
	next, err := fn(current.session)
	if err != nil {
		if errors.Is(err, ErrStaleRound) || errors.Is(err, game.ErrGameFinished) || errors.Is(err, game.ErrGameNotFound) {
			current.session = nil
		}
		return nil, err
	}
	current.session = next
	if next == nil {
		return nil, nil
	}
	return next.Clone(), nil
}

// View returns the open round of a game.
func (r *Registry) View(ctx context.Context, gameID uint) (*Session, error) {
	return r.with(ctx, gameID, func(s *Session) (*Session, error) {
		return s, nil
	})
}

func (r *Registry) SetScore(ctx context.Context, gameID, playerID uint, score int) (*Session, error) {
	return r.with(ctx, gameID, func(s *Session) (*Session, error) {
		if err := s.SetScore(playerID, score); err != nil {
			return nil, err
		}
		return s, nil
	})
}

// SetScores applies several scores at once; nothing changes if one player
// is unknown.
func (r *Registry) SetScores(ctx context.Context, gameID uint, scores map[uint]int) (*Session, error) {
	return r.with(ctx, gameID, func(s *Session) (*Session, error) {
		draft := s.Clone()
		for playerID, score := range scores {
			if err := draft.SetScore(playerID, score); err != nil {
				return nil, err
			}
		}
		*s = *draft
		return s, nil
	})
}

func (r *Registry) CycleMultiplier(ctx context.Context, gameID uint) (*Session, error) {
	return r.with(ctx, gameID, func(s *Session) (*Session, error) {
		s.CycleMultiplier()
		return s, nil
	})
}

// NextRound commits the open round. The returned outcome carries the next
// session unless the goal finished the game.
func (r *Registry) NextRound(ctx context.Context, gameID uint) (Outcome, error) {
	var outcome Outcome
	_, err := r.with(ctx, gameID, func(s *Session) (*Session, error) {
		result, err := r.ledger.NextRound(ctx, s)
		if err != nil {
			return nil, err
		}
		outcome = result
		return result.Next, nil
	})
	if err != nil {
		return Outcome{}, err
	}
	if outcome.Next != nil {
		outcome.Next = outcome.Next.Clone()
	}
	return outcome, nil
}

func (r *Registry) Finish(ctx context.Context, gameID uint) error {
	_, err := r.with(ctx, gameID, func(s *Session) (*Session, error) {
		if err := r.ledger.Finish(ctx, s); err != nil {
			return nil, err
		}
		return nil, nil
	})
	return err
}

// Reset forgets the open round of a game so the next access reloads it.
func (r *Registry) Reset(gameID uint) {
	current := r.slotFor(gameID)
	current.mu.Lock()
	current.session = nil
	current.mu.Unlock()
}
