package game

import (
	"context"
	"log/slog"

	"github.com/r3p1n/scoring/internal/db"
)

func (m *Manager) Users(ctx context.Context) []db.User {
	return m.store.Users(ctx)
}

func (m *Manager) AddUser(ctx context.Context, name string) (*db.User, error) {
	normalized, err := NormalizeName(name)
	if err != nil {
		return nil, err
	}
	id := m.store.AddUser(ctx, normalized)
	if id == 0 {
		return nil, ErrNotSaved
	}
	m.logger.Info("user added", slog.Uint64("user_id", uint64(id)))
	return &db.User{ID: id, Name: normalized}, nil
}

func (m *Manager) RenameUser(ctx context.Context, id uint, name string) (*db.User, error) {
	normalized, err := NormalizeName(name)
	if err != nil {
		return nil, err
	}
	if err := m.requireUsers(ctx, []uint{id}); err != nil {
		return nil, err
	}
	if m.store.RenameUser(ctx, id, normalized) == 0 {
		return nil, ErrNotSaved
	}
	return &db.User{ID: id, Name: normalized}, nil
}

// EnsureUser returns the user with the given name, creating it when no user
// has that name yet. created reports whether a row was added.
func (m *Manager) EnsureUser(ctx context.Context, name string) (*db.User, bool, error) {
	normalized, err := NormalizeName(name)
	if err != nil {
		return nil, false, err
	}
	if existing := m.store.UserByName(ctx, normalized); existing != nil {
		return existing, false, nil
	}
	user, err := m.AddUser(ctx, normalized)
	if err != nil {
		return nil, false, err
	}
	return user, true, nil
}
