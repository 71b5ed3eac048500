package db

import "time"

// Game is one play session. FinishedAt moves from nil to a timestamp once.
// Goal, when positive, is the cumulative score that ends the game.
type Game struct {
	ID         uint       `gorm:"primaryKey"`
	CreatedAt  time.Time  `gorm:"not null"`
	FinishedAt *time.Time `gorm:"index"`
	Goal       *int
}

func (g Game) Finished() bool {
	return g.FinishedAt != nil
}
