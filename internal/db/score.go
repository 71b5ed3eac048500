package db

type Score struct {
	ID       uint `gorm:"primaryKey"`
	RoundID  uint `gorm:"index;not null;uniqueIndex:idx_scores_round_player"`
	PlayerID uint `gorm:"index;not null;uniqueIndex:idx_scores_round_player"`
	Score    int  `gorm:"not null"`
}
