package db

type Round struct {
	ID     uint `gorm:"primaryKey"`
	Number int  `gorm:"not null;uniqueIndex:idx_rounds_game_number"`
	GameID uint `gorm:"index;not null;uniqueIndex:idx_rounds_game_number"`
}
