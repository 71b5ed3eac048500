package db

import (
	"time"

	"gorm.io/datatypes"
)

const (
	EventGameCreated     = "game_created"
	EventSettingsApplied = "settings_applied"
	EventRoundSaved      = "round_saved"
	EventGameFinished    = "game_finished"
)

type Event struct {
	ID        uint           `gorm:"primaryKey"`
	GameID    uint           `gorm:"index;not null"`
	Type      string         `gorm:"size:64;not null"`
	Payload   datatypes.JSON `gorm:"not null"`
	CreatedAt time.Time      `gorm:"not null"`
}
