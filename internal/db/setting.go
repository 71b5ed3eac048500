package db

const (
	SettingVersion    = "VERSION"
	SettingGoal       = "GOAL"
	SettingResultView = "RESULT_VIEW"
)

type Setting struct {
	ID    uint   `gorm:"primaryKey"`
	Key   string `gorm:"size:64;uniqueIndex;not null"`
	Value string `gorm:"size:255;not null"`
}
