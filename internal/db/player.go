package db

// PlayerStatus is stored in the legacy is_active column (1 active, 0 removed).
type PlayerStatus int

const (
	PlayerInactive PlayerStatus = 0
	PlayerActive   PlayerStatus = 1
)

func (s PlayerStatus) String() string {
	switch s {
	case PlayerActive:
		return "active"
	case PlayerInactive:
		return "inactive"
	default:
		return "unknown"
	}
}

// Player binds a User to a Game. Rows are never deleted so that historical
// scores keep a valid player reference.
type Player struct {
	ID     uint         `gorm:"primaryKey"`
	GameID uint         `gorm:"index;not null"`
	UserID uint         `gorm:"index;not null"`
	Status PlayerStatus `gorm:"column:is_active;not null;default:1"`
}

func (p Player) Active() bool {
	return p.Status == PlayerActive
}
