package store

import (
	"context"
	"encoding/json"
	"log/slog"

	"gorm.io/datatypes"

	"github.com/r3p1n/scoring/internal/db"
)

// EventPayload is the JSON body of an audit event. Zero fields are omitted.
type EventPayload struct {
	Goal        *int   `json:"goal,omitempty"`
	UserIDs     []uint `json:"user_ids,omitempty"`
	RoundNumber int    `json:"round,omitempty"`
	Multiplier  int    `json:"multiplier,omitempty"`
	Scores      []int  `json:"scores,omitempty"`
	AutoFinish  bool   `json:"auto_finish,omitempty"`
}

func (s *Store) AddEvent(ctx context.Context, gameID uint, eventType string, payload EventPayload) uint {
	if !s.ready() {
		return 0
	}
	data, err := json.Marshal(payload)
	if err != nil {
		s.fault("add_event", err, slog.String("type", eventType))
		return 0
	}
	record := db.Event{
		GameID:  gameID,
		Type:    eventType,
		Payload: datatypes.JSON(data),
	}
	if err := s.conn(ctx).Create(&record).Error; err != nil {
		s.fault("add_event", err,
			slog.Uint64("game_id", uint64(gameID)),
			slog.String("type", eventType),
		)
		return 0
	}
	return record.ID
}

func (s *Store) Events(ctx context.Context, gameID uint) []db.Event {
	if !s.ready() {
		return []db.Event{}
	}
	var records []db.Event
	if err := s.conn(ctx).Where("game_id = ?", gameID).Order("id").Find(&records).Error; err != nil {
		s.fault("list_events", err, slog.Uint64("game_id", uint64(gameID)))
		return []db.Event{}
	}
	return records
}
