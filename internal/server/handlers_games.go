package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/r3p1n/scoring/internal/db"
	"github.com/r3p1n/scoring/internal/game"
)

type rosterRequest struct {
	UserIDs []uint `json:"user_ids" binding:"max=64,dive,gt=0"`
	Goal    *int   `json:"goal" binding:"omitempty,min=0"`
}

type listGamesQuery struct {
	Status string `form:"status" binding:"omitempty,oneof=unfinished finished"`
}

type gameResponse struct {
	ID         uint       `json:"id"`
	CreatedAt  time.Time  `json:"created_at"`
	FinishedAt *time.Time `json:"finished_at"`
	Goal       *int       `json:"goal"`
}

type eventResponse struct {
	ID        uint            `json:"id"`
	Type      string          `json:"type"`
	Payload   json.RawMessage `json:"payload"`
	CreatedAt time.Time       `json:"created_at"`
}

var rosterMessages = bindMessages{
	"UserIDs": {
		"max": "too many players",
		"gt":  "invalid user id",
	},
	"Goal": {
		"min": "goal must not be negative",
	},
}

func (s *Server) handleListGames(c *gin.Context) {
	var query listGamesQuery
	if !bindQuery(c, &query, bindMessages{"Status": {"oneof": "status must be unfinished or finished"}}) {
		return
	}
	records := s.games.Games(c.Request.Context(), query.Status == "finished")
	out := make([]gameResponse, 0, len(records))
	for _, record := range records {
		out = append(out, gameResponse{
			ID:         record.ID,
			CreatedAt:  record.CreatedAt,
			FinishedAt: record.FinishedAt,
			Goal:       record.Goal,
		})
	}
	c.JSON(http.StatusOK, gin.H{"games": out})
}

func (s *Server) handleCreateGame(c *gin.Context) {
	var req rosterRequest
	if !bindJSON(c, &req, rosterMessages, "invalid game") {
		return
	}
	gameID, err := s.games.CreateGame(c.Request.Context(), req.UserIDs, req.Goal)
	if err != nil {
		writeError(c, 0, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"game_id": gameID})
}

func (s *Server) handleGetGame(c *gin.Context) {
	gameID, ok := bindGameID(c)
	if !ok {
		return
	}
	detail, err := s.games.Detail(c.Request.Context(), gameID)
	if err != nil {
		writeError(c, gameID, err)
		return
	}
	c.JSON(http.StatusOK, detail)
}

func (s *Server) handleApplySettings(c *gin.Context) {
	gameID, ok := bindGameID(c)
	if !ok {
		return
	}
	var req rosterRequest
	if !bindJSON(c, &req, rosterMessages, "invalid settings") {
		return
	}
	if err := s.games.ApplySettings(c.Request.Context(), gameID, req.UserIDs, req.Goal); err != nil {
		writeError(c, gameID, err)
		return
	}
	s.rounds.Reset(gameID)
	detail, err := s.games.Detail(c.Request.Context(), gameID)
	if err != nil {
		writeError(c, gameID, err)
		return
	}
	c.JSON(http.StatusOK, detail)
}

// handleFinishGame saves a pending round before finishing, like the finish
// button of the round view.
func (s *Server) handleFinishGame(c *gin.Context) {
	gameID, ok := bindGameID(c)
	if !ok {
		return
	}
	if err := s.rounds.Finish(c.Request.Context(), gameID); err != nil {
		writeError(c, gameID, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"state": game.StateFinished, "results": resultsPath(gameID)})
}

func (s *Server) handleListEvents(c *gin.Context) {
	gameID, ok := bindGameID(c)
	if !ok {
		return
	}
	if _, err := s.games.State(c.Request.Context(), gameID); err != nil {
		writeError(c, gameID, err)
		return
	}
	events := s.store.Events(c.Request.Context(), gameID)
	out := make([]eventResponse, 0, len(events))
	for _, event := range events {
		out = append(out, toEventResponse(event))
	}
	c.JSON(http.StatusOK, gin.H{"events": out})
}

func toEventResponse(event db.Event) eventResponse {
	return eventResponse{
		ID:        event.ID,
		Type:      event.Type,
		Payload:   json.RawMessage(event.Payload),
		CreatedAt: event.CreatedAt,
	}
}
