package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type scoreEntry struct {
	PlayerID uint `json:"player_id" binding:"required"`
	Score    *int `json:"score" binding:"required"`
}

type scoresRequest struct {
	Scores []scoreEntry `json:"scores" binding:"required,min=1,dive"`
}

var scoresMessages = bindMessages{
	"Scores":   {"required": "scores are required", "min": "scores are required"},
	"PlayerID": {"required": "player_id is required"},
	"Score":    {"required": "score is required"},
}

func (s *Server) handleRoundView(c *gin.Context) {
	gameID, ok := bindGameID(c)
	if !ok {
		return
	}
	session, err := s.rounds.View(c.Request.Context(), gameID)
	if err != nil {
		writeError(c, gameID, err)
		return
	}
	c.JSON(http.StatusOK, session)
}

func (s *Server) handleSetScores(c *gin.Context) {
	gameID, ok := bindGameID(c)
	if !ok {
		return
	}
	var req scoresRequest
	if !bindJSON(c, &req, scoresMessages, "invalid scores") {
		return
	}
	scores := make(map[uint]int, len(req.Scores))
	for _, entry := range req.Scores {
		scores[entry.PlayerID] = *entry.Score
	}
	session, err := s.rounds.SetScores(c.Request.Context(), gameID, scores)
	if err != nil {
		writeError(c, gameID, err)
		return
	}
	c.JSON(http.StatusOK, session)
}

func (s *Server) handleCycleMultiplier(c *gin.Context) {
	gameID, ok := bindGameID(c)
	if !ok {
		return
	}
	session, err := s.rounds.CycleMultiplier(c.Request.Context(), gameID)
	if err != nil {
		writeError(c, gameID, err)
		return
	}
	c.JSON(http.StatusOK, session)
}

func (s *Server) handleNextRound(c *gin.Context) {
	gameID, ok := bindGameID(c)
	if !ok {
		return
	}
	outcome, err := s.rounds.NextRound(c.Request.Context(), gameID)
	if err != nil {
		writeError(c, gameID, err)
		return
	}
	if outcome.Finished {
		c.JSON(http.StatusOK, gin.H{"finished": true, "results": resultsPath(gameID)})
		return
	}
	c.JSON(http.StatusOK, gin.H{"finished": false, "round": outcome.Next})
}
