package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/r3p1n/scoring/internal/results"
)

type resultsQuery struct {
	View string `form:"view" binding:"resultview"`
}

func (s *Server) handleResults(c *gin.Context) {
	gameID, ok := bindGameID(c)
	if !ok {
		return
	}
	var query resultsQuery
	if !bindQuery(c, &query, bindMessages{"View": {"resultview": "view must be players or rounds"}}) {
		return
	}
	view, _ := results.ParseView(query.View)
	report, err := s.results.Render(c.Request.Context(), gameID, view)
	if err != nil {
		writeError(c, gameID, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

func (s *Server) handleSwitchResults(c *gin.Context) {
	gameID, ok := bindGameID(c)
	if !ok {
		return
	}
	report, err := s.results.Switch(c.Request.Context(), gameID)
	if err != nil {
		writeError(c, gameID, err)
		return
	}
	c.JSON(http.StatusOK, report)
}
