package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/r3p1n/scoring/internal/db"
)

type userRequest struct {
	Name string `json:"name" binding:"required,name"`
}

type userResponse struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

var userMessages = bindMessages{
	"Name": {
		"required": "name is required",
		"name":     "name must be between 1 and 40 characters",
	},
}

func toUserResponse(user db.User) userResponse {
	return userResponse{ID: user.ID, Name: user.Name}
}

func (s *Server) handleListUsers(c *gin.Context) {
	users := s.games.Users(c.Request.Context())
	out := make([]userResponse, 0, len(users))
	for _, user := range users {
		out = append(out, toUserResponse(user))
	}
	c.JSON(http.StatusOK, gin.H{"users": out})
}

func (s *Server) handleCreateUser(c *gin.Context) {
	var req userRequest
	if !bindJSON(c, &req, userMessages, "invalid user") {
		return
	}
	user, err := s.games.AddUser(c.Request.Context(), req.Name)
	if err != nil {
		writeError(c, 0, err)
		return
	}
	c.JSON(http.StatusCreated, toUserResponse(*user))
}

func (s *Server) handleRenameUser(c *gin.Context) {
	var uri struct {
		ID uint `uri:"id" binding:"required"`
	}
	if !bindURI(c, &uri) {
		return
	}
	var req userRequest
	if !bindJSON(c, &req, userMessages, "invalid user") {
		return
	}
	user, err := s.games.RenameUser(c.Request.Context(), uri.ID, req.Name)
	if err != nil {
		writeError(c, 0, err)
		return
	}
	c.JSON(http.StatusOK, toUserResponse(*user))
}

func (s *Server) handleDefaultGoal(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"goal": s.games.DefaultGoal(c.Request.Context())})
}
