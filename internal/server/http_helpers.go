package server

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/r3p1n/scoring/internal/game"
	"github.com/r3p1n/scoring/internal/ledger"
	"github.com/r3p1n/scoring/internal/results"
)

func resultsPath(gameID uint) string {
	return "/games/" + strconv.FormatUint(uint64(gameID), 10) + "/results"
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, game.ErrNotEnoughPlayers),
		errors.Is(err, game.ErrUnknownUser),
		errors.Is(err, game.ErrInvalidName),
		errors.Is(err, ledger.ErrEmptyScore),
		errors.Is(err, ledger.ErrUnknownPlayer):
		return http.StatusUnprocessableEntity
	case errors.Is(err, game.ErrGameNotFound), errors.Is(err, results.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, game.ErrGameFinished), errors.Is(err, ledger.ErrStaleRound):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// writeError maps a domain error to a JSON response. A finished game also
// carries the link to its results.
func writeError(c *gin.Context, gameID uint, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		_ = c.Error(err)
	}
	body := gin.H{"error": err.Error()}
	if gameID != 0 && errors.Is(err, game.ErrGameFinished) {
		body["results"] = resultsPath(gameID)
	}
	c.JSON(status, body)
}
