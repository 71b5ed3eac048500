package game

import "errors"

var (
	ErrNotEnoughPlayers = errors.New("select at least two players")
	ErrGameNotFound     = errors.New("game not found")
	ErrGameFinished     = errors.New("game already finished")
	ErrUnknownUser      = errors.New("unknown user")
	ErrInvalidName      = errors.New("name must be between 1 and 40 characters")
	ErrNotSaved         = errors.New("changes were not saved")
)
