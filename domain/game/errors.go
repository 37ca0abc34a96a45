package game

import "errors"

var (
	ErrNoPlayers         = errors.New("at least one player is required")
	ErrEmptyName         = errors.New("player name must not be empty")
	ErrDuplicatePlayer   = errors.New("player name already taken")
	ErrSessionFinished   = errors.New("session already played")
	ErrCardsNotConserved = errors.New("card conservation violated")
)
