package errors

import "errors"

var (
	ErrOutOfBounds        = errors.New("coordinate is outside the board")
	ErrOccupied           = errors.New("point is already occupied")
	ErrSuicide            = errors.New("move leaves own group without liberties")
	ErrActionAfterGameEnd = errors.New("game has already ended")
	ErrInvalidSize        = errors.New("board size must be between 1 and 52")
	ErrNotYourTurn        = errors.New("it is not this color's turn")
	ErrInvalidVertex      = errors.New("invalid vertex")
	ErrInvalidState       = errors.New("invalid game state")
	ErrGameNotFound       = errors.New("game not found")
	ErrArchiveDisabled    = errors.New("game archive is not configured")
)
