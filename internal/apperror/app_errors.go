package apperror

import "errors"

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrInvalidCell     = errors.New("invalid cell index")
	ErrMoveOutOfRange  = errors.New("move is out of history range")
)
