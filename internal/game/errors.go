package game

import "errors"

var (
	ErrPlayerNotFound   = errors.New("player not found")
	ErrInvalidDirection = errors.New("direction must be a unit vector")
	ErrWorldFull        = errors.New("no free cell found")
)
