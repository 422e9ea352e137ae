package domain

import "errors"

var (
	ErrInvalidInput    = errors.New("invalid input")
	ErrUnauthorized    = errors.New("unauthorized")
	ErrForbidden       = errors.New("forbidden")
	ErrNotFound        = errors.New("not found")
	ErrConflict        = errors.New("conflict")
	ErrNotEnoughTasks  = errors.New("not enough tasks")
	ErrVersionConflict = errors.New("game state version conflict")
	ErrLobbyDisbanded  = errors.New("lobby disbanded")
	ErrGameNotActive   = errors.New("game is not active")
)
