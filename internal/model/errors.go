package model

import "errors"

var (
	ErrOffBoard           = errors.New("square off board")
	ErrInvalidSquare      = errors.New("invalid square")
	ErrSquareOccupied     = errors.New("square occupied")
	ErrNoPiece            = errors.New("no piece at square")
	ErrInvariantViolation = errors.New("invariant violation")
	ErrHistoryIndex       = errors.New("history index out of range")
	ErrConnectionRefused  = errors.New("connection already registered")
)
