package model

import (
	"errors"
	"fmt"
)

var (
	// ErrOutOfBounds means a square has a row or col outside [0,7].
	ErrOutOfBounds = errors.New("square out of bounds")

	// ErrEmptySource means a move was applied from a square with no piece.
	ErrEmptySource = errors.New("no piece on source square")

	ErrInvalidPiece = errors.New("invalid piece")
	ErrInvalidBoard = errors.New("invalid board")
)

// SquareError ties a board error to the square that caused it.
type SquareError struct {
	Op     string
	Square Square
	Err    error
}

func (e *SquareError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Square, e.Err)
}

func (e *SquareError) Unwrap() error {
	return e.Err
}
