package model

import (
	"encoding/json"
	"fmt"
)

type PieceType string

const (
	King   PieceType = "king"
	Queen  PieceType = "queen"
	Rook   PieceType = "rook"
	Bishop PieceType = "bishop"
	Knight PieceType = "knight"
	Pawn   PieceType = "pawn"
)

func (p PieceType) Valid() bool {
	switch p {
	case King, Queen, Rook, Bishop, Knight, Pawn:
		return true
	}
	return false
}

type Side string

const (
	White Side = "white"
	Black Side = "black"
)

func (s Side) Opponent() Side {
	if s == White {
		return Black
	}
	return White
}

// Piece is never mutated once placed; a move relocates it, a capture drops it.
type Piece struct {
	Type PieceType `json:"type"`
	Side Side      `json:"color"`
}

func (p Piece) String() string {
	return fmt.Sprintf("%s %s", p.Side, p.Type)
}

const BoardSize = 8

type Square struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func (s Square) InBounds() bool {
	return s.Row >= 0 && s.Row < BoardSize && s.Col >= 0 && s.Col < BoardSize
}

func (s Square) String() string {
	return fmt.Sprintf("(%d,%d)", s.Row, s.Col)
}

// Board is an 8x8 snapshot. Assigning a Board copies the grid, so an
// update never reaches an earlier snapshot.
type Board struct {
	cells [BoardSize][BoardSize]*Piece
}

var backRank = [BoardSize]PieceType{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}

// NewBoard returns the standard starting position: black on rows 0-1,
// white on rows 6-7.
func NewBoard() Board {
	var b Board
	for col := 0; col < BoardSize; col++ {
		b.cells[0][col] = &Piece{Type: backRank[col], Side: Black}
		b.cells[1][col] = &Piece{Type: Pawn, Side: Black}
		b.cells[6][col] = &Piece{Type: Pawn, Side: White}
		b.cells[7][col] = &Piece{Type: backRank[col], Side: White}
	}
	return b
}

func NewEmptyBoard() Board {
	return Board{}
}

// PieceAt returns the occupant of sq. ok is false for an empty square.
func (b Board) PieceAt(sq Square) (Piece, bool, error) {
	if !sq.InBounds() {
		return Piece{}, false, &SquareError{Op: "piece at", Square: sq, Err: ErrOutOfBounds}
	}
	p := b.cells[sq.Row][sq.Col]
	if p == nil {
		return Piece{}, false, nil
	}
	return *p, true, nil
}

func (b Board) IsOccupied(sq Square) (bool, error) {
	_, ok, err := b.PieceAt(sq)
	return ok, err
}

// Place returns a copy of b with p on sq, replacing any occupant.
func (b Board) Place(sq Square, p Piece) (Board, error) {
	if !sq.InBounds() {
		return b, &SquareError{Op: "place", Square: sq, Err: ErrOutOfBounds}
	}
	if !p.Type.Valid() || (p.Side != White && p.Side != Black) {
		return b, fmt.Errorf("place %s at %s: %w", p, sq, ErrInvalidPiece)
	}
	piece := p
	b.cells[sq.Row][sq.Col] = &piece
	return b, nil
}

// ApplyMove relocates the piece on from to to without checking legality;
// callers run IsLegalMove first.
func ApplyMove(b Board, from, to Square) (Board, error) {
	if !from.InBounds() {
		return b, &SquareError{Op: "apply move", Square: from, Err: ErrOutOfBounds}
	}
	if !to.InBounds() {
		return b, &SquareError{Op: "apply move", Square: to, Err: ErrOutOfBounds}
	}
	piece := b.cells[from.Row][from.Col]
	if piece == nil {
		return b, &SquareError{Op: "apply move", Square: from, Err: ErrEmptySource}
	}
	next := b
	next.cells[from.Row][from.Col] = nil
	next.cells[to.Row][to.Col] = piece
	return next, nil
}

// Rows returns a detached copy of the grid, nil for empty cells.
func (b Board) Rows() [][]*Piece {
	rows := make([][]*Piece, BoardSize)
	for r := range rows {
		rows[r] = make([]*Piece, BoardSize)
		for c := 0; c < BoardSize; c++ {
			if p := b.cells[r][c]; p != nil {
				piece := *p
				rows[r][c] = &piece
			}
		}
	}
	return rows
}

func (b Board) MarshalJSON() ([]byte, error) {
	return json.Marshal(b.Rows())
}

func (b *Board) UnmarshalJSON(data []byte) error {
	var rows [][]*Piece
	if err := json.Unmarshal(data, &rows); err != nil {
		return err
	}
	if len(rows) != BoardSize {
		return fmt.Errorf("board has %d rows, want %d: %w", len(rows), BoardSize, ErrInvalidBoard)
	}
	next := NewEmptyBoard()
	for r, row := range rows {
		if len(row) != BoardSize {
			return fmt.Errorf("board row %d has %d cells, want %d: %w", r, len(row), BoardSize, ErrInvalidBoard)
		}
		for c, p := range row {
			if p == nil {
				continue
			}
			var err error
			if next, err = next.Place(Square{Row: r, Col: c}, *p); err != nil {
				return err
			}
		}
	}
	*b = next
	return nil
}
