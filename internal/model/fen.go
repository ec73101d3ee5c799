package model

import (
	nchess "github.com/corentings/chess/v2"
)

var fenPieceTypes = map[PieceType]nchess.PieceType{
	King:   nchess.King,
	Queen:  nchess.Queen,
	Rook:   nchess.Rook,
	Bishop: nchess.Bishop,
	Knight: nchess.Knight,
	Pawn:   nchess.Pawn,
}

// Placement returns the piece-placement field of a FEN string for b. Row 0
// is rank 8 and col 0 is file a.
func (b Board) Placement() string {
	pieces := make(map[nchess.Square]nchess.Piece)
	for row := 0; row < BoardSize; row++ {
		for col := 0; col < BoardSize; col++ {
			p := b.cells[row][col]
			if p == nil {
				continue
			}
			color := nchess.White
			if p.Side == Black {
				color = nchess.Black
			}
			sq := nchess.NewSquare(nchess.File(col), nchess.Rank(BoardSize-1-row))
			pieces[sq] = nchess.NewPiece(fenPieceTypes[p.Type], color)
		}
	}
	return nchess.NewBoard(pieces).String()
}
