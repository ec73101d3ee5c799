package model

// forward is the pawn step direction per side: black starts at row 1 and
// moves down the grid, white starts at row 6 and moves up.
var forward = map[Side]int{
	Black: 1,
	White: -1,
}

// IsLegalMove reports whether the piece on from may move to to, judged by
// end-square geometry and occupancy only. Paths are not checked for
// blockers, and a move that leaves the own king attacked is still legal.
// It never fails: bad squares and an empty source are simply illegal.
func IsLegalMove(b Board, from, to Square) bool {
	if !to.InBounds() || !from.InBounds() {
		return false
	}
	piece, ok, _ := b.PieceAt(from)
	if !ok {
		return false
	}
	target, occupied, _ := b.PieceAt(to)
	if occupied && target.Side == piece.Side {
		return false
	}

	dRow := to.Row - from.Row
	dCol := to.Col - from.Col
	rowDiff := abs(dRow)
	colDiff := abs(dCol)

	switch piece.Type {
	case Pawn:
		dir, known := forward[piece.Side]
		if !known || dRow != dir {
			return false
		}
		if dCol == 0 {
			return !occupied
		}
		return colDiff == 1 && occupied
	case Knight:
		return (rowDiff == 2 && colDiff == 1) || (rowDiff == 1 && colDiff == 2)
	case Bishop:
		return rowDiff == colDiff
	case Rook:
		return dRow == 0 || dCol == 0
	case Queen:
		return dRow == 0 || dCol == 0 || rowDiff == colDiff
	case King:
		// Either axis within one square is enough, so a king also slides
		// freely along its rank or file.
		return rowDiff <= 1 || colDiff <= 1
	default:
		return false
	}
}

// LegalTargets lists every square IsLegalMove accepts from from, in
// row-major order.
func LegalTargets(b Board, from Square) []Square {
	targets := []Square{}
	for row := 0; row < BoardSize; row++ {
		for col := 0; col < BoardSize; col++ {
			to := Square{Row: row, Col: col}
			if IsLegalMove(b, from, to) {
				targets = append(targets, to)
			}
		}
	}
	return targets
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
