package model

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

// boardWith builds a board holding only the given pieces.
func boardWith(t *testing.T, pieces map[Square]Piece) Board {
	t.Helper()
	b := NewEmptyBoard()
	for sq, p := range pieces {
		var err error
		if b, err = b.Place(sq, p); err != nil {
			t.Fatalf("Place(%v, %v): %v", sq, p, err)
		}
	}
	return b
}

func TestIsLegalMoveFriendlyFire(t *testing.T) {
	b := NewBoard()
	for _, rows := range [][2]int{{0, 1}, {6, 7}} {
		for fr := rows[0]; fr <= rows[1]; fr++ {
			for fc := 0; fc < BoardSize; fc++ {
				for tr := rows[0]; tr <= rows[1]; tr++ {
					for tc := 0; tc < BoardSize; tc++ {
						from, to := Square{fr, fc}, Square{tr, tc}
						if IsLegalMove(b, from, to) {
							t.Errorf("IsLegalMove(%v, %v) = true between same-side pieces", from, to)
						}
					}
				}
			}
		}
	}
}

func TestIsLegalMoveOutOfBounds(t *testing.T) {
	b := boardWith(t, map[Square]Piece{
		{0, 0}: {Rook, White},
		{7, 7}: {King, Black},
		{3, 3}: {Queen, White},
	})
	targets := []Square{{-1, 0}, {0, -1}, {8, 0}, {0, 8}, {-1, -1}, {8, 8}, {3, 11}}
	for _, from := range []Square{{0, 0}, {7, 7}, {3, 3}} {
		for _, to := range targets {
			if IsLegalMove(b, from, to) {
				t.Errorf("IsLegalMove(%v, %v) = true for out-of-bounds target", from, to)
			}
		}
	}
	if IsLegalMove(b, Square{-1, 3}, Square{3, 3}) {
		t.Error("IsLegalMove from out-of-bounds source = true")
	}
}

func TestIsLegalMoveEmptySource(t *testing.T) {
	if IsLegalMove(NewBoard(), Square{4, 4}, Square{3, 4}) {
		t.Error("IsLegalMove from empty square = true; want false")
	}
}

func TestIsLegalMove(t *testing.T) {
	start := NewBoard()
	open := boardWith(t, map[Square]Piece{
		{4, 4}: {Pawn, White},
		{3, 5}: {Pawn, Black},
		{3, 4}: {Knight, Black},
		{2, 2}: {Pawn, Black},
		{5, 1}: {Pawn, White},
		{7, 4}: {King, White},
		{7, 1}: {Knight, White},
	})

	tests := []struct {
		name     string
		board    Board
		from, to Square
		want     bool
	}{
		// pawns
		{"white pawn single step", start, Square{6, 4}, Square{5, 4}, true},
		{"white pawn double step", start, Square{6, 4}, Square{4, 4}, false},
		{"black pawn single step", start, Square{1, 3}, Square{2, 3}, true},
		{"black pawn backwards", open, Square{2, 2}, Square{1, 2}, false},
		{"white pawn diagonal capture", open, Square{4, 4}, Square{3, 5}, true},
		{"white pawn diagonal to empty", open, Square{4, 4}, Square{3, 3}, false},
		{"white pawn straight into piece", open, Square{4, 4}, Square{3, 4}, false},
		{"white pawn sideways", open, Square{4, 4}, Square{4, 5}, false},
		{"black pawn capture", open, Square{3, 5}, Square{4, 4}, true},
		{"black pawn capture wrong way", open, Square{2, 2}, Square{1, 1}, false},

		// knights
		{"knight b1 to a3", start, Square{7, 1}, Square{5, 0}, true},
		{"knight b1 to c3", start, Square{7, 1}, Square{5, 2}, true},
		{"knight b1 straight", start, Square{7, 1}, Square{4, 1}, false},
		{"knight one two on open board", open, Square{7, 1}, Square{6, 3}, true},
		{"knight onto friendly pawn", start, Square{7, 1}, Square{6, 3}, false},

		// sliders ignore pieces in between
		{"bishop through pawn", start, Square{7, 2}, Square{4, 5}, true},
		{"bishop off diagonal", start, Square{7, 2}, Square{4, 4}, false},
		{"rook through pawn", start, Square{7, 0}, Square{3, 0}, true},
		{"rook capture across board", start, Square{7, 0}, Square{1, 0}, true},
		{"rook diagonal", start, Square{7, 0}, Square{5, 2}, false},
		{"queen file", start, Square{7, 3}, Square{4, 3}, true},
		{"queen diagonal", start, Square{7, 3}, Square{5, 5}, true},
		{"queen knight jump", start, Square{7, 3}, Square{5, 4}, false},

		// king: one axis within a square is enough
		{"king one step", open, Square{7, 4}, Square{6, 4}, true},
		{"king along rank", open, Square{7, 4}, Square{7, 0}, true},
		{"king along file", open, Square{7, 4}, Square{0, 4}, true},
		{"king two by one", open, Square{7, 4}, Square{5, 5}, true},
		{"king far diagonal", open, Square{7, 4}, Square{4, 1}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsLegalMove(tt.board, tt.from, tt.to); got != tt.want {
				t.Errorf("IsLegalMove(%v, %v) = %v; want %v", tt.from, tt.to, got, tt.want)
			}
		})
	}
}

func TestIsLegalMoveSameSquare(t *testing.T) {
	b := NewBoard()
	for _, sq := range []Square{{0, 4}, {6, 0}, {7, 3}} {
		if IsLegalMove(b, sq, sq) {
			t.Errorf("IsLegalMove(%v, %v) = true; want false", sq, sq)
		}
	}
}

func TestLegalTargets(t *testing.T) {
	b := NewBoard()

	tests := []struct {
		name string
		from Square
		want []Square
	}{
		{"knight b1", Square{7, 1}, []Square{{5, 0}, {5, 2}}},
		{"pawn e2", Square{6, 4}, []Square{{5, 4}}},
		{"black pawn a7", Square{1, 0}, []Square{{2, 0}}},
		{"empty square", Square{4, 4}, []Square{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, LegalTargets(b, tt.from)); diff != "" {
				t.Errorf("LegalTargets(%v) mismatch (-want +got):\n%s", tt.from, diff)
			}
		})
	}
}
