package model

type SelectionState string

const (
	Idle          SelectionState = "idle"
	PieceSelected SelectionState = "pieceSelected"
)

// Selector turns a sequence of square clicks into move attempts. The first
// click on an occupied square picks the piece up; the next click, on any
// square, tries to move it there and then always drops the selection.
type Selector struct {
	state  SelectionState
	origin Square
}

func NewSelector() Selector {
	return Selector{state: Idle}
}

func (s Selector) State() SelectionState {
	if s.state == "" {
		return Idle
	}
	return s.state
}

func (s Selector) Selection() (Square, bool) {
	if s.State() != PieceSelected {
		return Square{}, false
	}
	return s.origin, true
}

// Click feeds one click into the selector and returns the board to adopt.
// An out-of-bounds square is an error and leaves the selector untouched.
func (s *Selector) Click(b Board, sq Square) (Board, ClickOutcome, error) {
	occupant, occupied, err := b.PieceAt(sq)
	if err != nil {
		return b, ClickOutcome{}, err
	}

	if s.State() == Idle {
		if !occupied {
			return b, ClickOutcome{Kind: OutcomeIgnored, Square: sq}, nil
		}
		s.state = PieceSelected
		s.origin = sq
		return b, ClickOutcome{Kind: OutcomeSelected, Square: sq, Piece: &occupant}, nil
	}

	origin := s.origin
	s.state = Idle
	s.origin = Square{}

	move := &Move{From: origin, To: sq}
	if !IsLegalMove(b, origin, sq) {
		return b, ClickOutcome{Kind: OutcomeRejected, Square: sq, Move: move}, nil
	}

	moved, _, _ := b.PieceAt(origin)
	next, err := ApplyMove(b, origin, sq)
	if err != nil {
		return b, ClickOutcome{}, err
	}
	kind := OutcomeMoved
	if occupied {
		kind = OutcomeCaptured
	}
	return next, ClickOutcome{Kind: kind, Square: sq, Move: move, Piece: &moved}, nil
}
