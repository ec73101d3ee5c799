package model

import (
	"errors"
	"fmt"
	"sync"
	"time"
)

// Session owns one board and its selection. Clicks are applied one at a
// time under mu.
type Session struct {
	ID      string
	OwnerID string

	mu          sync.Mutex
	board       Board
	selector    Selector
	lastMove    *Move
	lastOutcome *ClickOutcome
	version     int
	createdAt   time.Time
	updatedAt   time.Time
}

// SessionState is the serializable view of a session, used both for
// clients and for persistence.
type SessionState struct {
	ID           string        `json:"id"`
	OwnerID      string        `json:"ownerId"`
	Board        Board         `json:"board"`
	Placement    string        `json:"placement"`
	Selection    *Square       `json:"selection"`
	LegalTargets []Square      `json:"legalTargets"`
	LastMove     *Move         `json:"lastMove"`
	LastOutcome  *ClickOutcome `json:"lastOutcome"`
	Version      int           `json:"version"`
	CreatedAt    time.Time     `json:"createdAt"`
	UpdatedAt    time.Time     `json:"updatedAt"`
}

func NewSession(id, ownerID string) *Session {
	now := time.Now().UTC()
	return &Session{
		ID:        id,
		OwnerID:   ownerID,
		board:     NewBoard(),
		selector:  NewSelector(),
		createdAt: now,
		updatedAt: now,
	}
}

// RestoreSession rebuilds a session from a persisted state.
func RestoreSession(state SessionState) (*Session, error) {
	if state.ID == "" {
		return nil, errors.New("restore session: missing id")
	}
	s := &Session{
		ID:        state.ID,
		OwnerID:   state.OwnerID,
		board:     state.Board,
		selector:  NewSelector(),
		lastMove:  state.LastMove,
		version:   state.Version,
		createdAt: state.CreatedAt,
		updatedAt: state.UpdatedAt,
	}
	if state.LastOutcome != nil {
		outcome := *state.LastOutcome
		s.lastOutcome = &outcome
	}
	if state.Selection != nil {
		occupied, err := state.Board.IsOccupied(*state.Selection)
		if err != nil {
			return nil, fmt.Errorf("restore session %s: %w", state.ID, err)
		}
		if occupied {
			s.selector.state = PieceSelected
			s.selector.origin = *state.Selection
		}
	}
	return s, nil
}

func (s *Session) Board() Board {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.board
}

func (s *Session) Selection() (Square, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selector.Selection()
}

func (s *Session) Version() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.version
}

// OnSquareClicked drives the selector with one click and adopts the board
// it returns. Out-of-bounds clicks fail without touching the session.
func (s *Session) OnSquareClicked(sq Square) (ClickOutcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, outcome, err := s.selector.Click(s.board, sq)
	if err != nil {
		return ClickOutcome{}, err
	}
	s.board = next
	if outcome.Applied() {
		s.lastMove = outcome.Move
	}
	s.lastOutcome = &outcome
	s.version++
	s.updatedAt = time.Now().UTC()
	return outcome, nil
}

// Rollback resets the session to an earlier state of itself, typically one
// taken with State before a click that could not be persisted.
func (s *Session) Rollback(state SessionState) error {
	if state.ID != s.ID {
		return fmt.Errorf("rollback session %s: state belongs to %q", s.ID, state.ID)
	}
	prev, err := RestoreSession(state)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.board = prev.board
	s.selector = prev.selector
	s.lastMove = prev.lastMove
	s.lastOutcome = prev.lastOutcome
	s.version = prev.version
	s.updatedAt = prev.updatedAt
	return nil
}

func (s *Session) State() SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()

	state := SessionState{
		ID:           s.ID,
		OwnerID:      s.OwnerID,
		Board:        s.board,
		Placement:    s.board.Placement(),
		LegalTargets: []Square{},
		Version:      s.version,
		CreatedAt:    s.createdAt,
		UpdatedAt:    s.updatedAt,
	}
	if origin, ok := s.selector.Selection(); ok {
		state.Selection = &origin
		state.LegalTargets = LegalTargets(s.board, origin)
	}
	if s.lastMove != nil {
		m := *s.lastMove
		state.LastMove = &m
	}
	if s.lastOutcome != nil {
		o := *s.lastOutcome
		state.LastOutcome = &o
	}
	return state
}
