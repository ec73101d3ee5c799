package model

type Move struct {
	From Square `json:"from"`
	To   Square `json:"to"`
}

// OutcomeKind describes what a click did to the session.
type OutcomeKind string

const (
	OutcomeIgnored  OutcomeKind = "ignored"
	OutcomeSelected OutcomeKind = "selected"
	OutcomeMoved    OutcomeKind = "moved"
	OutcomeCaptured OutcomeKind = "captured"
	OutcomeRejected OutcomeKind = "rejected"
)

type ClickOutcome struct {
	Kind   OutcomeKind `json:"kind"`
	Square Square      `json:"square"`
	// Move is set for moved, captured and rejected outcomes.
	Move  *Move  `json:"move,omitempty"`
	Piece *Piece `json:"piece,omitempty"`
}

func (o ClickOutcome) Applied() bool {
	return o.Kind == OutcomeMoved || o.Kind == OutcomeCaptured
}
