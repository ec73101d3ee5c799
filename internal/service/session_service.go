package service

import (
	"context"
	"fmt"

	"github.com/benbeisheim/clickchess-backend/internal/model"
	"github.com/google/uuid"
)

type SessionService struct {
	sessionManager *SessionManager
}

func NewSessionService(sessionManager *SessionManager) *SessionService {
	return &SessionService{
		sessionManager: sessionManager,
	}
}

func (ss *SessionService) CreateSession(ctx context.Context, ownerID string) (model.SessionState, error) {
	sessionID := uuid.New().String()

	session, err := ss.sessionManager.CreateSession(ctx, sessionID, ownerID)
	if err != nil {
		return model.SessionState{}, fmt.Errorf("failed to create session: %w", err)
	}
	return session.State(), nil
}

func (ss *SessionService) GetSessionState(ctx context.Context, sessionID string) (model.SessionState, error) {
	return ss.sessionManager.GetSessionState(ctx, sessionID)
}

func (ss *SessionService) GetSelection(ctx context.Context, sessionID string) (*model.Square, error) {
	return ss.sessionManager.GetSelection(ctx, sessionID)
}

func (ss *SessionService) Click(ctx context.Context, sessionID, playerID string, sq model.Square) (model.ClickOutcome, model.SessionState, error) {
	return ss.sessionManager.Click(ctx, sessionID, playerID, sq)
}

// CheckMove answers a legality query against the session's current board
// without changing anything.
func (ss *SessionService) CheckMove(ctx context.Context, sessionID string, from, to model.Square) (bool, error) {
	board, err := ss.sessionManager.GetBoard(ctx, sessionID)
	if err != nil {
		return false, err
	}
	return model.IsLegalMove(board, from, to), nil
}

func (ss *SessionService) DeleteSession(ctx context.Context, sessionID, playerID string) error {
	return ss.sessionManager.DeleteSession(ctx, sessionID, playerID)
}

func (ss *SessionService) RegisterConnection(ctx context.Context, sessionID, playerID string, conn Conn) error {
	return ss.sessionManager.RegisterConnection(ctx, sessionID, playerID, conn)
}

func (ss *SessionService) UnregisterConnection(sessionID, playerID string, conn Conn) {
	ss.sessionManager.UnregisterConnection(sessionID, playerID, conn)
}
