package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/benbeisheim/clickchess-backend/internal/model"
	"github.com/benbeisheim/clickchess-backend/internal/obslog"
	"github.com/benbeisheim/clickchess-backend/internal/store"
	"go.uber.org/zap"
)

// sessionEntry pairs a live session with its observers. mu serializes a
// click with the save and broadcast that follow it, and guards closed.
type sessionEntry struct {
	mu          sync.Mutex
	session     *model.Session
	connections *SessionConnections
	closed      bool
}

type SessionManager struct {
	sessions map[string]*sessionEntry
	store    store.Store
	mu       sync.RWMutex
}

func NewSessionManager(st store.Store) *SessionManager {
	if st == nil {
		st = store.NewMemoryStore()
	}
	return &SessionManager{
		sessions: make(map[string]*sessionEntry),
		store:    st,
	}
}

func (sm *SessionManager) CreateSession(ctx context.Context, sessionID, ownerID string) (*model.Session, error) {
	if ownerID == "" {
		return nil, ErrMissingPlayer
	}
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if _, exists := sm.sessions[sessionID]; exists {
		return nil, ErrSessionExists
	}
	session := model.NewSession(sessionID, ownerID)
	if err := sm.store.Save(ctx, session.State()); err != nil {
		return nil, fmt.Errorf("save session %s: %w", sessionID, err)
	}
	sm.sessions[sessionID] = &sessionEntry{session: session, connections: NewSessionConnections()}

	obslog.L().Info("session_create",
		zap.String("session_id", sessionID),
		zap.String("owner_id", ownerID),
	)
	return session, nil
}

// entry returns the live session, restoring it from the store when this
// process has not seen it yet.
func (sm *SessionManager) entry(ctx context.Context, sessionID string) (*sessionEntry, error) {
	sm.mu.RLock()
	e, exists := sm.sessions[sessionID]
	sm.mu.RUnlock()
	if exists {
		return e, nil
	}

	state, err := sm.store.Load(ctx, sessionID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load session %s: %w", sessionID, err)
	}
	session, err := model.RestoreSession(state)
	if err != nil {
		return nil, err
	}

	sm.mu.Lock()
	defer sm.mu.Unlock()
	if e, exists := sm.sessions[sessionID]; exists {
		return e, nil
	}
	e = &sessionEntry{session: session, connections: NewSessionConnections()}
	sm.sessions[sessionID] = e
	obslog.L().Info("session_restore", zap.String("session_id", sessionID), zap.Int("version", state.Version))
	return e, nil
}

func (sm *SessionManager) GetSessionState(ctx context.Context, sessionID string) (model.SessionState, error) {
	e, err := sm.entry(ctx, sessionID)
	if err != nil {
		return model.SessionState{}, err
	}
	return e.session.State(), nil
}

func (sm *SessionManager) GetBoard(ctx context.Context, sessionID string) (model.Board, error) {
	e, err := sm.entry(ctx, sessionID)
	if err != nil {
		return model.Board{}, err
	}
	return e.session.Board(), nil
}

func (sm *SessionManager) GetSelection(ctx context.Context, sessionID string) (*model.Square, error) {
	e, err := sm.entry(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if origin, ok := e.session.Selection(); ok {
		return &origin, nil
	}
	return nil, nil
}

// Click runs one click through the session, persists the result and pushes
// the new state to observers. Only the owner may click.
func (sm *SessionManager) Click(ctx context.Context, sessionID, playerID string, sq model.Square) (model.ClickOutcome, model.SessionState, error) {
	e, err := sm.entry(ctx, sessionID)
	if err != nil {
		return model.ClickOutcome{}, model.SessionState{}, err
	}
	if e.session.OwnerID != playerID {
		return model.ClickOutcome{}, model.SessionState{}, ErrNotOwner
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return model.ClickOutcome{}, model.SessionState{}, ErrSessionNotFound
	}

	prev := e.session.State()
	outcome, err := e.session.OnSquareClicked(sq)
	if err != nil {
		return model.ClickOutcome{}, model.SessionState{}, err
	}
	state := e.session.State()
	if err := sm.store.Save(ctx, state); err != nil {
		if rbErr := e.session.Rollback(prev); rbErr != nil {
			obslog.L().Error("session_rollback_failed", zap.String("session_id", sessionID), zap.Error(rbErr))
		}
		return model.ClickOutcome{}, model.SessionState{}, fmt.Errorf("save session %s: %w", sessionID, err)
	}

	obslog.L().Info("session_click",
		zap.String("session_id", sessionID),
		zap.String("square", sq.String()),
		zap.String("outcome", string(outcome.Kind)),
		zap.Int("version", state.Version),
	)
	e.connections.Broadcast(state)
	return outcome, state, nil
}

func (sm *SessionManager) DeleteSession(ctx context.Context, sessionID, playerID string) error {
	e, err := sm.entry(ctx, sessionID)
	if err != nil {
		return err
	}
	if e.session.OwnerID != playerID {
		return ErrNotOwner
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return ErrSessionNotFound
	}
	if err := sm.store.Delete(ctx, sessionID); err != nil {
		return fmt.Errorf("delete session %s: %w", sessionID, err)
	}
	e.closed = true

	sm.mu.Lock()
	if sm.sessions[sessionID] == e {
		delete(sm.sessions, sessionID)
	}
	sm.mu.Unlock()

	e.connections.CloseAll()
	obslog.L().Info("session_delete", zap.String("session_id", sessionID))
	return nil
}

// RegisterConnection adds an observer and sends it the current state. Any
// player may observe a session.
func (sm *SessionManager) RegisterConnection(ctx context.Context, sessionID, playerID string, conn Conn) error {
	e, err := sm.entry(ctx, sessionID)
	if err != nil {
		return err
	}

	// Holding mu keeps click broadcasts behind the initial state.
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return ErrSessionNotFound
	}
	if !e.connections.Add(playerID, conn) {
		return fmt.Errorf("player %s already connected to session %s", playerID, sessionID)
	}
	obslog.L().Debug("session_connect",
		zap.String("session_id", sessionID),
		zap.String("player_id", playerID),
		zap.Int("observers", e.connections.Len()),
	)

	if err := e.connections.Send(playerID, conn, e.session.State()); err != nil {
		return fmt.Errorf("send initial state: %w", err)
	}
	return nil
}

func (sm *SessionManager) UnregisterConnection(sessionID, playerID string, conn Conn) {
	sm.mu.RLock()
	e, exists := sm.sessions[sessionID]
	sm.mu.RUnlock()
	if !exists {
		return
	}
	e.connections.Remove(playerID, conn)
	obslog.L().Debug("session_disconnect",
		zap.String("session_id", sessionID),
		zap.String("player_id", playerID),
	)
}
