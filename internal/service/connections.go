package service

import (
	"fmt"
	"sync"

	"github.com/benbeisheim/clickchess-backend/internal/model"
	"github.com/benbeisheim/clickchess-backend/internal/obslog"
	"github.com/benbeisheim/clickchess-backend/internal/ws"
	"go.uber.org/zap"
)

// Conn is the part of a websocket connection the service writes to.
type Conn interface {
	WriteJSON(v interface{}) error
	Close() error
}

// SessionConnections holds the observers of one session, one per player.
type SessionConnections struct {
	connections map[string]Conn // playerID -> connection
	mu          sync.RWMutex
}

func NewSessionConnections() *SessionConnections {
	return &SessionConnections{connections: make(map[string]Conn)}
}

// Add registers conn for playerID. A player with a live connection keeps
// it and the new one is refused.
func (sc *SessionConnections) Add(playerID string, conn Conn) bool {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	if _, exists := sc.connections[playerID]; exists {
		return false
	}
	sc.connections[playerID] = conn
	return true
}

// Remove drops playerID only if conn is still the registered connection,
// so a stale reader cannot unregister its replacement.
func (sc *SessionConnections) Remove(playerID string, conn Conn) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	if current, exists := sc.connections[playerID]; exists && current == conn {
		delete(sc.connections, playerID)
	}
}

func (sc *SessionConnections) Len() int {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return len(sc.connections)
}

func (sc *SessionConnections) CloseAll() {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	for playerID, conn := range sc.connections {
		_ = conn.Close()
		delete(sc.connections, playerID)
	}
}

// Send writes state to a single observer, dropping it on failure.
func (sc *SessionConnections) Send(playerID string, conn Conn, state model.SessionState) error {
	msg, err := ws.NewMessage(ws.MessageTypeSessionState, state)
	if err != nil {
		return err
	}
	if err := conn.WriteJSON(msg); err != nil {
		sc.Remove(playerID, conn)
		return err
	}
	return nil
}

// Broadcast sends state to every observer and drops connections that fail.
func (sc *SessionConnections) Broadcast(state model.SessionState) {
	msg, err := ws.NewMessage(ws.MessageTypeSessionState, state)
	if err != nil {
		obslog.L().Error("session_state_encode", zap.String("session_id", state.ID), zap.Error(err))
		return
	}

	sc.mu.RLock()
	active := make(map[string]Conn, len(sc.connections))
	for playerID, conn := range sc.connections {
		active[playerID] = conn
	}
	sc.mu.RUnlock()

	for playerID, conn := range active {
		if err := conn.WriteJSON(msg); err != nil {
			obslog.L().Warn("session_state_send",
				zap.String("session_id", state.ID),
				zap.String("player_id", playerID),
				zap.String("conn", fmt.Sprintf("%p", conn)),
				zap.Error(err),
			)
			sc.Remove(playerID, conn)
		}
	}
}
