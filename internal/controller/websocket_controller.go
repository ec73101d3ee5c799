package controller

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/benbeisheim/clickchess-backend/internal/middleware"
	"github.com/benbeisheim/clickchess-backend/internal/model"
	"github.com/benbeisheim/clickchess-backend/internal/obslog"
	"github.com/benbeisheim/clickchess-backend/internal/service"
	"github.com/benbeisheim/clickchess-backend/internal/ws"
	"github.com/gofiber/websocket/v2"
	"go.uber.org/zap"
)

type WebSocketController struct {
	sessionService *service.SessionService
}

func NewWebSocketController(sessionService *service.SessionService) *WebSocketController {
	return &WebSocketController{
		sessionService: sessionService,
	}
}

// lockedConn serializes writes: broadcasts from other players' clicks and
// replies from this connection's reader share one socket.
type lockedConn struct {
	mu   sync.Mutex
	conn *websocket.Conn
}

func (lc *lockedConn) WriteJSON(v interface{}) error {
	lc.mu.Lock()
	defer lc.mu.Unlock()
	return lc.conn.WriteJSON(v)
}

func (lc *lockedConn) Close() error {
	lc.mu.Lock()
	defer lc.mu.Unlock()
	return lc.conn.Close()
}

// HandleConnection is called when a new WebSocket connection is established
func (wsc *WebSocketController) HandleConnection(c *websocket.Conn) {
	sessionID, _ := c.Locals("wsSessionID").(string)
	if sessionID == "" {
		sessionID = c.Params("sessionId")
	}
	playerID, _ := c.Locals(middleware.PlayerIDKey).(string)
	log := obslog.L().With(zap.String("session_id", sessionID), zap.String("player_id", playerID))
	ctx := context.Background()

	conn := &lockedConn{conn: c}
	if err := wsc.sessionService.RegisterConnection(ctx, sessionID, playerID, conn); err != nil {
		log.Warn("ws_register_failed", zap.Error(err))
		_ = conn.WriteJSON(ws.NewErrorMessage(err.Error()))
		_ = conn.Close()
		return
	}
	defer wsc.sessionService.UnregisterConnection(sessionID, playerID, conn)

	for {
		messageType, message, err := c.ReadMessage()
		if err != nil {
			log.Debug("ws_read_closed", zap.Error(err))
			break
		}
		if messageType != websocket.TextMessage {
			continue
		}

		var msg ws.Message
		if err := json.Unmarshal(message, &msg); err != nil {
			log.Debug("ws_parse_error", zap.Error(err))
			_ = conn.WriteJSON(ws.NewErrorMessage("malformed message"))
			continue
		}

		if err := wsc.handleMessage(ctx, sessionID, playerID, msg); err != nil {
			log.Debug("ws_handle_error", zap.String("type", string(msg.Type)), zap.Error(err))
			_ = conn.WriteJSON(ws.NewErrorMessage(err.Error()))
		}
	}
}

// handleMessage dispatches one inbound message. The resulting state reaches
// the sender through the session broadcast.
func (wsc *WebSocketController) handleMessage(ctx context.Context, sessionID, playerID string, msg ws.Message) error {
	switch msg.Type {
	case ws.MessageTypeClick:
		var click ws.ClickPayload
		if err := json.Unmarshal(msg.Payload, &click); err != nil {
			return fmt.Errorf("invalid click payload: %w", err)
		}
		_, _, err := wsc.sessionService.Click(ctx, sessionID, playerID, model.Square{Row: click.Row, Col: click.Col})
		return err

	default:
		return fmt.Errorf("unknown message type: %s", msg.Type)
	}
}
