// Command wsprobe creates a session on a running server, replays a list of
// clicks over its websocket and prints every state it receives.
//
//	wsprobe -addr localhost:3000 -player me 6,4 4,4
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/benbeisheim/clickchess-backend/internal/model"
	"github.com/benbeisheim/clickchess-backend/internal/ws"
	"nhooyr.io/websocket"
	"nhooyr.io/websocket/wsjson"
)

func main() {
	addr := flag.String("addr", "localhost:3000", "server host:port")
	player := flag.String("player", "wsprobe", "player id")
	timeout := flag.Duration("timeout", 10*time.Second, "overall timeout")
	flag.Parse()

	clicks, err := parseClicks(flag.Args())
	if err != nil {
		log.Fatalf("clicks: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	sessionID, err := createSession(ctx, *addr, *player)
	if err != nil {
		log.Fatalf("create session: %v", err)
	}
	log.Printf("session %s", sessionID)

	wsURL := url.URL{
		Scheme:   "ws",
		Host:     *addr,
		Path:     "/ws/session/" + sessionID,
		RawQuery: url.Values{"playerId": {*player}}.Encode(),
	}
	conn, _, err := websocket.Dial(ctx, wsURL.String(), &websocket.DialOptions{
		CompressionMode: websocket.CompressionNoContextTakeover,
	})
	if err != nil {
		log.Fatalf("dial %s: %v", wsURL.String(), err)
	}
	defer conn.Close(websocket.StatusNormalClosure, "done")

	// initial state
	if err := readState(ctx, conn); err != nil {
		log.Fatalf("read initial state: %v", err)
	}
	for _, sq := range clicks {
		msg, err := ws.NewMessage(ws.MessageTypeClick, ws.ClickPayload{Row: sq.Row, Col: sq.Col})
		if err != nil {
			log.Fatalf("encode click: %v", err)
		}
		if err := wsjson.Write(ctx, conn, msg); err != nil {
			log.Fatalf("send click %v: %v", sq, err)
		}
		if err := readState(ctx, conn); err != nil {
			log.Fatalf("read state after %v: %v", sq, err)
		}
	}
}

func parseClicks(args []string) ([]model.Square, error) {
	var out []model.Square
	for _, a := range args {
		parts := strings.Split(a, ",")
		if len(parts) != 2 {
			return nil, fmt.Errorf("%q must be row,col", a)
		}
		row, err := strconv.Atoi(parts[0])
		if err != nil {
			return nil, fmt.Errorf("%q: %w", a, err)
		}
		col, err := strconv.Atoi(parts[1])
		if err != nil {
			return nil, fmt.Errorf("%q: %w", a, err)
		}
		out = append(out, model.Square{Row: row, Col: col})
	}
	return out, nil
}

func createSession(ctx context.Context, addr, player string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, "http://"+addr+"/api/session", bytes.NewReader(nil))
	if err != nil {
		return "", err
	}
	req.Header.Set("X-Player-ID", player)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		return "", fmt.Errorf("unexpected status %s", resp.Status)
	}
	var payload struct {
		SessionID string `json:"session_id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", err
	}
	return payload.SessionID, nil
}

func readState(ctx context.Context, conn *websocket.Conn) error {
	var msg ws.Message
	if err := wsjson.Read(ctx, conn, &msg); err != nil {
		return err
	}
	switch msg.Type {
	case ws.MessageTypeError:
		var e ws.ErrorPayload
		_ = json.Unmarshal(msg.Payload, &e)
		fmt.Fprintf(os.Stdout, "error: %s\n", e.Error)
	case ws.MessageTypeSessionState:
		var state model.SessionState
		if err := json.Unmarshal(msg.Payload, &state); err != nil {
			return err
		}
		outcome := "-"
		if state.LastOutcome != nil {
			outcome = string(state.LastOutcome.Kind)
		}
		sel := "none"
		if state.Selection != nil {
			sel = state.Selection.String()
		}
		fmt.Fprintf(os.Stdout, "v%d %-9s selection=%s %s\n", state.Version, outcome, sel, state.Placement)
	default:
		fmt.Fprintf(os.Stdout, "%s: %s\n", msg.Type, msg.Payload)
	}
	return nil
}
