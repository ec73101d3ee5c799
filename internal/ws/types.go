package ws

import (
	"encoding/json"
)

// MessageType represents the different kinds of messages exchanged over a
// session websocket.
type MessageType string

const (
	MessageTypeClick        MessageType = "click"
	MessageTypeSessionState MessageType = "sessionState"
	MessageTypeError        MessageType = "error"
)

// Message is the envelope for every websocket frame.
type Message struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// ClickPayload is the body of a click message.
type ClickPayload struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// ErrorPayload is the body of an error message.
type ErrorPayload struct {
	Error string `json:"error"`
}

func NewMessage(t MessageType, payload interface{}) (Message, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return Message{}, err
	}
	return Message{Type: t, Payload: raw}, nil
}

func NewErrorMessage(errorMsg string) Message {
	raw, _ := json.Marshal(ErrorPayload{Error: errorMsg})
	return Message{Type: MessageTypeError, Payload: raw}
}
