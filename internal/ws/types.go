package ws

import (
	"encoding/json"
)

// MessageType represents the different kinds of messages our system can handle
type MessageType string

const (
	MessageTypeMove      MessageType = "move"
	MessageTypeSelect    MessageType = "select"
	MessageTypeJumpTo    MessageType = "jumpTo"
	MessageTypeGameState MessageType = "gameState"
	MessageTypeResult    MessageType = "moveResult"
	MessageTypeError     MessageType = "error"
)

// Message represents a WebSocket message in our system
type Message struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type JumpToPayload struct {
	Index int `json:"index"`
}

type ErrorPayload struct {
	Error string `json:"error"`
}

// NewMessage marshals payload into a Message of type t.
func NewMessage(t MessageType, payload interface{}) (Message, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return Message{}, err
	}
	return Message{Type: t, Payload: raw}, nil
}
