// Package protocol defines the event envelope exchanged over the chat
// websocket and the payloads of every named event.
package protocol

import (
	"encoding/json"

	"github.com/Maxencd/maxence/internal/models"
)

// Events sent by clients.
const (
	EventJoinRoom    = "join_room"
	EventSendMessage = "send_message"
	EventLeaveRoom   = "leave_room"
)

// Events sent by the server.
const (
	EventJoinSuccess = "join_success"
	EventJoinError   = "join_error"
	EventNewMessage  = "new_message"
	EventUserJoined  = "user_joined"
	EventUserLeft    = "user_left"
	EventUpdateUsers = "update_users"
)

// Envelope wraps every frame on the wire.
type Envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

// Encode builds a wire frame for the given event and payload.
func Encode(event string, data any) ([]byte, error) {
	env := Envelope{Event: event}
	if data != nil {
		raw, err := json.Marshal(data)
		if err != nil {
			return nil, err
		}
		env.Data = raw
	}
	return json.Marshal(env)
}

// Decode parses a wire frame into an envelope.
func Decode(raw []byte) (Envelope, error) {
	var env Envelope
	err := json.Unmarshal(raw, &env)
	return env, err
}

// JoinRoom is the payload of join_room.
type JoinRoom struct {
	Nickname string `json:"nickname"`
}

// Notice carries a human-readable status line (join_success, join_error).
type Notice struct {
	Message string `json:"message"`
}

// SendMessage is the payload of send_message. Parsed commands carry
// Type+Content; plain input carries Message only.
type SendMessage struct {
	Type    models.MessageType `json:"type,omitempty"`
	Content string             `json:"content,omitempty"`
	Message string             `json:"message,omitempty"`
}

// UserEvent is the payload of user_joined and user_left.
type UserEvent struct {
	Nickname  string `json:"nickname"`
	Timestamp string `json:"timestamp,omitempty"`
}

// UserList is the payload of update_users; it replaces the whole
// presence set on every update.
type UserList struct {
	Users []string `json:"users"`
}
