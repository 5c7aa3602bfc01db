package models

// MessageType classifies a chat message for routing and rendering.
type MessageType string

const (
	TypeText    MessageType = "text"
	TypeMovie   MessageType = "movie"
	TypeAIChat  MessageType = "ai_chat"
	TypeMaxence MessageType = "maxence_chat"
	TypeSystem  MessageType = "system"
)

// TimeLayout is the timestamp format carried on every broadcast message.
const TimeLayout = "2006-01-02 15:04:05"

// Message is a single chat message as broadcast by the hub.
// Immutable once created; it exists only in transit and in the render tree.
type Message struct {
	ID        string      `json:"id,omitempty"` // ULID, stamped by the hub
	Type      MessageType `json:"type"`
	Nickname  string      `json:"nickname"`
	Content   string      `json:"content"`
	Timestamp string      `json:"timestamp"`
}
