package domain

import "time"

// MessageType distinguishes ordinary chat from pinned team updates.
type MessageType string

const (
	MessageChat         MessageType = "message"
	MessageDecision     MessageType = "decision"
	MessageAnnouncement MessageType = "announcement"
)

// ValidMessageType reports whether t is a known message type.
func ValidMessageType(t MessageType) bool {
	switch t {
	case MessageChat, MessageDecision, MessageAnnouncement:
		return true
	}
	return false
}

// Message is a team communication entry, optionally scoped to a
// project. Sender fields are taken from the authenticated claims, never
// from the request body.
type Message struct {
	ID          string      `json:"id"`
	SenderID    string      `json:"sender_id"`
	SenderName  string      `json:"sender_name"`
	SenderRole  string      `json:"sender_role"`
	Content     string      `json:"content"`
	Type        MessageType `json:"type"`
	ProjectID   string      `json:"project_id,omitempty"`
	ProjectName string      `json:"project_name,omitempty"`
	CreatedAt   time.Time   `json:"created_at"`
}
