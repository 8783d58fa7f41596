package model

import (
	"time"
)

// MessageType is the role-like discriminator of a thread message.
type MessageType string

const (
	TypeUser      MessageType = "user"
	TypeAssistant MessageType = "assistant"
	TypeTool      MessageType = "tool"
)

// Valid reports whether t is one of the known message types.
func (t MessageType) Valid() bool {
	switch t {
	case TypeUser, TypeAssistant, TypeTool:
		return true
	}
	return false
}

// Thread stores metadata about a conversation with an agent.
type Thread struct {
	ID        string    `json:"thread_id" yaml:"thread_id"`
	Title     string    `json:"title" yaml:"title"`
	AgentID   *string   `json:"agent_id,omitempty" yaml:"agent_id,omitempty"`
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
	UpdatedAt time.Time `json:"updated_at" yaml:"updated_at"`
}

// Message stores a single message in a thread as the agent backend emits it.
// Content and Metadata are JSON documents encoded as strings.
type Message struct {
	MessageID *string     `json:"message_id" yaml:"message_id"` // nil for an in-flight streaming placeholder.
	ThreadID  string      `json:"thread_id" yaml:"thread_id"`
	Type      MessageType `json:"type" yaml:"type"`
	Content   string      `json:"content" yaml:"content"`
	Metadata  string      `json:"metadata,omitempty" yaml:"metadata,omitempty"`
	AgentID   *string     `json:"agent_id,omitempty" yaml:"agent_id,omitempty"`
	CreatedAt time.Time   `json:"created_at" yaml:"created_at"`
	UpdatedAt time.Time   `json:"updated_at" yaml:"updated_at"`
}

// IsStreaming reports whether m is an unpersisted streaming placeholder.
func (m *Message) IsStreaming() bool {
	return m.MessageID == nil
}

// ID returns the message id or the empty string for a placeholder.
func (m *Message) ID() string {
	if m.MessageID == nil {
		return ""
	}
	return *m.MessageID
}

// FullThread includes the thread metadata and all its messages.
type FullThread struct {
	Thread
	Messages []Message `json:"messages"`
}

// StreamEvent is a single server-sent event pushed to view subscribers.
type StreamEvent struct {
	Data  any    `json:"data,omitempty"`
	Done  bool   `json:"done"`
	Error string `json:"error,omitempty"`
}

// StringPtr is a small helper for optional string fields.
func StringPtr(s string) *string {
	return &s
}
