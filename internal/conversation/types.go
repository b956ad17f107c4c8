package conversation

import (
	"time"

	"github.com/omarzayed/supportdesk/internal/entities"
)

// Role identifies the sender of a message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleSystem    Role = "system"
)

// EventType marks system messages that record a lifecycle event.
type EventType string

const (
	EventEscalation EventType = "escalation"
)

// Metadata carries the analysis attached to a message. Known fields are
// typed; Extra holds provider-specific or forward-compatible values.
type Metadata struct {
	Intent     string            `json:"intent,omitempty"`
	Confidence float64           `json:"confidence,omitempty"`
	Entities   []entities.Entity `json:"entities,omitempty"`
	Source     string            `json:"source,omitempty"`
	Event      EventType         `json:"type,omitempty"`
	Reason     string            `json:"reason,omitempty"`
	Extra      map[string]any    `json:"extra,omitempty"`
}

// Message is a single turn in a conversation. Immutable once stored.
type Message struct {
	ID        string    `json:"id"`
	Role      Role      `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
	Metadata  *Metadata `json:"metadata,omitempty"`
}

// Conversation is an append-only transcript plus mutable side-state,
// identified by a single id.
type Conversation struct {
	ID                string         `json:"id"`
	CreatedAt         time.Time      `json:"created_at"`
	LastActivityAt    time.Time      `json:"last_activity"`
	Messages          []Message      `json:"messages"`
	Context           map[string]any `json:"context"`
	UserInfo          map[string]any `json:"user_info"`
	Escalated         bool           `json:"escalated"`
	EscalationReason  string         `json:"escalation_reason,omitempty"`
	EscalationTime    *time.Time     `json:"escalation_time,omitempty"`
	Resolved          bool           `json:"resolved"`
	ResolvedAt        *time.Time     `json:"resolved_at,omitempty"`
	SatisfactionScore *int           `json:"satisfaction_score,omitempty"`
}

// Summary is a point-in-time digest of a conversation.
type Summary struct {
	ConversationID    string         `json:"conversation_id"`
	CreatedAt         time.Time      `json:"created_at"`
	LastActivity      time.Time      `json:"last_activity"`
	DurationSeconds   *float64       `json:"duration_seconds,omitempty"`
	MessageCount      int            `json:"message_count"`
	MessageCounts     map[Role]int   `json:"message_counts"`
	IntentsDiscussed  []string       `json:"intents_discussed"`
	Escalated         bool           `json:"escalated"`
	Resolved          bool           `json:"resolved"`
	SatisfactionScore *int           `json:"satisfaction_score,omitempty"`
	UserInfo          map[string]any `json:"user_info"`
}
