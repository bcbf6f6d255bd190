package driven

import (
	"context"
	"time"
)

// Message is one entry of a persisted conversation.
type Message struct {
	// Role is "user" or "assistant".
	Role string

	// Content is the message text.
	Content string

	// CreatedAt is when the message was stored.
	CreatedAt time.Time
}

// HistoryStore persists conversation history for the chat surface.
// The answering core never touches it; the caller appends a question and
// answer pair only after an Answer was actually produced.
type HistoryStore interface {
	// Append stores a message under the given session.
	Append(ctx context.Context, sessionID string, msg Message) error

	// Messages returns the session's messages in insertion order.
	Messages(ctx context.Context, sessionID string) ([]Message, error)

	// Sessions returns the stored session IDs, most recent first.
	Sessions(ctx context.Context) ([]string, error)

	// Close releases resources.
	Close() error
}
