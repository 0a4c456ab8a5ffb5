package core

import "time"

// Message is one persisted conversation entry (prior turn side). History
// handed to skill handlers is read-only.
type Message struct {
	ID        string     `json:"id"`
	ChatID    string     `json:"chat_id"`
	Sender    string     `json:"sender"`
	Text      string     `json:"text"`
	Image     []byte     `json:"image,omitempty"`
	Citations []Citation `json:"citations,omitempty"`
	Created   time.Time  `json:"created"`
}

// ConversationStore persists conversation messages and serves ordered
// history. Ordering guarantees across concurrently submitted turns are the
// store's responsibility; the engine assumes at most one in-flight turn
// per conversation.
type ConversationStore interface {
	Append(chatID string, msgs ...Message) error
	History(chatID string) ([]Message, error)
}
