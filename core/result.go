package core

import "time"

// Senders recognized at the persistence/UI boundary.
const (
	SenderUser      = "user"
	SenderAssistant = "assistant"
)

// AgentResult is the terminal output of one turn: the accumulated response
// text, an optional binary image payload and any grounding citations
// collected along the way. Exactly one AgentResult is produced per Turn,
// possibly after multiple internal redirects.
type AgentResult struct {
	Text      string     `json:"text"`
	Image     []byte     `json:"image,omitempty"`
	Citations []Citation `json:"citations,omitempty"`
}

// PendingMessage is the shape handed across the persistence/UI boundary.
// The engine never writes to storage itself; callers persist these.
type PendingMessage struct {
	ID        string     `json:"id"`
	ChatID    string     `json:"chat_id"`
	Sender    string     `json:"sender"`
	Text      string     `json:"text"`
	Image     []byte     `json:"image,omitempty"`
	Citations []Citation `json:"citations,omitempty"`
	Created   time.Time  `json:"created"`
}

// Messages converts the result into pending messages for the given chat.
// The current shape is a single assistant message carrying text, image and
// citations together.
func (r AgentResult) Messages(chatID string) []PendingMessage {
	return []PendingMessage{{
		ID:        NewID(),
		ChatID:    chatID,
		Sender:    SenderAssistant,
		Text:      r.Text,
		Image:     r.Image,
		Citations: r.Citations,
		Created:   time.Now().UTC(),
	}}
}
