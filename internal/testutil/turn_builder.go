package testutil

import (
	"time"

	"github.com/hupe1980/skillmesh/core"
)

// TurnBuilder provides a fluent helper for constructing turns in tests.
// Example:
//
//	turn := NewTurnBuilder().Chat("chat-1").Prompt("hello").Build()
//
// Chain only the parts you need; sensible defaults are applied.
type TurnBuilder struct {
	id          string
	userID      string
	projectID   string
	chatID      string
	prompt      string
	attachments []core.Attachment
}

// NewTurnBuilder creates a builder with default user "user-1" and chat
// "chat-1".
func NewTurnBuilder() *TurnBuilder {
	return &TurnBuilder{userID: "user-1", chatID: "chat-1"}
}

// ID overrides the auto-generated turn ID (chainable).
func (b *TurnBuilder) ID(id string) *TurnBuilder { b.id = id; return b }

// User sets the user ID (chainable).
func (b *TurnBuilder) User(id string) *TurnBuilder { b.userID = id; return b }

// Project sets the project ID (chainable).
func (b *TurnBuilder) Project(id string) *TurnBuilder { b.projectID = id; return b }

// Chat sets the chat ID (chainable).
func (b *TurnBuilder) Chat(id string) *TurnBuilder { b.chatID = id; return b }

// Prompt sets the user prompt (chainable).
func (b *TurnBuilder) Prompt(p string) *TurnBuilder { b.prompt = p; return b }

// Attachment appends a binary attachment (chainable).
func (b *TurnBuilder) Attachment(name, mimeType string, data []byte) *TurnBuilder {
	b.attachments = append(b.attachments, core.Attachment{Name: name, MIMEType: mimeType, Data: data})
	return b
}

// Build constructs the core.Turn value.
func (b *TurnBuilder) Build() core.Turn {
	turn := core.NewTurn(b.userID, b.projectID, b.chatID, b.prompt)
	if b.id != "" {
		turn.ID = b.id
	}
	turn.Attachments = b.attachments
	return turn
}

// UserMessage constructs a persisted user message for history fixtures.
func UserMessage(chatID, text string) core.Message {
	return core.Message{
		ID:      core.NewID(),
		ChatID:  chatID,
		Sender:  core.SenderUser,
		Text:    text,
		Created: time.Now().UTC(),
	}
}

// AssistantMessage constructs a persisted assistant message for history
// fixtures.
func AssistantMessage(chatID, text string) core.Message {
	return core.Message{
		ID:      core.NewID(),
		ChatID:  chatID,
		Sender:  core.SenderAssistant,
		Text:    text,
		Created: time.Now().UTC(),
	}
}
