package core

import "github.com/google/uuid"

// Turn is the unit of work handled by the engine: one user-supplied prompt,
// optional attached binary files and the target conversation coordinates.
// A Turn is immutable once submitted; redirects never mutate it, they only
// swap the effective prompt handed to the next skill.
type Turn struct {
	ID          string       `json:"id"`
	UserID      string       `json:"user_id"`
	ProjectID   string       `json:"project_id"`
	ChatID      string       `json:"chat_id"`
	Prompt      string       `json:"prompt"`
	Attachments []Attachment `json:"attachments,omitempty"`
}

// Attachment is a binary file submitted alongside the prompt. Data is the
// raw file content; MIMEType guides how model adapters inline it.
type Attachment struct {
	Name     string `json:"name"`
	MIMEType string `json:"mime_type"`
	Data     []byte `json:"data"`
}

// NewTurn creates a Turn with a fresh unique ID.
func NewTurn(userID, projectID, chatID, prompt string) Turn {
	return Turn{
		ID:        NewID(),
		UserID:    userID,
		ProjectID: projectID,
		ChatID:    chatID,
		Prompt:    prompt,
	}
}

// NewID generates a new unique identifier for turns and messages.
func NewID() string { return uuid.NewString() }
