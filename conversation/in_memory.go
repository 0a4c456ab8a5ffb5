package conversation

import (
	"sync"
	"time"

	"github.com/hupe1980/skillmesh/core"
)

// InMemoryStore keeps ordered message history per chat. It is safe for
// concurrent use; Append preserves submission order per chat.
type InMemoryStore struct {
	mu    sync.RWMutex
	chats map[string][]core.Message
}

// NewInMemoryStore creates a new in-memory conversation store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{chats: make(map[string][]core.Message)}
}

// Append implements core.ConversationStore. Messages without an ID or
// timestamp get one assigned.
func (s *InMemoryStore) Append(chatID string, msgs ...core.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, msg := range msgs {
		if msg.ID == "" {
			msg.ID = core.NewID()
		}
		if msg.Created.IsZero() {
			msg.Created = time.Now().UTC()
		}
		msg.ChatID = chatID
		s.chats[chatID] = append(s.chats[chatID], msg)
	}
	return nil
}

// History implements core.ConversationStore returning a defensive copy of
// the chat's messages, oldest first.
func (s *InMemoryStore) History(chatID string) ([]core.Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	msgs := make([]core.Message, len(s.chats[chatID]))
	copy(msgs, s.chats[chatID])
	return msgs, nil
}
