package conversation

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/skillmesh/core"
)

var _ core.ConversationStore = (*InMemoryStore)(nil)

func TestInMemoryStore_AppendAssignsIdentity(t *testing.T) {
	store := NewInMemoryStore()
	require.NoError(t, store.Append("chat-1", core.Message{Sender: core.SenderUser, Text: "hi"}))

	msgs, err := store.History("chat-1")
	require.NoError(t, err)
	require.Len(t, msgs, 1)
	assert.NotEmpty(t, msgs[0].ID)
	assert.Equal(t, "chat-1", msgs[0].ChatID)
	assert.False(t, msgs[0].Created.IsZero())
}

func TestInMemoryStore_HistoryPreservesOrder(t *testing.T) {
	store := NewInMemoryStore()
	for i := 0; i < 5; i++ {
		require.NoError(t, store.Append("chat-1", core.Message{
			Sender: core.SenderUser,
			Text:   fmt.Sprintf("msg-%d", i),
		}))
	}

	msgs, err := store.History("chat-1")
	require.NoError(t, err)
	require.Len(t, msgs, 5)
	for i, msg := range msgs {
		assert.Equal(t, fmt.Sprintf("msg-%d", i), msg.Text)
	}
}

func TestInMemoryStore_HistoryIsDefensiveCopy(t *testing.T) {
	store := NewInMemoryStore()
	require.NoError(t, store.Append("chat-1", core.Message{Sender: core.SenderUser, Text: "original"}))

	msgs, err := store.History("chat-1")
	require.NoError(t, err)
	msgs[0].Text = "mutated"

	again, err := store.History("chat-1")
	require.NoError(t, err)
	assert.Equal(t, "original", again[0].Text)
}

func TestInMemoryStore_ChatsAreIsolated(t *testing.T) {
	store := NewInMemoryStore()
	require.NoError(t, store.Append("chat-1", core.Message{Text: "a"}))
	require.NoError(t, store.Append("chat-2", core.Message{Text: "b"}))

	msgs, err := store.History("chat-1")
	require.NoError(t, err)
	assert.Len(t, msgs, 1)

	empty, err := store.History("chat-3")
	require.NoError(t, err)
	assert.Empty(t, empty)
}
