package prompt

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/skillmesh/core"
	"github.com/hupe1980/skillmesh/memory"
)

func fixedClock() time.Time {
	return time.Date(2025, time.March, 14, 15, 9, 0, 0, time.UTC)
}

func TestAssembler_BuildDefaults(t *testing.T) {
	asm := NewAssembler(nil, func(o *Options) { o.Now = fixedClock })

	asmCtx, err := asm.Build(context.Background(), core.NewTurn("u", "", "c", "hi"), nil)
	require.NoError(t, err)

	assert.Equal(t, defaultPersona, asmCtx.Persona)
	assert.Equal(t, "Friday, March 14, 2025 at 3:09 PM UTC", asmCtx.Timestamp)
	assert.Empty(t, asmCtx.Memory)
	assert.Empty(t, asmCtx.History)
}

func TestAssembler_MemorySnapshot(t *testing.T) {
	store := memory.NewInMemoryStore()
	store.Put(core.MemoryLayerPreferences, "prefers concise answers")

	asm := NewAssembler(store, func(o *Options) { o.Now = fixedClock })

	asmCtx, err := asm.Build(context.Background(), core.NewTurn("u", "", "c", "hi"), nil)
	require.NoError(t, err)
	assert.Equal(t, "prefers concise answers", asmCtx.Memory[core.MemoryLayerPreferences])
}

func TestAssembler_DynamicPersona(t *testing.T) {
	persona := NewInstructionFromFunc(func(_ context.Context, turn core.Turn) (string, error) {
		return "Persona for " + turn.UserID, nil
	})
	asm := NewAssembler(nil, func(o *Options) {
		o.Persona = persona
		o.Now = fixedClock
	})

	asmCtx, err := asm.Build(context.Background(), core.NewTurn("user-9", "", "c", "hi"), nil)
	require.NoError(t, err)
	assert.Equal(t, "Persona for user-9", asmCtx.Persona)
}

func TestAssembler_PersonaErrorPropagates(t *testing.T) {
	persona := NewInstructionFromFunc(func(context.Context, core.Turn) (string, error) {
		return "", errors.New("flag service down")
	})
	asm := NewAssembler(nil, func(o *Options) { o.Persona = persona })

	_, err := asm.Build(context.Background(), core.NewTurn("u", "", "c", "hi"), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "persona instruction")
}

func TestHistoryContents_FiltersEmptyText(t *testing.T) {
	history := []core.Message{
		{Sender: core.SenderUser, Text: "question"},
		{Sender: core.SenderAssistant, Text: "   "},
		{Sender: core.SenderAssistant, Text: "answer"},
	}

	contents := HistoryContents(history)
	require.Len(t, contents, 2)
	assert.Equal(t, "user", contents[0].Role)
	assert.Equal(t, "question", contents[0].Text())
	assert.Equal(t, "assistant", contents[1].Role)
}

func TestContext_SystemInstruction(t *testing.T) {
	asmCtx := &Context{
		Persona:   "Be helpful.",
		Timestamp: "Friday, March 14, 2025 at 3:09 PM UTC",
		Memory: core.MemoryContext{
			"profile": "likes cats",
			"goals":   "ship the project",
		},
	}

	got := asmCtx.SystemInstruction()
	assert.Contains(t, got, "Be helpful.")
	assert.Contains(t, got, "Current date and time: Friday, March 14, 2025 at 3:09 PM UTC")
	// Layers render in deterministic sorted order.
	assert.Regexp(t, `(?s)\[goals\].*\[profile\]`, got)
}

func TestContext_SystemInstructionWithoutMemory(t *testing.T) {
	asmCtx := &Context{Persona: "Be helpful.", Timestamp: "now"}

	got := asmCtx.SystemInstruction()
	assert.NotContains(t, got, "Long-term memory")
}
