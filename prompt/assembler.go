package prompt

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/hupe1980/skillmesh/core"
	"github.com/hupe1980/skillmesh/model"
)

// timestampLayout renders the long localized form: weekday, month name,
// day, year, clock time and timezone abbreviation.
const timestampLayout = "Monday, January 2, 2006 at 3:04 PM MST"

// defaultPersona is used when no instruction is configured.
const defaultPersona = "You are a helpful, knowledgeable assistant. Answer precisely and stay grounded in the provided context."

// Options configure an Assembler.
type Options struct {
	// Persona is the static or dynamic instruction preamble.
	Persona Instruction
	// Layers are the memory layer names fetched per turn.
	Layers []string
	// Now overrides the clock. Tests inject a fixed time.
	Now func() time.Time
}

// Assembler builds the per-turn Context handed to every skill handler.
type Assembler struct {
	memory  core.MemorySource
	persona Instruction
	layers  []string
	now     func() time.Time
}

// NewAssembler constructs an Assembler. memory may be nil, in which case
// the snapshot is empty.
func NewAssembler(memory core.MemorySource, optFns ...func(o *Options)) *Assembler {
	opts := Options{
		Persona: NewInstructionFromText(defaultPersona),
		Layers:  core.DefaultMemoryLayers,
		Now:     time.Now,
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	return &Assembler{
		memory:  memory,
		persona: opts.Persona,
		layers:  opts.Layers,
		now:     opts.Now,
	}
}

// Context is the assembled per-turn context. It is built once per turn and
// read-only afterwards.
type Context struct {
	// Persona is the resolved instruction preamble.
	Persona string
	// Timestamp is the long localized current date-time string.
	Timestamp string
	// Memory is the long-term memory snapshot across the configured layers.
	Memory core.MemoryContext
	// History is the role-tagged prior conversation with empty-text turns
	// filtered out, oldest first.
	History []model.Content
}

// Build assembles the context for one turn. History conversion filters out
// messages with empty text so handlers never see blank turns.
func (a *Assembler) Build(ctx context.Context, turn core.Turn, history []core.Message) (*Context, error) {
	persona, err := a.persona.Resolve(ctx, turn)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve persona instruction: %w", err)
	}

	snapshot := core.MemoryContext{}
	if a.memory != nil {
		snapshot, err = a.memory.GetContext(ctx, a.layers)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch memory snapshot: %w", err)
		}
	}

	return &Context{
		Persona:   persona,
		Timestamp: a.now().Format(timestampLayout),
		Memory:    snapshot,
		History:   HistoryContents(history),
	}, nil
}

// HistoryContents converts persisted messages into role-tagged model
// contents, dropping empty-text entries.
func HistoryContents(history []core.Message) []model.Content {
	contents := make([]model.Content, 0, len(history))
	for _, msg := range history {
		if strings.TrimSpace(msg.Text) == "" {
			continue
		}
		role := "user"
		if msg.Sender == core.SenderAssistant {
			role = "assistant"
		}
		contents = append(contents, model.NewTextContent(role, msg.Text))
	}
	return contents
}

// SystemInstruction renders the full system preamble: persona, current
// timestamp and the memory snapshot in deterministic layer order.
func (c *Context) SystemInstruction() string {
	var b strings.Builder
	b.WriteString(c.Persona)
	b.WriteString("\n\nCurrent date and time: ")
	b.WriteString(c.Timestamp)

	if len(c.Memory) > 0 {
		b.WriteString("\n\nLong-term memory:")
		layers := make([]string, 0, len(c.Memory))
		for layer := range c.Memory {
			layers = append(layers, layer)
		}
		sort.Strings(layers)
		for _, layer := range layers {
			fmt.Fprintf(&b, "\n[%s] %v", layer, c.Memory[layer])
		}
	}

	return b.String()
}
