// Package skillmesh provides a high-level façade over the orchestration
// engine and its service abstractions (conversations, memory, artifacts &
// logging) enabling rapid construction of skill-routed assistants. Most
// applications interact with this package by:
//  1. Creating a SkillMesh via New() with a model client (optionally
//     overriding default in-memory services and collaborators)
//  2. Executing turns (ExecuteTurn) or using the Chat convenience helper
//
// The façade delegates turn execution to engine.Engine and owns the
// persistence that the engine deliberately avoids: after each turn it
// appends the user prompt and the assistant result to the conversation
// store and saves any generated image to the artifact store. All defaults
// are safe for local development and testing; production deployments
// typically supply durable store implementations and a structured logger.
package skillmesh

import (
	"context"
	"fmt"

	"github.com/hupe1980/skillmesh/artifact"
	"github.com/hupe1980/skillmesh/conversation"
	"github.com/hupe1980/skillmesh/core"
	"github.com/hupe1980/skillmesh/engine"
	"github.com/hupe1980/skillmesh/logging"
	"github.com/hupe1980/skillmesh/memory"
	"github.com/hupe1980/skillmesh/model"
	"github.com/hupe1980/skillmesh/prompt"
	"github.com/hupe1980/skillmesh/router"
	"github.com/hupe1980/skillmesh/skill"
)

// Options configures the SkillMesh instance.
type Options struct {
	// Router classifies prompts into initial actions. Defaults to the
	// heuristic keyword router.
	Router core.Router

	// Persona overrides the default instruction preamble.
	Persona prompt.Instruction

	// Retries is the retry ceiling applied to rate-limited model calls.
	Retries int

	// Collaborators. A skill whose collaborator is nil is not registered;
	// the engine then falls back to the default conversational skill.
	Research core.ResearchService
	Canvas   core.CanvasService
	Images   core.ImageGenerator
	Counter  core.UsageCounter

	// Stores (default to in-memory implementations if not provided).
	Conversations core.ConversationStore
	Memory        core.MemorySource
	Artifacts     core.ArtifactStore

	// Logger (defaults to NoOp logger if nil).
	Logger logging.Logger
}

// SkillMesh is the high-level façade aggregating the engine and services.
type SkillMesh struct {
	opts   Options
	client model.Client
	engine *engine.Engine
}

// New creates a new SkillMesh instance around a model client. Any unset
// service is initialized with an in-memory implementation. The client is
// wrapped in a retrying client; pass a pre-wrapped *model.RetryClient to
// control the policy directly.
func New(client model.Client, optFns ...func(o *Options)) *SkillMesh {
	opts := Options{
		Router:        router.NewKeyword(),
		Retries:       3,
		Conversations: conversation.NewInMemoryStore(),
		Memory:        memory.NewInMemoryStore(),
		Artifacts:     artifact.NewInMemoryStore(),
		Logger:        logging.NoOpLogger{},
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	if _, ok := client.(*model.RetryClient); !ok {
		client = model.NewRetryClient(client, func(o *model.RetryOptions) {
			o.Retries = opts.Retries
			o.Logger = opts.Logger
		})
	}

	assembler := prompt.NewAssembler(opts.Memory, func(o *prompt.Options) {
		if opts.Persona != (prompt.Instruction{}) {
			o.Persona = opts.Persona
		}
	})

	registry := skill.Registry{}
	registry.Register(
		skill.NewSimple(client, func(o *skill.SimpleOptions) { o.Logger = opts.Logger }),
		skill.NewSearch(client, func(o *skill.SearchOptions) { o.Logger = opts.Logger }),
		skill.NewStudy(client, func(o *skill.StudyOptions) { o.Logger = opts.Logger }),
		skill.NewProject(client, func(o *skill.ProjectOptions) { o.Logger = opts.Logger }),
		skill.NewThink(client, opts.Counter, func(o *skill.ThinkOptions) { o.Logger = opts.Logger }),
	)
	if opts.Research != nil {
		registry.Register(skill.NewDeepSearch(opts.Research, func(o *skill.DeepSearchOptions) { o.Logger = opts.Logger }))
	}
	if opts.Canvas != nil {
		registry.Register(skill.NewCanvas(opts.Canvas, func(o *skill.CanvasOptions) { o.Logger = opts.Logger }))
	}
	if opts.Images != nil {
		registry.Register(skill.NewImage(opts.Images, func(o *skill.ImageOptions) { o.Logger = opts.Logger }))
	}

	eng := engine.New(opts.Router, assembler, registry, func(o *engine.Options) {
		o.Conversations = opts.Conversations
		o.Logger = opts.Logger
	})

	return &SkillMesh{opts: opts, client: client, engine: eng}
}

// ExecuteTurn runs one turn to completion and persists its outputs: the
// user prompt and the assistant result are appended to the conversation
// store and any generated image payload is saved to the artifact store
// under the turn's ID. The returned result is always terminal; a non-nil
// error reports a persistence failure only.
func (m *SkillMesh) ExecuteTurn(ctx context.Context, turn core.Turn, sink core.Sink) (core.AgentResult, error) {
	result := m.engine.ExecuteTurn(ctx, turn, sink)

	if err := m.persist(turn, result); err != nil {
		return result, err
	}

	return result, nil
}

// Chat is a synchronous convenience helper: it builds a Turn for the chat,
// executes it without streaming and returns the result text.
func (m *SkillMesh) Chat(ctx context.Context, userID, chatID, promptText string) (string, error) {
	result, err := m.ExecuteTurn(ctx, core.NewTurn(userID, "", chatID, promptText), nil)
	if err != nil {
		return "", err
	}
	return result.Text, nil
}

// History returns the persisted messages of a chat, oldest first.
func (m *SkillMesh) History(chatID string) ([]core.Message, error) {
	return m.opts.Conversations.History(chatID)
}

// Artifact returns a stored binary payload for the chat.
func (m *SkillMesh) Artifact(chatID, artifactID string) ([]byte, error) {
	return m.opts.Artifacts.Get(chatID, artifactID)
}

func (m *SkillMesh) persist(turn core.Turn, result core.AgentResult) error {
	userMsg := core.Message{
		Sender: core.SenderUser,
		Text:   turn.Prompt,
	}
	if err := m.opts.Conversations.Append(turn.ChatID, userMsg); err != nil {
		return fmt.Errorf("failed to persist user message: %w", err)
	}

	for _, pending := range result.Messages(turn.ChatID) {
		msg := core.Message{
			ID:        pending.ID,
			ChatID:    pending.ChatID,
			Sender:    pending.Sender,
			Text:      pending.Text,
			Image:     pending.Image,
			Citations: pending.Citations,
			Created:   pending.Created,
		}
		if err := m.opts.Conversations.Append(turn.ChatID, msg); err != nil {
			return fmt.Errorf("failed to persist assistant message: %w", err)
		}
	}

	if len(result.Image) > 0 {
		if err := m.opts.Artifacts.Save(turn.ChatID, turn.ID, result.Image); err != nil {
			return fmt.Errorf("failed to persist image artifact: %w", err)
		}
	}

	return nil
}
