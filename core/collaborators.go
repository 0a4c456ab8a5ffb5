package core

import "context"

// Router classifies an incoming prompt into the initial action for a turn.
// Implementations are external collaborators (semantic routers, heuristic
// keyword matchers); the engine treats them as black boxes.
type Router interface {
	Route(ctx context.Context, prompt, userID string, attachmentCount int) (RoutedAction, error)
}

// ResearchReport is the terminal output of a deep research pass.
type ResearchReport struct {
	Answer  string     `json:"answer"`
	Sources []Citation `json:"sources,omitempty"`
}

// ResearchService runs a multi-step research pass. Progress strings are
// surfaced to the caller's sink while the pass executes.
type ResearchService interface {
	DeepResearch(ctx context.Context, prompt string, progress func(status string)) (*ResearchReport, error)
}

// CanvasInput is the turn slice handed to the canvas collaborator.
type CanvasInput struct {
	Prompt  string    `json:"prompt"`
	ChatID  string    `json:"chat_id"`
	History []Message `json:"history,omitempty"`
}

// CanvasMessage is one message returned by the canvas collaborator.
type CanvasMessage struct {
	Text string `json:"text"`
}

// CanvasOutput is the canvas collaborator's result. The texts of its
// messages become the turn's final text.
type CanvasOutput struct {
	Messages []CanvasMessage `json:"messages"`
}

// CanvasService generates free-form canvas artifacts (code, documents)
// from a prompt.
type CanvasService interface {
	Run(ctx context.Context, input CanvasInput) (*CanvasOutput, error)
}

// ImageGenerator produces image bytes for a prompt. modelPreference may be
// empty; implementations fall back to their default model.
type ImageGenerator interface {
	Generate(ctx context.Context, prompt, modelPreference string) ([]byte, error)
}

// UsageCounter tracks per-user consumption of metered skills. Calls are
// best-effort: failures are logged by the caller and never abort a turn.
type UsageCounter interface {
	Increment(ctx context.Context, userID string) error
}

// ArtifactStore persists binary payloads (generated images, exported
// documents) keyed by chat and artifact id. The engine never touches it;
// callers persist result payloads after a turn completes.
type ArtifactStore interface {
	Save(chatID, artifactID string, data []byte) error
	Get(chatID, artifactID string) ([]byte, error)
	List(chatID string) ([]string, error)
	Delete(chatID, artifactID string) error
}
