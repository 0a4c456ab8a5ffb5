package prompt

import (
	"context"

	"github.com/hupe1980/skillmesh/core"
	"github.com/hupe1980/skillmesh/internal/util"
)

// Provider supplies dynamic persona text at runtime. Implementations can
// derive instructions from the turn, environment, feature flags, etc.
type Provider interface {
	Instruction(ctx context.Context, turn core.Turn) (string, error)
}

// Func is a functional adapter to allow ordinary functions to be used as
// Providers.
type Func func(ctx context.Context, turn core.Turn) (string, error)

// Instruction implements Provider.
func (f Func) Instruction(ctx context.Context, turn core.Turn) (string, error) {
	return f(ctx, turn)
}

// Instruction represents either a static persona string or a dynamic
// provider. This mirrors a union of string | provider in a Go-idiomatic
// way.
type Instruction struct {
	text     string
	provider Provider
}

// NewInstructionFromText creates an Instruction from a static string.
func NewInstructionFromText(text string) Instruction { return Instruction{text: text} }

// NewInstructionFromProvider creates an Instruction from a dynamic provider.
func NewInstructionFromProvider(p Provider) Instruction { return Instruction{provider: p} }

// NewInstructionFromFunc creates an Instruction from a function.
func NewInstructionFromFunc(f func(ctx context.Context, turn core.Turn) (string, error)) Instruction {
	return Instruction{provider: Func(f)}
}

// NewInstructionFromTemplate creates an Instruction whose text is rendered
// per turn via text/template. Turn fields are available as template data,
// e.g. "You are assisting user {{.UserID}} in project {{.ProjectID}}".
func NewInstructionFromTemplate(text string) Instruction {
	return Instruction{provider: Func(func(_ context.Context, turn core.Turn) (string, error) {
		return util.RenderTemplate(text, map[string]any{
			"UserID":    turn.UserID,
			"ProjectID": turn.ProjectID,
			"ChatID":    turn.ChatID,
			"Prompt":    turn.Prompt,
		})
	})}
}

// IsStatic returns true if the instruction is backed by a static string.
func (i Instruction) IsStatic() bool { return i.provider == nil }

// Resolve returns the persona text, invoking the provider if needed.
func (i Instruction) Resolve(ctx context.Context, turn core.Turn) (string, error) {
	if i.provider != nil {
		return i.provider.Instruction(ctx, turn)
	}
	return i.text, nil
}
