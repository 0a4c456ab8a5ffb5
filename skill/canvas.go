package skill

import (
	"context"
	"fmt"
	"strings"

	"github.com/hupe1980/skillmesh/core"
	"github.com/hupe1980/skillmesh/logging"
)

// CanvasOptions configure the Canvas handler.
type CanvasOptions struct {
	Logger logging.Logger
}

// Canvas delegates the prompt wholesale to the external canvas-generation
// collaborator and adopts its returned text as the turn's final text.
// Failures propagate and are caught at turn level.
type Canvas struct {
	canvas core.CanvasService
	opts   CanvasOptions
}

// NewCanvas creates the CANVAS handler.
func NewCanvas(canvas core.CanvasService, optFns ...func(o *CanvasOptions)) *Canvas {
	opts := CanvasOptions{Logger: logging.NoOpLogger{}}

	for _, fn := range optFns {
		fn(&opts)
	}

	return &Canvas{canvas: canvas, opts: opts}
}

// Name implements Handler.
func (c *Canvas) Name() core.Action { return core.ActionCanvas }

// Handle implements Handler.
func (c *Canvas) Handle(ctx context.Context, inv *Invocation) (Outcome, error) {
	out, err := c.canvas.Run(ctx, core.CanvasInput{
		Prompt:  inv.Prompt,
		ChatID:  inv.Turn.ChatID,
		History: inv.History,
	})
	if err != nil {
		return Outcome{}, fmt.Errorf("canvas generation failed: %w", err)
	}

	texts := make([]string, 0, len(out.Messages))
	for _, msg := range out.Messages {
		if msg.Text != "" {
			texts = append(texts, msg.Text)
		}
	}
	text := strings.Join(texts, "\n\n")

	inv.Acc.AppendText(text)
	inv.Sink.Emit(core.StreamChunk{Text: text})

	return Outcome{}, nil
}
