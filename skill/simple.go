package skill

import (
	"context"

	"github.com/hupe1980/skillmesh/core"
	"github.com/hupe1980/skillmesh/logging"
	"github.com/hupe1980/skillmesh/model"
	"github.com/hupe1980/skillmesh/tags"
)

// SimpleOptions configure the Simple handler.
type SimpleOptions struct {
	Model  string
	Logger logging.Logger
}

// Simple is the default conversational skill. It streams a
// persona-grounded response over the full history with any attachments
// inlined as binary parts, then runs redirect detection on its own freshly
// generated output. A detected redirect is handed back to the loop; it is
// not an error.
type Simple struct {
	client model.Client
	opts   SimpleOptions
}

// NewSimple creates the SIMPLE handler.
func NewSimple(client model.Client, optFns ...func(o *SimpleOptions)) *Simple {
	opts := SimpleOptions{Logger: logging.NoOpLogger{}}

	for _, fn := range optFns {
		fn(&opts)
	}

	return &Simple{client: client, opts: opts}
}

// Name implements Handler.
func (s *Simple) Name() core.Action { return core.ActionSimple }

// Handle implements Handler.
func (s *Simple) Handle(ctx context.Context, inv *Invocation) (Outcome, error) {
	parts := make([]model.Part, 0, len(inv.Turn.Attachments)+1)
	parts = append(parts, model.TextPart{Text: inv.Prompt})
	for _, att := range inv.Turn.Attachments {
		parts = append(parts, model.BlobPart{MIMEType: att.MIMEType, Data: att.Data})
	}

	contents := make([]model.Content, 0, len(inv.Context.History)+1)
	contents = append(contents, inv.Context.History...)
	contents = append(contents, model.Content{Role: "user", Parts: parts})

	req := model.Request{
		Model:             s.opts.Model,
		Contents:          contents,
		SystemInstruction: inv.Context.SystemInstruction(),
	}

	// Only this invocation's output is scanned for redirects, not text
	// accumulated by earlier iterations.
	mark := inv.Acc.Len()

	if err := consumeStream(ctx, s.client, req, inv); err != nil {
		return Outcome{}, err
	}

	generated := inv.Acc.Text()[mark:]
	if routed, ok := tags.DetectRedirect(generated, inv.Turn.Prompt); ok {
		s.opts.Logger.Debug("redirect detected action=%s", routed.Action)
		return Outcome{Redirect: &routed}, nil
	}

	return Outcome{}, nil
}
