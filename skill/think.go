package skill

import (
	"context"

	"github.com/hupe1980/skillmesh/core"
	"github.com/hupe1980/skillmesh/logging"
	"github.com/hupe1980/skillmesh/model"
)

// thinkDirective asks the model to reason before answering.
const thinkDirective = "\n\nReason through the problem step by step before giving your final answer."

// defaultThinkingBudget is the extended reasoning token budget.
const defaultThinkingBudget int32 = 32768

// ThinkOptions configure the Think handler.
type ThinkOptions struct {
	Model string
	// ThinkingBudget is the reasoning token budget passed to the model.
	ThinkingBudget int32
	Logger         logging.Logger
}

// Think streams an extended-reasoning response with a larger computation
// budget over the full conversation history. Before generating it bumps
// the user's usage counter fire-and-forget: a counter failure is logged
// and never aborts the turn.
type Think struct {
	client  model.Client
	counter core.UsageCounter
	opts    ThinkOptions
}

// NewThink creates the THINK handler. counter may be nil.
func NewThink(client model.Client, counter core.UsageCounter, optFns ...func(o *ThinkOptions)) *Think {
	opts := ThinkOptions{
		ThinkingBudget: defaultThinkingBudget,
		Logger:         logging.NoOpLogger{},
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	return &Think{client: client, counter: counter, opts: opts}
}

// Name implements Handler.
func (t *Think) Name() core.Action { return core.ActionThink }

// Handle implements Handler.
func (t *Think) Handle(ctx context.Context, inv *Invocation) (Outcome, error) {
	if t.counter != nil {
		// Fire-and-forget: decoupled from turn cancellation, never joined.
		userID := inv.Turn.UserID
		go func(ctx context.Context) {
			if err := t.counter.Increment(ctx, userID); err != nil {
				t.opts.Logger.Warn("usage counter increment failed user_id=%s error=%v", userID, err)
			}
		}(context.WithoutCancel(ctx))
	}

	req := model.Request{
		Model:             t.opts.Model,
		Contents:          historyWithPrompt(inv),
		SystemInstruction: inv.Context.SystemInstruction() + thinkDirective,
		ThinkingBudget:    t.opts.ThinkingBudget,
	}

	if err := consumeStream(ctx, t.client, req, inv); err != nil {
		return Outcome{}, err
	}

	return Outcome{}, nil
}
