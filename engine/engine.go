package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/hupe1980/skillmesh/core"
	"github.com/hupe1980/skillmesh/logging"
	"github.com/hupe1980/skillmesh/prompt"
	"github.com/hupe1980/skillmesh/skill"
)

// MaxTurnIterations bounds pathological redirect cycles. Only the SIMPLE
// handler can redirect, so two iterations cover the legitimate case of one
// conversational pass followed by one redirected skill.
const MaxTurnIterations = 2

// errTextPrefix starts the degraded result text for catastrophic failures.
const errTextPrefix = "An error occurred: "

// Options hold dependency + configuration overrides passed to New().
type Options struct {
	// Conversations serves read-only prior history for the turn's chat.
	// Optional; nil means handlers see an empty history.
	Conversations core.ConversationStore
	// Logger receives engine diagnostics.
	Logger logging.Logger
}

// Engine coordinates turn execution: it assembles the per-turn context,
// asks the router for the initial action and runs the dispatch loop.
// A fresh accumulator is created per turn, so one Engine may serve many
// turns; the caller is responsible for at most one in-flight turn per
// conversation.
type Engine struct {
	router        core.Router
	assembler     *prompt.Assembler
	skills        skill.Registry
	conversations core.ConversationStore
	logger        logging.Logger
}

// New constructs an Engine with optional overrides.
func New(router core.Router, assembler *prompt.Assembler, skills skill.Registry, optFns ...func(o *Options)) *Engine {
	opts := Options{
		Logger: logging.NoOpLogger{},
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	return &Engine{
		router:        router,
		assembler:     assembler,
		skills:        skills,
		conversations: opts.Conversations,
		logger:        opts.Logger,
	}
}

// ExecuteTurn handles one turn to completion. It never returns an error:
// any failure escaping the loop is translated into a degraded AgentResult
// whose text explains the failure.
func (e *Engine) ExecuteTurn(ctx context.Context, turn core.Turn, sink core.Sink) core.AgentResult {
	result, err := e.run(ctx, turn, sink)
	if err != nil {
		e.logger.Error("turn failed turn_id=%s error=%v", turn.ID, err)
		return core.AgentResult{Text: errTextPrefix + err.Error()}
	}
	return result
}

func (e *Engine) run(ctx context.Context, turn core.Turn, sink core.Sink) (core.AgentResult, error) {
	var history []core.Message
	if e.conversations != nil {
		var err error
		history, err = e.conversations.History(turn.ChatID)
		if err != nil {
			return core.AgentResult{}, fmt.Errorf("failed to load conversation history: %w", err)
		}
	}

	asmCtx, err := e.assembler.Build(ctx, turn, history)
	if err != nil {
		return core.AgentResult{}, err
	}

	routed, err := e.router.Route(ctx, turn.Prompt, turn.UserID, len(turn.Attachments))
	if err != nil {
		return core.AgentResult{}, fmt.Errorf("routing failed: %w", err)
	}
	if !routed.Action.Valid() {
		routed.Action = core.ActionSimple
	}

	e.logger.Debug("turn routed turn_id=%s action=%s", turn.ID, routed.Action)

	acc := skill.NewAccumulator()
	current := routed

	for i := 0; i < MaxTurnIterations; i++ {
		handler, ok := e.skills.Lookup(current.Action)
		if !ok {
			handler, ok = e.skills.Lookup(core.ActionSimple)
			if !ok {
				return core.AgentResult{}, fmt.Errorf("no handler registered for action %s", current.Action)
			}
		}

		promptText := current.Param(core.ParamPrompt)
		if promptText == "" {
			promptText = turn.Prompt
		}

		inv := &skill.Invocation{
			Prompt:  promptText,
			Params:  current.Params,
			Turn:    turn,
			Context: asmCtx,
			History: history,
			Acc:     acc,
			Sink:    sink,
		}

		start := time.Now()
		outcome, err := handler.Handle(ctx, inv)
		if err != nil {
			e.logger.Error("skill failed turn_id=%s skill=%s duration=%s error=%v",
				turn.ID, handler.Name(), time.Since(start), err)
			return core.AgentResult{}, err
		}

		e.logger.Debug("skill completed turn_id=%s skill=%s iteration=%d duration=%s redirected=%t",
			turn.ID, handler.Name(), i, time.Since(start), outcome.Redirect != nil)

		if outcome.Redirect == nil {
			return acc.Result(), nil
		}

		current = *outcome.Redirect
	}

	// Iteration budget exhausted: fall through with whatever accumulated.
	// This is not an error.
	e.logger.Warn("turn hit iteration ceiling turn_id=%s last_action=%s", turn.ID, current.Action)

	return acc.Result(), nil
}
