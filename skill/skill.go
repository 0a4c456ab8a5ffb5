package skill

import (
	"context"

	"github.com/hupe1980/skillmesh/core"
	"github.com/hupe1980/skillmesh/model"
	"github.com/hupe1980/skillmesh/prompt"
)

// Invocation carries everything a handler needs for one loop iteration.
// Prompt is the effective prompt for this iteration (the redirect payload
// after a transition); Turn stays the immutable top-level submission.
type Invocation struct {
	Prompt  string
	Params  map[string]string
	Turn    core.Turn
	Context *prompt.Context
	History []core.Message
	Acc     *Accumulator
	Sink    core.Sink
}

// Param returns the named routed-action parameter or "".
func (inv *Invocation) Param(key string) string {
	if inv.Params == nil {
		return ""
	}
	return inv.Params[key]
}

// Outcome is a handler's verdict for the loop. A nil Redirect terminates
// the turn with whatever the accumulator holds; a non-nil Redirect asks
// the loop to re-dispatch.
type Outcome struct {
	Redirect *core.RoutedAction
}

// Handler executes one skill. Implementations append generated output to
// inv.Acc and mirror it through inv.Sink as it is produced.
type Handler interface {
	Name() core.Action
	Handle(ctx context.Context, inv *Invocation) (Outcome, error)
}

// Registry maps actions to their handlers.
type Registry map[core.Action]Handler

// Register adds handlers keyed by their Name.
func (r Registry) Register(handlers ...Handler) {
	for _, h := range handlers {
		r[h.Name()] = h
	}
}

// Lookup returns the handler for the action.
func (r Registry) Lookup(action core.Action) (Handler, bool) {
	h, ok := r[action]
	return h, ok
}

// consumeStream drains a model stream, appending text and citations to the
// accumulator and mirroring each chunk through the sink before the next
// chunk is awaited. The first stream error is returned after both
// channels close.
func consumeStream(ctx context.Context, client model.Client, req model.Request, inv *Invocation) error {
	chunks, errs := client.GenerateStream(ctx, req)

	var streamErr error
	for chunks != nil || errs != nil {
		select {
		case ck, ok := <-chunks:
			if !ok {
				chunks = nil
				continue
			}
			inv.Acc.AppendText(ck.Text)
			inv.Acc.AddCitations(ck.Citations...)
			inv.Sink.Emit(core.StreamChunk{Text: ck.Text, Citations: ck.Citations})
		case err, ok := <-errs:
			if !ok {
				errs = nil
				continue
			}
			if err != nil && streamErr == nil {
				streamErr = err
			}
		}
	}

	return streamErr
}

// historyWithPrompt appends the current prompt as the trailing user turn.
func historyWithPrompt(inv *Invocation) []model.Content {
	contents := make([]model.Content, 0, len(inv.Context.History)+1)
	contents = append(contents, inv.Context.History...)
	contents = append(contents, model.NewTextContent("user", inv.Prompt))
	return contents
}
