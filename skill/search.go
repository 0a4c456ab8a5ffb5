package skill

import (
	"context"

	"github.com/hupe1980/skillmesh/core"
	"github.com/hupe1980/skillmesh/logging"
	"github.com/hupe1980/skillmesh/model"
)

// searchDirective is appended to the system preamble for grounded answers.
const searchDirective = "\n\nGround your answer in current web results and cite your sources."

// SearchOptions configure the Search handler.
type SearchOptions struct {
	// Model overrides the adapter's default model identifier.
	Model string
	// Logger receives handler diagnostics.
	Logger logging.Logger
}

// Search streams a grounded, web-search-augmented response. Citation
// metadata is accumulated chunk-by-chunk in arrival order. Failures
// propagate and are caught at turn level.
type Search struct {
	client model.Client
	opts   SearchOptions
}

// NewSearch creates the SEARCH handler.
func NewSearch(client model.Client, optFns ...func(o *SearchOptions)) *Search {
	opts := SearchOptions{Logger: logging.NoOpLogger{}}

	for _, fn := range optFns {
		fn(&opts)
	}

	return &Search{client: client, opts: opts}
}

// Name implements Handler.
func (s *Search) Name() core.Action { return core.ActionSearch }

// Handle implements Handler.
func (s *Search) Handle(ctx context.Context, inv *Invocation) (Outcome, error) {
	req := model.Request{
		Model:             s.opts.Model,
		Contents:          historyWithPrompt(inv),
		SystemInstruction: inv.Context.SystemInstruction() + searchDirective,
		EnableSearch:      true,
	}

	if err := consumeStream(ctx, s.client, req, inv); err != nil {
		return Outcome{}, err
	}

	return Outcome{}, nil
}
