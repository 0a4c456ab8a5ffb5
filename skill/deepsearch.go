package skill

import (
	"context"
	"fmt"
	"strings"

	"github.com/hupe1980/skillmesh/core"
	"github.com/hupe1980/skillmesh/logging"
)

// DeepSearchOptions configure the DeepSearch handler.
type DeepSearchOptions struct {
	Logger logging.Logger
}

// DeepSearch delegates to the external multi-step research collaborator
// and appends the synthesized answer plus a formatted source list.
// Progress messages are surfaced through the sink as status chunks.
type DeepSearch struct {
	research core.ResearchService
	opts     DeepSearchOptions
}

// NewDeepSearch creates the DEEP_SEARCH handler.
func NewDeepSearch(research core.ResearchService, optFns ...func(o *DeepSearchOptions)) *DeepSearch {
	opts := DeepSearchOptions{Logger: logging.NoOpLogger{}}

	for _, fn := range optFns {
		fn(&opts)
	}

	return &DeepSearch{research: research, opts: opts}
}

// Name implements Handler.
func (d *DeepSearch) Name() core.Action { return core.ActionDeepSearch }

// Handle implements Handler.
func (d *DeepSearch) Handle(ctx context.Context, inv *Invocation) (Outcome, error) {
	report, err := d.research.DeepResearch(ctx, inv.Prompt, func(status string) {
		inv.Sink.Emit(core.StreamChunk{Status: status})
	})
	if err != nil {
		return Outcome{}, fmt.Errorf("deep research failed: %w", err)
	}

	text := report.Answer
	if len(report.Sources) > 0 {
		text += "\n\n" + formatSources(report.Sources)
		inv.Acc.AddCitations(report.Sources...)
	}

	inv.Acc.AppendText(text)
	inv.Sink.Emit(core.StreamChunk{Text: text, Citations: report.Sources})

	return Outcome{}, nil
}

// formatSources renders a numbered source list.
func formatSources(sources []core.Citation) string {
	var b strings.Builder
	b.WriteString("Sources:")
	for i, src := range sources {
		title := src.Title
		if title == "" {
			title = src.URI
		}
		fmt.Fprintf(&b, "\n%d. %s (%s)", i+1, title, src.URI)
	}
	return b.String()
}
