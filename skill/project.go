package skill

import (
	"context"

	"github.com/hupe1980/skillmesh/core"
	"github.com/hupe1980/skillmesh/logging"
	"github.com/hupe1980/skillmesh/model"
)

// projectDirective requests a structured file-tree description.
const projectDirective = "\n\nProduce a project scaffold as a JSON object mapping file paths to short content descriptions. Include build files and an entry point."

// ScaffoldSuffix is appended verbatim after every generated scaffold.
const ScaffoldSuffix = "\n\nCopy this structure into your workspace to bootstrap the project."

// ProjectOptions configure the Project handler.
type ProjectOptions struct {
	Model  string
	Logger logging.Logger
}

// Project performs a one-shot (non-streaming) call requesting a structured
// file-tree description and appends a fixed explanatory suffix. Failures
// propagate and are caught at turn level.
type Project struct {
	client model.Client
	opts   ProjectOptions
}

// NewProject creates the PROJECT handler.
func NewProject(client model.Client, optFns ...func(o *ProjectOptions)) *Project {
	opts := ProjectOptions{Logger: logging.NoOpLogger{}}

	for _, fn := range optFns {
		fn(&opts)
	}

	return &Project{client: client, opts: opts}
}

// Name implements Handler.
func (p *Project) Name() core.Action { return core.ActionProject }

// Handle implements Handler.
func (p *Project) Handle(ctx context.Context, inv *Invocation) (Outcome, error) {
	req := model.Request{
		Model:             p.opts.Model,
		Contents:          []model.Content{model.NewTextContent("user", inv.Prompt)},
		SystemInstruction: inv.Context.SystemInstruction() + projectDirective,
		ResponseMIMEType:  "application/json",
	}

	resp, err := p.client.Generate(ctx, req)
	if err != nil {
		return Outcome{}, err
	}

	text := resp.Text + ScaffoldSuffix
	inv.Acc.AppendText(text)
	inv.Sink.Emit(core.StreamChunk{Text: text})

	return Outcome{}, nil
}
