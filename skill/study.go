package skill

import (
	"context"

	"github.com/hupe1980/skillmesh/core"
	"github.com/hupe1980/skillmesh/logging"
	"github.com/hupe1980/skillmesh/model"
)

// studyDirective shapes the streamed study plan.
const studyDirective = "\n\nCreate a structured study plan: ordered milestones, resources per milestone and a realistic weekly schedule."

// StudyOptions configure the Study handler.
type StudyOptions struct {
	Model  string
	Logger logging.Logger
}

// Study streams a structured study-plan response with no special tool
// configuration. Failures propagate and are caught at turn level.
type Study struct {
	client model.Client
	opts   StudyOptions
}

// NewStudy creates the STUDY handler.
func NewStudy(client model.Client, optFns ...func(o *StudyOptions)) *Study {
	opts := StudyOptions{Logger: logging.NoOpLogger{}}

	for _, fn := range optFns {
		fn(&opts)
	}

	return &Study{client: client, opts: opts}
}

// Name implements Handler.
func (s *Study) Name() core.Action { return core.ActionStudy }

// Handle implements Handler.
func (s *Study) Handle(ctx context.Context, inv *Invocation) (Outcome, error) {
	req := model.Request{
		Model:             s.opts.Model,
		Contents:          historyWithPrompt(inv),
		SystemInstruction: inv.Context.SystemInstruction() + studyDirective,
	}

	if err := consumeStream(ctx, s.client, req, inv); err != nil {
		return Outcome{}, err
	}

	return Outcome{}, nil
}
