package skill

import (
	"context"
	"fmt"

	"github.com/hupe1980/skillmesh/core"
	"github.com/hupe1980/skillmesh/logging"
)

// StatusImageStarted is emitted through the sink before the image call so
// UIs can show a placeholder while the non-streaming generation runs.
const StatusImageStarted = "image_generation_started"

// ImageOptions configure the Image handler.
type ImageOptions struct {
	Logger logging.Logger
}

// Image generates an image via the image collaborator. Generation failure
// is recovered locally: a user-visible note is appended to the response
// text and the turn still completes.
type Image struct {
	generator core.ImageGenerator
	opts      ImageOptions
}

// NewImage creates the IMAGE handler.
func NewImage(generator core.ImageGenerator, optFns ...func(o *ImageOptions)) *Image {
	opts := ImageOptions{Logger: logging.NoOpLogger{}}

	for _, fn := range optFns {
		fn(&opts)
	}

	return &Image{generator: generator, opts: opts}
}

// Name implements Handler.
func (i *Image) Name() core.Action { return core.ActionImage }

// Handle implements Handler.
func (i *Image) Handle(ctx context.Context, inv *Invocation) (Outcome, error) {
	inv.Sink.Emit(core.StreamChunk{Status: StatusImageStarted})

	data, err := i.generator.Generate(ctx, inv.Prompt, inv.Param(core.ParamModel))
	if err != nil {
		i.opts.Logger.Warn("image generation failed prompt=%q error=%v", inv.Prompt, err)
		note := fmt.Sprintf("(Image generation failed: %s)", err.Error())
		if inv.Acc.Len() > 0 {
			note = "\n\n" + note
		}
		inv.Acc.AppendText(note)
		inv.Sink.Emit(core.StreamChunk{Text: note})
		return Outcome{}, nil
	}

	inv.Acc.SetImage(data)

	return Outcome{}, nil
}
