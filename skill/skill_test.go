package skill

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hupe1980/skillmesh/core"
	"github.com/hupe1980/skillmesh/model"
	"github.com/hupe1980/skillmesh/prompt"
)

// captureClient records the last request passed to the wrapped mock.
type captureClient struct {
	*model.MockClient
	lastReq model.Request
}

func (c *captureClient) GenerateStream(ctx context.Context, req model.Request) (<-chan model.Chunk, <-chan error) {
	c.lastReq = req
	return c.MockClient.GenerateStream(ctx, req)
}

func (c *captureClient) Generate(ctx context.Context, req model.Request) (*model.Chunk, error) {
	c.lastReq = req
	return c.MockClient.Generate(ctx, req)
}

// testInvocation builds an invocation with a freshly assembled context and
// an empty accumulator.
func testInvocation(t *testing.T, turn core.Turn, promptText string, sink core.Sink) *Invocation {
	t.Helper()

	asmCtx, err := prompt.NewAssembler(nil).Build(context.Background(), turn, nil)
	require.NoError(t, err)

	return &Invocation{
		Prompt:  promptText,
		Turn:    turn,
		Context: asmCtx,
		Acc:     NewAccumulator(),
		Sink:    sink,
	}
}

func TestRegistry_RegisterAndLookup(t *testing.T) {
	registry := Registry{}
	registry.Register(NewSimple(model.NewMockClient("m")), NewSearch(model.NewMockClient("m")))

	h, ok := registry.Lookup(core.ActionSimple)
	require.True(t, ok)
	require.Equal(t, core.ActionSimple, h.Name())

	_, ok = registry.Lookup(core.ActionCanvas)
	require.False(t, ok)
}
