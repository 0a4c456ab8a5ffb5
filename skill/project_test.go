package skill

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/skillmesh/internal/testutil"
	"github.com/hupe1980/skillmesh/model"
)

func TestProject_OneShotWithSuffix(t *testing.T) {
	capture := &captureClient{MockClient: model.NewMockClient("m")}
	capture.AddResponse("a todo app", `{"main.go": "entry point"}`)

	var sink testutil.CollectSink
	turn := testutil.NewTurnBuilder().Prompt("a todo app").Build()
	inv := testInvocation(t, turn, "a todo app", sink.Sink())

	outcome, err := NewProject(capture).Handle(context.Background(), inv)
	require.NoError(t, err)
	assert.Nil(t, outcome.Redirect)

	assert.Equal(t, "application/json", capture.lastReq.ResponseMIMEType)
	assert.Contains(t, capture.lastReq.SystemInstruction, "JSON object mapping file paths")

	assert.True(t, strings.HasSuffix(inv.Acc.Text(), ScaffoldSuffix))
	assert.Contains(t, inv.Acc.Text(), `{"main.go": "entry point"}`)
	assert.Equal(t, inv.Acc.Text(), sink.Text())
}

func TestProject_ErrorPropagates(t *testing.T) {
	mock := model.NewMockClient("m")
	mock.FailWith(assert.AnError)

	turn := testutil.NewTurnBuilder().Prompt("a todo app").Build()
	inv := testInvocation(t, turn, "a todo app", nil)

	_, err := NewProject(mock).Handle(context.Background(), inv)
	assert.ErrorIs(t, err, assert.AnError)
}
