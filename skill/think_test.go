package skill

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/skillmesh/internal/testutil"
	"github.com/hupe1980/skillmesh/model"
)

func TestThink_StreamsWithThinkingBudget(t *testing.T) {
	capture := &captureClient{MockClient: model.NewMockClient("m")}
	capture.AddResponse("prove it", "reasoned answer")

	turn := testutil.NewTurnBuilder().Prompt("prove it").Build()
	inv := testInvocation(t, turn, "prove it", nil)

	outcome, err := NewThink(capture, nil).Handle(context.Background(), inv)
	require.NoError(t, err)
	assert.Nil(t, outcome.Redirect)
	assert.Equal(t, "reasoned answer", inv.Acc.Text())
	assert.Equal(t, defaultThinkingBudget, capture.lastReq.ThinkingBudget)
	assert.Contains(t, capture.lastReq.SystemInstruction, "step by step")
}

func TestThink_IncrementsUsageCounter(t *testing.T) {
	counter := testutil.NewFakeCounter()
	mock := model.NewMockClient("m")

	turn := testutil.NewTurnBuilder().User("user-42").Prompt("prove it").Build()
	inv := testInvocation(t, turn, "prove it", nil)

	_, err := NewThink(mock, counter).Handle(context.Background(), inv)
	require.NoError(t, err)

	select {
	case <-counter.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("usage counter was not incremented")
	}
	assert.Equal(t, []string{"user-42"}, counter.Calls())
}

func TestThink_CounterFailureDoesNotAbortTurn(t *testing.T) {
	counter := testutil.NewFakeCounter()
	counter.FailWith(errors.New("billing backend down"))
	mock := model.NewMockClient("m")
	mock.AddResponse("prove it", "still answers")

	turn := testutil.NewTurnBuilder().Prompt("prove it").Build()
	inv := testInvocation(t, turn, "prove it", nil)

	outcome, err := NewThink(mock, counter).Handle(context.Background(), inv)
	require.NoError(t, err)
	assert.Nil(t, outcome.Redirect)
	assert.Equal(t, "still answers", inv.Acc.Text())

	select {
	case <-counter.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("usage counter was not called")
	}
}
