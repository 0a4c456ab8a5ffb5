package router

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/skillmesh/core"
)

func TestKeyword_Route(t *testing.T) {
	tests := []struct {
		prompt string
		want   core.Action
	}{
		{"please do some deep research on quantum error correction", core.ActionDeepSearch},
		{"search for the latest Go release", core.ActionSearch},
		{"what's the weather in Berlin", core.ActionSearch},
		{"draw a cat wearing a hat", core.ActionImage},
		{"scaffold a REST API service", core.ActionProject},
		{"build me a component for the dashboard", core.ActionCanvas},
		{"make me a study plan for linear algebra", core.ActionStudy},
		{"think hard about this puzzle", core.ActionThink},
		{"hello there", core.ActionSimple},
		{"", core.ActionSimple},
	}

	router := NewKeyword()
	for _, tt := range tests {
		t.Run(tt.prompt, func(t *testing.T) {
			routed, err := router.Route(context.Background(), tt.prompt, "user-1", 0)
			require.NoError(t, err)
			assert.Equal(t, tt.want, routed.Action)
		})
	}
}

func TestKeyword_DeepResearchOutranksSearch(t *testing.T) {
	routed, err := NewKeyword().Route(context.Background(), "deep research: search for prior art", "user-1", 0)
	require.NoError(t, err)
	assert.Equal(t, core.ActionDeepSearch, routed.Action)
}

func TestKeyword_ImagePromptExtraction(t *testing.T) {
	routed, err := NewKeyword().Route(context.Background(), "Draw a lighthouse at dusk", "user-1", 0)
	require.NoError(t, err)
	require.Equal(t, core.ActionImage, routed.Action)
	assert.Equal(t, "a lighthouse at dusk", routed.Param(core.ParamPrompt))
}
