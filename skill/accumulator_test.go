package skill

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/skillmesh/core"
)

func TestAccumulator_TextIsMonotonic(t *testing.T) {
	acc := NewAccumulator()
	acc.AppendText("first ")
	acc.AppendText("second")

	assert.Equal(t, "first second", acc.Text())
	assert.Equal(t, len("first second"), acc.Len())
}

func TestAccumulator_CitationsKeepArrivalOrderAndDuplicates(t *testing.T) {
	a := core.Citation{Title: "A", URI: "https://a.example"}
	b := core.Citation{Title: "B", URI: "https://b.example"}

	acc := NewAccumulator()
	acc.AddCitations(a, b)
	acc.AddCitations(a)

	result := acc.Result()
	require.Len(t, result.Citations, 3)
	assert.Equal(t, []core.Citation{a, b, a}, result.Citations)
}

func TestAccumulator_ResultSnapshotIsIsolated(t *testing.T) {
	acc := NewAccumulator()
	acc.AppendText("hello")
	acc.AddCitations(core.Citation{URI: "https://a.example"})
	acc.SetImage([]byte{1, 2, 3})

	result := acc.Result()
	acc.AddCitations(core.Citation{URI: "https://b.example"})

	assert.Len(t, result.Citations, 1)
	assert.Equal(t, "hello", result.Text)
	assert.Equal(t, []byte{1, 2, 3}, result.Image)
}
