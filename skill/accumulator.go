package skill

import (
	"strings"

	"github.com/hupe1980/skillmesh/core"
)

// Accumulator collects the turn's output across loop iterations. Text is
// monotonically appended, never rewritten; citations are concatenated in
// arrival order and never deduplicated. A turn runs on a single control
// flow, so no locking is needed.
type Accumulator struct {
	text      strings.Builder
	image     []byte
	citations []core.Citation
}

// NewAccumulator creates an empty accumulator.
func NewAccumulator() *Accumulator { return &Accumulator{} }

// AppendText appends s to the accumulated response text.
func (a *Accumulator) AppendText(s string) { a.text.WriteString(s) }

// AddCitations appends grounding records in arrival order.
func (a *Accumulator) AddCitations(citations ...core.Citation) {
	a.citations = append(a.citations, citations...)
}

// SetImage attaches the generated image payload.
func (a *Accumulator) SetImage(data []byte) { a.image = data }

// Text returns the text accumulated so far.
func (a *Accumulator) Text() string { return a.text.String() }

// Len returns the accumulated text length in bytes.
func (a *Accumulator) Len() int { return a.text.Len() }

// Result snapshots the accumulator into the turn's terminal AgentResult.
func (a *Accumulator) Result() core.AgentResult {
	citations := make([]core.Citation, len(a.citations))
	copy(citations, a.citations)
	return core.AgentResult{
		Text:      a.text.String(),
		Image:     a.image,
		Citations: citations,
	}
}
