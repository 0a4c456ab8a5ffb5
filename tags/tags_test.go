package tags

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/skillmesh/core"
)

func TestDetectRedirect_PriorityOrder(t *testing.T) {
	// Every marker present at once: DEEP wins.
	text := "<STUDY>s</STUDY><CANVAS>c</CANVAS><PROJECT>p</PROJECT>" +
		"<IMAGE>i</IMAGE><THINK>t</THINK><SEARCH>q</SEARCH><DEEP>d</DEEP>"

	routed, ok := DetectRedirect(text, "fallback")
	require.True(t, ok)
	assert.Equal(t, core.ActionDeepSearch, routed.Action)
	assert.Equal(t, "d", routed.Param(core.ParamPrompt))
}

func TestDetectRedirect_SingleRedirectTaken(t *testing.T) {
	text := "some text <SEARCH>first</SEARCH> more <IMAGE>second</IMAGE>"

	routed, ok := DetectRedirect(text, "fallback")
	require.True(t, ok)
	assert.Equal(t, core.ActionSearch, routed.Action)
	assert.Equal(t, "first", routed.Param(core.ParamPrompt))
}

func TestDetectRedirect_SearchDeepPrefix(t *testing.T) {
	routed, ok := DetectRedirect("<SEARCH>deep history of the internet</SEARCH>", "fallback")
	require.True(t, ok)
	assert.Equal(t, core.ActionDeepSearch, routed.Action)
	assert.Equal(t, "history of the internet", routed.Param(core.ParamPrompt))

	// Prefix match is case-insensitive.
	routed, ok = DetectRedirect("<SEARCH>Deep sea creatures facts</SEARCH>", "fallback")
	require.True(t, ok)
	assert.Equal(t, core.ActionDeepSearch, routed.Action)
	assert.Equal(t, "sea creatures facts", routed.Param(core.ParamPrompt))

	// No prefix: plain search.
	routed, ok = DetectRedirect("<SEARCH>deepest lake</SEARCH>", "fallback")
	require.True(t, ok)
	assert.Equal(t, core.ActionSearch, routed.Action)
}

func TestDetectRedirect_ThinkEmptyPayloadFallsBack(t *testing.T) {
	routed, ok := DetectRedirect("Let me reason. <THINK></THINK>", "original prompt")
	require.True(t, ok)
	assert.Equal(t, core.ActionThink, routed.Action)
	assert.Equal(t, "original prompt", routed.Param(core.ParamPrompt))

	routed, ok = DetectRedirect("<THINK>   </THINK>", "original prompt")
	require.True(t, ok)
	assert.Equal(t, "original prompt", routed.Param(core.ParamPrompt))

	routed, ok = DetectRedirect("<THINK>why is the sky blue</THINK>", "original prompt")
	require.True(t, ok)
	assert.Equal(t, "why is the sky blue", routed.Param(core.ParamPrompt))
}

func TestDetectRedirect_UnterminatedBlock(t *testing.T) {
	routed, ok := DetectRedirect("thinking about it <SEARCH>current weather in Berlin", "fallback")
	require.True(t, ok)
	assert.Equal(t, core.ActionSearch, routed.Action)
	assert.Equal(t, "current weather in Berlin", routed.Param(core.ParamPrompt))
}

func TestDetectRedirect_CaseInsensitiveMarkers(t *testing.T) {
	routed, ok := DetectRedirect("<image>a red fox</image>", "fallback")
	require.True(t, ok)
	assert.Equal(t, core.ActionImage, routed.Action)
	assert.Equal(t, "a red fox", routed.Param(core.ParamPrompt))
}

func TestDetectRedirect_NestedMarkerPriorityWins(t *testing.T) {
	// SEARCH outranks CANVAS even when it sits inside the canvas payload.
	text := "<CANVAS>outer <SEARCH>inner query</SEARCH> rest</CANVAS>"

	routed, ok := DetectRedirect(text, "fallback")
	require.True(t, ok)
	assert.Equal(t, core.ActionSearch, routed.Action)
	assert.Equal(t, "inner query", routed.Param(core.ParamPrompt))
}

func TestDetectRedirect_NoMarkers(t *testing.T) {
	_, ok := DetectRedirect("plain response with no markers", "fallback")
	assert.False(t, ok)
}

func TestExtract_SplitsBlocks(t *testing.T) {
	raw := "Intro. <THINK>step 1, step 2</THINK> Answer. <CANVAS>func main() {}</CANVAS> Done."

	blocks := Extract(raw)
	assert.Equal(t, "step 1, step 2", blocks.Thinking)
	assert.Equal(t, "func main() {}", blocks.Canvas)
	assert.Equal(t, "Intro.  Answer.  Done.", blocks.Clean)
}

func TestExtract_StripsCanvasFence(t *testing.T) {
	raw := "<CANVAS>```go\npackage main\n```</CANVAS>"

	blocks := Extract(raw)
	assert.Equal(t, "package main", blocks.Canvas)
}

func TestExtract_KeepsInnerFences(t *testing.T) {
	// Only a fence wrapping the whole payload is stripped.
	raw := "<CANVAS>intro\n```go\npackage main\n```\noutro</CANVAS>"

	blocks := Extract(raw)
	assert.Equal(t, "intro\n```go\npackage main\n```\noutro", blocks.Canvas)
}

func TestClean_RemovesAllBlocks(t *testing.T) {
	raw := "Keep this. <MEMORY>note</MEMORY><THINK>t</THINK><DEEP>d</DEEP> And this."

	assert.Equal(t, "Keep this.  And this.", Clean(raw))
}

func TestClean_UnterminatedBlockRunsToEnd(t *testing.T) {
	raw := "Visible text <THINK>half-finished reasoning that never closes"

	assert.Equal(t, "Visible text", Clean(raw))
}

func TestClean_Idempotent(t *testing.T) {
	raw := "Hello <IMAGE>cat</IMAGE> world <SEARCH>dogs"

	once := Clean(raw)
	assert.Equal(t, once, Clean(once))
}

func TestClean_SplicedMarkerRemoved(t *testing.T) {
	// Removing the inner block splices the fragments into a THINK marker;
	// a single removal pass would leak it along with the reasoning text.
	raw := "<THI<SEARCH>q</SEARCH>NK>hidden reasoning"

	once := Clean(raw)
	assert.Equal(t, "", once)
	assert.Equal(t, once, Clean(once))
}

func TestClean_EmptyAndPlain(t *testing.T) {
	assert.Equal(t, "", Clean(""))
	assert.Equal(t, "no markers here", Clean("  no markers here  "))
}
