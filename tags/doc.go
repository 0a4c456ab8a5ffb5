// Package tags implements the in-band marker protocol embedded in
// generated text. Two independent passes share the marker grammar but
// serve different consumers:
//
//   - DetectRedirect scans freshly generated output of the default
//     conversational skill for control-flow markers and yields the action
//     the orchestration loop should re-dispatch to.
//   - Extract pulls display-time blocks (thinking, canvas) out of raw
//     assistant text and produces a clean rendition with every known
//     marker block removed.
//
// Detection and display stripping are deliberately separate passes with
// separate marker sets; conflating them couples rendering to control flow.
//
// Markers are bracketed, case-insensitive and matched non-greedily. A
// marker whose closing tag has not arrived yet (mid-stream) is treated as
// running to the end of the text.
package tags
