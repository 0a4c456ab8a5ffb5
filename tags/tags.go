package tags

import (
	"regexp"
	"strings"

	"github.com/hupe1980/skillmesh/core"
)

// blockPattern matches <NAME>payload</NAME> case-insensitively across
// newlines, tolerating a missing closing marker (payload then runs to end
// of text).
func blockPattern(name string) *regexp.Regexp {
	return regexp.MustCompile(`(?is)<` + name + `>(.*?)(?:</` + name + `>|$)`)
}

var (
	deepRe    = blockPattern("DEEP")
	searchRe  = blockPattern("SEARCH")
	thinkRe   = blockPattern("THINK")
	imageRe   = blockPattern("IMAGE")
	projectRe = blockPattern("PROJECT")
	canvasRe  = blockPattern("CANVAS")
	studyRe   = blockPattern("STUDY")
	memoryRe  = blockPattern("MEMORY")

	// cleanOrder lists every marker block removed by Clean.
	cleanOrder = []*regexp.Regexp{
		thinkRe, canvasRe, memoryRe, imageRe, searchRe, projectRe, studyRe, deepRe,
	}

	fenceRe = regexp.MustCompile("(?s)^```[a-zA-Z0-9]*\\r?\\n?(.*?)\\r?\\n?```$")
)

// payload returns the trimmed payload of the first block match, or "".
func payload(re *regexp.Regexp, text string) string {
	m := re.FindStringSubmatch(text)
	if m == nil {
		return ""
	}
	return strings.TrimSpace(m[1])
}

// DetectRedirect scans generated text for control-flow markers in fixed
// priority order: DEEP, SEARCH, THINK, IMAGE, PROJECT, CANVAS, STUDY. The
// first non-empty match wins and only one redirect is taken even when
// multiple markers are present. Nesting is not interpreted: payloads are
// taken verbatim, so a higher-priority marker wins even when it sits
// inside another marker's payload.
//
// Special cases:
//   - A SEARCH payload with a case-insensitive "deep " prefix maps to
//     DEEP_SEARCH with the prefix stripped.
//   - THINK matches on marker presence alone; an empty or whitespace-only
//     payload falls back to fallbackPrompt (the turn's original prompt),
//     never the empty string.
func DetectRedirect(text, fallbackPrompt string) (core.RoutedAction, bool) {
	if p := payload(deepRe, text); p != "" {
		return redirect(core.ActionDeepSearch, p), true
	}

	if p := payload(searchRe, text); p != "" {
		if rest, ok := cutDeepPrefix(p); ok {
			return redirect(core.ActionDeepSearch, rest), true
		}
		return redirect(core.ActionSearch, p), true
	}

	if m := thinkRe.FindStringSubmatch(text); m != nil {
		p := strings.TrimSpace(m[1])
		if p == "" {
			p = fallbackPrompt
		}
		return redirect(core.ActionThink, p), true
	}

	if p := payload(imageRe, text); p != "" {
		return redirect(core.ActionImage, p), true
	}

	if p := payload(projectRe, text); p != "" {
		return redirect(core.ActionProject, p), true
	}

	if p := payload(canvasRe, text); p != "" {
		return redirect(core.ActionCanvas, p), true
	}

	if p := payload(studyRe, text); p != "" {
		return redirect(core.ActionStudy, p), true
	}

	return core.RoutedAction{}, false
}

func redirect(action core.Action, prompt string) core.RoutedAction {
	return core.RoutedAction{
		Action: action,
		Params: map[string]string{core.ParamPrompt: prompt},
	}
}

// cutDeepPrefix strips a case-insensitive "deep " prefix.
func cutDeepPrefix(s string) (string, bool) {
	if len(s) >= 5 && strings.EqualFold(s[:5], "deep ") {
		return strings.TrimSpace(s[5:]), true
	}
	return s, false
}

// Blocks is the display-time decomposition of raw assistant text.
type Blocks struct {
	// Thinking is the extended-reasoning narration, typically rendered
	// collapsed. Empty when no THINK block is present.
	Thinking string
	// Canvas is the canvas artifact source with any generic code fence
	// stripped. Empty when no CANVAS block is present.
	Canvas string
	// Clean is the remaining user-visible text with all known marker
	// blocks removed, paired or not.
	Clean string
}

// Extract performs the display-time pass over raw assistant text. It is
// safe to call on in-progress streaming output: an unterminated block runs
// to the end of the text.
func Extract(raw string) Blocks {
	return Blocks{
		Thinking: payload(thinkRe, raw),
		Canvas:   stripFence(payload(canvasRe, raw)),
		Clean:    Clean(raw),
	}
}

// Clean removes every known marker block (thinking, canvas, memory, image,
// search, project, study, deep) from raw text, whether or not each block
// was paired with a closing marker. Removal repeats until the text stops
// changing: deleting one block can splice the surrounding text into a new
// marker, which must not survive into user-visible output. Clean is
// idempotent: running it on its own output yields the same text.
func Clean(raw string) string {
	s := raw
	for {
		next := s
		for _, re := range cleanOrder {
			next = re.ReplaceAllString(next, "")
		}
		if next == s {
			break
		}
		s = next
	}
	return strings.TrimSpace(s)
}

// stripFence removes a generic code fence accidentally wrapped around a
// canvas payload.
func stripFence(s string) string {
	if m := fenceRe.FindStringSubmatch(strings.TrimSpace(s)); m != nil {
		return m[1]
	}
	return s
}
