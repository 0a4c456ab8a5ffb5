package router

import (
	"context"
	"strings"

	"github.com/hupe1980/skillmesh/core"
)

// rule maps trigger phrases to an action. First matching rule wins.
type rule struct {
	action   core.Action
	triggers []string
}

// defaultRules order matters: more specific intents come first.
var defaultRules = []rule{
	{core.ActionDeepSearch, []string{"deep research", "in-depth research", "research thoroughly"}},
	{core.ActionSearch, []string{"search", "look up", "latest news", "current weather", "what's the weather"}},
	{core.ActionImage, []string{"draw", "generate an image", "generate a picture", "create an image", "paint"}},
	{core.ActionProject, []string{"scaffold", "project structure", "boilerplate", "set up a project"}},
	{core.ActionCanvas, []string{"canvas", "write the code for", "build me a component"}},
	{core.ActionStudy, []string{"study plan", "learning plan", "teach me", "curriculum"}},
	{core.ActionThink, []string{"think hard", "think carefully", "prove", "step by step"}},
}

// Keyword is a heuristic keyword router. It classifies a prompt by
// scanning trigger phrases in priority order and falls back to SIMPLE.
type Keyword struct {
	rules []rule
}

// NewKeyword creates a Keyword router with the default rule set.
func NewKeyword() *Keyword {
	return &Keyword{rules: defaultRules}
}

// Route implements core.Router.
func (k *Keyword) Route(_ context.Context, prompt, _ string, _ int) (core.RoutedAction, error) {
	lowered := strings.ToLower(prompt)
	for _, r := range k.rules {
		for _, trigger := range r.triggers {
			if strings.Contains(lowered, trigger) {
				routed := core.RoutedAction{Action: r.action}
				if r.action == core.ActionImage {
					routed = routed.WithParam(core.ParamPrompt, imagePrompt(prompt, trigger))
				}
				return routed, nil
			}
		}
	}
	return core.RoutedAction{Action: core.ActionSimple}, nil
}

// imagePrompt extracts the subject following the trigger phrase, falling
// back to the full prompt.
func imagePrompt(prompt, trigger string) string {
	idx := strings.Index(strings.ToLower(prompt), trigger)
	subject := strings.TrimSpace(prompt[idx+len(trigger):])
	if subject == "" {
		return prompt
	}
	return subject
}
