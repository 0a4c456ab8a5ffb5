package core

// Action identifies the skill selected to handle a turn. The set is closed;
// the router and the tag protocol only ever produce one of these values.
type Action string

const (
	// ActionSearch streams a grounded, web-search-augmented response.
	ActionSearch Action = "SEARCH"
	// ActionDeepSearch delegates to the multi-step research collaborator.
	ActionDeepSearch Action = "DEEP_SEARCH"
	// ActionThink streams an extended-reasoning response with a larger
	// computation budget.
	ActionThink Action = "THINK"
	// ActionImage generates an image via the image collaborator.
	ActionImage Action = "IMAGE"
	// ActionCanvas delegates to the canvas code-generation collaborator.
	ActionCanvas Action = "CANVAS"
	// ActionProject requests a one-shot structured project scaffold.
	ActionProject Action = "PROJECT"
	// ActionStudy streams a structured study plan.
	ActionStudy Action = "STUDY"
	// ActionSimple is the default conversational reply. It is the only
	// action whose handler may redirect control to another action.
	ActionSimple Action = "SIMPLE"
)

// Valid reports whether a is a member of the closed action set.
func (a Action) Valid() bool {
	switch a {
	case ActionSearch, ActionDeepSearch, ActionThink, ActionImage,
		ActionCanvas, ActionProject, ActionStudy, ActionSimple:
		return true
	}
	return false
}

// Well-known parameter keys carried by RoutedAction.Params.
const (
	// ParamPrompt overrides the turn's top-level prompt for the selected
	// skill (e.g. the payload of a redirect marker, or an explicit image
	// prompt extracted by the router).
	ParamPrompt = "prompt"
	// ParamModel expresses a model preference for skills that honor one
	// (currently only image generation).
	ParamModel = "model"
)

// RoutedAction pairs an Action with an optional parameter bag. It is
// produced by the external router for the turn's top-level prompt and by
// redirect detection for mid-turn transitions; it mutates across loop
// iterations while the Turn itself stays immutable.
type RoutedAction struct {
	Action Action            `json:"action"`
	Params map[string]string `json:"params,omitempty"`
}

// Param returns the named parameter or "" when absent.
func (r RoutedAction) Param(key string) string {
	if r.Params == nil {
		return ""
	}
	return r.Params[key]
}

// WithParam returns a copy of r with the parameter set.
func (r RoutedAction) WithParam(key, value string) RoutedAction {
	params := make(map[string]string, len(r.Params)+1)
	for k, v := range r.Params {
		params[k] = v
	}
	params[key] = value
	return RoutedAction{Action: r.Action, Params: params}
}
