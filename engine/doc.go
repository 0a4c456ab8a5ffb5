// Package engine implements the orchestration loop: given the router's
// initial action for a turn it dispatches to the matching skill handler,
// follows at most one redirect per iteration up to a fixed iteration
// ceiling and always returns a terminal AgentResult. Any error escaping
// the loop is caught once at the top and converted into a degraded result;
// ExecuteTurn never fails.
package engine
