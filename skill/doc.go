// Package skill contains one handler per routed action. Every handler
// receives the current prompt, the assembled per-turn context and a
// streaming sink, appends its output to the shared turn accumulator and
// either terminates the turn or (for the default conversational skill
// only) asks the orchestration loop to re-dispatch to another action.
package skill
