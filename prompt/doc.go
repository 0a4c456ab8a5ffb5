// Package prompt assembles the system-level context supplied to every
// skill handler: a persona/instruction preamble, a long localized
// timestamp, a read-only long-term memory snapshot and the role-tagged
// conversation history. Assembly happens exactly once per turn.
package prompt
