// Package logging provides a tiny abstraction over slog so downstream code
// can depend on a minimal interface (Logger) while allowing users to plug
// any structured logger. It also offers a richer SkillMeshLogger with
// contextual helpers (chat, turn, component) and domain specific logging
// helpers for model calls, skill runs and retry waits.
package logging
