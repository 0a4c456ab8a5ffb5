// Package conversation provides a process-local implementation of
// core.ConversationStore: an append-only per-chat message log with
// defensive copies on read. Suitable for tests and demos; swap for a
// durable store in production.
package conversation
