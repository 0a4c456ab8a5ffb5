// Package artifact contains concrete implementations of core.ArtifactStore.
//
// The canonical ArtifactStore interface lives in the core package to keep
// domain contracts central. Implementation packages like this one
// (in-memory, cloud object stores, databases) provide storage backends that
// can be swapped without touching calling code.
//
// Generated images and other binary turn outputs are persisted here by the
// caller after a turn completes; the orchestration loop itself never writes
// to storage.
package artifact
