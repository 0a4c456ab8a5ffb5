package core

import "context"

// Standard long-term memory layer names fetched once per turn. The set is
// fixed by the context assembler; custom sources may support more.
const (
	MemoryLayerPersonal    = "personal"
	MemoryLayerPreferences = "preferences"
	MemoryLayerCodebase    = "codebase"
	MemoryLayerAesthetic   = "aesthetic"
	MemoryLayerProject     = "project"
)

// DefaultMemoryLayers is the layer set requested by the context assembler
// when none is configured.
var DefaultMemoryLayers = []string{
	MemoryLayerPersonal,
	MemoryLayerPreferences,
	MemoryLayerCodebase,
	MemoryLayerAesthetic,
	MemoryLayerProject,
}

// MemoryContext is a read-only snapshot of long-term user/project memory
// keyed by layer name. Values are arbitrary structured content owned by
// the memory collaborator.
type MemoryContext map[string]any

// MemorySource retrieves a memory snapshot across named layers. The
// snapshot is fetched once per turn and treated as read-only input to
// every skill handler.
type MemorySource interface {
	GetContext(ctx context.Context, layers []string) (MemoryContext, error)
}
