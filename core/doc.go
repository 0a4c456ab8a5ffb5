// Package core provides the foundational domain types and collaborator
// interfaces used by SkillMesh. It defines the core abstractions for:
//
//   - Turns (the immutable unit of work: one user prompt plus attachments)
//   - RoutedActions (the skill selected to handle a turn or mid-turn redirect)
//   - StreamChunks / Sinks (incremental delivery of generated text)
//   - AgentResults and PendingMessages (the persistence/UI boundary shape)
//   - Collaborator contracts (router, memory source, research, canvas,
//     image generation, usage counting, conversation storage)
//
// The package intentionally keeps implementation concerns (model adapters,
// skill handlers, the orchestration engine) out of scope, exposing small
// interfaces to enable custom backends and extensions.
package core
