// Package memory provides a process-local layered implementation of
// core.MemorySource, suitable for tests and demos. Production deployments
// typically back memory with a vector store or a dedicated memory service.
package memory
