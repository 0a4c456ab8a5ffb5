// Package model defines the normalized request/response contract between
// skill handlers and upstream text-generation services, plus a retrying
// wrapper for rate-limited providers. Concrete adapters live in the
// subpackages gemini, openai and anthropic.
package model
