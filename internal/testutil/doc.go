// Package testutil contains helper builders and fakes used across tests to
// reduce boilerplate when constructing core model objects (turns, messages)
// and stubbing collaborators (router, research, canvas, image generation,
// usage counting). These helpers are intentionally minimal and not intended
// for production usage.
package testutil
