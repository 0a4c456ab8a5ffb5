// Package router provides a heuristic keyword implementation of
// core.Router. It is the in-repo reference router; deployments usually
// plug a semantic classifier behind the same interface.
package router
