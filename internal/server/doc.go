// Package server implements the HTTP introspection API for the engine
//
// This package provides REST endpoints for inspecting live flows and their
// recorded steps, plus a WebSocket endpoint streaming engine events
package server
