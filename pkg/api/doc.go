// Package api defines the core data types and interfaces for the flow engine
//
// This package contains the shared types used across the engine, including
// invocation contexts, step types, lifecycle events, and flow digests
package api
