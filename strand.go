// Package strand turns stepwise coroutine bodies into observable
// asynchronous flows. Each flow is driven one step at a time on a single
// dispatch worker; every spawn, resume, and settlement carries an immutable
// invocation context that records its place in the action hierarchy and can
// be intercepted by middleware before it executes.
package strand

const (
	// Name is the service name reported in logs and APIs
	Name = "strand"

	// Version is the current release version
	Version = "0.3.0"
)
