package events

import "github.com/kode4food/strand/pkg/api"

// EventFilter reports whether a consumer is interested in an event
type EventFilter func(*Event) bool

// FilterEvents matches any of the provided event types
func FilterEvents(eventTypes ...api.EventType) EventFilter {
	lookup := map[api.EventType]bool{}
	for _, et := range eventTypes {
		lookup[et] = true
	}
	return func(ev *Event) bool {
		return lookup[ev.Type]
	}
}

// FilterFlow matches events belonging to a single flow
func FilterFlow(flowID api.ID) EventFilter {
	return func(ev *Event) bool {
		return ev.FlowID == flowID
	}
}

// AndFilters matches events that pass every provided filter
func AndFilters(filters ...EventFilter) EventFilter {
	return func(ev *Event) bool {
		for _, filter := range filters {
			if !filter(ev) {
				return false
			}
		}
		return true
	}
}

// OrFilters matches events that pass any provided filter
func OrFilters(filters ...EventFilter) EventFilter {
	return func(ev *Event) bool {
		for _, filter := range filters {
			if filter(ev) {
				return true
			}
		}
		return false
	}
}
