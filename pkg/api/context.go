package api

import "slices"

type (
	// ID uniquely identifies an action or flow invocation. IDs are
	// allocated from a single process-wide counter and are monotonically
	// increasing across all invocations
	ID int64

	// StepType tags the nature of a single flow step
	StepType string

	// ContextKind distinguishes action boundaries from flow steps
	ContextKind string

	// Base is the fixed portion of an invocation context. Every step of a
	// flow shares one Base; only the step type and arguments vary
	Base struct {
		// Name identifies the originating coroutine or action
		Name string `json:"name"`

		// ID is allocated at spawn time and shared by every step
		// belonging to the same invocation
		ID ID `json:"id"`

		// Tree and Scope are opaque references to the owning state
		// hierarchy and its ambient data, copied unchanged from the
		// parent context
		Tree  any `json:"-"`
		Scope any `json:"-"`

		// ParentID is the id of the context that was active when this
		// invocation was spawned
		ParentID ID `json:"parent_id"`

		// AllParentIDs is the parent's chain plus the parent's own id.
		// Lineage is never mutated after construction
		AllParentIDs []ID `json:"all_parent_ids"`

		// RootID is the id of the top-level invocation that ultimately
		// triggered this chain
		RootID ID `json:"root_id"`

		// Parent references the immediate parent context
		Parent *Context `json:"-"`

		// ParentAction references the nearest ancestor context that
		// represents an action boundary
		ParentAction *Context `json:"-"`

		Kind ContextKind `json:"kind"`
	}

	// Context is an immutable snapshot identifying one step's place in the
	// action and flow hierarchy. Contexts are never reused or mutated,
	// only replaced by the next step's context
	Context struct {
		Base
		Type StepType `json:"type,omitempty"`
		Args []any    `json:"args,omitempty"`
	}

	// Awaitable is any value exposing a then-style continuation
	// registration for eventual fulfillment or rejection. Exactly one of
	// the two callbacks fires, exactly once
	Awaitable interface {
		Then(resolved func(any), rejected func(error))
	}
)

const (
	StepSpawn       StepType = "spawn"
	StepResume      StepType = "resume"
	StepResumeError StepType = "resume_error"
	StepReturn      StepType = "return"
	StepThrow       StepType = "throw"
)

const (
	KindAction ContextKind = "action"
	KindStep   ContextKind = "step"
)

// Step derives the invocation context for a single step from the fixed base
func (b *Base) Step(t StepType, args ...any) *Context {
	return &Context{
		Base: *b,
		Type: t,
		Args: args,
	}
}

// ChildBase derives the fixed base for an invocation spawned while ctx was
// the ambient current context. The lineage trail is the parent's trail with
// the parent's own id appended
func (c *Context) ChildBase(
	name string, id ID, kind ContextKind, action *Context,
) *Base {
	lineage := make([]ID, 0, len(c.AllParentIDs)+1)
	lineage = append(lineage, c.AllParentIDs...)
	lineage = append(lineage, c.ID)

	return &Base{
		Name:         name,
		ID:           id,
		Tree:         c.Tree,
		Scope:        c.Scope,
		ParentID:     c.ID,
		AllParentIDs: lineage,
		RootID:       c.RootID,
		Parent:       c,
		ParentAction: action,
		Kind:         kind,
	}
}

// IsAction returns true if the context marks an action boundary
func (c *Context) IsAction() bool {
	return c.Kind == KindAction
}

// Lineage returns a copy of the full ancestor trail including the
// context's own id
func (c *Context) Lineage() []ID {
	return append(slices.Clone(c.AllParentIDs), c.ID)
}
