package reconcile

import (
	"context"
	"fmt"
	"strings"

	"squeezer/core/utils"
)

// HrefField is the server assigned identity of every entity.
const HrefField = "pulp_href"

// Entity is a server-side record as returned by the API.
type Entity map[string]any

// Href returns the entity's pulp_href, or "" if it has none.
func (e Entity) Href() string {
	if e == nil {
		return ""
	}
	return utils.ToString(e[HrefField])
}

// Clone returns a shallow copy of the entity.
func (e Entity) Clone() Entity {
	if e == nil {
		return nil
	}
	out := make(Entity, len(e))
	for k, v := range e {
		out[k] = v
	}
	return out
}

// Attributes are the desired non-identifying fields of an entity.
// A field is only present when the caller specified it.
type Attributes map[string]any

// Field is one named component of a natural key.
type Field struct {
	Name  string
	Value any
}

// NaturalKey identifies an entity by user-facing fields.
// Order is preserved so logs and create bodies are deterministic.
type NaturalKey []Field

// KeyOf builds a single-field natural key.
func KeyOf(name string, value any) NaturalKey {
	return NaturalKey{{Name: name, Value: value}}
}

// With returns a copy of the key with an extra field appended.
func (k NaturalKey) With(name string, value any) NaturalKey {
	out := make(NaturalKey, 0, len(k)+1)
	out = append(out, k...)
	return append(out, Field{Name: name, Value: value})
}

// IsListMode reports whether every key field is unset.
func (k NaturalKey) IsListMode() bool {
	for _, f := range k {
		if f.Value != nil {
			return false
		}
	}
	return true
}

// Get returns the value of the named key field.
func (k NaturalKey) Get(name string) (any, bool) {
	for _, f := range k {
		if f.Name == name {
			return f.Value, f.Value != nil
		}
	}
	return nil, false
}

// Filters returns the set key fields as list filters.
func (k NaturalKey) Filters() map[string]any {
	out := make(map[string]any, len(k))
	for _, f := range k {
		if f.Value != nil {
			out[f.Name] = f.Value
		}
	}
	return out
}

// String renders the key as name=value pairs.
func (k NaturalKey) String() string {
	parts := make([]string, 0, len(k))
	for _, f := range k {
		if f.Value == nil {
			continue
		}
		parts = append(parts, fmt.Sprintf("%s=%v", f.Name, f.Value))
	}
	return strings.Join(parts, ",")
}

// State is the requested target state of an invocation.
type State string

const (
	// StateQuery reports the entity (or all entities) without changing anything.
	StateQuery State = ""
	// StatePresent ensures the entity exists with the desired attributes.
	StatePresent State = "present"
	// StateAbsent ensures the entity does not exist.
	StateAbsent State = "absent"
	// StateCanceled ensures a task is canceled.
	StateCanceled State = "canceled"
	// StateCompleted waits for a task to finish.
	StateCompleted State = "completed"
)

// IsSpecial reports whether the state is handled by a module-specific handler.
func (s State) IsSpecial() bool {
	return s != StateQuery && s != StatePresent && s != StateAbsent
}

// Kind names an entity type in singular and plural forms.
// The plural is used as the result key in list mode.
type Kind struct {
	Singular string
	Plural   string
}

// ActionType represents the outcome chosen for an invocation.
type ActionType string

const (
	// ActionList lists all entities of a kind.
	ActionList ActionType = "list"
	// ActionQuery reports a single entity.
	ActionQuery ActionType = "query"
	// ActionNoop means the entity already matches the desired state.
	ActionNoop ActionType = "noop"
	// ActionCreate creates a missing entity.
	ActionCreate ActionType = "create"
	// ActionUpdate patches differing fields of an entity.
	ActionUpdate ActionType = "update"
	// ActionDelete deletes an existing entity.
	ActionDelete ActionType = "delete"
	// ActionSpecial hands control to a module-specific state handler.
	ActionSpecial ActionType = "special"
	// ActionInvoke is a module-specific operation outside the state machine.
	ActionInvoke ActionType = "invoke"
)

// Response is the outcome of a mutating call. Exactly one of Entity or
// TaskHref is usually set; both are empty for calls without a body.
type Response struct {
	Entity   Entity
	TaskHref string
}

// Pending reports whether the server handed back a task to wait for.
func (r Response) Pending() bool {
	return r.TaskHref != ""
}

// EntityContext binds one entity type to its server operations.
type EntityContext interface {
	// Kind returns the entity type names.
	Kind() Kind
	// Supports reports whether the server offers the given mutation.
	Supports(action ActionType) bool
	// List returns all entities matching the filters.
	List(ctx context.Context, filters map[string]any) ([]Entity, error)
	// Read fetches a single entity by href.
	Read(ctx context.Context, href string) (Entity, error)
	// Create creates an entity from the given body.
	Create(ctx context.Context, body Attributes) (Response, error)
	// Update patches an entity with the given fields.
	Update(ctx context.Context, href string, changes Attributes) (Response, error)
	// Delete deletes an entity.
	Delete(ctx context.Context, href string) (Response, error)
}

// Awaiter blocks until an asynchronous task reaches a final state.
type Awaiter interface {
	Await(ctx context.Context, taskHref string) (Entity, error)
}

// Invocation is one requested reconciliation.
type Invocation struct {
	// Key identifies the entity. An all-unset key selects list mode.
	Key NaturalKey
	// Desired holds the attributes the entity should have.
	Desired Attributes
	// State is the requested target state.
	State State
	// DryRun forbids mutations; results are synthesized instead.
	DryRun bool
}

// SpecialFunc handles a module-specific state for an existing entity and
// returns the entity to report.
type SpecialFunc func(ctx context.Context, run *Run, entity Entity) (Entity, error)

// Target is an entity context together with its special state handlers.
type Target struct {
	Context EntityContext
	Special map[State]SpecialFunc
}
