// Package reconcile provides the desired-state engine that drives every
// module: given a natural key, desired attributes and a target state, it
// looks the entity up, decides what to do, performs at most one mutation
// (or none in dry-run), waits for server tasks and reports the outcome.
//
// # Architecture
//
// The reconcile system consists of four main components:
//
// 1. EntityContext: binds one entity type to its server operations
// (list, read, create, update, delete). Implementations live in core/resource.
//
// 2. Lookup: resolves a natural key to at most one entity and memoizes the
// answer for the rest of the invocation, with singleflight protection.
//
// 3. Engine: the state machine. Query and list report, present creates or
// patches only the differing fields, absent deletes, and module-specific
// states (canceled, completed) are delegated to Target.Special handlers.
//
// 4. Reporter: accumulates the changed flag and named result values.
//
// Every invocation produces a Record that is handed to Observers
// (history database, result archive, metrics).
//
// # Usage Example
//
//	engine := reconcile.NewEngine(awaiter, reconcile.WithLogger(log))
//	result, err := engine.Process(ctx, reconcile.Target{Context: repos}, reconcile.Invocation{
//	    Key:     reconcile.KeyOf("name", "repo1"),
//	    Desired: reconcile.Attributes{"description": "mirror"},
//	    State:   reconcile.StatePresent,
//	})
//
// Modules that do not fit the state machine (sync, raw API calls) run as
// plain actions through Engine.Do and still get ids, logging and records.
package reconcile
