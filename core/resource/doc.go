// Package resource binds entity types to Pulp operations.
//
// A Definition names the operation ids that list, read, create, update and
// delete one entity type. Context turns a Definition and a pulp.Client into a
// reconcile.EntityContext: it pages through list results, recognizes task
// responses and maps transport errors onto the engine's error kinds.
//
// Definitions are kept in a registry keyed by name, so modules can pick the
// plugin variant at run time:
//
//	def, ok := resource.Get("deb_repository")
//	repos := resource.New(client, def)
package resource
