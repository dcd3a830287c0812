// Package integrity reports on the health of everything the reconciliation
// engine depends on.
//
// Checks:
//   - pulp: the server status endpoint, installed plugin versions and online workers.
//     Missing deb or python plugins are listed in missing_components.
//   - history: the invocation history table has every expected column.
//   - archive: the result archive bucket exists, with the entity types it holds.
//     GET /integrity/archive?fix=true creates a missing bucket.
//
// A check whose backend is disabled in configuration reports "disabled" in the
// combined report and 404 on its own route.
package integrity
