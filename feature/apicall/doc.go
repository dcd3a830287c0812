// Package apicall calls an arbitrary Pulp API operation by id.
//
// The call counts as a change unless the operation is a GET or HEAD. In
// check mode the client refuses mutating operations; the call is then
// reported as a change with a nil response.
package apicall
