// Package pulp is the transport to a Pulp 3 REST API.
//
// Calls are addressed by operation id, as in the server's OpenAPI document:
// a fixed table maps every id the modules need to an HTTP method and a path
// template. Path placeholders are filled from the call parameters, either
// "{api_root}" or an href parameter such as "{deb_deb_repository_href}";
// remaining parameters become the query string.
//
// # Dry Run
//
// A context marked with WithDryRun makes every Client refuse operations that
// are not GET or HEAD with an error wrapping ErrDryRun. Modules use this as
// the last line of defense for check mode.
//
// # Errors
//
// Failures are returned as *Error values that wrap one of the sentinel
// errors (ErrNotFound, ErrUnauthorized, ErrTransport, ErrUnavailable,
// ErrDryRun), so callers can use errors.Is.
package pulp
