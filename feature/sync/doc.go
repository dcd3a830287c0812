// Package sync triggers repository syncs from a remote.
//
// A sync is not a desired state: it runs as a plain engine action. The
// repository and the optional remote are resolved concurrently, then the
// sync task is started and awaited. The invocation reports changed only
// when the task created a new repository version, whose href is returned
// as repository_version. In check mode nothing is started and the current
// latest version is reported, assuming upstream did not change.
//
// # HTTP Endpoints
//
//   - POST /sync : sync one repository.
package sync
