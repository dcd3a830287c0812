// Package publication publishes repository versions.
//
// Publications are immutable and keyed by the repository version they
// publish. The version is the repository's latest unless an explicit
// version number is given; version 0 is a valid explicit version.
package publication
