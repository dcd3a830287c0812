// Package repository ensures the state of deb and python repositories.
//
// A repository is identified by its name. Omitting the name lists every
// repository of the plugin; omitting the state reports the repository
// without changing it.
//
// # HTTP Endpoints
//
//   - POST /repository : reconcile one repository (?check_mode=true for a dry run).
package repository
