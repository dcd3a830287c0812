// Package remote ensures the state of deb and python remotes, the upstream
// sources repositories sync from.
package remote
