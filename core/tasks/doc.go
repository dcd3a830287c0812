// Package tasks waits for asynchronous Pulp tasks.
//
// The Awaiter polls a task with exponential backoff until it reaches a final
// state. A completed task is returned; a failed or canceled task becomes a
// reconcile.TaskFailedError carrying the task payload. Read errors abort
// the wait immediately rather than being retried.
package tasks
