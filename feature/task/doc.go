// Package task inspects, cancels, awaits and deletes server tasks.
//
// Tasks are keyed by pulp_href. Besides absent, two task specific states
// exist: canceled cancels a queued or running task, completed waits for it
// to finish. Both leave tasks that already ended untouched.
package task
