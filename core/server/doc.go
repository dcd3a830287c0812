// Package server assembles the HTTP surface.
//
// NewApp builds the Fiber application with the middleware stack (ray ids,
// request logging, API key auth), the public /swagger and /metrics routes,
// and the routes of every loaded feature. Respond and StatusFor give all
// module handlers the same result and failure payloads:
//
//	400 invalid parameters
//	404 the targeted entity does not exist
//	409 precondition, ambiguous key or unsupported mutation
//	502 task failed or the Pulp API returned an error
//	503 no Pulp API configured
//	504 task timed out
package server
