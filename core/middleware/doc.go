// Package middleware contains HTTP middleware for the Fiber application.
//
// # Components
//
//   - auth: API key validation protecting the module endpoints.
//   - rayid: assigns a unique Request ID (RayID) to every request, stored in
//     the context and echoed in the response headers for tracing.
package middleware
