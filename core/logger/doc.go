// Package logger provides a structured logging facility based on Zap.
//
// Development (debug) and production configurations are supported, with json
// or console encoding. Logs always go to stderr so that module results printed
// by the CLI on stdout stay machine readable.
//
// The WithRayID helper extracts the RayID from a Fiber context and attaches it
// to the log entry, so all logs of one HTTP invocation can be correlated.
//
// # Usage
//
//	log, _ := logger.New(&logger.Config{Level: "info", Format: "json"})
//	log.Info("Server started")
//
//	// In a request handler:
//	l := logger.WithRayID(log, c)
//	l.Error("Reconcile failed", zap.Error(err))
package logger
