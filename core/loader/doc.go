// Package loader provides the plugin-like feature loading system.
//
// Each module (repository, remote, sync, ...) implements the Feature
// interface and registers its HTTP routes when loaded.
//
//	type Feature interface {
//	    Name() string
//	    IsEnabled() bool
//	    Load(app fiber.Router) error
//	}
//
// The Manager holds the registry of available features and loads the
// enabled ones via LoadAll().
package loader
