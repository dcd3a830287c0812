package sync

import (
	"squeezer/core/resource"
	"squeezer/core/validate"
)

// DefaultPlugin is used when no plugin is given.
const DefaultPlugin = "python"

// Params are the module parameters.
type Params struct {
	Plugin string `json:"plugin" yaml:"plugin"`
	// Repository names the repository to sync.
	Repository string `json:"repository" yaml:"repository"`
	// Remote names the remote to sync from. When empty the repository's
	// preconfigured remote is used.
	Remote string `json:"remote" yaml:"remote"`
	// Mirror removes content that is gone upstream.
	Mirror *bool `json:"mirror" yaml:"mirror"`
}

func (p Params) plugin() string {
	if p.Plugin == "" {
		return DefaultPlugin
	}
	return p.Plugin
}

// Validate checks the parameters.
func (p Params) Validate() error {
	if p.Repository == "" {
		return validate.Errorf("missing required arguments: repository")
	}
	return validate.OneOf("plugin", p.plugin(), resource.Plugins...)
}
