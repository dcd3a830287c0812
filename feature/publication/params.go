package publication

import (
	"squeezer/core/resource"
	"squeezer/core/validate"
)

// DefaultPlugin is used when no plugin is given.
const DefaultPlugin = "python"

// Params are the module parameters.
type Params struct {
	Plugin string `json:"plugin" yaml:"plugin"`
	// Repository names the published repository.
	Repository *string `json:"repository" yaml:"repository"`
	// Version selects a repository version. Nil means the latest; 0 is the
	// explicit empty version 0, not the latest.
	Version *int   `json:"version" yaml:"version"`
	State   string `json:"state" yaml:"state"`
}

func (p Params) plugin() string {
	if p.Plugin == "" {
		return DefaultPlugin
	}
	return p.Plugin
}

// Validate checks the parameters.
func (p Params) Validate() error {
	if err := validate.OneOf("plugin", p.plugin(), resource.Plugins...); err != nil {
		return err
	}
	if p.State != "" {
		if err := validate.OneOf("state", p.State, "present", "absent"); err != nil {
			return err
		}
	}
	if p.Version != nil && *p.Version < 0 {
		return validate.Errorf("version must not be negative")
	}
	return validate.RequiredIf(p.State != "", "state is "+p.State, map[string]bool{"repository": p.Repository != nil && *p.Repository != ""})
}
