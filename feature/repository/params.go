package repository

import (
	"squeezer/core/reconcile"
	"squeezer/core/resource"
	"squeezer/core/utils"
	"squeezer/core/validate"
)

// DefaultPlugin is used when no plugin is given.
const DefaultPlugin = "python"

// Params are the module parameters.
type Params struct {
	// Plugin selects the repository type (deb, python).
	Plugin string `json:"plugin" yaml:"plugin"`
	// Name is the natural key.
	Name *string `json:"name" yaml:"name"`
	// Description of the repository. An empty string clears it.
	Description *string `json:"description" yaml:"description"`
	// Remote names the remote preconfigured for syncs. An empty string clears it.
	Remote *string `json:"remote" yaml:"remote"`
	// RetainRepoVersions caps the number of kept versions. Zero keeps all.
	RetainRepoVersions *int `json:"retain_repo_versions" yaml:"retain_repo_versions"`
	// State is present, absent, or empty to query.
	State string `json:"state" yaml:"state"`
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
	if p.RetainRepoVersions != nil && *p.RetainRepoVersions < 0 {
		return validate.Errorf("retain_repo_versions must not be negative")
	}
	return validate.RequiredIf(p.State != "", "state is "+p.State, map[string]bool{"name": p.Name != nil && *p.Name != ""})
}

// Key returns the natural key.
func (p Params) Key() reconcile.NaturalKey {
	return reconcile.KeyOf("name", utils.Deref(p.Name))
}

// Desired returns the attributes to converge on, without the remote
// which needs resolving first.
func (p Params) Desired() reconcile.Attributes {
	desired := reconcile.Attributes{}
	if p.Description != nil {
		desired["description"] = emptyToNil(*p.Description)
	}
	if p.RetainRepoVersions != nil {
		if *p.RetainRepoVersions == 0 {
			desired["retain_repo_versions"] = nil
		} else {
			desired["retain_repo_versions"] = *p.RetainRepoVersions
		}
	}
	return desired
}

func emptyToNil(s string) any {
	if s == "" {
		return nil
	}
	return s
}
