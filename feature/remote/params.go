package remote

import (
	"squeezer/core/reconcile"
	"squeezer/core/resource"
	"squeezer/core/utils"
	"squeezer/core/validate"
)

// DefaultPlugin is used when no plugin is given.
const DefaultPlugin = "python"

// Policies are the download policies a remote accepts.
var Policies = []string{"immediate", "on_demand", "streamed"}

// Params are the module parameters.
type Params struct {
	Plugin string  `json:"plugin" yaml:"plugin"`
	Name   *string `json:"name" yaml:"name"`
	URL    *string `json:"url" yaml:"url"`
	Policy *string `json:"policy" yaml:"policy"`

	// TLSValidation toggles upstream certificate checks.
	TLSValidation *bool `json:"tls_validation" yaml:"tls_validation"`
	// ProxyURL routes downloads through a proxy. An empty string clears it.
	ProxyURL *string `json:"proxy_url" yaml:"proxy_url"`

	// Distributions, Components and Architectures are whitespace separated
	// lists understood by the deb plugin only.
	Distributions *string `json:"distributions" yaml:"distributions"`
	Components    *string `json:"components" yaml:"components"`
	Architectures *string `json:"architectures" yaml:"architectures"`

	// Includes, Excludes and Prereleases filter python packages.
	Includes    []string `json:"includes" yaml:"includes"`
	Excludes    []string `json:"excludes" yaml:"excludes"`
	Prereleases *bool    `json:"prereleases" yaml:"prereleases"`

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
	if p.Policy != nil {
		if err := validate.OneOf("policy", *p.Policy, Policies...); err != nil {
			return err
		}
	}

	var foreign string
	switch p.plugin() {
	case "deb":
		switch {
		case p.Includes != nil:
			foreign = "includes"
		case p.Excludes != nil:
			foreign = "excludes"
		case p.Prereleases != nil:
			foreign = "prereleases"
		}
	case "python":
		switch {
		case p.Distributions != nil:
			foreign = "distributions"
		case p.Components != nil:
			foreign = "components"
		case p.Architectures != nil:
			foreign = "architectures"
		}
	}
	if foreign != "" {
		return validate.Errorf("%s is not supported by the %s plugin", foreign, p.plugin())
	}

	return validate.RequiredIf(p.State != "", "state is "+p.State, map[string]bool{"name": p.Name != nil && *p.Name != ""})
}

// Key returns the natural key.
func (p Params) Key() reconcile.NaturalKey {
	return reconcile.KeyOf("name", utils.Deref(p.Name))
}

// Desired returns the attributes to converge on.
func (p Params) Desired() reconcile.Attributes {
	desired := reconcile.Attributes{}
	set := func(name string, v any) {
		if v != nil {
			desired[name] = v
		}
	}
	set("url", utils.Deref(p.URL))
	set("policy", utils.Deref(p.Policy))
	set("tls_validation", utils.Deref(p.TLSValidation))
	if p.ProxyURL != nil {
		if *p.ProxyURL == "" {
			desired["proxy_url"] = nil
		} else {
			desired["proxy_url"] = *p.ProxyURL
		}
	}
	set("distributions", utils.Deref(p.Distributions))
	set("components", utils.Deref(p.Components))
	set("architectures", utils.Deref(p.Architectures))
	if p.Includes != nil {
		desired["includes"] = p.Includes
	}
	if p.Excludes != nil {
		desired["excludes"] = p.Excludes
	}
	set("prereleases", utils.Deref(p.Prereleases))
	return desired
}
