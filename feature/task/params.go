package task

import (
	"squeezer/core/reconcile"
	"squeezer/core/utils"
	"squeezer/core/validate"
)

// Params are the module parameters.
type Params struct {
	PulpHref *string `json:"pulp_href" yaml:"pulp_href"`
	State    string  `json:"state" yaml:"state"`
}

// Validate checks the parameters.
func (p Params) Validate() error {
	if p.State == "" {
		return nil
	}
	if err := validate.OneOf("state", p.State, "absent", "canceled", "completed"); err != nil {
		return err
	}
	return validate.Required("state is "+p.State, map[string]bool{"pulp_href": p.PulpHref != nil && *p.PulpHref != ""})
}

// Key returns the natural key.
func (p Params) Key() reconcile.NaturalKey {
	return reconcile.KeyOf(reconcile.HrefField, utils.Deref(p.PulpHref))
}
