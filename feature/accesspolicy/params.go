package accesspolicy

import (
	"squeezer/core/reconcile"
	"squeezer/core/utils"
	"squeezer/core/validate"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// StringList accepts a single string or a list of strings.
type StringList []string

// UnmarshalJSON implements json.Unmarshaler.
func (l *StringList) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*l = utils.ToStrings(raw)
	return nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (l *StringList) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		*l = StringList{node.Value}
		return nil
	}
	var items []string
	if err := node.Decode(&items); err != nil {
		return err
	}
	*l = items
	return nil
}

// Statement is one access policy rule.
type Statement struct {
	Action    StringList `json:"action" yaml:"action"`
	Principal any        `json:"principal" yaml:"principal"`
	Condition any        `json:"condition" yaml:"condition"`
	Effect    string     `json:"effect" yaml:"effect"`
}

// CreationHook assigns permissions to newly created objects.
type CreationHook struct {
	Function    string   `json:"function" yaml:"function"`
	Parameters  any      `json:"parameters" yaml:"parameters"`
	Permissions []string `json:"permissions" yaml:"permissions"`
}

// Params are the module parameters.
type Params struct {
	ViewsetName   *string        `json:"viewset_name" yaml:"viewset_name"`
	Statements    []Statement    `json:"statements" yaml:"statements"`
	CreationHooks []CreationHook `json:"creation_hooks" yaml:"creation_hooks"`
	State         string         `json:"state" yaml:"state"`

	// PermissionsAssignment is the former name of CreationHooks.
	PermissionsAssignment []CreationHook `json:"permissions_assignment" yaml:"permissions_assignment"`
}

func (p Params) hooks() []CreationHook {
	if p.CreationHooks != nil {
		return p.CreationHooks
	}
	return p.PermissionsAssignment
}

// Validate checks the parameters.
func (p Params) Validate() error {
	if p.State != "" {
		if err := validate.OneOf("state", p.State, "present"); err != nil {
			return err
		}
	}
	if p.CreationHooks != nil && p.PermissionsAssignment != nil {
		return validate.Errorf("parameters are mutually exclusive: creation_hooks|permissions_assignment")
	}
	for i, s := range p.Statements {
		if len(s.Action) == 0 {
			return validate.Errorf("statements[%d]: missing required arguments: action", i)
		}
		if s.Principal == nil {
			return validate.Errorf("statements[%d]: missing required arguments: principal", i)
		}
		if err := validate.OneOf("effect", s.Effect, "allow", "deny"); err != nil {
			return validate.Errorf("statements[%d]: %v", i, err)
		}
	}
	for i, h := range p.hooks() {
		if h.Function == "" {
			return validate.Errorf("creation_hooks[%d]: missing required arguments: function", i)
		}
		if h.Parameters == nil {
			return validate.Errorf("creation_hooks[%d]: missing required arguments: parameters", i)
		}
	}
	return validate.RequiredIf(p.State == "present", "state is present", map[string]bool{"viewset_name": p.ViewsetName != nil && *p.ViewsetName != ""})
}

// Key returns the natural key.
func (p Params) Key() reconcile.NaturalKey {
	return reconcile.KeyOf("viewset_name", utils.Deref(p.ViewsetName))
}

// Desired returns the attributes to converge on. Statements without a
// condition omit the field, as the server does.
func (p Params) Desired() reconcile.Attributes {
	desired := reconcile.Attributes{}
	if p.Statements != nil {
		statements := make([]any, 0, len(p.Statements))
		for _, s := range p.Statements {
			st := map[string]any{
				"action":    []string(s.Action),
				"principal": s.Principal,
				"effect":    s.Effect,
			}
			if s.Condition != nil {
				st["condition"] = s.Condition
			}
			statements = append(statements, st)
		}
		desired["statements"] = statements
	}
	if hooks := p.hooks(); hooks != nil {
		out := make([]any, 0, len(hooks))
		for _, h := range hooks {
			hook := map[string]any{"function": h.Function, "parameters": h.Parameters}
			if h.Permissions != nil {
				hook["permissions"] = h.Permissions
			}
			out = append(out, hook)
		}
		desired["creation_hooks"] = out
	}
	return desired
}
