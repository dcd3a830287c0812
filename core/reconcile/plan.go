package reconcile

import (
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/goccy/go-json"
)

// Plan is the decision taken for a single-entity invocation.
// It does NOT execute anything; the engine applies it.
type Plan struct {
	// Action is the chosen outcome.
	Action ActionType `json:"action"`
	// Reason explains the decision for logs.
	Reason string `json:"reason"`
	// Changes holds the create body or the update patch.
	Changes Attributes `json:"changes,omitempty"`
}

// Decide chooses the action for a non-special state given the lookup result.
// entity is nil when the key matched nothing.
func Decide(inv Invocation, entity Entity) (Plan, error) {
	switch inv.State {
	case StateQuery:
		return Plan{Action: ActionQuery, Reason: "query"}, nil

	case StatePresent:
		if entity == nil {
			return Plan{Action: ActionCreate, Reason: "missing", Changes: CreateBody(inv.Key, inv.Desired)}, nil
		}
		changes, err := Diff(entity, inv.Desired)
		if err != nil {
			return Plan{}, err
		}
		if len(changes) == 0 {
			return Plan{Action: ActionNoop, Reason: "up to date"}, nil
		}
		return Plan{Action: ActionUpdate, Reason: "fields differ: " + joinKeys(changes), Changes: changes}, nil

	case StateAbsent:
		if entity == nil {
			return Plan{Action: ActionNoop, Reason: "already absent"}, nil
		}
		return Plan{Action: ActionDelete, Reason: "present"}, nil

	default:
		return Plan{}, Preconditionf("state %q has no generic plan", inv.State)
	}
}

// CreateBody merges the set key fields with the desired attributes.
func CreateBody(key NaturalKey, desired Attributes) Attributes {
	body := make(Attributes, len(key)+len(desired))
	for _, f := range key {
		if f.Value != nil {
			body[f.Name] = f.Value
		}
	}
	for k, v := range desired {
		body[k] = v
	}
	return body
}

// Diff returns the desired fields whose value differs from the entity.
// Desired values are normalized through a JSON round trip so they compare
// like values decoded from the server (numbers as float64, lists as []any).
func Diff(entity Entity, desired Attributes) (Attributes, error) {
	changes := Attributes{}
	for k, want := range desired {
		have, ok := entity[k]
		if !ok {
			changes[k] = want
			continue
		}
		normalized, err := Normalize(want)
		if err != nil {
			return nil, fmt.Errorf("normalize %s: %w", k, err)
		}
		if !reflect.DeepEqual(have, normalized) {
			changes[k] = want
		}
	}
	return changes, nil
}

// Normalize converts v to the shape a JSON decoder would produce.
func Normalize(v any) (any, error) {
	if v == nil {
		return nil, nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var out any
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Synthesize builds the entity a dry run reports for a create or update.
func Synthesize(entity Entity, key NaturalKey, changes Attributes) Entity {
	out := entity.Clone()
	if out == nil {
		out = Entity{}
	}
	for _, f := range key {
		if f.Value != nil {
			out[f.Name] = f.Value
		}
	}
	for k, v := range changes {
		if normalized, err := Normalize(v); err == nil {
			out[k] = normalized
		} else {
			out[k] = v
		}
	}
	return out
}

func joinKeys(attrs Attributes) string {
	keys := make([]string, 0, len(attrs))
	for k := range attrs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return strings.Join(keys, ",")
}
