package reconcile

import (
	"sort"

	"github.com/goccy/go-json"
)

// Reporter accumulates the outcome of one invocation.
// It is owned by a single invocation and is not safe for concurrent use.
type Reporter struct {
	changed bool
	values  map[string]any
}

// NewReporter creates an empty reporter.
func NewReporter() *Reporter {
	return &Reporter{values: map[string]any{}}
}

// SetChanged marks the invocation as changed. It cannot be unset.
func (r *Reporter) SetChanged() {
	r.changed = true
}

// Changed reports whether SetChanged was called.
func (r *Reporter) Changed() bool {
	return r.changed
}

// Set records a named result value. Later calls overwrite earlier ones.
func (r *Reporter) Set(key string, value any) {
	r.values[key] = value
}

// Result snapshots the accumulated outcome.
func (r *Reporter) Result() Result {
	values := make(map[string]any, len(r.values))
	for k, v := range r.values {
		values[k] = v
	}
	return Result{Changed: r.changed, Values: values}
}

// Result is the final outcome of an invocation: a changed flag plus the
// recorded values, serialized as one flat object.
type Result struct {
	Changed bool
	Values  map[string]any
}

// Get returns a recorded value.
func (r Result) Get(key string) any {
	return r.Values[key]
}

// Keys returns the recorded value names in sorted order.
func (r Result) Keys() []string {
	keys := make([]string, 0, len(r.Values))
	for k := range r.Values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Map flattens the result into a single map with a "changed" key.
func (r Result) Map() map[string]any {
	out := make(map[string]any, len(r.Values)+1)
	for k, v := range r.Values {
		out[k] = v
	}
	out["changed"] = r.Changed
	return out
}

// MarshalJSON serializes the flattened result.
func (r Result) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.Map())
}

// MarshalYAML serializes the flattened result.
func (r Result) MarshalYAML() (interface{}, error) {
	return r.Map(), nil
}

// Failure renders an error as a failed result payload.
func Failure(err error) map[string]any {
	return map[string]any{
		"failed":  true,
		"changed": false,
		"msg":     err.Error(),
	}
}
