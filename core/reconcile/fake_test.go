package reconcile

import (
	"context"
	"fmt"
)

// fakeContext is an in-memory EntityContext that can also await its own tasks.
type fakeContext struct {
	kind     Kind
	entities []Entity
	tasks    map[string]Entity
	supports map[ActionType]bool
	async    bool
	listErr  error
	calls    []string
	patches  []Attributes
	seq      int
}

func newFakeContext(entities ...Entity) *fakeContext {
	return &fakeContext{
		kind:     Kind{Singular: "repository", Plural: "repositories"},
		entities: entities,
		tasks:    map[string]Entity{},
	}
}

func (f *fakeContext) Kind() Kind {
	return f.kind
}

func (f *fakeContext) Supports(action ActionType) bool {
	if f.supports == nil {
		return true
	}
	return f.supports[action]
}

func (f *fakeContext) List(ctx context.Context, filters map[string]any) ([]Entity, error) {
	f.calls = append(f.calls, "list")
	if f.listErr != nil {
		return nil, f.listErr
	}
	var out []Entity
	for _, e := range f.entities {
		if matchesFilters(e, filters) {
			out = append(out, e.Clone())
		}
	}
	return out, nil
}

func (f *fakeContext) Read(ctx context.Context, href string) (Entity, error) {
	f.calls = append(f.calls, "read")
	for _, e := range f.entities {
		if e.Href() == href {
			return e.Clone(), nil
		}
	}
	return nil, ErrNotFound
}

func (f *fakeContext) Create(ctx context.Context, body Attributes) (Response, error) {
	f.calls = append(f.calls, "create")
	f.seq++
	entity := Entity{HrefField: fmt.Sprintf("/entities/%d/", f.seq)}
	for k, v := range body {
		n, _ := Normalize(v)
		entity[k] = n
	}
	f.entities = append(f.entities, entity)
	if f.async {
		return Response{TaskHref: f.task(entity.Href())}, nil
	}
	return Response{Entity: entity.Clone()}, nil
}

func (f *fakeContext) Update(ctx context.Context, href string, changes Attributes) (Response, error) {
	f.calls = append(f.calls, "update")
	f.patches = append(f.patches, changes)
	for _, e := range f.entities {
		if e.Href() == href {
			for k, v := range changes {
				n, _ := Normalize(v)
				e[k] = n
			}
			if f.async {
				return Response{TaskHref: f.task()}, nil
			}
			return Response{Entity: e.Clone()}, nil
		}
	}
	return Response{}, ErrNotFound
}

func (f *fakeContext) Delete(ctx context.Context, href string) (Response, error) {
	f.calls = append(f.calls, "delete")
	for i, e := range f.entities {
		if e.Href() == href {
			f.entities = append(f.entities[:i], f.entities[i+1:]...)
			if f.async {
				return Response{TaskHref: f.task()}, nil
			}
			return Response{}, nil
		}
	}
	return Response{}, ErrNotFound
}

func (f *fakeContext) Await(ctx context.Context, href string) (Entity, error) {
	f.calls = append(f.calls, "await")
	task, ok := f.tasks[href]
	if !ok {
		return nil, ErrNotFound
	}
	if task["state"] != "completed" {
		return nil, &TaskFailedError{Href: href, State: fmt.Sprint(task["state"]), Task: task}
	}
	return task, nil
}

func (f *fakeContext) task(created ...string) string {
	f.seq++
	href := fmt.Sprintf("/tasks/%d/", f.seq)
	resources := make([]any, 0, len(created))
	for _, c := range created {
		resources = append(resources, c)
	}
	f.tasks[href] = Entity{HrefField: href, "state": "completed", "created_resources": resources}
	return href
}

func (f *fakeContext) mutations() []string {
	var out []string
	for _, c := range f.calls {
		if c == "create" || c == "update" || c == "delete" {
			out = append(out, c)
		}
	}
	return out
}
