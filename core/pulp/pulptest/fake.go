// Package pulptest provides an in-memory Pulp server for tests.
package pulptest

import (
	"context"
	"fmt"
	"net/http"
	"sort"
	"strings"
	"sync"
	"time"

	"squeezer/core/pulp"
	"squeezer/core/utils"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
)

// APIRoot is the API root the fake serves.
const APIRoot = "/pulp/"

// TasksPath is the collection path of tasks.
const TasksPath = APIRoot + "api/v3/tasks/"

// Call is a recorded call.
type Call struct {
	OperationID string
	Method      string
	Params      map[string]any
	Body        any
}

// HandlerFunc overrides the generic behavior of one operation.
type HandlerFunc func(f *Fake, op pulp.Operation, params map[string]any, body map[string]any) (any, error)

// Fake implements pulp.Client on top of an in-memory entity store. Generic
// list, create, read, partial update and delete semantics are derived from
// the operation table; operations flagged Async answer with a task.
type Fake struct {
	mu        sync.Mutex
	ops       map[string]pulp.Operation
	entities  map[string]map[string]any
	calls     []Call
	handlers  map[string]HandlerFunc
	errs      map[string]error
	progress  map[string][]string
	defaults  map[string]map[string]any
	versions  map[string]int
	unchanged bool
}

// New creates an empty fake with sync handlers for every repository type.
func New() *Fake {
	f := &Fake{
		ops:      pulp.Operations(),
		entities: map[string]map[string]any{},
		handlers: map[string]HandlerFunc{},
		errs:     map[string]error{},
		progress: map[string][]string{},
		defaults: map[string]map[string]any{},
		versions: map[string]int{},
	}
	for id := range f.ops {
		switch {
		case strings.HasPrefix(id, "repositories_") && strings.HasSuffix(id, "_sync"):
			f.handlers[id] = syncRepository
		case strings.HasPrefix(id, "repositories_") && strings.HasSuffix(id, "_create"):
			f.defaults[id] = map[string]any{"description": nil, "remote": nil, "retain_repo_versions": nil}
		case strings.HasPrefix(id, "remotes_") && strings.HasSuffix(id, "_create"):
			f.defaults[id] = map[string]any{"policy": "immediate"}
		}
	}
	return f
}

// Operation describes an operation id.
func (f *Fake) Operation(operationID string) (pulp.Operation, bool) {
	op, ok := f.ops[operationID]
	return op, ok
}

// Handle overrides an operation.
func (f *Fake) Handle(operationID string, h HandlerFunc) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.handlers[operationID] = h
}

// Fail makes an operation return err until cleared with a nil error.
func (f *Fake) Fail(operationID string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err == nil {
		delete(f.errs, operationID)
		return
	}
	f.errs[operationID] = err
}

// UpstreamUnchanged makes syncs finish without creating a version.
func (f *Fake) UpstreamUnchanged(unchanged bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.unchanged = unchanged
}

// Put stores an entity under its pulp_href.
func (f *Fake) Put(entity map[string]any) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	href := utils.ToString(entity["pulp_href"])
	f.entities[href] = clone(entity)
	return href
}

// Get returns a copy of the entity at href.
func (f *Fake) Get(href string) (map[string]any, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	e, ok := f.entities[href]
	if !ok {
		return nil, false
	}
	return clone(e), true
}

// AddTask stores a task in the given state and returns its href.
func (f *Fake) AddTask(state string, created ...string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.addTask(state, created)
}

// Progress queues states a task moves through on successive reads.
func (f *Fake) Progress(href string, states ...string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.progress[href] = append(f.progress[href], states...)
}

// Calls returns the recorded calls.
func (f *Fake) Calls() []Call {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]Call, len(f.calls))
	copy(out, f.calls)
	return out
}

// Mutations returns the ids of recorded non-GET calls.
func (f *Fake) Mutations() []string {
	var out []string
	for _, c := range f.Calls() {
		if c.Method != http.MethodGet && c.Method != http.MethodHead {
			out = append(out, c.OperationID)
		}
	}
	return out
}

// Call implements pulp.Client.
func (f *Fake) Call(ctx context.Context, operationID string, params map[string]any, body any) (any, error) {
	op, ok := f.ops[operationID]
	if !ok {
		return nil, &pulp.Error{Op: operationID, Kind: pulp.ErrUnknownOperation}
	}
	if err := pulp.CheckDryRun(ctx, op); err != nil {
		return nil, err
	}
	if _, _, err := op.Expand(APIRoot, params); err != nil {
		return nil, err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	f.calls = append(f.calls, Call{OperationID: operationID, Method: op.Method, Params: params, Body: body})
	if err := f.errs[operationID]; err != nil {
		return nil, err
	}

	payload, _ := normalize(body).(map[string]any)
	if h, ok := f.handlers[operationID]; ok {
		return h(f, op, params, payload)
	}

	hrefParam := op.HrefParam()
	if hrefParam == "" {
		collection := strings.Replace(op.Path, "{"+pulp.APIRootParam+"}", APIRoot, 1)
		switch op.Method {
		case http.MethodGet:
			return f.list(collection, params), nil
		case http.MethodPost:
			return f.create(op, collection, payload), nil
		}
		return nil, pulp.StatusError(operationID, http.StatusMethodNotAllowed, "")
	}

	href := utils.ToString(params[hrefParam])
	entity, ok := f.entities[href]
	if !ok {
		return nil, pulp.StatusError(operationID, http.StatusNotFound, "Not found.")
	}
	if op.Suffix() != "" {
		return nil, pulp.StatusError(operationID, http.StatusNotImplemented, "no fake for "+op.Suffix())
	}

	switch op.Method {
	case http.MethodGet:
		if states := f.progress[href]; len(states) > 0 {
			entity["state"] = states[0]
			f.progress[href] = states[1:]
		}
		return clone(entity), nil
	case http.MethodPatch:
		for k, v := range payload {
			entity[k] = v
		}
		if op.Async {
			return f.taskRef(nil), nil
		}
		return clone(entity), nil
	case http.MethodDelete:
		delete(f.entities, href)
		if op.Async {
			return f.taskRef(nil), nil
		}
		return nil, nil
	}
	return nil, pulp.StatusError(operationID, http.StatusMethodNotAllowed, "")
}

func (f *Fake) list(collection string, params map[string]any) map[string]any {
	hrefs := make([]string, 0, len(f.entities))
	for href := range f.entities {
		rest, ok := strings.CutPrefix(href, collection)
		if !ok || strings.Count(rest, "/") != 1 {
			continue
		}
		hrefs = append(hrefs, href)
	}
	sort.Strings(hrefs)

	var matched []any
	for _, href := range hrefs {
		e := f.entities[href]
		if matches(e, params) {
			matched = append(matched, clone(e))
		}
	}

	offset := utils.ToInt(params["offset"])
	limit := utils.ToInt(params["limit"])
	if offset > len(matched) {
		offset = len(matched)
	}
	end := len(matched)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}

	var next any
	if end < len(matched) {
		next = fmt.Sprintf("%s?limit=%d&offset=%d", collection, limit, end)
	}
	results := matched[offset:end]
	if results == nil {
		results = []any{}
	}
	return map[string]any{"count": float64(len(matched)), "next": next, "previous": nil, "results": results}
}

func (f *Fake) create(op pulp.Operation, collection string, payload map[string]any) any {
	href := collection + uuid.NewString() + "/"
	entity := map[string]any{}
	for k, v := range f.defaults[op.ID] {
		entity[k] = v
	}
	for k, v := range payload {
		entity[k] = v
	}
	entity["pulp_href"] = href
	entity["pulp_created"] = time.Now().UTC().Format(time.RFC3339Nano)
	if strings.HasPrefix(op.ID, "repositories_") {
		entity["versions_href"] = href + "versions/"
		entity["latest_version_href"] = href + "versions/0/"
	}
	f.entities[href] = entity

	if op.Async {
		return f.taskRef([]string{href})
	}
	return clone(entity)
}

func (f *Fake) taskRef(created []string) map[string]any {
	return map[string]any{"task": f.addTask("completed", created)}
}

func (f *Fake) addTask(state string, created []string) string {
	href := TasksPath + uuid.NewString() + "/"
	resources := make([]any, 0, len(created))
	for _, c := range created {
		resources = append(resources, c)
	}
	task := map[string]any{
		"pulp_href":         href,
		"state":             state,
		"name":              "pulpcore.app.tasks.fake",
		"created_resources": resources,
		"error":             nil,
	}
	if state == "failed" {
		task["error"] = map[string]any{"description": "fake failure"}
	}
	f.entities[href] = task
	return href
}

// syncRepository creates a new repository version unless upstream is unchanged.
func syncRepository(f *Fake, op pulp.Operation, params map[string]any, body map[string]any) (any, error) {
	href := utils.ToString(params[op.HrefParam()])
	repo, ok := f.entities[href]
	if !ok {
		return nil, pulp.StatusError(op.ID, http.StatusNotFound, "Not found.")
	}
	remote := body["remote"]
	if remote == nil {
		remote = repo["remote"]
	}
	if remote == nil {
		return nil, pulp.StatusError(op.ID, http.StatusBadRequest, "A remote must be specified.")
	}
	if f.unchanged {
		return f.taskRef(nil), nil
	}
	f.versions[href]++
	version := fmt.Sprintf("%sversions/%d/", href, f.versions[href])
	f.entities[version] = map[string]any{"pulp_href": version, "number": float64(f.versions[href]), "repository": href}
	repo["latest_version_href"] = version
	return f.taskRef([]string{version}), nil
}

func matches(e map[string]any, params map[string]any) bool {
	for k, want := range params {
		if k == "limit" || k == "offset" || want == nil {
			continue
		}
		if fmt.Sprint(e[k]) != fmt.Sprint(want) {
			return false
		}
	}
	return true
}

func normalize(v any) any {
	if v == nil {
		return nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	var out any
	if err := json.Unmarshal(data, &out); err != nil {
		return nil
	}
	return out
}

func clone(e map[string]any) map[string]any {
	out, _ := normalize(e).(map[string]any)
	return out
}
