package pulp

import (
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strings"

	"squeezer/core/utils"
)

// APIRootParam is the placeholder for the configured API root.
const APIRootParam = "api_root"

// Operation describes one server endpoint.
type Operation struct {
	// ID is the OpenAPI operation id.
	ID string
	// Method is the HTTP method.
	Method string
	// Path is the path template with {placeholders}.
	Path string
	// Async marks operations the server answers with a task.
	Async bool
}

// Safe reports whether the operation does not modify server state.
func (o Operation) Safe() bool {
	return o.Method == http.MethodGet || o.Method == http.MethodHead
}

// HrefParam returns the name of the href placeholder the path starts with,
// or "" for collection level operations.
func (o Operation) HrefParam() string {
	if !strings.HasPrefix(o.Path, "{") {
		return ""
	}
	end := strings.Index(o.Path, "}")
	if end < 0 {
		return ""
	}
	name := o.Path[1:end]
	if name == APIRootParam {
		return ""
	}
	return name
}

// Suffix returns the path after the leading placeholder, e.g. "sync/".
func (o Operation) Suffix() string {
	end := strings.Index(o.Path, "}")
	if end < 0 {
		return o.Path
	}
	return o.Path[end+1:]
}

// Expand fills the path template from params and returns the path together
// with the query built from the parameters that were not used in the path.
func (o Operation) Expand(apiRoot string, params map[string]any) (string, url.Values, error) {
	used := map[string]bool{}
	var b strings.Builder
	rest := o.Path
	for {
		start := strings.Index(rest, "{")
		if start < 0 {
			b.WriteString(rest)
			break
		}
		end := strings.Index(rest[start:], "}")
		if end < 0 {
			return "", nil, fmt.Errorf("operation %s: malformed path %q", o.ID, o.Path)
		}
		end += start
		b.WriteString(rest[:start])

		name := rest[start+1 : end]
		switch {
		case name == APIRootParam:
			b.WriteString(apiRoot)
		default:
			v, ok := params[name]
			if !ok || v == nil || utils.ToString(v) == "" {
				return "", nil, fmt.Errorf("operation %s: missing path parameter %q", o.ID, name)
			}
			b.WriteString(utils.ToString(v))
			used[name] = true
		}
		rest = rest[end+1:]
	}

	query := url.Values{}
	names := make([]string, 0, len(params))
	for name := range params {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if used[name] || params[name] == nil {
			continue
		}
		switch v := params[name].(type) {
		case []string:
			query[name] = append(query[name], v...)
		case []any:
			for _, item := range v {
				query.Add(name, utils.ToString(item))
			}
		default:
			query.Set(name, utils.ToString(v))
		}
	}
	return b.String(), query, nil
}

// entityOps returns the usual list/create/read/partial_update/delete set.
func entityOps(prefix, collection, hrefParam string, asyncUpdate, asyncCreate bool) []Operation {
	return []Operation{
		{ID: prefix + "_list", Method: http.MethodGet, Path: "{api_root}" + collection},
		{ID: prefix + "_create", Method: http.MethodPost, Path: "{api_root}" + collection, Async: asyncCreate},
		{ID: prefix + "_read", Method: http.MethodGet, Path: "{" + hrefParam + "}"},
		{ID: prefix + "_partial_update", Method: http.MethodPatch, Path: "{" + hrefParam + "}", Async: asyncUpdate},
		{ID: prefix + "_delete", Method: http.MethodDelete, Path: "{" + hrefParam + "}", Async: asyncUpdate},
	}
}

var defaultOperations = func() map[string]Operation {
	var ops []Operation

	ops = append(ops, entityOps("repositories_deb_apt", "api/v3/repositories/deb/apt/", "deb_deb_repository_href", true, false)...)
	ops = append(ops, Operation{ID: "repositories_deb_apt_sync", Method: http.MethodPost, Path: "{deb_deb_repository_href}sync/", Async: true})
	ops = append(ops, entityOps("repositories_python_python", "api/v3/repositories/python/python/", "python_python_repository_href", true, false)...)
	ops = append(ops, Operation{ID: "repositories_python_python_sync", Method: http.MethodPost, Path: "{python_python_repository_href}sync/", Async: true})

	ops = append(ops, entityOps("remotes_deb_apt", "api/v3/remotes/deb/apt/", "deb_deb_remote_href", true, false)...)
	ops = append(ops, entityOps("remotes_python_python", "api/v3/remotes/python/python/", "python_python_remote_href", true, false)...)

	// Publications are immutable: no partial update
	for _, op := range entityOps("publications_deb_apt", "api/v3/publications/deb/apt/", "deb_deb_publication_href", false, true) {
		if op.Method != http.MethodPatch {
			ops = append(ops, op)
		}
	}
	for _, op := range entityOps("publications_python_pypi", "api/v3/publications/python/pypi/", "python_python_publication_href", false, true) {
		if op.Method != http.MethodPatch {
			ops = append(ops, op)
		}
	}

	ops = append(ops,
		Operation{ID: "access_policies_list", Method: http.MethodGet, Path: "{api_root}api/v3/access_policies/"},
		Operation{ID: "access_policies_read", Method: http.MethodGet, Path: "{access_policy_href}"},
		Operation{ID: "access_policies_partial_update", Method: http.MethodPatch, Path: "{access_policy_href}"},
		Operation{ID: "access_policies_reset", Method: http.MethodPost, Path: "{access_policy_href}reset/"},

		Operation{ID: "tasks_list", Method: http.MethodGet, Path: "{api_root}api/v3/tasks/"},
		Operation{ID: "tasks_read", Method: http.MethodGet, Path: "{task_href}"},
		Operation{ID: "tasks_cancel", Method: http.MethodPatch, Path: "{task_href}"},
		Operation{ID: "tasks_delete", Method: http.MethodDelete, Path: "{task_href}"},

		Operation{ID: "status_read", Method: http.MethodGet, Path: "{api_root}api/v3/status/"},
	)

	out := make(map[string]Operation, len(ops))
	for _, op := range ops {
		out[op.ID] = op
	}
	return out
}()

// Operations returns a copy of the operation table.
func Operations() map[string]Operation {
	out := make(map[string]Operation, len(defaultOperations))
	for id, op := range defaultOperations {
		out[id] = op
	}
	return out
}

// LookupOperation returns the operation with the given id.
func LookupOperation(id string) (Operation, bool) {
	op, ok := defaultOperations[id]
	return op, ok
}
