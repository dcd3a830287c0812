package resource

import (
	"fmt"
	"sort"

	"squeezer/core/reconcile"
)

// Definition maps one entity type onto server operations.
// Empty operation ids mark mutations the server does not offer.
type Definition struct {
	// Name is the registry key, e.g. "deb_repository".
	Name string
	// Kind names the entity in results.
	Kind reconcile.Kind
	// HrefParam is the path parameter carrying the entity href.
	HrefParam string

	ListOp   string
	ReadOp   string
	CreateOp string
	UpdateOp string
	DeleteOp string

	// Actions maps extra action names (e.g. "sync") to operation ids.
	Actions map[string]string
}

var (
	repositoryKind  = reconcile.Kind{Singular: "repository", Plural: "repositories"}
	remoteKind      = reconcile.Kind{Singular: "remote", Plural: "remotes"}
	publicationKind = reconcile.Kind{Singular: "publication", Plural: "publications"}
)

func crud(name string, kind reconcile.Kind, prefix, hrefParam string) Definition {
	return Definition{
		Name:      name,
		Kind:      kind,
		HrefParam: hrefParam,
		ListOp:    prefix + "_list",
		ReadOp:    prefix + "_read",
		CreateOp:  prefix + "_create",
		UpdateOp:  prefix + "_partial_update",
		DeleteOp:  prefix + "_delete",
	}
}

var (
	// DebRepository is an APT repository.
	DebRepository = withActions(crud("deb_repository", repositoryKind, "repositories_deb_apt", "deb_deb_repository_href"),
		map[string]string{"sync": "repositories_deb_apt_sync"})
	// PythonRepository is a Python package repository.
	PythonRepository = withActions(crud("python_repository", repositoryKind, "repositories_python_python", "python_python_repository_href"),
		map[string]string{"sync": "repositories_python_python_sync"})
	// DebRemote is an upstream APT source.
	DebRemote = crud("deb_remote", remoteKind, "remotes_deb_apt", "deb_deb_remote_href")
	// PythonRemote is an upstream Python package index.
	PythonRemote = crud("python_remote", remoteKind, "remotes_python_python", "python_python_remote_href")
	// DebPublication is an immutable APT publication.
	DebPublication = immutable(crud("deb_publication", publicationKind, "publications_deb_apt", "deb_deb_publication_href"))
	// PythonPublication is an immutable PyPI publication.
	PythonPublication = immutable(crud("python_publication", publicationKind, "publications_python_pypi", "python_python_publication_href"))
	// AccessPolicy can only be read and patched.
	AccessPolicy = Definition{
		Name:      "access_policy",
		Kind:      reconcile.Kind{Singular: "access_policy", Plural: "access_policies"},
		HrefParam: "access_policy_href",
		ListOp:    "access_policies_list",
		ReadOp:    "access_policies_read",
		UpdateOp:  "access_policies_partial_update",
		Actions:   map[string]string{"reset": "access_policies_reset"},
	}
	// Task is a server task; updates go through the cancel action.
	Task = Definition{
		Name:      "task",
		Kind:      reconcile.Kind{Singular: "task", Plural: "tasks"},
		HrefParam: "task_href",
		ListOp:    "tasks_list",
		ReadOp:    "tasks_read",
		DeleteOp:  "tasks_delete",
		Actions:   map[string]string{"cancel": "tasks_cancel"},
	}
)

func withActions(d Definition, actions map[string]string) Definition {
	d.Actions = actions
	return d
}

func immutable(d Definition) Definition {
	d.UpdateOp = ""
	return d
}

var registry = map[string]Definition{}

func init() {
	for _, d := range []Definition{
		DebRepository, PythonRepository,
		DebRemote, PythonRemote,
		DebPublication, PythonPublication,
		AccessPolicy, Task,
	} {
		registry[d.Name] = d
	}
}

// Get returns the definition registered under name.
func Get(name string) (Definition, bool) {
	d, ok := registry[name]
	return d, ok
}

// Names returns all registered definition names, sorted.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Plugins lists the content plugins with registered definitions.
var Plugins = []string{"deb", "python"}

// For returns the definition of entity (e.g. "repository") for plugin.
func For(plugin, entity string) (Definition, error) {
	d, ok := registry[plugin+"_"+entity]
	if !ok {
		return Definition{}, fmt.Errorf("plugin %q has no %s", plugin, entity)
	}
	return d, nil
}
