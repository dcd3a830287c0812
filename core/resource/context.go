package resource

import (
	"context"
	"errors"
	"fmt"

	"squeezer/core/pulp"
	"squeezer/core/reconcile"
	"squeezer/core/utils"
)

// DefaultPageSize is the limit used when paging through list results.
const DefaultPageSize = 100

// Context implements reconcile.EntityContext for one Definition.
type Context struct {
	client   pulp.Client
	def      Definition
	pageSize int
}

// New creates an entity context for def over client.
func New(client pulp.Client, def Definition) *Context {
	return &Context{client: client, def: def, pageSize: DefaultPageSize}
}

// WithPageSize returns a copy of the context paging with size.
func (c *Context) WithPageSize(size int) *Context {
	out := *c
	if size > 0 {
		out.pageSize = size
	}
	return &out
}

// Definition returns the bound definition.
func (c *Context) Definition() Definition {
	return c.def
}

// Client returns the underlying client.
func (c *Context) Client() pulp.Client {
	return c.client
}

// Kind returns the entity type names.
func (c *Context) Kind() reconcile.Kind {
	return c.def.Kind
}

// Supports reports whether the definition has an operation for action.
func (c *Context) Supports(action reconcile.ActionType) bool {
	switch action {
	case reconcile.ActionCreate:
		return c.def.CreateOp != ""
	case reconcile.ActionUpdate:
		return c.def.UpdateOp != ""
	case reconcile.ActionDelete:
		return c.def.DeleteOp != ""
	default:
		return true
	}
}

// List returns every entity matching filters, following pagination.
func (c *Context) List(ctx context.Context, filters map[string]any) ([]reconcile.Entity, error) {
	var all []reconcile.Entity
	offset := 0
	for {
		params := make(map[string]any, len(filters)+2)
		for k, v := range filters {
			params[k] = v
		}
		params["limit"] = c.pageSize
		params["offset"] = offset

		raw, err := c.client.Call(ctx, c.def.ListOp, params, nil)
		if err != nil {
			return nil, c.translate(err)
		}
		page, ok := raw.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%s: unexpected list response %T", c.def.ListOp, raw)
		}
		results, _ := page["results"].([]any)
		for _, item := range results {
			entity, err := ToEntity(item)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", c.def.ListOp, err)
			}
			all = append(all, entity)
		}

		offset += len(results)
		if len(results) == 0 || page["next"] == nil || offset >= utils.ToInt(page["count"]) {
			break
		}
	}
	if all == nil {
		all = []reconcile.Entity{}
	}
	return all, nil
}

// Read fetches the entity at href.
func (c *Context) Read(ctx context.Context, href string) (reconcile.Entity, error) {
	raw, err := c.client.Call(ctx, c.def.ReadOp, map[string]any{c.def.HrefParam: href}, nil)
	if err != nil {
		return nil, c.translate(err)
	}
	return ToEntity(raw)
}

// Create creates an entity.
func (c *Context) Create(ctx context.Context, body reconcile.Attributes) (reconcile.Response, error) {
	if c.def.CreateOp == "" {
		return reconcile.Response{}, &reconcile.UnsupportedError{Kind: c.def.Kind, Action: reconcile.ActionCreate}
	}
	raw, err := c.client.Call(ctx, c.def.CreateOp, nil, map[string]any(body))
	if err != nil {
		return reconcile.Response{}, c.translate(err)
	}
	return ToResponse(raw)
}

// Update patches an entity.
func (c *Context) Update(ctx context.Context, href string, changes reconcile.Attributes) (reconcile.Response, error) {
	if c.def.UpdateOp == "" {
		return reconcile.Response{}, &reconcile.UnsupportedError{Kind: c.def.Kind, Action: reconcile.ActionUpdate}
	}
	raw, err := c.client.Call(ctx, c.def.UpdateOp, map[string]any{c.def.HrefParam: href}, map[string]any(changes))
	if err != nil {
		return reconcile.Response{}, c.translate(err)
	}
	return ToResponse(raw)
}

// Delete deletes an entity.
func (c *Context) Delete(ctx context.Context, href string) (reconcile.Response, error) {
	if c.def.DeleteOp == "" {
		return reconcile.Response{}, &reconcile.UnsupportedError{Kind: c.def.Kind, Action: reconcile.ActionDelete}
	}
	raw, err := c.client.Call(ctx, c.def.DeleteOp, map[string]any{c.def.HrefParam: href}, nil)
	if err != nil {
		return reconcile.Response{}, c.translate(err)
	}
	return ToResponse(raw)
}

// Invoke runs a named extra action (e.g. "sync") against the entity at href.
func (c *Context) Invoke(ctx context.Context, action, href string, body map[string]any) (reconcile.Response, error) {
	opID, ok := c.def.Actions[action]
	if !ok {
		return reconcile.Response{}, &reconcile.UnsupportedError{Kind: c.def.Kind, Action: reconcile.ActionType(action)}
	}
	var payload any
	if body != nil {
		payload = body
	}
	raw, err := c.client.Call(ctx, opID, map[string]any{c.def.HrefParam: href}, payload)
	if err != nil {
		return reconcile.Response{}, c.translate(err)
	}
	return ToResponse(raw)
}

func (c *Context) translate(err error) error {
	if errors.Is(err, pulp.ErrNotFound) {
		return fmt.Errorf("%s: %w: %w", c.def.Kind.Singular, reconcile.ErrNotFound, err)
	}
	return err
}

// ToEntity converts a decoded JSON object into an entity.
func ToEntity(raw any) (reconcile.Entity, error) {
	switch v := raw.(type) {
	case nil:
		return nil, nil
	case map[string]any:
		return reconcile.Entity(v), nil
	case reconcile.Entity:
		return v, nil
	default:
		return nil, fmt.Errorf("unexpected entity payload %T", raw)
	}
}

// ToResponse classifies a mutation response: a lone "task" field is an
// asynchronous task reference, any other object is the entity itself.
func ToResponse(raw any) (reconcile.Response, error) {
	if raw == nil {
		return reconcile.Response{}, nil
	}
	obj, ok := raw.(map[string]any)
	if !ok {
		return reconcile.Response{}, fmt.Errorf("unexpected response payload %T", raw)
	}
	if task, ok := obj["task"].(string); ok && len(obj) == 1 {
		return reconcile.Response{TaskHref: task}, nil
	}
	return reconcile.Response{Entity: reconcile.Entity(obj)}, nil
}
