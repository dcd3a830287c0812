package reconcile

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"squeezer/core/utils"

	"golang.org/x/sync/singleflight"
)

// Resolve finds the single entity identified by key.
// A set pulp_href field is read directly; any other key is listed with the
// key fields as filters and must match at most one entity.
func Resolve(ctx context.Context, ec EntityContext, key NaturalKey) (Entity, error) {
	if key.IsListMode() {
		return nil, Preconditionf("cannot resolve a single %s without a key", ec.Kind().Singular)
	}

	if href, ok := key.Get(HrefField); ok {
		entity, err := ec.Read(ctx, utils.ToString(href))
		if err != nil {
			return nil, err
		}
		return entity, nil
	}

	filters := key.Filters()
	entities, err := ec.List(ctx, filters)
	if err != nil {
		return nil, err
	}

	// Filtering is the server's job, but an exact match is required here
	matches := make([]Entity, 0, len(entities))
	for _, e := range entities {
		if matchesFilters(e, filters) {
			matches = append(matches, e)
		}
	}

	switch len(matches) {
	case 0:
		return nil, ErrNotFound
	case 1:
		return matches[0], nil
	default:
		return nil, &AmbiguousMatchError{Kind: ec.Kind(), Key: key, Count: len(matches)}
	}
}

func matchesFilters(e Entity, filters map[string]any) bool {
	for name, want := range filters {
		have, ok := e[name]
		if !ok {
			// Filters that are not fields (e.g. name__in) are trusted
			continue
		}
		if fmt.Sprint(have) != fmt.Sprint(want) {
			return false
		}
	}
	return true
}

// Lookup memoizes the resolution of one natural key.
// Concurrent callers share a single server round trip; a miss is memoized too.
type Lookup struct {
	ec  EntityContext
	key NaturalKey

	mu     sync.Mutex
	done   bool
	entity Entity
	err    error
	sf     singleflight.Group
}

// NewLookup creates a lookup for key in ec.
func NewLookup(ec EntityContext, key NaturalKey) *Lookup {
	return &Lookup{ec: ec, key: key}
}

// Key returns the natural key being looked up.
func (l *Lookup) Key() NaturalKey {
	return l.key
}

// Entity returns the resolved entity, resolving it on first use.
// Errors other than ErrNotFound are not memoized.
func (l *Lookup) Entity(ctx context.Context) (Entity, error) {
	l.mu.Lock()
	if l.done {
		entity, err := l.entity, l.err
		l.mu.Unlock()
		return entity, err
	}
	l.mu.Unlock()

	result, err, _ := l.sf.Do("entity", func() (interface{}, error) {
		l.mu.Lock()
		if l.done {
			entity, err := l.entity, l.err
			l.mu.Unlock()
			return entity, err
		}
		l.mu.Unlock()

		entity, err := Resolve(ctx, l.ec, l.key)
		if err != nil && !errors.Is(err, ErrNotFound) {
			return nil, err
		}

		l.mu.Lock()
		l.done, l.entity, l.err = true, entity, err
		l.mu.Unlock()
		return entity, err
	})
	if err != nil {
		return nil, err
	}
	return result.(Entity), nil
}

// Set replaces the memoized entity, e.g. after a mutation.
// A nil entity memoizes ErrNotFound.
func (l *Lookup) Set(entity Entity) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.done = true
	l.entity = entity
	l.err = nil
	if entity == nil {
		l.err = ErrNotFound
	}
}

// Invalidate forgets the memoized result.
func (l *Lookup) Invalidate() {
	l.mu.Lock()
	l.done, l.entity, l.err = false, nil, nil
	l.mu.Unlock()
}
