package reconcile

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve(t *testing.T) {
	ec := newFakeContext(
		Entity{HrefField: "/e/1/", "name": "repo1"},
		Entity{HrefField: "/e/2/", "name": "repo2"},
	)

	t.Run("by key fields", func(t *testing.T) {
		e, err := Resolve(context.Background(), ec, KeyOf("name", "repo2"))
		require.NoError(t, err)
		assert.Equal(t, "/e/2/", e.Href())
	})

	t.Run("by href reads directly", func(t *testing.T) {
		ec.calls = nil
		e, err := Resolve(context.Background(), ec, KeyOf(HrefField, "/e/1/"))
		require.NoError(t, err)
		assert.Equal(t, "repo1", e["name"])
		assert.Equal(t, []string{"read"}, ec.calls)
	})

	t.Run("not found", func(t *testing.T) {
		_, err := Resolve(context.Background(), ec, KeyOf("name", "none"))
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("list mode key", func(t *testing.T) {
		_, err := Resolve(context.Background(), ec, KeyOf("name", nil))
		var pe *PreconditionError
		assert.ErrorAs(t, err, &pe)
	})
}

func TestLookup_Memoizes(t *testing.T) {
	ec := newFakeContext(Entity{HrefField: "/e/1/", "name": "repo1"})
	l := NewLookup(ec, KeyOf("name", "repo1"))

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			e, err := l.Entity(context.Background())
			assert.NoError(t, err)
			assert.Equal(t, "/e/1/", e.Href())
		}()
	}
	wg.Wait()

	_, err := l.Entity(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"list"}, ec.calls)

	l.Set(nil)
	_, err = l.Entity(context.Background())
	assert.ErrorIs(t, err, ErrNotFound)

	l.Invalidate()
	e, err := l.Entity(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "/e/1/", e.Href())
	assert.Equal(t, []string{"list", "list"}, ec.calls)
}
