package bus

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type snapshotQuery struct {
	WindowDays int
}

func (q snapshotQuery) Validate() error { return nil }

// mapCache is a TTL-ignoring cache for exercising the middleware.
type mapCache struct {
	store map[string]interface{}
}

func newMapCache() *mapCache {
	return &mapCache{store: make(map[string]interface{})}
}

func (c *mapCache) Get(ctx context.Context, key string) (interface{}, bool) {
	v, ok := c.store[key]
	return v, ok
}

func (c *mapCache) Set(ctx context.Context, key string, value interface{}, ttl int) error {
	c.store[key] = value
	return nil
}

func TestCachingMiddleware_ServesRepeatQueriesFromCache(t *testing.T) {
	// Arrange
	calls := 0
	inner := QueryHandlerFunc(func(ctx context.Context, query Query) (interface{}, error) {
		calls++
		return &struct{ Value int }{Value: calls}, nil
	})
	wrapped := NewCachingMiddleware(newMapCache(), 60).Wrap(inner)

	// Act
	first, err := wrapped.Handle(context.Background(), snapshotQuery{WindowDays: 7})
	require.NoError(t, err)
	second, err := wrapped.Handle(context.Background(), snapshotQuery{WindowDays: 7})
	require.NoError(t, err)

	// Assert: one computation, same payload
	assert.Equal(t, 1, calls)
	assert.Same(t, first, second)
}

func TestCachingMiddleware_DistinctQueriesMiss(t *testing.T) {
	// Arrange
	calls := 0
	inner := QueryHandlerFunc(func(ctx context.Context, query Query) (interface{}, error) {
		calls++
		return &struct{ Value int }{Value: calls}, nil
	})
	wrapped := NewCachingMiddleware(newMapCache(), 60).Wrap(inner)

	// Act
	_, err := wrapped.Handle(context.Background(), snapshotQuery{WindowDays: 7})
	require.NoError(t, err)
	_, err = wrapped.Handle(context.Background(), snapshotQuery{WindowDays: 30})
	require.NoError(t, err)

	// Assert
	assert.Equal(t, 2, calls)
}

func TestCachingMiddleware_DoesNotCacheErrors(t *testing.T) {
	// Arrange
	calls := 0
	inner := QueryHandlerFunc(func(ctx context.Context, query Query) (interface{}, error) {
		calls++
		if calls == 1 {
			return nil, errors.New("storage unavailable")
		}
		return &struct{ Value int }{Value: calls}, nil
	})
	wrapped := NewCachingMiddleware(newMapCache(), 60).Wrap(inner)

	// Act
	_, err := wrapped.Handle(context.Background(), snapshotQuery{})
	require.Error(t, err)
	result, err := wrapped.Handle(context.Background(), snapshotQuery{})

	// Assert: the failure was not stored, the retry recomputes
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, 2, calls)
}
