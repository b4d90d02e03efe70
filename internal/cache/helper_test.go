package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cachedPost struct {
	ID    uint   `json:"id"`
	Title string `json:"title"`
}

func setupMiniredis(t *testing.T) *miniredis.Miniredis {
	t.Helper()
	mr := miniredis.RunT(t)
	SetClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	t.Cleanup(func() { SetClient(nil) })
	return mr
}

func TestAside_MissFetchesAndStores(t *testing.T) {
	mr := setupMiniredis(t)
	ctx := context.Background()

	fetched := 0
	var dest cachedPost
	err := Aside(ctx, PostKey(1), &dest, PostTTL, func() error {
		fetched++
		dest = cachedPost{ID: 1, Title: "Hello"}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 1, fetched)
	assert.Equal(t, "Hello", dest.Title)

	// Second read must be served from the cache.
	var again cachedPost
	err = Aside(ctx, PostKey(1), &again, PostTTL, func() error {
		fetched++
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 1, fetched)
	assert.Equal(t, "Hello", again.Title)

	mr.CheckGet(t, PostKey(1), `{"id":1,"title":"Hello"}`)
}

func TestAside_FetchErrorPropagates(t *testing.T) {
	setupMiniredis(t)

	var dest cachedPost
	wantErr := errors.New("boom")
	err := Aside(context.Background(), PostKey(2), &dest, PostTTL, func() error {
		return wantErr
	})
	assert.ErrorIs(t, err, wantErr)
}

func TestAside_NilClientAlwaysFetches(t *testing.T) {
	SetClient(nil)

	fetched := 0
	var dest cachedPost
	for i := 0; i < 2; i++ {
		err := Aside(context.Background(), PostKey(3), &dest, time.Minute, func() error {
			fetched++
			dest = cachedPost{ID: 3}
			return nil
		})
		require.NoError(t, err)
	}
	assert.Equal(t, 2, fetched)
}

func TestInvalidatePost(t *testing.T) {
	mr := setupMiniredis(t)
	ctx := context.Background()

	require.NoError(t, SetJSON(ctx, PostKey(7), cachedPost{ID: 7}, PostTTL))
	require.True(t, mr.Exists(PostKey(7)))

	InvalidatePost(ctx, 7)
	assert.False(t, mr.Exists(PostKey(7)))
}
