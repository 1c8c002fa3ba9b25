package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestRedis points the package client at an in-process Redis and
// restores the disabled state afterwards. Tests sharing the package client
// must not run in parallel.
func setupTestRedis(t *testing.T) *miniredis.Miniredis {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	InitRedis(mr.Addr())
	require.NotNil(t, GetClient())
	t.Cleanup(func() { client = nil })

	return mr
}

func TestSetGetJSON(t *testing.T) {
	setupTestRedis(t)
	ctx := context.Background()

	type topic struct {
		Name  string `json:"name"`
		Color string `json:"color"`
	}

	require.NoError(t, SetJSON(ctx, "topics:test", []topic{{Name: "Go", Color: "blue"}}, time.Minute))

	var got []topic
	found, err := GetJSON(ctx, "topics:test", &got)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, []topic{{Name: "Go", Color: "blue"}}, got)

	found, err = GetJSON(ctx, "topics:missing", &got)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestAside(t *testing.T) {
	setupTestRedis(t)
	ctx := context.Background()

	calls := 0
	fetch := func(dest *[]string) func() error {
		return func() error {
			calls++
			*dest = []string{"fetched"}
			return nil
		}
	}

	var first []string
	require.NoError(t, Aside(ctx, TrendingTopicsKey, &first, TrendingTTL, fetch(&first)))
	assert.Equal(t, 1, calls)
	assert.Equal(t, []string{"fetched"}, first)

	// Second read is served from the write-back, not the source.
	var second []string
	require.NoError(t, Aside(ctx, TrendingTopicsKey, &second, TrendingTTL, fetch(&second)))
	assert.Equal(t, 1, calls)
	assert.Equal(t, []string{"fetched"}, second)
}

func TestAsideFetchError(t *testing.T) {
	setupTestRedis(t)
	ctx := context.Background()

	fetchErr := errors.New("source down")
	var dest []string
	err := Aside(ctx, TrendingTopicsKey, &dest, TrendingTTL, func() error {
		return fetchErr
	})
	assert.ErrorIs(t, err, fetchErr)

	// A failed fetch must not leave a cached entry behind.
	found, err := GetJSON(ctx, TrendingTopicsKey, &dest)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestInvalidatePostsList(t *testing.T) {
	mr := setupTestRedis(t)
	ctx := context.Background()

	require.NoError(t, SetJSON(ctx, PostsListPrefix+":20:0", []string{"page1"}, PostsListTTL))
	require.NoError(t, SetJSON(ctx, PostsListPrefix+":10:0", []string{"page2"}, PostsListTTL))
	require.NoError(t, SetJSON(ctx, TrendingTopicsKey, []string{"topics"}, TrendingTTL))

	InvalidatePostsList(ctx)

	assert.False(t, mr.Exists(PostsListPrefix+":20:0"))
	assert.False(t, mr.Exists(PostsListPrefix+":10:0"))
	assert.True(t, mr.Exists(TrendingTopicsKey))
}

func TestHelpersDegradeWithoutClient(t *testing.T) {
	client = nil
	ctx := context.Background()

	var dest []string
	found, err := GetJSON(ctx, "any", &dest)
	assert.NoError(t, err)
	assert.False(t, found)

	assert.NoError(t, SetJSON(ctx, "any", []string{"v"}, time.Minute))

	// Aside degrades to a plain fetch.
	err = Aside(ctx, "any", &dest, time.Minute, func() error {
		dest = []string{"fetched"}
		return nil
	})
	assert.NoError(t, err)
	assert.Equal(t, []string{"fetched"}, dest)

	Invalidate(ctx, "any")
	InvalidatePostsList(ctx)
}
