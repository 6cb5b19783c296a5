package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type payload struct {
	Total string `json:"total"`
}

func newTestCache(t *testing.T) (*StockCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewStockCache(client, time.Minute), mr
}

func TestStockCache_FetchJSONCachea(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()
	calls := 0
	loader := func(context.Context) (interface{}, error) {
		calls++
		return payload{Total: "70"}, nil
	}

	key, err := c.BuildKey(ctx, "stock", "P", "W")
	require.NoError(t, err)
	assert.Equal(t, "inventario:stock:P:W:v1", key)

	var first, second payload
	require.NoError(t, c.FetchJSON(ctx, key, &first, loader))
	require.NoError(t, c.FetchJSON(ctx, key, &second, loader))
	assert.Equal(t, 1, calls)
	assert.Equal(t, "70", second.Total)
}

func TestStockCache_BumpInvalida(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()
	total := "70"
	loader := func(context.Context) (interface{}, error) { return payload{Total: total}, nil }

	key, err := c.BuildKey(ctx, "stock", "P")
	require.NoError(t, err)
	var out payload
	require.NoError(t, c.FetchJSON(ctx, key, &out, loader))

	require.NoError(t, c.Bump(ctx))
	total = "40"
	next, err := c.BuildKey(ctx, "stock", "P")
	require.NoError(t, err)
	assert.NotEqual(t, key, next)
	require.NoError(t, c.FetchJSON(ctx, next, &out, loader))
	assert.Equal(t, "40", out.Total)
}

func TestStockCache_TTL(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()
	key, err := c.BuildKey(ctx, "stock", "P")
	require.NoError(t, err)
	var out payload
	require.NoError(t, c.FetchJSON(ctx, key, &out, func(context.Context) (interface{}, error) { return payload{Total: "1"}, nil }))
	assert.True(t, mr.Exists(key))
	mr.FastForward(2 * time.Minute)
	assert.False(t, mr.Exists(key))
}

func TestStockCache_ErrorDelLoaderNoSeCachea(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()
	boom := errors.New("boom")
	var out payload
	err := c.FetchJSON(ctx, "k", &out, func(context.Context) (interface{}, error) { return nil, boom })
	assert.ErrorIs(t, err, boom)
	assert.False(t, mr.Exists("k"))
}

func TestStockCache_RedisCaidoSirveDelLoader(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()
	key, err := c.BuildKey(ctx, "stock", "P", "W")
	require.NoError(t, err)
	mr.Close()

	calls := 0
	var out payload
	err = c.FetchJSON(ctx, key, &out, func(context.Context) (interface{}, error) {
		calls++
		return payload{Total: "42"}, nil
	})
	require.NoError(t, err)
	assert.Equal(t, "42", out.Total)
	assert.Equal(t, 1, calls)

	boom := errors.New("boom")
	err = c.FetchJSON(ctx, key, &out, func(context.Context) (interface{}, error) { return nil, boom })
	assert.ErrorIs(t, err, boom)
}

func TestStockCache_PayloadCorruptoSeRecarga(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()
	require.NoError(t, mr.Set("k", "{no-json"))

	var out payload
	require.NoError(t, c.FetchJSON(ctx, "k", &out, func(context.Context) (interface{}, error) { return payload{Total: "9"}, nil }))
	assert.Equal(t, "9", out.Total)
	got, err := mr.Get("k")
	require.NoError(t, err)
	assert.JSONEq(t, `{"total":"9"}`, got)
}

func TestStockCache_SinClienteEsPasante(t *testing.T) {
	c := NewStockCache(nil, time.Minute)
	ctx := context.Background()
	key, err := c.BuildKey(ctx, "stock", "P")
	require.NoError(t, err)
	assert.Equal(t, "stock:P", key)
	var out payload
	require.NoError(t, c.FetchJSON(ctx, key, &out, func(context.Context) (interface{}, error) { return payload{Total: "5"}, nil }))
	assert.Equal(t, "5", out.Total)
	assert.NoError(t, c.Bump(ctx))
}
