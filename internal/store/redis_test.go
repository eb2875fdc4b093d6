package store

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/recallhq/recall/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedisStore(t *testing.T) *RedisStore {
	mr := miniredis.RunT(t)

	s, err := NewRedisStore("redis://" + mr.Addr())
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	return s
}

func TestRedisStore_InvalidURL(t *testing.T) {
	_, err := NewRedisStore("not-a-redis-url")
	assert.Error(t, err)
}

func TestRedisStore_GetMissingDocument(t *testing.T) {
	s := newTestRedisStore(t)

	var doc map[string]string
	err := s.Get(context.Background(), "missing", &doc)

	assert.ErrorIs(t, err, domain.ErrDocumentNotFound)
}

func TestRedisStore_PutAndGet(t *testing.T) {
	s := newTestRedisStore(t)
	ctx := context.Background()

	in := []string{"first", "second"}
	require.NoError(t, s.Put(ctx, "memories", in))

	var out []string
	require.NoError(t, s.Get(ctx, "memories", &out))
	assert.Equal(t, in, out)
}

func TestRedisStore_PutOverwrites(t *testing.T) {
	s := newTestRedisStore(t)
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, "doc", map[string]int{"v": 1}))
	require.NoError(t, s.Put(ctx, "doc", map[string]int{"v": 2}))

	var out map[string]int
	require.NoError(t, s.Get(ctx, "doc", &out))
	assert.Equal(t, 2, out["v"])
}
