package research

import (
	"context"
	stderrors "errors"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ai-content-api/internal/infrastructure/persistence/redis"
)

type countingSource struct {
	mu    sync.Mutex
	text  string
	err   error
	calls int
}

func (s *countingSource) Lookup(_ context.Context, _ string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	return s.text, s.err
}

func (s *countingSource) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

func newTestCache(t *testing.T) (*redis.Cache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return redis.NewCache(redis.NewClientFromRedis(rdb, "content")), mr
}

func TestCachedResearcher_CachesResult(t *testing.T) {
	cache, mr := newTestCache(t)
	src := &countingSource{text: "Go is a language."}
	r := NewCachedResearcher(src, cache, time.Hour)

	got, err := r.Lookup(context.Background(), "Go  Lang")
	require.NoError(t, err)
	assert.Equal(t, "Go is a language.", got)

	got, err = r.Lookup(context.Background(), "go lang")
	require.NoError(t, err)
	assert.Equal(t, "Go is a language.", got)
	assert.Equal(t, 1, src.Calls())

	stored, err := mr.Get("content:research:go lang")
	require.NoError(t, err)
	assert.Equal(t, "Go is a language.", stored)
	assert.Equal(t, time.Hour, mr.TTL("content:research:go lang"))
}

func TestCachedResearcher_CachesEmptyResult(t *testing.T) {
	cache, _ := newTestCache(t)
	src := &countingSource{}
	r := NewCachedResearcher(src, cache, time.Hour)

	for range 3 {
		got, err := r.Lookup(context.Background(), "Unknown Topic")
		require.NoError(t, err)
		assert.Empty(t, got)
	}
	assert.Equal(t, 1, src.Calls())
}

func TestCachedResearcher_SourceErrorNotCached(t *testing.T) {
	cache, mr := newTestCache(t)
	boom := stderrors.New("wikipedia down")
	src := &countingSource{err: boom}
	r := NewCachedResearcher(src, cache, time.Hour)

	_, err := r.Lookup(context.Background(), "Go")
	assert.ErrorIs(t, err, boom)
	assert.False(t, mr.Exists("content:research:go"))

	_, err = r.Lookup(context.Background(), "Go")
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 2, src.Calls())
}

func TestCachedResearcher_CacheDownBypasses(t *testing.T) {
	cache, mr := newTestCache(t)
	src := &countingSource{text: "fresh"}
	r := NewCachedResearcher(src, cache, time.Hour)

	mr.Close()

	got, err := r.Lookup(context.Background(), "Go")
	require.NoError(t, err)
	assert.Equal(t, "fresh", got)
	assert.Equal(t, 1, src.Calls())
}
