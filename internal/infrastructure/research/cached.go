package research

import (
	"context"
	stderrors "errors"
	"strings"
	"time"

	"ai-content-api/internal/infrastructure/persistence/redis"
	"ai-content-api/pkg/logger"
)

// Source 资料来源
type Source interface {
	Lookup(ctx context.Context, topic string) (string, error)
}

// Fetcher 读穿缓存（由 redis.Cache 实现）
type Fetcher interface {
	Fetch(ctx context.Context, key string, ttl time.Duration, load func(ctx context.Context) ([]byte, error)) ([]byte, error)
}

// CachedResearcher 为资料来源加一层缓存，空结果同样缓存
type CachedResearcher struct {
	source Source
	cache  Fetcher
	ttl    time.Duration
}

// NewCachedResearcher 创建带缓存的资料检索器
func NewCachedResearcher(source Source, cache Fetcher, ttl time.Duration) *CachedResearcher {
	return &CachedResearcher{source: source, cache: cache, ttl: ttl}
}

// Lookup 优先读缓存；缓存故障时直接访问资料来源
func (r *CachedResearcher) Lookup(ctx context.Context, topic string) (string, error) {
	key := cacheKey(topic)
	val, err := r.cache.Fetch(ctx, key, r.ttl, func(ctx context.Context) ([]byte, error) {
		text, err := r.source.Lookup(ctx, topic)
		if err != nil {
			return nil, err
		}
		return []byte(text), nil
	})
	if err == nil {
		return string(val), nil
	}

	var loadErr *redis.LoadError
	if stderrors.As(err, &loadErr) {
		return "", loadErr.Err
	}
	if ctx.Err() != nil {
		return "", ctx.Err()
	}
	logger.Warn(ctx, "research cache unavailable, bypassing", "key", key, "error", err.Error())
	return r.source.Lookup(ctx, topic)
}

func cacheKey(topic string) string {
	return "research:" + strings.ToLower(strings.Join(strings.Fields(topic), " "))
}
