// Package redis 提供 Redis 缓存实现
package redis

import (
	"context"
	stderrors "errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/singleflight"

	"ai-content-api/pkg/errors"
	"ai-content-api/pkg/metrics"
)

var cacheTracer = otel.Tracer("redis.cache")

// LoadError 标记数据源加载失败（区别于缓存自身故障）
type LoadError struct {
	Err error
}

func (e *LoadError) Error() string { return fmt.Sprintf("load failed: %v", e.Err) }

func (e *LoadError) Unwrap() error { return e.Err }

// Cache 带 singleflight 的读穿缓存
type Cache struct {
	client *Client
	group  singleflight.Group
}

// NewCache 创建缓存服务
func NewCache(client *Client) *Cache {
	return &Cache{client: client}
}

// Get 获取缓存值，未命中时返回 redis.Nil（可用 IsNil 判断）
func (c *Cache) Get(ctx context.Context, key string) ([]byte, error) {
	ctx, span := cacheTracer.Start(ctx, "cache.Get",
		trace.WithAttributes(attribute.String("cache.key", key)))
	defer span.End()

	val, err := c.client.rdb.Get(ctx, c.client.Key(key)).Bytes()
	if err != nil {
		if !IsNil(err) {
			span.RecordError(err)
		}
		span.SetAttributes(attribute.Bool("cache.hit", false))
		return nil, err
	}
	span.SetAttributes(attribute.Bool("cache.hit", true))
	return val, nil
}

// Set 写入缓存值
func (c *Cache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	ctx, span := cacheTracer.Start(ctx, "cache.Set",
		trace.WithAttributes(
			attribute.String("cache.key", key),
			attribute.Int64("cache.ttl_ms", ttl.Milliseconds()),
		))
	defer span.End()

	if err := c.client.rdb.Set(ctx, c.client.Key(key), value, ttl).Err(); err != nil {
		span.RecordError(err)
		return err
	}
	return nil
}

// Fetch 读穿缓存：命中直接返回，未命中时以 singleflight 合并并发加载并回写
// load 的错误以 *LoadError 返回；缓存读取故障以 CodeCacheError 返回，写入故障仅记录在 span 上
// 加载不随首个调用方取消，调用方取消时仅自身提前返回
func (c *Cache) Fetch(ctx context.Context, key string, ttl time.Duration, load func(ctx context.Context) ([]byte, error)) ([]byte, error) {
	ctx, span := cacheTracer.Start(ctx, "cache.Fetch",
		trace.WithAttributes(attribute.String("cache.key", key)))
	defer span.End()

	val, err := c.Get(ctx, key)
	if err == nil {
		metrics.CacheLookupTotal.WithLabelValues("hit").Inc()
		return val, nil
	}
	if !IsNil(err) {
		metrics.CacheLookupTotal.WithLabelValues("error").Inc()
		return nil, errors.Wrap(err, errors.CodeCacheError, "cache read failed")
	}

	loadCtx := context.WithoutCancel(ctx)
	ch := c.group.DoChan(key, func() (interface{}, error) {
		// 再次检查缓存（可能已被其他实例填充）
		if val, err := c.Get(loadCtx, key); err == nil {
			return val, nil
		}

		data, err := load(loadCtx)
		if err != nil {
			return nil, &LoadError{Err: err}
		}
		if err := c.Set(loadCtx, key, data, ttl); err != nil {
			span.RecordError(err)
		}
		return data, nil
	})

	var res singleflight.Result
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res = <-ch:
	}
	span.SetAttributes(attribute.Bool("cache.shared", res.Shared))
	if res.Shared {
		metrics.CacheLookupTotal.WithLabelValues("shared").Inc()
	} else {
		metrics.CacheLookupTotal.WithLabelValues("miss").Inc()
	}

	if res.Err != nil {
		var loadErr *LoadError
		if !stderrors.As(res.Err, &loadErr) {
			span.RecordError(res.Err)
		}
		return nil, res.Err
	}
	return res.Val.([]byte), nil
}
