package wire

import (
	"context"

	"github.com/google/wire"

	"ai-content-api/internal/application/content"
	"ai-content-api/internal/config"
	"ai-content-api/internal/domain/entity"
	"ai-content-api/internal/infrastructure/llm"
	"ai-content-api/internal/infrastructure/persistence/redis"
	"ai-content-api/internal/infrastructure/research"
	"ai-content-api/internal/interfaces/http/handler"
	"ai-content-api/internal/interfaces/http/router"
	"ai-content-api/pkg/logger"
)

// RedisSet Redis 提供者集合
var RedisSet = wire.NewSet(
	ProvideRedisClientOptional,
)

// ContentSet 内容生成提供者集合
var ContentSet = wire.NewSet(
	ProvideResearcher,
	ProvideModelFactory,
	ProvideRand,
	ProvideWriter,
	ProvideLimits,
	content.NewService,
)

// RouterSet 路由提供者集合
var RouterSet = wire.NewSet(
	ProvideContentHandler,
	ProvideHealthHandler,
	router.New,
)

// ProvideRedisClientOptional 提供 Redis 客户端；未启用或不可用时返回 nil
func ProvideRedisClientOptional(ctx context.Context, cfg *config.Config) (*redis.Client, func(), error) {
	if !cfg.Cache.Redis.Enabled {
		return nil, func() {}, nil
	}
	client, err := redis.NewClient(&cfg.Cache.Redis)
	if err != nil {
		logger.Warn(ctx, "redis not available, research cache disabled", "error", err.Error())
		return nil, func() {}, nil
	}
	cleanup := func() {
		_ = client.Close()
	}
	return client, cleanup, nil
}

// ProvideResearcher 提供资料检索器；启用 Redis 时加一层缓存
func ProvideResearcher(cfg *config.Config, redisClient *redis.Client) content.Researcher {
	if !cfg.Research.Enabled {
		return nil
	}
	wiki := research.NewWikipediaClient(&cfg.Research.Wikipedia)
	if redisClient == nil {
		return wiki
	}
	return research.NewCachedResearcher(wiki, redis.NewCache(redisClient), cfg.Research.CacheTTL)
}

// ProvideModelFactory 提供 LLM 工厂
func ProvideModelFactory(cfg *config.Config) *llm.ModelFactory {
	return llm.NewModelFactory(cfg)
}

// ProvideRand 提供共享随机源
func ProvideRand(cfg *config.Config) *content.Rand {
	return content.NewRand(cfg.Generation.Seed)
}

// ProvideWriter 按生成模式提供草稿撰写器
func ProvideWriter(cfg *config.Config, factory *llm.ModelFactory, rng *content.Rand) (content.Writer, error) {
	tpl := content.NewTemplateWriter(rng)
	if cfg.Generation.Mode != config.ModeLLM {
		return tpl, nil
	}

	llmWriter, err := content.NewLLMWriter(factory, cfg.LLM.ProviderChain())
	if err != nil {
		return nil, err
	}
	if cfg.Generation.FallbackToTemplate {
		return content.NewFallbackWriter(llmWriter, tpl), nil
	}
	return llmWriter, nil
}

// ProvideLimits 提供请求边界
func ProvideLimits(cfg *config.Config) content.Limits {
	g := cfg.Generation
	return content.Limits{
		DefaultTone:        entity.Tone(g.DefaultTone),
		DefaultLength:      g.DefaultLength,
		MinLength:          g.MinLength,
		MaxLength:          g.MaxLength,
		BatchMaxTopics:     g.Batch.MaxTopics,
		BatchDefaultLength: g.Batch.DefaultLength,
		BatchConcurrency:   g.Batch.Concurrency,
	}
}

// ProvideContentHandler 提供内容生成处理器；llm 模式下在索引中列出已配置的提供商
func ProvideContentHandler(svc *content.Service, cfg *config.Config, factory *llm.ModelFactory) *handler.ContentHandler {
	info := handler.ServiceInfo{
		Name:    cfg.App.Name,
		Version: cfg.App.Version,
		Mode:    cfg.Generation.Mode,
	}
	if cfg.Generation.Mode == config.ModeLLM {
		info.Providers = factory.Providers()
	}
	return handler.NewContentHandler(svc, info)
}

// ProvideHealthHandler 提供健康检查处理器
func ProvideHealthHandler(redisClient *redis.Client, cfg *config.Config) *handler.HealthHandler {
	return handler.NewHealthHandler(redisClient, cfg.App.Version)
}
