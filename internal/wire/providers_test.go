package wire

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ai-content-api/internal/application/content"
	"ai-content-api/internal/config"
	"ai-content-api/internal/domain/entity"
	"ai-content-api/internal/infrastructure/research"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	for _, key := range []string{"APP_ENV", "PORT", "SERVER_HTTP_PORT", "GENERATION_MODE", "CACHE_REDIS_ENABLED", "RESEARCH_ENABLED"} {
		t.Setenv(key, "")
	}
	cfg, err := config.LoadFrom(t.TempDir())
	require.NoError(t, err)
	cfg.Research.Enabled = false
	cfg.Generation.Seed = 7
	return cfg
}

func TestProvideWriter(t *testing.T) {
	cfg := testConfig(t)
	cfg.LLM = config.LLMConfig{
		DefaultProvider: "openai",
		Providers:       map[string]config.ProviderConfig{"openai": {APIKey: "sk", Model: "m"}},
	}
	factory := ProvideModelFactory(cfg)
	rng := ProvideRand(cfg)

	w, err := ProvideWriter(cfg, factory, rng)
	require.NoError(t, err)
	assert.IsType(t, &content.TemplateWriter{}, w)

	cfg.Generation.Mode = config.ModeLLM
	w, err = ProvideWriter(cfg, factory, rng)
	require.NoError(t, err)
	assert.IsType(t, &content.FallbackWriter{}, w)

	cfg.Generation.FallbackToTemplate = false
	w, err = ProvideWriter(cfg, factory, rng)
	require.NoError(t, err)
	assert.IsType(t, &content.LLMWriter{}, w)

	cfg.LLM = config.LLMConfig{}
	_, err = ProvideWriter(cfg, factory, rng)
	assert.Error(t, err)
}

func TestProvideResearcher(t *testing.T) {
	cfg := testConfig(t)
	assert.Nil(t, ProvideResearcher(cfg, nil))

	cfg.Research.Enabled = true
	assert.IsType(t, &research.WikipediaClient{}, ProvideResearcher(cfg, nil))

	mr := miniredis.RunT(t)
	cfg.Cache.Redis.Enabled = true
	cfg.Cache.Redis.Host = mr.Host()
	port, err := strconv.Atoi(mr.Port())
	require.NoError(t, err)
	cfg.Cache.Redis.Port = port
	client, cleanup, err := ProvideRedisClientOptional(context.Background(), cfg)
	require.NoError(t, err)
	defer cleanup()
	require.NotNil(t, client)

	assert.IsType(t, &research.CachedResearcher{}, ProvideResearcher(cfg, client))
}

func TestProvideRedisClientOptional_Unavailable(t *testing.T) {
	cfg := testConfig(t)

	client, cleanup, err := ProvideRedisClientOptional(context.Background(), cfg)
	require.NoError(t, err)
	assert.Nil(t, client)
	cleanup()

	cfg.Cache.Redis.Enabled = true
	cfg.Cache.Redis.Host = "127.0.0.1"
	cfg.Cache.Redis.Port = 1
	cfg.Cache.Redis.DialTimeout = 100 * time.Millisecond
	client, cleanup, err = ProvideRedisClientOptional(context.Background(), cfg)
	require.NoError(t, err)
	assert.Nil(t, client)
	cleanup()
}

func TestProvideLimits(t *testing.T) {
	cfg := testConfig(t)
	assert.Equal(t, content.Limits{
		DefaultTone:        entity.ToneProfessional,
		DefaultLength:      500,
		MinLength:          100,
		MaxLength:          2000,
		BatchMaxTopics:     10,
		BatchDefaultLength: 300,
		BatchConcurrency:   4,
	}, ProvideLimits(cfg))
}

func TestInitializeService(t *testing.T) {
	cfg := testConfig(t)

	svc, cleanup, err := InitializeService(context.Background(), cfg)
	require.NoError(t, err)
	defer cleanup()

	got, err := svc.Generate(context.Background(), &entity.GenerationRequest{Topic: "Go", Length: 200})
	require.NoError(t, err)
	assert.Equal(t, entity.SourceTemplate, got.Source)
	assert.LessOrEqual(t, got.WordCount, 200)
}

func TestInitializeApp(t *testing.T) {
	cfg := testConfig(t)

	r, cleanup, err := InitializeApp(context.Background(), cfg)
	require.NoError(t, err)
	defer cleanup()
	assert.NotNil(t, r.Engine())
}
