package llm

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ai-content-api/internal/config"
)

func testConfig() *config.Config {
	return &config.Config{
		LLM: config.LLMConfig{
			DefaultProvider: "openai",
			Providers: map[string]config.ProviderConfig{
				"openai":   {APIKey: "sk-test", BaseURL: "http://127.0.0.1:1/v1", Model: "gpt-4o-mini", MaxTokens: 1024, Temperature: 0.7, Timeout: time.Second},
				"deepseek": {APIKey: "sk-test", BaseURL: "http://127.0.0.1:1/v1", Model: "deepseek-chat"},
			},
		},
	}
}

func TestModelFactory_Get(t *testing.T) {
	f := NewModelFactory(testConfig())
	ctx := context.Background()

	m1, err := f.Get(ctx, "")
	require.NoError(t, err)
	require.NotNil(t, m1)

	m2, err := f.Get(ctx, "openai")
	require.NoError(t, err)
	assert.Same(t, m1, m2, "default provider is cached")

	_, err = f.Get(ctx, "missing")
	assert.ErrorContains(t, err, "provider missing not found")
}

func TestModelFactory_Providers(t *testing.T) {
	assert.Equal(t, []string{"deepseek", "openai"}, NewModelFactory(testConfig()).Providers())
}

func TestNewChatModelConfig(t *testing.T) {
	cfg := newChatModelConfig(testConfig().LLM.Providers["openai"])
	require.NotNil(t, cfg.MaxTokens)
	require.NotNil(t, cfg.Temperature)
	assert.Equal(t, 1024, *cfg.MaxTokens)
	assert.InDelta(t, 0.7, *cfg.Temperature, 1e-6)
	assert.Equal(t, time.Second, cfg.Timeout)

	bare := newChatModelConfig(testConfig().LLM.Providers["deepseek"])
	assert.Nil(t, bare.MaxTokens)
	assert.Nil(t, bare.Temperature)
}
