// Package config 提供配置加载功能
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/spf13/viper"
)

// 生成模式
const (
	ModeTemplate = "template"
	ModeLLM      = "llm"
)

// envPlaceholder 匹配 ${VAR} 或 ${VAR:default}
// g1: 变量名, g2: 默认值部分（含冒号）, g3: 默认值内容
var envPlaceholder = regexp.MustCompile(`\${(\w+)(:([^}]*))?}`)

// Load 从 CONFIG_DIR（默认 configs）加载配置
func Load() (*Config, error) {
	dir := os.Getenv("CONFIG_DIR")
	if dir == "" {
		dir = "configs"
	}
	return LoadFrom(dir)
}

// LoadFrom 从指定目录加载配置
// 按优先级加载：默认值 -> config.yaml -> config.<APP_ENV>.yaml -> 环境变量
func LoadFrom(dir string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")

	setDefaults(v)

	// 1. 基础配置（允许缺失，PaaS 部署时通常只有环境变量）
	if err := loadConfigFile(v, filepath.Join(dir, "config.yaml")); err != nil {
		return nil, err
	}

	// 2. 环境特定配置
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "development"
	}
	if err := loadConfigFile(v, filepath.Join(dir, fmt.Sprintf("config.%s.yaml", env))); err != nil {
		return nil, err
	}

	// 3. 环境变量覆盖
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	// 托管平台通过 PORT 注入监听端口
	if err := v.BindEnv("server.http.port", "SERVER_HTTP_PORT", "PORT"); err != nil {
		return nil, fmt.Errorf("failed to bind port env: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// loadConfigFile 读取文件，执行环境变量替换，并合并到 viper
func loadConfigFile(v *viper.Viper, path string) error {
	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	if err := v.MergeConfig(strings.NewReader(expandEnv(string(content)))); err != nil {
		return fmt.Errorf("failed to merge processed config %s: %w", path, err)
	}
	return nil
}

// expandEnv 替换字符串中的 ${VAR:default} 占位符
// 未定义且无默认值的变量保留原样，便于排查
func expandEnv(s string) string {
	return envPlaceholder.ReplaceAllStringFunc(s, func(match string) string {
		submatch := envPlaceholder.FindStringSubmatch(match)
		key := submatch[1]
		hasDefault := submatch[2] != ""
		defVal := submatch[3]

		if val, ok := os.LookupEnv(key); ok {
			return val
		}
		if hasDefault {
			return defVal
		}
		return match
	})
}

// Validate 校验配置的一致性
func (c *Config) Validate() error {
	g := c.Generation
	switch g.Mode {
	case ModeTemplate:
	case ModeLLM:
		chain := c.LLM.ProviderChain()
		if len(chain) == 0 {
			return fmt.Errorf("generation.mode is llm but no llm provider is configured")
		}
		for _, name := range chain {
			if _, ok := c.LLM.Providers[name]; !ok {
				return fmt.Errorf("llm provider %q is not defined in llm.providers", name)
			}
		}
	default:
		return fmt.Errorf("unknown generation.mode %q", g.Mode)
	}

	if g.MinLength <= 0 || g.MaxLength < g.MinLength {
		return fmt.Errorf("invalid generation length bounds [%d, %d]", g.MinLength, g.MaxLength)
	}
	if g.DefaultLength < g.MinLength || g.DefaultLength > g.MaxLength {
		return fmt.Errorf("generation.default_length %d outside [%d, %d]", g.DefaultLength, g.MinLength, g.MaxLength)
	}
	if g.Batch.MaxTopics <= 0 {
		return fmt.Errorf("generation.batch.max_topics must be positive")
	}
	return nil
}

// setDefaults 设置配置默认值
func setDefaults(v *viper.Viper) {
	// 应用默认值
	v.SetDefault("app.name", "ai-content-api")
	v.SetDefault("app.version", "2.0.0")
	v.SetDefault("app.env", "development")

	// HTTP 服务器默认值
	v.SetDefault("server.http.host", "0.0.0.0")
	v.SetDefault("server.http.port", 5000)
	v.SetDefault("server.http.read_timeout", "15s")
	v.SetDefault("server.http.write_timeout", "120s")
	v.SetDefault("server.http.idle_timeout", "120s")
	v.SetDefault("server.http.shutdown_timeout", "30s")

	// Redis 默认值
	v.SetDefault("cache.redis.enabled", false)
	v.SetDefault("cache.redis.host", "localhost")
	v.SetDefault("cache.redis.port", 6379)
	v.SetDefault("cache.redis.db", 0)
	v.SetDefault("cache.redis.pool_size", 20)
	v.SetDefault("cache.redis.min_idle_conns", 2)
	v.SetDefault("cache.redis.dial_timeout", "5s")
	v.SetDefault("cache.redis.read_timeout", "3s")
	v.SetDefault("cache.redis.write_timeout", "3s")
	v.SetDefault("cache.redis.key_prefix", "content")

	// 资料检索默认值
	v.SetDefault("research.enabled", true)
	v.SetDefault("research.cache_ttl", "24h")
	v.SetDefault("research.wikipedia.base_url", "https://en.wikipedia.org/w/api.php")
	v.SetDefault("research.wikipedia.user_agent", "ai-content-api/2.0 (+https://en.wikipedia.org/wiki/Wikipedia:User-Agent_policy)")
	v.SetDefault("research.wikipedia.timeout", "10s")
	v.SetDefault("research.wikipedia.max_chars", 800)

	// 生成默认值
	v.SetDefault("generation.mode", ModeTemplate)
	v.SetDefault("generation.fallback_to_template", true)
	v.SetDefault("generation.default_tone", "professional")
	v.SetDefault("generation.default_length", 500)
	v.SetDefault("generation.min_length", 100)
	v.SetDefault("generation.max_length", 2000)
	v.SetDefault("generation.seed", 0)
	v.SetDefault("generation.batch.max_topics", 10)
	v.SetDefault("generation.batch.default_length", 300)
	v.SetDefault("generation.batch.concurrency", 4)

	// 可观测性默认值
	v.SetDefault("observability.logging.level", "info")
	v.SetDefault("observability.logging.format", "json")
	v.SetDefault("observability.logging.output", "stdout")
	v.SetDefault("observability.logging.skip_paths", []string{"/health", "/ready", "/live", "/metrics"})
	v.SetDefault("observability.tracing.enabled", false)
	v.SetDefault("observability.tracing.endpoint", "localhost:4317")
	v.SetDefault("observability.tracing.sample_rate", 1.0)
	v.SetDefault("observability.metrics.enabled", true)
	v.SetDefault("observability.metrics.path", "/metrics")

	// 安全默认值
	v.SetDefault("security.cors.allowed_origins", []string{"*"})
	v.SetDefault("security.cors.allowed_methods", []string{"GET", "POST", "OPTIONS"})
	v.SetDefault("security.cors.allowed_headers", []string{"Content-Type", "Authorization", "X-Request-ID"})
}
